package fixtures

import "testing"

func TestDemoReferencesResolve(t *testing.T) {
	ds := Demo()
	users := map[string]bool{}
	for _, u := range ds.Users {
		users[u.ID] = true
	}
	posts := map[string]bool{}
	for _, p := range ds.Posts {
		posts[p.ID] = true
		if !users[p.Author] {
			t.Fatalf("post %s has unknown author %s", p.ID, p.Author)
		}
	}
	for _, c := range ds.Comments {
		if !users[c.Author] || !posts[c.Post] {
			t.Fatalf("comment %s has dangling reference", c.ID)
		}
	}
}

func TestDemoReturnsFreshCopies(t *testing.T) {
	first := Demo()
	*first.Users[0].Age = 1
	first.Posts[0].Title = "changed"
	second := Demo()
	if *second.Users[0].Age != 26 || second.Posts[0].Title != "Intro post" {
		t.Fatalf("demo dataset shared state between calls")
	}
}

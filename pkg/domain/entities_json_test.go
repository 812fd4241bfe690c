package domain

import (
	"encoding/json"
	"testing"
)

func TestUserMarshalJSONOmitsMissingAge(t *testing.T) {
	data, err := json.Marshal(User{ID: "1", Name: "Brian", Email: "brian@example.com"})
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	if got, want := string(data), `{"id":"1","name":"Brian","email":"brian@example.com"}`; got != want {
		t.Fatalf("unexpected json: %s", got)
	}

	age := 26
	data, err = json.Marshal(User{ID: "1", Name: "Brian", Email: "brian@example.com", Age: &age})
	if err != nil {
		t.Fatalf("marshal user: %v", err)
	}
	var decoded User
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal user: %v", err)
	}
	if decoded.Age == nil || *decoded.Age != 26 {
		t.Fatalf("age lost in round trip: %s", data)
	}
}

func TestPostAndCommentKeepReferencesAsIDs(t *testing.T) {
	data, err := json.Marshal(Post{ID: "10", Title: "t", Body: "b", Published: true, Author: "1"})
	if err != nil {
		t.Fatalf("marshal post: %v", err)
	}
	if got, want := string(data), `{"id":"10","title":"t","body":"b","published":true,"author":"1"}`; got != want {
		t.Fatalf("unexpected post json: %s", got)
	}
	data, err = json.Marshal(Comment{ID: "101", Text: "hi", Author: "3", Post: "10"})
	if err != nil {
		t.Fatalf("marshal comment: %v", err)
	}
	if got, want := string(data), `{"id":"101","text":"hi","author":"3","post":"10"}`; got != want {
		t.Fatalf("unexpected comment json: %s", got)
	}
}

// Package fixtures holds the demo dataset the service can be started with:
// three users, four posts (one unpublished) and four comments.
package fixtures

import "postgraph/pkg/domain"

// Dataset is an ordered set of entities ready to be imported into a store.
type Dataset struct {
	Users    []domain.User
	Posts    []domain.Post
	Comments []domain.Comment
}

func age(v int) *int { return &v }

// Demo returns a fresh copy of the demo dataset. Callers may mutate it.
func Demo() Dataset {
	return Dataset{
		Users: []domain.User{
			{ID: "1", Name: "Brian", Email: "brian@example.com", Age: age(26)},
			{ID: "2", Name: "Sarah", Email: "sarah@example.com", Age: age(29)},
			{ID: "3", Name: "Mark", Email: "mark@example.com", Age: age(30)},
		},
		Posts: []domain.Post{
			{
				ID:        "10",
				Title:     "Intro post",
				Body:      "This is our first post. Welcome to our site. Hope to serve you. Thanks",
				Published: true,
				Author:    "1",
			},
			{
				ID:        "11",
				Title:     "Political rant",
				Body:      "Politics is dead as we know it. It is basically entertainment at this point",
				Published: true,
				Author:    "1",
			},
			{
				ID:        "12",
				Title:     "3 secrets to living a long life",
				Body:      "Sleep is possibly the most important habit you can clean to get the best bang for your buck",
				Published: true,
				Author:    "3",
			},
			{
				ID:        "13",
				Title:     "Tips for securing your first job",
				Body:      "Apply. Do not fear putting yourself out there",
				Published: false,
				Author:    "2",
			},
		},
		Comments: []domain.Comment{
			{ID: "101", Text: "This is the first comment", Author: "3", Post: "10"},
			{ID: "102", Text: "This is my second comment. Awesome!", Author: "2", Post: "11"},
			{ID: "103", Text: "This is another comment. Third to be exact ", Author: "2", Post: "11"},
			{ID: "104", Text: "fourth comment coming through", Author: "1", Post: "13"},
		},
	}
}

package core

import (
	"context"
	"strings"
)

// QueryEngine serves the read-only list operations. Queries take the store's
// shared lock and never mutate state.
type QueryEngine struct {
	store PersistentStore
}

// NewQueryEngine constructs a query engine over the store.
func NewQueryEngine(store PersistentStore) *QueryEngine {
	return &QueryEngine{store: store}
}

// ListUsers returns every user in store order.
func (q *QueryEngine) ListUsers(ctx context.Context) ([]User, error) {
	var out []User
	err := q.store.View(ctx, func(view TransactionView) error {
		out = view.ListUsers()
		return nil
	})
	return out, err
}

// ListPosts returns every post when query is empty, otherwise the posts whose
// title or body contains query, compared case-insensitively. Unpublished posts
// are included.
func (q *QueryEngine) ListPosts(ctx context.Context, query string) ([]Post, error) {
	var out []Post
	err := q.store.View(ctx, func(view TransactionView) error {
		if query == "" {
			out = view.ListPosts()
			return nil
		}
		needle := strings.ToLower(query)
		out = view.FilterPosts(func(p Post) bool {
			return strings.Contains(strings.ToLower(p.Title), needle) ||
				strings.Contains(strings.ToLower(p.Body), needle)
		})
		return nil
	})
	return out, err
}

// ListComments returns every comment in store order.
func (q *QueryEngine) ListComments(ctx context.Context) ([]Comment, error) {
	var out []Comment
	err := q.store.View(ctx, func(view TransactionView) error {
		out = view.ListComments()
		return nil
	})
	return out, err
}

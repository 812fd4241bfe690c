package core

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestResolverLookups(t *testing.T) {
	svc, _ := newDemoService(t)
	err := svc.Resolve(context.Background(), func(r *Resolver) error {
		author, err := r.ResolveAuthor("3")
		if err != nil || author.Name != "Mark" {
			t.Fatalf("resolve author: %+v %v", author, err)
		}
		post, err := r.ResolveParentPost("13")
		if err != nil || post.Published {
			t.Fatalf("resolve post: %+v %v", post, err)
		}
		if got := ids(r.ChildPostsOf("1")); !reflect.DeepEqual(got, []string{"10", "11"}) {
			t.Fatalf("child posts: %v", got)
		}
		if got := ids(r.ChildCommentsOfPost("11")); !reflect.DeepEqual(got, []string{"102", "103"}) {
			t.Fatalf("post comments: %v", got)
		}
		if got := ids(r.ChildCommentsOfUser("2")); !reflect.DeepEqual(got, []string{"102", "103"}) {
			t.Fatalf("user comments: %v", got)
		}
		if got := r.ChildPostsOf("404"); len(got) != 0 {
			t.Fatalf("expected no posts for unknown user, got %v", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
}

func TestResolverStaleReferences(t *testing.T) {
	store := NewMemoryStore(nil, nil)
	store.ImportState(SnapshotOf(nil, []Post{{ID: "10", Author: "gone"}}, []Comment{{ID: "101", Author: "gone", Post: "missing"}}))
	err := store.View(context.Background(), func(view TransactionView) error {
		r := NewResolver(view)
		var nf ErrNotFound
		if _, err := r.ResolveAuthor("gone"); !errors.As(err, &nf) || nf.Entity != EntityUser {
			t.Fatalf("expected user not found, got %v", err)
		}
		if _, err := r.ResolveParentPost("missing"); !errors.As(err, &nf) || nf.Entity != EntityPost {
			t.Fatalf("expected post not found, got %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("view: %v", err)
	}
}

func TestResolverRescansEachCall(t *testing.T) {
	svc, _ := newDemoService(t)
	ctx := context.Background()
	count := func() int {
		var n int
		_ = svc.Resolve(ctx, func(r *Resolver) error {
			n = len(r.ChildPostsOf("3"))
			return nil
		})
		return n
	}
	if count() != 1 {
		t.Fatalf("expected one post by user 3")
	}
	if _, _, err := svc.CreatePost(ctx, PostInput{Title: "more", Author: "3"}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if count() != 2 {
		t.Fatalf("resolver must observe the new post")
	}
}

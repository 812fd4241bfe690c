package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrNotFoundMessages(t *testing.T) {
	cases := []struct {
		err  ErrNotFound
		want string
	}{
		{ErrNotFound{Entity: EntityUser, ID: "9"}, "user 9 not found"},
		{ErrNotFound{Entity: EntityUser, ID: "9", Ref: RefPostAuthor}, "post author: user 9 not found"},
		{ErrNotFound{Entity: EntityUser, ID: "9", Ref: RefCommentAuthor}, "comment author: user 9 not found"},
		{ErrNotFound{Entity: EntityPost, ID: "13", Ref: RefCommentPost}, "comment post: published post 13 not found"},
	}
	for _, c := range cases {
		if got := c.err.Error(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestErrorsMatchSentinelsThroughWrapping(t *testing.T) {
	missing := fmt.Errorf("create post: %w", ErrNotFound{Entity: EntityUser, ID: "9", Ref: RefPostAuthor})
	if !errors.Is(missing, ErrMissing) || errors.Is(missing, ErrDuplicate) {
		t.Fatalf("unexpected sentinel match for %v", missing)
	}
	var nf ErrNotFound
	if !errors.As(missing, &nf) || nf.Ref != RefPostAuthor || nf.ID != "9" {
		t.Fatalf("expected ErrNotFound details, got %+v", nf)
	}

	dup := fmt.Errorf("create user: %w", ErrDuplicateEmail{Email: "a@b"})
	if !errors.Is(dup, ErrDuplicate) || errors.Is(dup, ErrMissing) {
		t.Fatalf("unexpected sentinel match for %v", dup)
	}
	if dup.Error() != `create user: email "a@b" already taken` {
		t.Fatalf("unexpected message: %s", dup.Error())
	}
}

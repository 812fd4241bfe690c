package domain

import (
	"errors"
	"fmt"
)

// Sentinel categories matched through errors.Is.
var (
	// ErrMissing classifies every ErrNotFound.
	ErrMissing = errors.New("referenced entity not found")
	// ErrDuplicate classifies every ErrDuplicateEmail.
	ErrDuplicate = errors.New("duplicate entity")
)

// RefKind names the reference that failed to resolve when an operation was
// refused. The zero value means the entity was addressed directly by id.
type RefKind string

// Reference kinds reported by mutation preconditions.
const (
	RefDirect        RefKind = ""
	RefPostAuthor    RefKind = "post_author"
	RefCommentAuthor RefKind = "comment_author"
	RefCommentPost   RefKind = "comment_post"
)

// ErrNotFound is returned when an id does not resolve to an entity, either on
// direct lookup or while validating a reference.
type ErrNotFound struct {
	Entity EntityType
	ID     string
	Ref    RefKind
}

func (e ErrNotFound) Error() string {
	switch e.Ref {
	case RefPostAuthor:
		return fmt.Sprintf("post author: %s %s not found", e.Entity, e.ID)
	case RefCommentAuthor:
		return fmt.Sprintf("comment author: %s %s not found", e.Entity, e.ID)
	case RefCommentPost:
		return fmt.Sprintf("comment post: published %s %s not found", e.Entity, e.ID)
	default:
		return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
	}
}

// Is reports ErrMissing so callers can match the category without the details.
func (e ErrNotFound) Is(target error) bool {
	return target == ErrMissing
}

// ErrDuplicateEmail is returned when a user with the same email already exists.
type ErrDuplicateEmail struct {
	Email string
}

func (e ErrDuplicateEmail) Error() string {
	return fmt.Sprintf("email %q already taken", e.Email)
}

// Is reports ErrDuplicate.
func (e ErrDuplicateEmail) Is(target error) bool {
	return target == ErrDuplicate
}

package core

import (
	"context"

	"postgraph/pkg/domain"
)

// UserInput carries the caller-supplied fields of a new user.
type UserInput struct {
	Name  string
	Email string
	Age   *int
}

// PostInput carries the caller-supplied fields of a new post.
type PostInput struct {
	Title     string
	Body      string
	Published bool
	Author    string
}

// CommentInput carries the caller-supplied fields of a new comment.
type CommentInput struct {
	Text   string
	Author string
	Post   string
}

// Cascade reports everything removed by a user deletion.
type Cascade struct {
	User     User
	Posts    []Post
	Comments []Comment
}

// MutationEngine applies validated create and delete operations. Each method
// runs as one store transaction, so preconditions and writes are atomic and a
// refused operation leaves every collection unchanged.
type MutationEngine struct {
	store PersistentStore
}

// NewMutationEngine constructs a mutation engine over the store.
func NewMutationEngine(store PersistentStore) *MutationEngine {
	return &MutationEngine{store: store}
}

// CreateUser appends a user unless another user already owns the email.
func (m *MutationEngine) CreateUser(ctx context.Context, in UserInput) (User, Result, error) {
	var created User
	res, err := m.store.RunInTransaction(ctx, func(tx Transaction) error {
		taken := tx.FilterUsers(func(u User) bool { return u.Email == in.Email })
		if len(taken) > 0 {
			return ErrDuplicateEmail{Email: in.Email}
		}
		var err error
		created, err = tx.InsertUser(User{Name: in.Name, Email: in.Email, Age: copyAge(in.Age)})
		return err
	})
	return created, res, err
}

// DeleteUser removes the user and everything depending on it: the user's
// posts, every comment on those posts, and every remaining comment the user
// wrote.
func (m *MutationEngine) DeleteUser(ctx context.Context, id string) (Cascade, Result, error) {
	var cascade Cascade
	res, err := m.store.RunInTransaction(ctx, func(tx Transaction) error {
		removed := tx.RemoveUsers(func(u User) bool { return u.ID == id })
		if len(removed) == 0 {
			return ErrNotFound{Entity: EntityUser, ID: id}
		}
		cascade.User = removed[0]
		cascade.Posts = tx.RemovePosts(func(p Post) bool { return p.Author == id })
		for _, post := range cascade.Posts {
			postID := post.ID
			cascade.Comments = append(cascade.Comments, tx.RemoveComments(func(c Comment) bool { return c.Post == postID })...)
		}
		cascade.Comments = append(cascade.Comments, tx.RemoveComments(func(c Comment) bool { return c.Author == id })...)
		return nil
	})
	if err != nil {
		return Cascade{}, res, err
	}
	return cascade, res, nil
}

// CreatePost appends a post after checking that its author exists.
func (m *MutationEngine) CreatePost(ctx context.Context, in PostInput) (Post, Result, error) {
	var created Post
	res, err := m.store.RunInTransaction(ctx, func(tx Transaction) error {
		refs := NewResolver(tx.Snapshot())
		if _, err := refs.ResolveAuthor(in.Author); err != nil {
			return ErrNotFound{Entity: EntityUser, ID: in.Author, Ref: domain.RefPostAuthor}
		}
		var err error
		created, err = tx.InsertPost(Post{
			Title:     in.Title,
			Body:      in.Body,
			Published: in.Published,
			Author:    in.Author,
		})
		return err
	})
	return created, res, err
}

// CreateComment appends a comment after checking that its author exists and
// that its post exists and is published. An unpublished post is reported
// exactly like a missing one.
func (m *MutationEngine) CreateComment(ctx context.Context, in CommentInput) (Comment, Result, error) {
	var created Comment
	res, err := m.store.RunInTransaction(ctx, func(tx Transaction) error {
		refs := NewResolver(tx.Snapshot())
		if _, err := refs.ResolveAuthor(in.Author); err != nil {
			return ErrNotFound{Entity: EntityUser, ID: in.Author, Ref: domain.RefCommentAuthor}
		}
		post, err := refs.ResolveParentPost(in.Post)
		if err != nil || !post.Published {
			return ErrNotFound{Entity: EntityPost, ID: in.Post, Ref: domain.RefCommentPost}
		}
		created, err = tx.InsertComment(Comment{Text: in.Text, Author: in.Author, Post: in.Post})
		return err
	})
	return created, res, err
}

func copyAge(age *int) *int {
	if age == nil {
		return nil
	}
	v := *age
	return &v
}

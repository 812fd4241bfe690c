package core

// Resolver dereferences id references against one consistent view of the
// store. Every call rescans the view; nothing is cached, so a resolver bound
// to a transaction snapshot observes the transaction's own writes.
type Resolver struct {
	view TransactionView
}

// NewResolver binds a resolver to the supplied view.
func NewResolver(view TransactionView) *Resolver {
	return &Resolver{view: view}
}

// ResolveAuthor returns the user with the given id. A stale or unknown id
// yields ErrNotFound.
func (r *Resolver) ResolveAuthor(userID string) (User, error) {
	user, ok := r.view.FindUser(userID)
	if !ok {
		return User{}, ErrNotFound{Entity: EntityUser, ID: userID}
	}
	return user, nil
}

// ResolveParentPost returns the post with the given id.
func (r *Resolver) ResolveParentPost(postID string) (Post, error) {
	post, ok := r.view.FindPost(postID)
	if !ok {
		return Post{}, ErrNotFound{Entity: EntityPost, ID: postID}
	}
	return post, nil
}

// ChildPostsOf lists posts authored by userID in store order.
func (r *Resolver) ChildPostsOf(userID string) []Post {
	return r.view.FilterPosts(func(p Post) bool { return p.Author == userID })
}

// ChildCommentsOfPost lists comments attached to postID in store order.
func (r *Resolver) ChildCommentsOfPost(postID string) []Comment {
	return r.view.FilterComments(func(c Comment) bool { return c.Post == postID })
}

// ChildCommentsOfUser lists comments authored by userID in store order.
func (r *Resolver) ChildCommentsOfUser(userID string) []Comment {
	return r.view.FilterComments(func(c Comment) bool { return c.Author == userID })
}

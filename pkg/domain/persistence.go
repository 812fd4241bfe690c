package domain

import "context"

// IDGenerator produces fresh entity identifiers. Implementations need not
// guarantee uniqueness; the store redraws on collision within a collection,
// up to one more draw than the collection holds.
type IDGenerator interface {
	NewID(entity EntityType) string
}

// IDGeneratorFunc adapts a function to IDGenerator.
type IDGeneratorFunc func(entity EntityType) string

// NewID implements IDGenerator.
func (f IDGeneratorFunc) NewID(entity EntityType) string { return f(entity) }

// Transaction exposes the collection primitives that a store implementation
// must support within an atomic scope. None of the primitives enforce
// uniqueness of anything but ids; callers check preconditions first.
type Transaction interface {
	Snapshot() TransactionView
	InsertUser(User) (User, error)
	InsertPost(Post) (Post, error)
	InsertComment(Comment) (Comment, error)
	RemoveUsers(match func(User) bool) []User
	RemovePosts(match func(Post) bool) []Post
	RemoveComments(match func(Comment) bool) []Comment
	FindUser(id string) (User, bool)
	FindPost(id string) (Post, bool)
	FilterUsers(match func(User) bool) []User
	FilterPosts(match func(Post) bool) []Post
	FilterComments(match func(Comment) bool) []Comment
}

// TransactionView provides read-only access to a consistent state. Lists
// preserve insertion order.
type TransactionView interface {
	ListUsers() []User
	ListPosts() []Post
	ListComments() []Comment
	FindUser(id string) (User, bool)
	FindPost(id string) (Post, bool)
	FindComment(id string) (Comment, bool)
	FilterPosts(match func(Post) bool) []Post
	FilterComments(match func(Comment) bool) []Comment
}

// PersistentStore is the store abstraction consumed by the service layer.
// RunInTransaction is exclusive for its full duration; View is shared.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	GetUser(id string) (User, bool)
	ListUsers() []User
	ListPosts() []Post
	ListComments() []Comment
}

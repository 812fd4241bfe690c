// Package memory provides the in-memory implementation of the domain
// persistence store. Collections are ordered slices scanned linearly; every
// mutation runs against a cloned working state that is swapped in on commit.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"

	"postgraph/pkg/domain"
)

// Compile-time contract assertions ensuring memory.Store adheres to the domain persistence interfaces.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// User aliases domain.User for in-memory persistence operations.
	User = domain.User
	// Post aliases domain.Post.
	Post = domain.Post
	// Comment aliases domain.Comment.
	Comment = domain.Comment
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	users    []User
	posts    []Post
	comments []Comment
}

// Snapshot captures a point-in-time clone of the store state. Slices keep
// insertion order.
type Snapshot struct {
	Users    []User    `json:"users"`
	Posts    []Post    `json:"posts"`
	Comments []Comment `json:"comments"`
}

func (s memoryState) clone() memoryState {
	return memoryState{
		users:    cloneSlice(s.users, cloneUser),
		posts:    cloneSlice(s.posts, clonePost),
		comments: cloneSlice(s.comments, cloneComment),
	}
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	cloned := state.clone()
	return Snapshot{Users: cloned.users, Posts: cloned.posts, Comments: cloned.comments}
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	return memoryState{
		users:    cloneSlice(s.Users, cloneUser),
		posts:    cloneSlice(s.Posts, clonePost),
		comments: cloneSlice(s.Comments, cloneComment),
	}
}

func cloneUser(u User) User {
	cp := u
	if u.Age != nil {
		age := *u.Age
		cp.Age = &age
	}
	return cp
}

func clonePost(p Post) Post          { return p }
func cloneComment(c Comment) Comment { return c }

func cloneSlice[T any](items []T, cloneFn func(T) T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFn(item))
	}
	return out
}

// findFirst returns the first item satisfying match.
func findFirst[T any](items []T, match func(T) bool, cloneFn func(T) T) (T, bool) {
	for _, item := range items {
		if match(item) {
			return cloneFn(item), true
		}
	}
	var zero T
	return zero, false
}

// filterItems returns clones of every item satisfying match, in order.
func filterItems[T any](items []T, match func(T) bool, cloneFn func(T) T) []T {
	out := make([]T, 0)
	for _, item := range items {
		if match == nil || match(item) {
			out = append(out, cloneFn(item))
		}
	}
	return out
}

// removeWhere partitions items into those kept and those removed, preserving
// the relative order of both.
func removeWhere[T any](items []T, match func(T) bool) (kept, removed []T) {
	kept = items[:0:0]
	for _, item := range items {
		if match(item) {
			removed = append(removed, item)
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator overrides the random hex id generator.
func WithIDGenerator(gen domain.IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// Store provides an in-memory transactional store for the domain. A single
// RWMutex spans whole operations: transactions are exclusive, views shared.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	ids    domain.IDGenerator
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		engine: engine,
		ids:    domain.IDGeneratorFunc(randomHexID),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func randomHexID(domain.EntityType) string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ExportState clones the current store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// GetUser returns a user by id.
func (s *Store) GetUser(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return findFirst(s.state.users, func(u User) bool { return u.ID == id }, cloneUser)
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.users, cloneUser)
}

// ListPosts returns all posts in insertion order.
func (s *Store) ListPosts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.posts, clonePost)
}

// ListComments returns all comments in insertion order.
func (s *Store) ListComments() []Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSlice(s.state.comments, cloneComment)
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

// ListUsers returns all users within the snapshot.
func (v transactionView) ListUsers() []User {
	return cloneSlice(v.state.users, cloneUser)
}

// ListPosts returns all posts within the snapshot.
func (v transactionView) ListPosts() []Post {
	return cloneSlice(v.state.posts, clonePost)
}

// ListComments returns all comments within the snapshot.
func (v transactionView) ListComments() []Comment {
	return cloneSlice(v.state.comments, cloneComment)
}

// FindUser retrieves the first user with the given id.
func (v transactionView) FindUser(id string) (User, bool) {
	return findFirst(v.state.users, func(u User) bool { return u.ID == id }, cloneUser)
}

// FindPost retrieves the first post with the given id.
func (v transactionView) FindPost(id string) (Post, bool) {
	return findFirst(v.state.posts, func(p Post) bool { return p.ID == id }, clonePost)
}

// FindComment retrieves the first comment with the given id.
func (v transactionView) FindComment(id string) (Comment, bool) {
	return findFirst(v.state.comments, func(c Comment) bool { return c.ID == id }, cloneComment)
}

// FilterPosts returns posts satisfying match, in store order.
func (v transactionView) FilterPosts(match func(Post) bool) []Post {
	return filterItems(v.state.posts, match, clonePost)
}

// FilterComments returns comments satisfying match, in store order.
func (v transactionView) FilterComments(match func(Comment) bool) []Comment {
	return filterItems(v.state.comments, match, cloneComment)
}

// RunInTransaction executes fn within a transactional copy of the store state.
// The copy replaces the live state only when fn succeeds and no registered
// rule reports a blocking violation.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	view := newTransactionView(&snapshot)
	return fn(view)
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) FindUser(id string) (User, bool) {
	return tx.Snapshot().FindUser(id)
}

func (tx *transaction) FindPost(id string) (Post, bool) {
	return tx.Snapshot().FindPost(id)
}

func (tx *transaction) FilterUsers(match func(User) bool) []User {
	return filterItems(tx.state.users, match, cloneUser)
}

func (tx *transaction) FilterPosts(match func(Post) bool) []Post {
	return filterItems(tx.state.posts, match, clonePost)
}

func (tx *transaction) FilterComments(match func(Comment) bool) []Comment {
	return filterItems(tx.state.comments, match, cloneComment)
}

// assignID returns id when set, otherwise draws generator ids until one is
// unused according to taken. A collection of size n can reject at most n
// distinct candidates, so n+1 draws always succeed for a generator that
// never repeats itself.
func (tx *transaction) assignID(entity domain.EntityType, id string, size int, taken func(string) bool) (string, error) {
	if id != "" {
		if taken(id) {
			return "", fmt.Errorf("%s %q already exists", entity, id)
		}
		return id, nil
	}
	attempts := size + 1
	for attempt := 0; attempt < attempts; attempt++ {
		candidate := tx.store.ids.NewID(entity)
		if candidate != "" && !taken(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%s: no unused id after %d attempts", entity, attempts)
}

// InsertUser appends a user, generating its id when empty.
func (tx *transaction) InsertUser(u User) (User, error) {
	id, err := tx.assignID(domain.EntityUser, u.ID, len(tx.state.users), func(id string) bool {
		_, ok := tx.FindUser(id)
		return ok
	})
	if err != nil {
		return User{}, err
	}
	u.ID = id
	tx.state.users = append(tx.state.users, cloneUser(u))
	tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionCreate, After: cloneUser(u)})
	return cloneUser(u), nil
}

// InsertPost appends a post, generating its id when empty.
func (tx *transaction) InsertPost(p Post) (Post, error) {
	id, err := tx.assignID(domain.EntityPost, p.ID, len(tx.state.posts), func(id string) bool {
		_, ok := tx.FindPost(id)
		return ok
	})
	if err != nil {
		return Post{}, err
	}
	p.ID = id
	tx.state.posts = append(tx.state.posts, p)
	tx.recordChange(Change{Entity: domain.EntityPost, Action: domain.ActionCreate, After: p})
	return p, nil
}

// InsertComment appends a comment, generating its id when empty.
func (tx *transaction) InsertComment(c Comment) (Comment, error) {
	id, err := tx.assignID(domain.EntityComment, c.ID, len(tx.state.comments), func(id string) bool {
		_, ok := tx.Snapshot().FindComment(id)
		return ok
	})
	if err != nil {
		return Comment{}, err
	}
	c.ID = id
	tx.state.comments = append(tx.state.comments, c)
	tx.recordChange(Change{Entity: domain.EntityComment, Action: domain.ActionCreate, After: c})
	return c, nil
}

// RemoveUsers deletes every user satisfying match and returns them in store order.
func (tx *transaction) RemoveUsers(match func(User) bool) []User {
	kept, removed := removeWhere(tx.state.users, match)
	tx.state.users = kept
	for _, u := range removed {
		tx.recordChange(Change{Entity: domain.EntityUser, Action: domain.ActionDelete, Before: cloneUser(u)})
	}
	return cloneSlice(removed, cloneUser)
}

// RemovePosts deletes every post satisfying match and returns them in store order.
func (tx *transaction) RemovePosts(match func(Post) bool) []Post {
	kept, removed := removeWhere(tx.state.posts, match)
	tx.state.posts = kept
	for _, p := range removed {
		tx.recordChange(Change{Entity: domain.EntityPost, Action: domain.ActionDelete, Before: p})
	}
	return cloneSlice(removed, clonePost)
}

// RemoveComments deletes every comment satisfying match and returns them in store order.
func (tx *transaction) RemoveComments(match func(Comment) bool) []Comment {
	kept, removed := removeWhere(tx.state.comments, match)
	tx.state.comments = kept
	for _, c := range removed {
		tx.recordChange(Change{Entity: domain.EntityComment, Action: domain.ActionDelete, Before: c})
	}
	return cloneSlice(removed, cloneComment)
}

package core

import (
	"postgraph/internal/infra/persistence/memory"
	"postgraph/pkg/domain"
)

// MemoryStore is the in-memory persistent store used by services.
type MemoryStore = memory.Store

// Snapshot is the ordered, serialisable state of a MemoryStore.
type Snapshot = memory.Snapshot

// NewMemoryStore constructs an in-memory store evaluating the supplied rules
// engine after every transaction. A nil ids generator keeps the store default.
func NewMemoryStore(engine *RulesEngine, ids domain.IDGenerator) *MemoryStore {
	return memory.NewStore(engine, memory.WithIDGenerator(ids))
}

// SnapshotOf builds a store snapshot from ordered entity slices.
func SnapshotOf(users []User, posts []Post, comments []Comment) Snapshot {
	return Snapshot{Users: users, Posts: posts, Comments: comments}
}

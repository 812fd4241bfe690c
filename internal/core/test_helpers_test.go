package core

import (
	"testing"

	"postgraph/internal/fixtures"
)

func intPtr(v int) *int { return &v }

// newDemoService returns a service over the demo dataset with deterministic
// ids starting at "n1".
func newDemoService(t *testing.T, opts ...Option) (*Service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore(NewDefaultRulesEngine(), NewSequenceGenerator("n", 1))
	ds := fixtures.Demo()
	store.ImportState(SnapshotOf(ds.Users, ds.Posts, ds.Comments))
	return NewService(store, opts...), store
}

func ids[T interface{ User | Post | Comment }](items []T) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := any(item).(type) {
		case User:
			out = append(out, v.ID)
		case Post:
			out = append(out, v.ID)
		case Comment:
			out = append(out, v.ID)
		}
	}
	return out
}

func containsID(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

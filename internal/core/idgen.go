package core

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"

	"postgraph/pkg/domain"
)

var (
	_ domain.IDGenerator = UUIDGenerator{}
	_ domain.IDGenerator = (*SequenceGenerator)(nil)
)

// UUIDGenerator issues random version 4 UUIDs.
type UUIDGenerator struct{}

// NewID implements domain.IDGenerator.
func (UUIDGenerator) NewID(domain.EntityType) string {
	return uuid.NewString()
}

// SequenceGenerator issues prefix-qualified increasing integers shared across
// entity types. It is deterministic and intended for tests and demos.
type SequenceGenerator struct {
	prefix string
	next   atomic.Uint64
}

// NewSequenceGenerator returns a generator whose first id is prefix+start.
func NewSequenceGenerator(prefix string, start uint64) *SequenceGenerator {
	g := &SequenceGenerator{prefix: prefix}
	g.next.Store(start)
	return g
}

// NewID implements domain.IDGenerator.
func (g *SequenceGenerator) NewID(domain.EntityType) string {
	n := g.next.Add(1) - 1
	return fmt.Sprintf("%s%d", g.prefix, n)
}

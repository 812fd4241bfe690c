package core

import (
	"sync"
	"testing"

	"github.com/google/uuid"

	"postgraph/pkg/domain"
)

func TestUUIDGeneratorIssuesVersion4(t *testing.T) {
	id := UUIDGenerator{}.NewID(domain.EntityUser)
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("parse %q: %v", id, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected v4 uuid, got v%d", parsed.Version())
	}
	if (UUIDGenerator{}).NewID(domain.EntityUser) == id {
		t.Fatalf("expected distinct ids")
	}
}

func TestSequenceGeneratorIsDeterministicAndConcurrencySafe(t *testing.T) {
	gen := NewSequenceGenerator("id-", 7)
	if got := gen.NewID(domain.EntityPost); got != "id-7" {
		t.Fatalf("expected id-7, got %s", got)
	}
	seen := sync.Map{}
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.NewID(domain.EntityComment)
			if _, dup := seen.LoadOrStore(id, true); dup {
				t.Errorf("duplicate id %s", id)
			}
		}()
	}
	wg.Wait()
}

package core

import (
	"context"
	"testing"

	"postgraph/pkg/domain"
)

func TestReferentialIntegrityRuleReportsDanglingReferences(t *testing.T) {
	store := NewMemoryStore(nil, nil)
	store.ImportState(SnapshotOf(
		[]User{{ID: "1"}},
		[]Post{{ID: "10", Author: "1"}, {ID: "11", Author: "2"}},
		[]Comment{{ID: "101", Author: "1", Post: "10"}, {ID: "102", Author: "9", Post: "99"}},
	))
	rule := NewReferentialIntegrityRule()
	if rule.Name() != "referential_integrity" {
		t.Fatalf("unexpected rule name %s", rule.Name())
	}
	var res domain.Result
	err := store.View(context.Background(), func(view TransactionView) error {
		var err error
		res, err = rule.Evaluate(context.Background(), view, []domain.Change{{Entity: EntityUser, Action: ActionCreate}})
		return err
	})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if len(res.Violations) != 3 {
		t.Fatalf("expected three violations, got %+v", res.Violations)
	}
	if res.HasBlocking() {
		t.Fatalf("dangling references must only warn")
	}
	want := []string{"11", "102", "102"}
	for i, v := range res.Violations {
		if v.EntityID != want[i] {
			t.Fatalf("violation %d: want %s got %+v", i, want[i], v)
		}
	}
}

func TestReferentialIntegrityRuleSkipsEmptyChangeSets(t *testing.T) {
	rule := NewReferentialIntegrityRule()
	res, err := rule.Evaluate(context.Background(), nil, nil)
	if err != nil || len(res.Violations) != 0 {
		t.Fatalf("expected no evaluation without changes, got %+v %v", res, err)
	}
}

func TestDefaultRulesEngineRegistersIntegrityRule(t *testing.T) {
	rules := NewDefaultRulesEngine().Rules()
	if len(rules) != 1 || rules[0].Name() != "referential_integrity" {
		t.Fatalf("unexpected default rules %+v", rules)
	}
}

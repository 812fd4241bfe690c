package core

import (
	"context"
	"fmt"

	"postgraph/pkg/domain"
)

// NewReferentialIntegrityRule audits committed state for references that no
// longer resolve. References are only guaranteed at creation time, so
// findings are warnings and never block a commit.
func NewReferentialIntegrityRule() domain.Rule {
	return referentialIntegrityRule{}
}

type referentialIntegrityRule struct{}

func (referentialIntegrityRule) Name() string { return "referential_integrity" }

func (referentialIntegrityRule) Evaluate(_ context.Context, view domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	if len(changes) == 0 {
		return res, nil
	}

	users := make(map[string]struct{})
	for _, u := range view.ListUsers() {
		users[u.ID] = struct{}{}
	}
	posts := make(map[string]struct{})
	for _, p := range view.ListPosts() {
		posts[p.ID] = struct{}{}
		if _, ok := users[p.Author]; !ok {
			res.Violations = append(res.Violations, referentialViolation(domain.EntityPost, p.ID,
				fmt.Sprintf("post %s references missing author %s", p.ID, p.Author)))
		}
	}
	for _, c := range view.ListComments() {
		if _, ok := users[c.Author]; !ok {
			res.Violations = append(res.Violations, referentialViolation(domain.EntityComment, c.ID,
				fmt.Sprintf("comment %s references missing author %s", c.ID, c.Author)))
		}
		if _, ok := posts[c.Post]; !ok {
			res.Violations = append(res.Violations, referentialViolation(domain.EntityComment, c.ID,
				fmt.Sprintf("comment %s references missing post %s", c.ID, c.Post)))
		}
	}
	return res, nil
}

func referentialViolation(entity domain.EntityType, id, message string) domain.Violation {
	return domain.Violation{
		Rule:     "referential_integrity",
		Severity: domain.SeverityWarn,
		Message:  message,
		Entity:   entity,
		EntityID: id,
	}
}

package core

import "postgraph/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	User               = domain.User
	Post               = domain.Post
	Comment            = domain.Comment
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RuleViolationError = domain.RuleViolationError
	ErrNotFound        = domain.ErrNotFound
	ErrDuplicateEmail  = domain.ErrDuplicateEmail
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
	RulesEngine        = domain.RulesEngine
	Rule               = domain.Rule
)

const (
	EntityUser    = domain.EntityUser
	EntityPost    = domain.EntityPost
	EntityComment = domain.EntityComment
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionDelete = domain.ActionDelete
)

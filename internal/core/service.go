package core

import (
	"context"
	"errors"
	"time"

	"postgraph/pkg/domain"
)

// Operation names reported to loggers, metrics recorders and tracers.
const (
	OpListUsers     = "list_users"
	OpListPosts     = "list_posts"
	OpListComments  = "list_comments"
	OpCreateUser    = "create_user"
	OpDeleteUser    = "delete_user"
	OpCreatePost    = "create_post"
	OpCreateComment = "create_comment"
	OpResolve       = "resolve"
)

// Service is the entry point used by dispatchers. It composes the query and
// mutation engines over one store and wraps every operation with logging,
// metrics and tracing.
type Service struct {
	store     PersistentStore
	queries   *QueryEngine
	mutations *MutationEngine
	clock     Clock
	now       func() time.Time
	logger    Logger
	metrics   MetricsRecorder
	tracer    Tracer
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	svc := &Service{
		store:     store,
		queries:   NewQueryEngine(store),
		mutations: NewMutationEngine(store),
		logger:    noopLogger{},
		metrics:   noopMetricsRecorder{},
		tracer:    noopTracer{},
	}
	svc.clock = ClockFunc(func() time.Time { return time.Now().UTC() })
	svc.now = svc.clock.Now
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// NewInMemoryService creates a service over a fresh in-memory store using the
// given rules engine and the default id generator.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(NewMemoryStore(engine, nil), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// run executes fn as the named operation, reporting its outcome.
func (s *Service) run(ctx context.Context, op string, fn func(context.Context) (Result, error)) (Result, error) {
	ctx, span := s.tracer.Start(ctx, op)
	started := s.now()
	s.logger.Debug("operation started", "operation", op)

	res, err := fn(ctx)

	elapsed := s.now().Sub(started)
	s.metrics.Observe(ctx, op, err == nil, elapsed)
	span.End(err)

	for _, v := range res.Violations {
		s.logger.Warn("rule violation", "operation", op, "rule", v.Rule, "severity", string(v.Severity), "entity", string(v.Entity), "id", v.EntityID, "message", v.Message)
	}
	switch {
	case err == nil:
		s.logger.Info("operation completed", "operation", op, "duration", elapsed)
	case IsRefusal(err):
		s.logger.Warn("operation refused", "operation", op, "error", err.Error())
	default:
		s.logger.Error("operation failed", "operation", op, "error", err.Error())
	}
	return res, err
}

// IsRefusal reports whether err is a precondition failure caused by the
// caller (unknown id, taken email) rather than an internal fault.
func IsRefusal(err error) bool {
	return errors.Is(err, domain.ErrMissing) || errors.Is(err, domain.ErrDuplicate)
}

// ListUsers returns every user in store order.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	_, err := s.run(ctx, OpListUsers, func(ctx context.Context) (Result, error) {
		var err error
		users, err = s.queries.ListUsers(ctx)
		return Result{}, err
	})
	return users, err
}

// ListPosts returns posts matching query in title or body, or all posts when
// query is empty.
func (s *Service) ListPosts(ctx context.Context, query string) ([]Post, error) {
	var posts []Post
	_, err := s.run(ctx, OpListPosts, func(ctx context.Context) (Result, error) {
		var err error
		posts, err = s.queries.ListPosts(ctx, query)
		return Result{}, err
	})
	return posts, err
}

// ListComments returns every comment in store order.
func (s *Service) ListComments(ctx context.Context) ([]Comment, error) {
	var comments []Comment
	_, err := s.run(ctx, OpListComments, func(ctx context.Context) (Result, error) {
		var err error
		comments, err = s.queries.ListComments(ctx)
		return Result{}, err
	})
	return comments, err
}

// CreateUser persists a new user with a unique email.
func (s *Service) CreateUser(ctx context.Context, in UserInput) (User, Result, error) {
	var created User
	res, err := s.run(ctx, OpCreateUser, func(ctx context.Context) (Result, error) {
		var (
			res Result
			err error
		)
		created, res, err = s.mutations.CreateUser(ctx, in)
		return res, err
	})
	return created, res, err
}

// DeleteUser removes a user together with the user's posts, the comments on
// those posts and the user's own comments. It returns the removed user.
func (s *Service) DeleteUser(ctx context.Context, id string) (User, Result, error) {
	cascade, res, err := s.DeleteUserCascade(ctx, id)
	return cascade.User, res, err
}

// DeleteUserCascade is DeleteUser reporting every removed entity.
func (s *Service) DeleteUserCascade(ctx context.Context, id string) (Cascade, Result, error) {
	var cascade Cascade
	res, err := s.run(ctx, OpDeleteUser, func(ctx context.Context) (Result, error) {
		var (
			res Result
			err error
		)
		cascade, res, err = s.mutations.DeleteUser(ctx, id)
		if err == nil {
			s.logger.Info("user deleted", "id", id, "posts_removed", len(cascade.Posts), "comments_removed", len(cascade.Comments))
		}
		return res, err
	})
	return cascade, res, err
}

// CreatePost persists a post by an existing author.
func (s *Service) CreatePost(ctx context.Context, in PostInput) (Post, Result, error) {
	var created Post
	res, err := s.run(ctx, OpCreatePost, func(ctx context.Context) (Result, error) {
		var (
			res Result
			err error
		)
		created, res, err = s.mutations.CreatePost(ctx, in)
		return res, err
	})
	return created, res, err
}

// CreateComment persists a comment by an existing author on a published post.
func (s *Service) CreateComment(ctx context.Context, in CommentInput) (Comment, Result, error) {
	var created Comment
	res, err := s.run(ctx, OpCreateComment, func(ctx context.Context) (Result, error) {
		var (
			res Result
			err error
		)
		created, res, err = s.mutations.CreateComment(ctx, in)
		return res, err
	})
	return created, res, err
}

// Resolve runs fn with a resolver bound to a consistent read view. Mutations
// wait until fn returns, so an object graph assembled inside fn never
// observes a half-applied cascade.
func (s *Service) Resolve(ctx context.Context, fn func(*Resolver) error) error {
	_, err := s.run(ctx, OpResolve, func(ctx context.Context) (Result, error) {
		return Result{}, s.store.View(ctx, func(view TransactionView) error {
			return fn(NewResolver(view))
		})
	})
	return err
}

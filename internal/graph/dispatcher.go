package graph

import (
	"context"
	"fmt"
	"sort"

	jsoniter "github.com/json-iterator/go"

	"postgraph/internal/core"
)

// Request names an operation, its arguments and the fields to return.
type Request struct {
	Operation string `json:"operation"`
	Args      Args   `json:"args,omitempty"`
	Selection string `json:"select,omitempty"`
}

type operation struct {
	root TypeName
	args []string
	run  func(ctx context.Context, svc *core.Service, args Args) (any, error)
}

var operations = map[string]operation{
	"users": {
		root: TypeUser,
		run: func(ctx context.Context, svc *core.Service, _ Args) (any, error) {
			return svc.ListUsers(ctx)
		},
	},
	"posts": {
		root: TypePost,
		args: []string{"query"},
		run: func(ctx context.Context, svc *core.Service, args Args) (any, error) {
			query, err := args.OptionalString("query")
			if err != nil {
				return nil, err
			}
			return svc.ListPosts(ctx, query)
		},
	},
	"comments": {
		root: TypeComment,
		run: func(ctx context.Context, svc *core.Service, _ Args) (any, error) {
			return svc.ListComments(ctx)
		},
	},
	"createUser": {
		root: TypeUser,
		args: []string{"name", "email", "age"},
		run: func(ctx context.Context, svc *core.Service, args Args) (any, error) {
			var (
				in  core.UserInput
				err error
			)
			if in.Name, err = args.String("name"); err != nil {
				return nil, err
			}
			if in.Email, err = args.String("email"); err != nil {
				return nil, err
			}
			if in.Age, err = args.OptionalInt("age"); err != nil {
				return nil, err
			}
			user, _, err := svc.CreateUser(ctx, in)
			return user, err
		},
	},
	"deleteUser": {
		root: TypeUser,
		args: []string{"id"},
		run: func(ctx context.Context, svc *core.Service, args Args) (any, error) {
			id, err := args.String("id")
			if err != nil {
				return nil, err
			}
			user, _, err := svc.DeleteUser(ctx, id)
			return user, err
		},
	},
	"createPost": {
		root: TypePost,
		args: []string{"title", "body", "published", "author"},
		run: func(ctx context.Context, svc *core.Service, args Args) (any, error) {
			var (
				in  core.PostInput
				err error
			)
			if in.Title, err = args.String("title"); err != nil {
				return nil, err
			}
			if in.Body, err = args.String("body"); err != nil {
				return nil, err
			}
			if in.Published, err = args.Bool("published"); err != nil {
				return nil, err
			}
			if in.Author, err = args.String("author"); err != nil {
				return nil, err
			}
			post, _, err := svc.CreatePost(ctx, in)
			return post, err
		},
	},
	"createComment": {
		root: TypeComment,
		args: []string{"text", "author", "post"},
		run: func(ctx context.Context, svc *core.Service, args Args) (any, error) {
			var (
				in  core.CommentInput
				err error
			)
			if in.Text, err = args.String("text"); err != nil {
				return nil, err
			}
			if in.Author, err = args.String("author"); err != nil {
				return nil, err
			}
			if in.Post, err = args.String("post"); err != nil {
				return nil, err
			}
			comment, _, err := svc.CreateComment(ctx, in)
			return comment, err
		},
	},
}

// Operations lists the operation names a dispatcher accepts.
func Operations() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatcher maps requests onto a core service and renders the results.
type Dispatcher struct {
	svc    *core.Service
	logger core.Logger
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithLogger reports rejected requests to logger.
func WithLogger(logger core.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDispatcher returns a dispatcher over svc.
func NewDispatcher(svc *core.Service, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{svc: svc, logger: nopLogger{}}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch parses the request's selection and executes it.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	sel, err := ParseSelection(req.Selection)
	if err != nil {
		return d.reject(req.Operation, err)
	}
	return d.Execute(ctx, req.Operation, req.Args, sel)
}

// Execute runs the named operation and encodes its result under sel. The
// request is validated before the operation runs, so a malformed selection
// never leaves a mutation applied without a response.
func (d *Dispatcher) Execute(ctx context.Context, name string, args Args, sel Selection) Response {
	op, ok := operations[name]
	if !ok {
		return d.reject(name, BadRequestError{Reason: fmt.Sprintf("unknown operation %q", name)})
	}
	if err := args.check(op.args); err != nil {
		return d.reject(name, err)
	}
	resolved, err := sel.resolve(op.root)
	if err != nil {
		return d.reject(name, err)
	}

	value, err := op.run(ctx, d.svc, args)
	if err != nil {
		return Response{Operation: name, Errors: []Error{presentError(err, nil)}}
	}

	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	enc := &nodeEncoder{stream: stream}
	err = d.svc.Resolve(ctx, func(refs *core.Resolver) error {
		enc.refs = refs
		enc.value(value, resolved, []any{name})
		return stream.Error
	})
	if err != nil {
		return Response{Operation: name, Errors: []Error{presentError(fmt.Errorf("encode %s: %w", name, err), nil)}}
	}
	data := append([]byte(nil), stream.Buffer()...)
	return Response{Operation: name, Data: data, Errors: enc.errors}
}

func (d *Dispatcher) reject(name string, err error) Response {
	d.logger.Warn("request rejected", "operation", name, "error", err.Error())
	return Response{Operation: name, Errors: []Error{presentError(err, nil)}}
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

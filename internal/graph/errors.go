package graph

import (
	"errors"
	"fmt"

	"postgraph/pkg/domain"
)

// ErrBadRequest matches every BadRequestError via errors.Is.
var ErrBadRequest = errors.New("bad request")

// BadRequestError reports a request the dispatcher could not map onto an
// operation: unknown operation, malformed arguments or an invalid selection.
type BadRequestError struct {
	Reason string
}

func (e BadRequestError) Error() string {
	return fmt.Sprintf("bad request: %s", e.Reason)
}

// Is reports whether target is ErrBadRequest.
func (e BadRequestError) Is(target error) bool {
	return target == ErrBadRequest
}

// Error codes carried in the "code" extension of a response error.
const (
	CodeDuplicateEmail = "DUPLICATE_EMAIL"
	CodeNotFound       = "NOT_FOUND"
	CodeBadRequest     = "BAD_REQUEST"
	CodeInternal       = "INTERNAL"
)

// Error is one entry of a response's "errors" list.
type Error struct {
	Message    string
	Path       []any
	Extensions map[string]string
}

// Code returns the error's classification code.
func (e Error) Code() string {
	return e.Extensions["code"]
}

// presentError classifies err for the response. Path is nil for errors that
// failed the whole operation.
func presentError(err error, path []any) Error {
	var (
		notFound  domain.ErrNotFound
		duplicate domain.ErrDuplicateEmail
		bad       BadRequestError
	)
	out := Error{Message: err.Error(), Path: path}
	switch {
	case errors.As(err, &notFound):
		out.Extensions = map[string]string{
			"code":   CodeNotFound,
			"entity": string(notFound.Entity),
			"id":     notFound.ID,
		}
		if notFound.Ref != domain.RefDirect {
			out.Extensions["ref"] = string(notFound.Ref)
		}
	case errors.As(err, &duplicate):
		out.Extensions = map[string]string{
			"code":  CodeDuplicateEmail,
			"email": duplicate.Email,
		}
	case errors.As(err, &bad):
		out.Extensions = map[string]string{"code": CodeBadRequest}
	default:
		out.Extensions = map[string]string{"code": CodeInternal}
	}
	return out
}

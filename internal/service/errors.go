package service

import (
	"errors"
	"fmt"
)

// Sentinel errors classify service failures. Handlers map each class
// to an HTTP status: ErrInvalidID and ErrBadRequest to 400, ErrNotFound
// to 404, ErrConflict to 409, ErrInvalidCredentials to 401,
// ErrForbidden to 403, ErrInvalidState to 422.
var (
	ErrInvalidID          = errors.New("invalid id")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrBadRequest         = errors.New("bad request")
	ErrInvalidState       = errors.New("invalid state")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// Error carries a sentinel class together with a resource-specific
// message. errors.Is matches the class.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// NotFoundError reports a missing resource by name.
func NotFoundError(resource string) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

// ConflictError reports a uniqueness violation on a field.
func ConflictError(resource, field string) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf("%s with this %s already exists", resource, field)}
}

// InvalidIDError reports a malformed ObjectID parameter.
func InvalidIDError(resource string) error {
	return &Error{Kind: ErrInvalidID, Message: fmt.Sprintf("invalid %s id", resource)}
}

// InvalidStateError reports an operation rejected by the resource's
// current state.
func InvalidStateError(message string) error {
	return &Error{Kind: ErrInvalidState, Message: message}
}

// BadRequestError reports a semantically invalid request body.
func BadRequestError(message string) error {
	return &Error{Kind: ErrBadRequest, Message: message}
}

// ForbiddenError reports an operation on a resource the caller does
// not own.
func ForbiddenError(message string) error {
	return &Error{Kind: ErrForbidden, Message: message}
}

// Package apperr holds the failure taxonomy shared by services and repositories.
// Every failure returned to the HTTP layer carries one of the kind sentinels so the
// adapter can map it without inspecting messages.
package apperr

import (
	"errors"
	"fmt"
)

// Failure kinds, checked with errors.Is().
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrInternal     = errors.New("internal error")
)

// Error is a tagged failure with operation context.
type Error struct {
	Op      string // e.g. "reviews.Add"
	Kind    error  // one of the kind sentinels
	Message string // safe to show to clients
	Err     error  // underlying cause, optional
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is matches the kind first, then the wrapped cause.
func (e *Error) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

func New(op string, kind error, message string) *Error {
	return &Error{Op: op, Kind: kind, Message: message}
}

func Wrap(op string, kind error, message string, err error) *Error {
	return &Error{Op: op, Kind: kind, Message: message, Err: err}
}

// Internal wraps an unexpected persistence or runtime failure.
func Internal(op string, err error) *Error {
	return Wrap(op, ErrInternal, "internal error", err)
}

func NotFound(op, message string) *Error   { return New(op, ErrNotFound, message) }
func Forbidden(op, message string) *Error  { return New(op, ErrForbidden, message) }
func Validation(op, message string) *Error { return New(op, ErrValidation, message) }
func Conflict(op, message string) *Error   { return New(op, ErrConflict, message) }

// KindOf returns the kind of the outermost tagged failure, or ErrInternal for
// anything untagged.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind != nil {
		return e.Kind
	}
	return ErrInternal
}

// MessageOf returns the client-facing message of the outermost tagged failure.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "internal error"
}

func IsNotFound(err error) bool  { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool  { return errors.Is(err, ErrConflict) }
func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

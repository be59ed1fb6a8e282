// Package apierr defines the typed error taxonomy shared by services,
// repositories, and controllers. All expected failures travel as *Error
// values so the HTTP layer can map them to status codes without string
// matching, and so internal details never leak to clients.
package apierr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	// KindValidation marks caller errors: malformed ids, missing fields,
	// unknown attribute/value references, ambiguous main attribute.
	KindValidation Kind = iota
	// KindNotFound marks operations targeting an id absent from the store.
	KindNotFound
	// KindConflict marks unique-constraint violations (duplicate slug).
	KindConflict
	// KindInternal marks everything else. The client sees a generic
	// message; the wrapped cause stays in the logs.
	KindInternal
)

// Error carries a client-safe message, an optional field→message map for
// validation failures, and the wrapped cause for diagnostics.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// Validation builds a caller-error with a single offending field.
func Validation(field, msg string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: map[string]string{field: msg}}
}

// ValidationFields builds a caller-error from a field→message map.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

// NotFound builds a not-found error for the named resource.
func NotFound(resource string) *Error {
	return &Error{Kind: KindNotFound, Message: resource + " not found"}
}

// Conflict builds a unique-constraint error.
func Conflict(msg string, cause error) *Error {
	return &Error{Kind: KindConflict, Message: msg, cause: cause}
}

// Internal wraps an unexpected failure. msg is safe to show to clients.
func Internal(msg string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: msg, cause: cause}
}

// As extracts an *Error from err, or wraps err as internal if it is not one.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("internal error", err)
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// internal/pkg/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure so the HTTP boundary can map it to a status
// without inspecting message text.
type Kind int

const (
	// KindUnexpected covers store failures and anything unclassified.
	KindUnexpected Kind = iota
	// KindNotFound means a requested entity id/slug is absent.
	KindNotFound
	// KindValidation means malformed input against a schema.
	KindValidation
	// KindBusinessRule means the input was well-formed but violates a
	// business invariant (e.g. decreasing stock below zero).
	KindBusinessRule
)

// Error is the single error type produced by the domain services.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound creates a not-found error carrying the entity context.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation failure with field-level detail in the message.
func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// BusinessRule creates a business-rule violation naming the offending values.
func BusinessRule(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBusinessRule, Message: fmt.Sprintf(format, args...)}
}

// Unexpected wraps a lower-level failure (store unavailable, codec error).
func Unexpected(err error, format string, args ...interface{}) *Error {
	return &Error{Kind: KindUnexpected, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the kind from any error in the chain. Unclassified
// errors are treated as unexpected.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// HTTPStatus maps a failure kind to a response status.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindBusinessRule:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// SafeMessage returns the message to surface to clients. Unexpected
// failures are reported generically outside development so store detail
// never leaks.
func SafeMessage(err error, development bool) string {
	if KindOf(err) == KindUnexpected && !development {
		return "internal server error"
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

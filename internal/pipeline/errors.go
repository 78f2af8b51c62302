package pipeline

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies pipeline failures.
type Kind int

const (
	// KindInvalidInput marks a malformed or missing required event field.
	KindInvalidInput Kind = iota + 1
	// KindNotFound marks a referenced entity that does not resolve, or a
	// referential constraint failure.
	KindNotFound
	// KindIncompleteTemplate marks a violated template-data invariant.
	// This is an internal data problem, not a caller problem.
	KindIncompleteTemplate
)

// Error is a typed pipeline failure with an HTTP-style status code class.
// Validation and not-found failures are 400-class; template invariant
// failures are 500-class.
type Error struct {
	Kind    Kind
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewInvalidInput builds a 400-class invalid input error.
func NewInvalidInput(message string) *Error {
	return &Error{Kind: KindInvalidInput, Code: http.StatusBadRequest, Message: message}
}

// NewNotFound builds a 400-class entity-not-found error.
func NewNotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: http.StatusBadRequest, Message: message}
}

// NewIncompleteTemplate builds a 500-class error for an empty template field.
func NewIncompleteTemplate(field string) *Error {
	return &Error{
		Kind:    KindIncompleteTemplate,
		Code:    http.StatusInternalServerError,
		Message: fmt.Sprintf("Template Data (%s) is empty!", field),
	}
}

// IsCallerError reports whether err is a 400-class pipeline error.
func IsCallerError(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Code == http.StatusBadRequest
}

// KindOf returns the pipeline error kind, or 0 for other errors.
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return 0
}

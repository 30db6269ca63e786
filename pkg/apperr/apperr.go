// Package apperr defines the error taxonomy shared by all HTTP handlers.
// Every failure that crosses the route boundary is one of these kinds; the
// gin layer converts it to a JSON body with the matching status code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Kind int

const (
	// Validation covers missing or malformed input.
	Validation Kind = iota
	// Upload covers object storage gateway failures.
	Upload
	// Conflict covers duplicate-key violations.
	Conflict
	// NotFound covers lookups and updates that matched nothing.
	NotFound
	// Internal covers everything else.
	Internal
)

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

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case Validation, Conflict:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as the JSON error body. The client-facing message for
// unclassified errors is a generic one; the underlying detail is attached
// only when exposeDetail is set (non-production configuration).
func Respond(c *gin.Context, err error, exposeDetail bool) {
	status := HTTPStatus(err)

	message := "Internal server error"
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != Internal {
		message = appErr.Message
	}

	body := gin.H{"error": message}
	if exposeDetail {
		body["details"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

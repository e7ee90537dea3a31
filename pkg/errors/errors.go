package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

// Code classifies an error for transport mapping. Controllers never pick
// HTTP statuses themselves; they wrap errors with a Code and the response
// writer consults MetadataFor.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeNotFound     Code = "NOT_FOUND"
	CodeRateLimit    Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
	CodeDependency   Code = "DEPENDENCY_ERROR"
)

// Metadata describes how a Code surfaces over HTTP. PublicMessage is the
// fallback body text; DetailsAllowed gates whether structured details
// (e.g. field validation errors) may leave the server.
type Metadata struct {
	HTTPStatus     int
	Retryable      bool
	PublicMessage  string
	DetailsAllowed bool
}

// MetadataFor returns transport metadata for code. Unknown codes map to
// CodeInternal so a missed case never leaks a raw error.
func MetadataFor(code Code) Metadata {
	switch code {
	case CodeValidation:
		return Metadata{HTTPStatus: http.StatusBadRequest, PublicMessage: "validation failed", DetailsAllowed: true}
	case CodeUnauthorized:
		return Metadata{HTTPStatus: http.StatusUnauthorized, PublicMessage: "authentication required"}
	case CodeForbidden:
		return Metadata{HTTPStatus: http.StatusForbidden, PublicMessage: "access denied"}
	case CodeNotFound:
		return Metadata{HTTPStatus: http.StatusNotFound, PublicMessage: "resource not found"}
	case CodeRateLimit:
		return Metadata{HTTPStatus: http.StatusTooManyRequests, PublicMessage: "rate limit exceeded"}
	case CodeDependency:
		return Metadata{HTTPStatus: http.StatusServiceUnavailable, Retryable: true, PublicMessage: "dependency unavailable", DetailsAllowed: true}
	default:
		return Metadata{HTTPStatus: http.StatusInternalServerError, Retryable: true, PublicMessage: "internal server error"}
	}
}

// Error is the one error type services hand back to the HTTP layer.
type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

// Wrap attaches a code and public-facing message to an underlying cause.
// The cause stays reachable through Unwrap for logging, never for clients.
func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// As extracts a typed *Error from anywhere in err's chain, or nil.
func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

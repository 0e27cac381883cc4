package scout

import (
	"errors"
	"fmt"
)

// ErrorCategory classifies provider failures by how a caller should react.
type ErrorCategory string

const (
	// ErrorTransient covers rate limits, overload and network trouble.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent covers bad credentials, missing models and similar.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput means the request itself was rejected as malformed.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that knows its category and HTTP status.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int
}

// Error is a categorized error returned by the provider adapters.
type Error struct {
	Msg   string
	Cat   ErrorCategory
	Code  int // HTTP status code, 0 if not applicable
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// Transient reports whether the failure is likely to clear up on its own.
// The agent loop never retries; this is for callers that want to.
func (e *Error) Transient() bool {
	return e.Cat == ErrorTransient
}

// NewTransientError creates a transient error.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewPermanentError creates a permanent error.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError creates an error indicating a rejected request.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// CategoryOf returns the category of the first categorized error in the
// chain, or the empty category when there is none.
func CategoryOf(err error) ErrorCategory {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category()
	}
	return ""
}

// IsTransient returns true if the error is categorized as transient.
func IsTransient(err error) bool {
	return CategoryOf(err) == ErrorTransient
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	return CategoryOf(err) == ErrorPermanent
}

// IsUserInput returns true if the error is categorized as user input error.
func IsUserInput(err error) bool {
	return CategoryOf(err) == ErrorUserInput
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// CategorizeStatusCode maps an HTTP status code to an error category.
// Provider adapters share this so that all three SDKs classify alike.
func CategorizeStatusCode(code int) ErrorCategory {
	switch {
	case code == 429:
		return ErrorTransient // rate limited
	case code >= 500 && code < 600:
		return ErrorTransient
	case code == 401 || code == 403:
		return ErrorPermanent
	case code == 400 || code == 404 || code == 422:
		return ErrorUserInput
	default:
		return ErrorPermanent
	}
}

// NewStatusError builds a categorized error from an HTTP status code.
func NewStatusError(msg string, code int, cause error) *Error {
	return &Error{Msg: msg, Cat: CategorizeStatusCode(code), Code: code, Cause: cause}
}

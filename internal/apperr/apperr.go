// Package apperr defines the coded errors that cross the HTTP boundary.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error class.
type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"    // 400
	CodeInvalidInput  Code = "INVALID_INPUT"       // 400
	CodeTranscription Code = "TRANSCRIPTION_ERROR" // 400
	CodeNotFound      Code = "NOT_FOUND"           // 404
	CodeRateLimited   Code = "RATE_LIMITED"        // 429
	CodeUnavailable   Code = "UNAVAILABLE"         // 503
	CodeUpstream      Code = "UPSTREAM_ERROR"      // 500
	CodeStorage       Code = "STORAGE_ERROR"       // 500
	CodeInternal      Code = "INTERNAL"            // 500
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a structured error with a code, HTTP status and optional details.
type Error struct {
	Code    Code
	Status  int
	Message string
	Details any
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Validation creates a 400 error carrying per-field problems.
func Validation(fields []FieldError) *Error {
	return &Error{
		Code:    CodeValidation,
		Status:  http.StatusBadRequest,
		Message: "Validation Error",
		Details: fields,
	}
}

// InvalidInput creates a 400 error for malformed request parameters.
func InvalidInput(msg string) *Error {
	return &Error{
		Code:    CodeInvalidInput,
		Status:  http.StatusBadRequest,
		Message: msg,
	}
}

// NotFound creates a 404 error for a missing entity.
func NotFound(what, id string) *Error {
	return &Error{
		Code:    CodeNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s not found", what),
		Details: map[string]any{"id": id},
	}
}

// RateLimited creates a 429 error for callers over their request budget.
func RateLimited(msg string) *Error {
	return &Error{
		Code:    CodeRateLimited,
		Status:  http.StatusTooManyRequests,
		Message: msg,
	}
}

// Unavailable creates a 503 error for a feature this deployment has not
// been configured for.
func Unavailable(msg string) *Error {
	return &Error{
		Code:    CodeUnavailable,
		Status:  http.StatusServiceUnavailable,
		Message: msg,
	}
}

// Transcription creates a 400 error for an upstream transcription failure.
// It is reported to the caller and not retried.
func Transcription(err error) *Error {
	return &Error{
		Code:    CodeTranscription,
		Status:  http.StatusBadRequest,
		Message: "Could not transcribe video audio. Please try again.",
		Err:     err,
	}
}

// Upstream creates a 500 error for a failing metadata or language-model provider.
func Upstream(provider string, err error) *Error {
	return &Error{
		Code:    CodeUpstream,
		Status:  http.StatusInternalServerError,
		Message: provider + " request failed",
		Err:     err,
	}
}

// Storage creates a 500 error wrapping a persistence failure. The driver's
// error code is kept in Details when the driver exposes one.
func Storage(op string, err error) *Error {
	e := &Error{
		Code:    CodeStorage,
		Status:  http.StatusInternalServerError,
		Message: "Database error: failed to " + op,
		Err:     err,
	}
	if code := driverCode(err); code != "" {
		e.Details = map[string]any{"dbCode": code}
	}
	return e
}

// Internal creates a 500 error for anything unexpected. The cause stays in
// Err for logging and never reaches the response body.
func Internal(err error) *Error {
	return &Error{
		Code:    CodeInternal,
		Status:  http.StatusInternalServerError,
		Message: "internal error",
		Err:     err,
	}
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// From returns the *Error in err's chain, or wraps err as Internal.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// driverCode extracts a vendor error code: SQLSTATE from pgconn errors,
// the numeric result code from modernc sqlite errors.
func driverCode(err error) string {
	var pg interface{ SQLState() string }
	if errors.As(err, &pg) {
		return pg.SQLState()
	}
	var lite interface{ Code() int }
	if errors.As(err, &lite) {
		return fmt.Sprintf("SQLITE_%d", lite.Code())
	}
	return ""
}

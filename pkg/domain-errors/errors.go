// Package domainerrors defines the coded error type shared by services and
// handlers. Stores return pkg/platform/sentinel errors; services translate
// them into coded errors here; httputil maps codes onto HTTP statuses.
package domainerrors

import "errors"

// Code is a machine-readable error kind.
type Code string

const (
	// CodeValidation marks missing or malformed input fields. The client
	// must fix the request and retry.
	CodeValidation Code = "validation_error"
	// CodeBadRequest marks an unreadable or structurally invalid request.
	CodeBadRequest Code = "bad_request"
	// CodeUnauthorized marks missing or invalid authentication.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden marks an authorization failure. Not retryable without a
	// role change.
	CodeForbidden Code = "forbidden"
	// CodeNotFound marks an absent referenced entity.
	CodeNotFound Code = "not_found"
	// CodeConfigurationMissing marks a sector/type pair with no requirement
	// catalog entry. Blocking, never silently passed.
	CodeConfigurationMissing Code = "configuration_missing"
	// CodeIncompleteSubmission marks a submission blocked on missing or
	// unverified documents. Recoverable: upload more documents and retry.
	CodeIncompleteSubmission Code = "incomplete_submission"
	// CodeInvalidState marks a transition not valid from the current status.
	CodeInvalidState Code = "invalid_state"
	// CodeConflict marks a concurrent-update loss.
	CodeConflict Code = "conflict"
	// CodeInternal marks infrastructure failure. Logged in full, surfaced
	// only as a generic message.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Details carries structured payload that is
// safe to return to callers (for example the missing/details lists of an
// incomplete submission).
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New constructs a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap constructs a coded error preserving the underlying cause for logs
// and errors.Is checks. The cause is never serialized to clients.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, cause: cause}
}

// WithDetails attaches a structured detail payload and returns the error.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// CodeOf extracts the code from an error chain, defaulting to CodeInternal
// so unclassified failures never leak detail.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether the error chain carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// DetailsOf extracts the structured details from an error chain, if any.
func DetailsOf(err error) map[string]any {
	var de *Error
	if errors.As(err, &de) {
		return de.Details
	}
	return nil
}

// Package httputil centralizes JSON encoding and domain-error translation so
// every handler returns the same envelope.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "udyam/pkg/domain-errors"
)

// statusByCode maps domain error codes onto HTTP statuses.
var statusByCode = map[dErrors.Code]int{
	dErrors.CodeValidation:           http.StatusBadRequest,
	dErrors.CodeBadRequest:           http.StatusBadRequest,
	dErrors.CodeIncompleteSubmission: http.StatusBadRequest,
	dErrors.CodeUnauthorized:         http.StatusUnauthorized,
	dErrors.CodeForbidden:            http.StatusForbidden,
	dErrors.CodeNotFound:             http.StatusNotFound,
	dErrors.CodeInvalidState:         http.StatusConflict,
	dErrors.CodeConflict:             http.StatusConflict,
	dErrors.CodeConfigurationMissing: http.StatusUnprocessableEntity,
	dErrors.CodeInternal:             http.StatusInternalServerError,
}

// ToHTTPStatus resolves the HTTP status for a domain error code.
func ToHTTPStatus(code dErrors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Internal errors never leak their description; the request ID response
// header set by middleware serves as the correlation identifier.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	body := map[string]any{"error": string(code)}
	if code != dErrors.CodeInternal {
		var de *dErrors.Error
		if errors.As(err, &de) {
			body["error_description"] = de.Message
		} else {
			body["error_description"] = err.Error()
		}
		if details := dErrors.DetailsOf(err); details != nil {
			body["details"] = details
		}
	}
	WriteJSON(w, ToHTTPStatus(code), body)
}

// Validatable is implemented by request payloads that validate and parse
// themselves after decoding.
type Validatable interface {
	Validate() error
}

// validatablePtr constrains PT to be *T implementing Validatable, letting
// callers name only the payload type.
type validatablePtr[T any] interface {
	Validatable
	*T
}

// DecodeAndPrepare decodes the JSON body into T and runs its validation,
// writing the error response itself when either step fails.
func DecodeAndPrepare[T any, PT validatablePtr[T]](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (PT, bool) {
	var payload T
	req := PT(&payload)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		if logger != nil {
			logger.WarnContext(ctx, "failed to decode request body",
				"request_id", requestID,
				"error", err,
			)
		}
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "request body must be valid JSON"))
		return nil, false
	}
	if err := req.Validate(); err != nil {
		WriteError(w, err)
		return nil, false
	}
	return req, true
}

// Package httputil holds the JSON response and request-decoding helpers
// shared by every handler.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	dErrors "civicdesk/pkg/domain-errors"
)

const maxBodyBytes = 1 << 20

// Validatable requests check and parse themselves after decoding.
type Validatable interface {
	Validate() error
}

// Normalizable requests trim and canonicalize fields before validation.
type Normalizable interface {
	Normalize()
}

type errorBody struct {
	Error       string              `json:"error"`
	Description string              `json:"error_description,omitempty"`
	Fields      dErrors.FieldErrors `json:"fields,omitempty"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into a status and error body. Internal errors
// never expose their message.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := dErrors.ToHTTPStatus(code)
	body := errorBody{Error: string(code)}
	if status != http.StatusInternalServerError {
		if de, ok := dErrors.As(err); ok {
			body.Description = de.Message
			body.Fields = de.Fields
		}
	}
	WriteJSON(w, status, body)
}

// DecodeAndPrepare decodes the JSON body into T, normalizes and validates it.
// On failure the error response is already written and ok is false.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			err = dErrors.New(dErrors.CodeBadRequest, "request body is required")
		} else {
			err = dErrors.New(dErrors.CodeBadRequest, "invalid JSON body")
		}
		logger.WarnContext(ctx, "failed to decode request", "request_id", requestID, "error", err)
		WriteError(w, err)
		return nil, false
	}
	if n, ok := any(&req).(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(&req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.WarnContext(ctx, "invalid request", "request_id", requestID, "error", err)
			WriteError(w, err)
			return nil, false
		}
	}
	return &req, true
}

// Package domainerrors defines the coded error type shared by services and
// transports. Services return *Error values; transports translate the Code
// into a status without inspecting messages.
//
// Stores never construct these directly. They return sentinel errors from
// pkg/platform/sentinel and the owning service translates them.
package domainerrors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// Code classifies a domain error.
type Code string

const (
	CodeValidation         Code = "validation"
	CodeInvalidChoice      Code = "invalid_choice"
	CodeInvalidStatus      Code = "invalid_status"
	CodeInvalidFormat      Code = "invalid_format"
	CodeRequired           Code = "required"
	CodeSchema             Code = "schema_invalid"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeNotFound           Code = "not_found"
	CodeConflict           Code = "conflict"
	CodeInvariantViolation Code = "invariant_violation"
	CodeInvalidTransition  Code = "invalid_transition"
	CodeTooManyRequests    Code = "too_many_requests"
	CodeReferenceExhausted Code = "reference_exhausted"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// IsValidation reports whether the code belongs to the validation family.
// Field-level codes (invalid_choice, invalid_status...) are subtypes of
// validation and surface to clients the same way.
func (c Code) IsValidation() bool {
	switch c {
	case CodeValidation, CodeInvalidChoice, CodeInvalidStatus, CodeInvalidFormat,
		CodeRequired, CodeSchema, CodeInvalidTransition:
		return true
	}
	return false
}

// FieldError describes a single rejected field.
type FieldError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// FieldErrors is keyed by field id.
type FieldErrors map[string]FieldError

// Add records an error for a field. The first error recorded for a field wins.
func (fe FieldErrors) Add(field string, code Code, message string) {
	if _, exists := fe[field]; exists {
		return
	}
	fe[field] = FieldError{Code: code, Message: message}
}

// Keys returns the field ids in sorted order.
func (fe FieldErrors) Keys() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Error is the domain error carried across service boundaries.
type Error struct {
	Code    Code
	Message string
	Fields  FieldErrors
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, k := range e.Fields.Keys() {
			parts = append(parts, k+": "+e.Fields[k].Message)
		}
		return e.Message + " (" + strings.Join(parts, "; ") + ")"
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New constructs a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying cause.
// A nil cause yields a plain coded error.
func Wrap(cause error, code Code, message string) error {
	return &Error{Code: code, Message: message, cause: cause}
}

// NewFieldErrors builds a field-keyed error. The top-level code is
// CodeValidation unless every field shares the same validation subtype.
func NewFieldErrors(message string, fields FieldErrors) error {
	code := CodeValidation
	var shared Code
	for _, fe := range fields {
		if shared == "" {
			shared = fe.Code
			continue
		}
		if shared != fe.Code {
			shared = CodeValidation
			break
		}
	}
	if shared.IsValidation() {
		code = shared
	}
	return &Error{Code: code, Message: message, Fields: fields}
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether err carries code. CodeValidation also matches any
// error of the validation family.
func HasCode(err error, code Code) bool {
	de, ok := As(err)
	if !ok {
		return false
	}
	if de.Code == code {
		return true
	}
	return code == CodeValidation && de.Code.IsValidation()
}

// Is is errors.Is re-exported so callers need a single import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// FieldErrorsOf returns the field errors attached to err, if any.
func FieldErrorsOf(err error) FieldErrors {
	de, ok := As(err)
	if !ok {
		return nil
	}
	return de.Fields
}

// CodeOf returns the code for err, or CodeInternal when err is not a domain error.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}

// ToHTTPStatus maps a code onto an HTTP status.
func ToHTTPStatus(code Code) int {
	switch {
	case code.IsValidation(), code == CodeBadRequest, code == CodeInvalidInput:
		return http.StatusBadRequest
	}
	switch code {
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvariantViolation:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

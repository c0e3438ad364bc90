package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFieldErrorsCode(t *testing.T) {
	t.Run("shared subtype surfaces as the top-level code", func(t *testing.T) {
		fields := FieldErrors{}
		fields.Add("topic", CodeInvalidChoice, "not an option")
		fields.Add("channel", CodeInvalidChoice, "not an option")

		err := NewFieldErrors("invalid response", fields)
		assert.Equal(t, CodeInvalidChoice, CodeOf(err))
		assert.True(t, HasCode(err, CodeValidation), "subtypes match the validation family")
	})

	t.Run("mixed subtypes fall back to validation", func(t *testing.T) {
		fields := FieldErrors{}
		fields.Add("topic", CodeInvalidChoice, "not an option")
		fields.Add("email", CodeRequired, "this field is required")

		err := NewFieldErrors("invalid response", fields)
		assert.Equal(t, CodeValidation, CodeOf(err))
		assert.Equal(t, []string{"email", "topic"}, FieldErrorsOf(err).Keys())
	})

	t.Run("first error per field wins", func(t *testing.T) {
		fields := FieldErrors{}
		fields.Add("age", CodeRequired, "this field is required")
		fields.Add("age", CodeInvalidFormat, "must be a number")
		assert.Equal(t, CodeRequired, fields["age"].Code)
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("pq: deadlock detected")
	err := fmt.Errorf("approve entity: %w", Wrap(cause, CodeInternal, "failed to update entity"))

	assert.True(t, Is(err, cause))
	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(err, CodeValidation))

	de, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "failed to update entity: pq: deadlock detected", de.Error())
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Nil(t, FieldErrorsOf(errors.New("boom")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:         http.StatusBadRequest,
		CodeInvalidChoice:      http.StatusBadRequest,
		CodeInvalidStatus:      http.StatusBadRequest,
		CodeSchema:             http.StatusBadRequest,
		CodeInvalidTransition:  http.StatusBadRequest,
		CodeBadRequest:         http.StatusBadRequest,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeForbidden:          http.StatusForbidden,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeTooManyRequests:    http.StatusTooManyRequests,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeReferenceExhausted: http.StatusInternalServerError,
		CodeInternal:           http.StatusInternalServerError,
	}
	for code, status := range cases {
		assert.Equal(t, status, ToHTTPStatus(code), "code %s", code)
	}
}

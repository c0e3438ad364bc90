package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "civicdesk/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant:
// "IDs must be valid, non-empty, non-nil UUIDs"

func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		id, err := ParseUserID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(validUUID), id)
	})
}

// TestTypeDistinction verifies distinct ID types stay distinct values.
func TestTypeDistinction(t *testing.T) {
	entityID := NewEntityID()
	feedbackID := NewFeedbackID()

	// var _ EntityID = feedbackID would not compile.
	assert.NotEqual(t, uuid.UUID(entityID), uuid.UUID(feedbackID))
}

// TestParseID_SecurityInvariants validates security-critical parsing rules.

func TestParseID_SecurityInvariants(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		// Attack vectors
		{"SQL injection attempt", "'; DROP TABLE users;--", true},
		{"Path traversal", "../../../etc/passwd", true},
		{"Null byte injection", "550e8400\x00-e29b-41d4-a716-446655440000", true},
		{"Oversized input", strings.Repeat("a", 1000), true},
		{"Unicode zero-width space", "550e8400\u200B-e29b-41d4-a716-446655440000", true},

		// Edge cases
		{"Empty string", "", true},
		{"Nil UUID", uuid.Nil.String(), true},
		{"Whitespace only", "   ", true},
		{"Uppercase valid UUID", "550E8400-E29B-41D4-A716-446655440000", false},
		// Note: uuid.Parse trims whitespace, so " uuid " is accepted as valid

		// Valid
		{"Valid UUID lowercase", "550e8400-e29b-41d4-a716-446655440000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestIDTextRoundTrip(t *testing.T) {
	original := NewFormID()
	text, err := original.MarshalText()
	require.NoError(t, err)

	var decoded FormID
	require.NoError(t, decoded.UnmarshalText(text))
	assert.Equal(t, original, decoded)
	assert.Equal(t, original.String(), string(text))
}

// TestAllIDTypes_ConsistentBehavior ensures all ID types have identical parsing behavior.

func TestAllIDTypes_ConsistentBehavior(t *testing.T) {
	validUUID := uuid.New().String()
	invalidInputs := []string{"", "invalid", uuid.Nil.String()}

	// All types should accept valid UUID
	t.Run("all accept valid UUID", func(t *testing.T) {
		_, errUser := ParseUserID(validUUID)
		_, errForm := ParseFormID(validUUID)
		_, errEntity := ParseEntityID(validUUID)
		_, errFeedback := ParseFeedbackID(validUUID)
		_, errSubmission := ParseSubmissionID(validUUID)

		require.NoError(t, errUser)
		require.NoError(t, errForm)
		require.NoError(t, errEntity)
		require.NoError(t, errFeedback)
		require.NoError(t, errSubmission)
	})

	// All types should reject invalid inputs identically
	for _, input := range invalidInputs {
		t.Run("all reject: "+input, func(t *testing.T) {
			_, errUser := ParseUserID(input)
			_, errForm := ParseFormID(input)
			_, errEntity := ParseEntityID(input)
			_, errFeedback := ParseFeedbackID(input)
			_, errSubmission := ParseSubmissionID(input)

			require.Error(t, errUser)
			require.Error(t, errForm)
			require.Error(t, errEntity)
			require.Error(t, errFeedback)
			require.Error(t, errSubmission)
		})
	}
}

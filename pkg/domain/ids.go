// Package domain holds identifiers and small value types shared by every
// module. IDs are distinct named types over uuid.UUID so a FormID can never be
// passed where an EntityID is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "civicdesk/pkg/domain-errors"
)

type (
	UserID       uuid.UUID
	FormID       uuid.UUID
	ResponseID   uuid.UUID
	EntityID     uuid.UUID
	FeedbackID   uuid.UUID
	SubmissionID uuid.UUID
)

func parseID[T ~[16]byte](s, kind string) (T, error) {
	var zero T
	if s == "" {
		return zero, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return zero, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return zero, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return T(u), nil
}

func ParseUserID(s string) (UserID, error)             { return parseID[UserID](s, "user id") }
func ParseFormID(s string) (FormID, error)             { return parseID[FormID](s, "form id") }
func ParseResponseID(s string) (ResponseID, error)     { return parseID[ResponseID](s, "response id") }
func ParseEntityID(s string) (EntityID, error)         { return parseID[EntityID](s, "entity id") }
func ParseFeedbackID(s string) (FeedbackID, error)     { return parseID[FeedbackID](s, "feedback id") }
func ParseSubmissionID(s string) (SubmissionID, error) { return parseID[SubmissionID](s, "submission id") }

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id FormID) String() string       { return uuid.UUID(id).String() }
func (id ResponseID) String() string   { return uuid.UUID(id).String() }
func (id EntityID) String() string     { return uuid.UUID(id).String() }
func (id FeedbackID) String() string   { return uuid.UUID(id).String() }
func (id SubmissionID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id FormID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id ResponseID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id EntityID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id FeedbackID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id SubmissionID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// JSON encodes IDs as their canonical string form.

func (id UserID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id FormID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id ResponseID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id EntityID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id FeedbackID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id SubmissionID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FormID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ResponseID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *EntityID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FeedbackID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SubmissionID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// New* helpers mint random identifiers.

func NewFormID() FormID             { return FormID(uuid.New()) }
func NewResponseID() ResponseID     { return ResponseID(uuid.New()) }
func NewEntityID() EntityID         { return EntityID(uuid.New()) }
func NewFeedbackID() FeedbackID     { return FeedbackID(uuid.New()) }
func NewSubmissionID() SubmissionID { return SubmissionID(uuid.New()) }

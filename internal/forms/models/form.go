package models

import (
	"strings"
	"time"

	"civicdesk/internal/forms/schema"
	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
)

// Category groups forms on the public listing.
type Category string

const (
	CategoryGeneral    Category = "general"
	CategoryFeedback   Category = "feedback"
	CategoryComplaints Category = "complaints"
	CategoryServices   Category = "services"
	CategoryEmployment Category = "employment"
	CategorySurveys    Category = "surveys"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryFeedback, CategoryComplaints,
		CategoryServices, CategoryEmployment, CategorySurveys:
		return true
	}
	return false
}

// Form is an owner-defined form whose field list is data.
type Form struct {
	ID          domain.FormID `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    Category      `json:"category"`
	Schema      schema.Schema `json:"fields"`
	IsPublic    bool          `json:"is_public"`
	IsActive    bool          `json:"is_active"`
	OwnerID     domain.UserID `json:"owner_id"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// NewForm builds a form and enforces its invariants.
func NewForm(id domain.FormID, owner domain.UserID, title, description string, category Category, sc schema.Schema, isPublic, isActive bool, now time.Time) (*Form, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "form title is required")
	}
	if !category.IsValid() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "unknown form category")
	}
	if owner.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "form owner is required")
	}
	return &Form{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(description),
		Category:    category,
		Schema:      sc,
		IsPublic:    isPublic,
		IsActive:    isActive,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// OwnedBy reports whether actor may mutate the form.
func (f *Form) OwnedBy(actor domain.Actor) bool {
	return actor.IsAuthenticated() && f.OwnerID == actor.ID
}

// IsOpen reports whether anonymous visitors may view and submit to the form.
func (f *Form) IsOpen() bool {
	return f.IsPublic && f.IsActive
}

// Duplicate copies the form for owner as an inactive draft.
func (f *Form) Duplicate(id domain.FormID, owner domain.UserID, now time.Time) *Form {
	return &Form{
		ID:          id,
		Title:       f.Title + " (copy)",
		Description: f.Description,
		Category:    f.Category,
		Schema:      f.Schema,
		IsPublic:    f.IsPublic,
		IsActive:    false,
		OwnerID:     owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// FormSummary is a form plus its response count, used by listings.
type FormSummary struct {
	*Form
	ResponseCount int `json:"response_count"`
}

// Response is one submitter's answers to a form. It is never updated.
type Response struct {
	ID                domain.ResponseID `json:"id"`
	FormID            domain.FormID     `json:"form_id"`
	Answers           map[string]any    `json:"response_data"`
	SubmitterName     string            `json:"submitter_name"`
	SubmitterEmail    string            `json:"submitter_email,omitempty"`
	SubmittedAt       time.Time         `json:"submitted_at"`
	SourceIP          string            `json:"ip_address,omitempty"`
	SchemaFingerprint string            `json:"schema_fingerprint"`
}

// Export is the serializable record set for a form's responses.
type Export struct {
	FormTitle string           `json:"form_title"`
	Responses []ExportedAnswer `json:"responses"`
}

type ExportedAnswer struct {
	SubmitterName  string         `json:"submitter_name"`
	SubmitterEmail string         `json:"submitter_email"`
	SubmittedAt    time.Time      `json:"submitted_at"`
	Answers        map[string]any `json:"response_data"`
}

// Filter narrows form listings. Zero values mean "any".
type Filter struct {
	Category   Category
	OwnerID    domain.UserID
	PublicOnly bool
	ActiveOnly bool
	Search     string
	Limit      int
	Offset     int
}

package models

import (
	"time"

	"civicdesk/pkg/domain"
)

// Submission is the ledger entry pairing a reference number with exactly
// one entity profile or feedback report.
type Submission struct {
	ID              domain.SubmissionID `json:"id"`
	ReferenceNumber string              `json:"reference_number"`
	Type            SubmissionType      `json:"submission_type"`
	SubmitterName   string              `json:"submitter_name"`
	SubmitterEmail  string              `json:"submitter_email"`
	EntityID        *domain.EntityID    `json:"entity_id,omitempty"`
	FeedbackID      *domain.FeedbackID  `json:"feedback_id,omitempty"`
	ProcessedBy     *domain.UserID      `json:"processed_by"`
	CreatedAt       time.Time           `json:"created_at"`
	ProcessedAt     *time.Time          `json:"processed_at"`
}

// NewEntitySubmission wraps an entity profile. The manager is the submitter.
func NewEntitySubmission(id domain.SubmissionID, ref string, e *EntityProfile) *Submission {
	entityID := e.ID
	return &Submission{
		ID:              id,
		ReferenceNumber: ref,
		Type:            SubmissionEntity,
		SubmitterName:   e.ManagerName,
		SubmitterEmail:  e.ManagerEmail,
		EntityID:        &entityID,
		CreatedAt:       e.CreatedAt,
	}
}

// NewFeedbackSubmission wraps a feedback report. The citizen is the submitter.
func NewFeedbackSubmission(id domain.SubmissionID, ref string, f *FeedbackReport) *Submission {
	feedbackID := f.ID
	return &Submission{
		ID:              id,
		ReferenceNumber: ref,
		Type:            SubmissionFeedback,
		SubmitterName:   f.CitizenName,
		SubmitterEmail:  f.CitizenEmail,
		FeedbackID:      &feedbackID,
		CreatedAt:       f.CreatedAt,
	}
}

// IsProcessed reports whether staff have acted on the wrapped record.
func (s *Submission) IsProcessed() bool {
	return s.ProcessedAt != nil
}

// SubmissionFilter narrows ledger listings.
type SubmissionFilter struct {
	Type   SubmissionType
	Search string
	Limit  int
	Offset int
}

// EntityReceipt is returned to the submitter after a create.
type EntityReceipt struct {
	Entity     *EntityProfile `json:"entity"`
	Submission *Submission    `json:"submission"`
}

type FeedbackReceipt struct {
	Feedback   *FeedbackReport `json:"feedback"`
	Submission *Submission     `json:"submission"`
}

// RecordRef identifies the record a ledger entry wraps.
type RecordRef struct {
	Entity   *domain.EntityID
	Feedback *domain.FeedbackID
}

func EntityRef(id domain.EntityID) RecordRef { return RecordRef{Entity: &id} }

func FeedbackRef(id domain.FeedbackID) RecordRef { return RecordRef{Feedback: &id} }

// Matches reports whether sub wraps the referenced record.
func (r RecordRef) Matches(sub *Submission) bool {
	switch {
	case r.Entity != nil:
		return sub.EntityID != nil && *sub.EntityID == *r.Entity
	case r.Feedback != nil:
		return sub.FeedbackID != nil && *sub.FeedbackID == *r.Feedback
	}
	return false
}

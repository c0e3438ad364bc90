package models

import (
	"fmt"
	"strings"
	"time"

	"civicdesk/internal/intake/workflow"
	"civicdesk/pkg/domain"
)

// NoteTimeLayout stamps admin notes.
const NoteTimeLayout = "2006-01-02 15:04"

// FeedbackReport is a citizen complaint, suggestion or inquiry.
type FeedbackReport struct {
	ID domain.FeedbackID `json:"id"`

	CitizenName    string `json:"citizen_name"`
	CitizenPhone   string `json:"citizen_phone"`
	CitizenEmail   string `json:"citizen_email"`
	CitizenAddress string `json:"citizen_address"`
	CitizenID      string `json:"citizen_id"`

	Age            *int   `json:"age"`
	Gender         string `json:"gender"`
	EducationLevel string `json:"education_level"`
	Occupation     string `json:"occupation"`
	Governorate    string `json:"governorate"`
	City           string `json:"city"`

	PreferredContactMethod      string `json:"preferred_contact_method"`
	PreviousAttempts            bool   `json:"previous_attempts"`
	PreviousAttemptsDescription string `json:"previous_attempts_description"`
	ConsentDataProcessing       bool   `json:"consent_data_processing"`
	ConsentContact              bool   `json:"consent_contact"`

	FeedbackType  FeedbackType `json:"feedback_type"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	RelatedEntity string       `json:"related_entity"`

	Priority Priority                `json:"priority"`
	Status   workflow.FeedbackStatus `json:"status"`

	AssignedTo *domain.UserID `json:"assigned_to"`
	AdminNotes string         `json:"admin_notes"`
	Resolution string         `json:"resolution"`
	ResolvedBy *domain.UserID `json:"resolved_by"`

	IsAnonymous bool       `json:"is_anonymous"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

// Anonymize forces the identity fields to the placeholder and empty values.
func (f *FeedbackReport) Anonymize(placeholder string) {
	f.IsAnonymous = true
	f.CitizenName = placeholder
	f.CitizenPhone = ""
	f.CitizenEmail = ""
	f.CitizenAddress = ""
	f.CitizenID = ""
}

// Assign hands the report to target and moves it to in_progress.
func (f *FeedbackReport) Assign(target domain.UserID, now time.Time) error {
	if _, err := f.apply(workflow.ActionAssign, now); err != nil {
		return err
	}
	f.AssignedTo = &target
	return nil
}

// Resolve marks the report resolved with the given resolution text.
func (f *FeedbackReport) Resolve(resolver domain.UserID, resolution string, now time.Time) error {
	if _, err := f.apply(workflow.ActionResolve, now); err != nil {
		return err
	}
	f.Resolution = resolution
	f.stampResolved(resolver, now)
	return nil
}

// AddNote appends "[YYYY-MM-DD HH:MM] author: text" to the admin log.
func (f *FeedbackReport) AddNote(author, text string, now time.Time) error {
	if _, err := f.apply(workflow.ActionAddNote, now); err != nil {
		return err
	}
	line := fmt.Sprintf("[%s] %s: %s", now.Format(NoteTimeLayout), author, text)
	if f.AdminNotes == "" {
		f.AdminNotes = line
	} else {
		f.AdminNotes = f.AdminNotes + "\n" + line
	}
	return nil
}

// SetStatus moves the report to target. Entering resolved stamps the resolver.
func (f *FeedbackReport) SetStatus(actor domain.UserID, target workflow.FeedbackStatus, now time.Time) error {
	action, err := workflow.MarkAction(target)
	if err != nil {
		return err
	}
	prev := f.Status
	if _, err := f.apply(action, now); err != nil {
		return err
	}
	if workflow.EntersResolved(prev, target) {
		f.stampResolved(actor, now)
	}
	return nil
}

// NoteLines splits the admin log into entries.
func (f *FeedbackReport) NoteLines() []string {
	if f.AdminNotes == "" {
		return nil
	}
	return strings.Split(f.AdminNotes, "\n")
}

func (f *FeedbackReport) apply(action workflow.FeedbackAction, now time.Time) (workflow.FeedbackStatus, error) {
	next, err := workflow.NextFeedback(f.Status, action)
	if err != nil {
		return "", err
	}
	f.Status = next
	f.UpdatedAt = now
	return next, nil
}

func (f *FeedbackReport) stampResolved(by domain.UserID, now time.Time) {
	at := now
	f.ResolvedAt = &at
	f.ResolvedBy = &by
}

// FeedbackFilter narrows feedback listings. Zero values mean "any".
type FeedbackFilter struct {
	FeedbackType FeedbackType
	Status       workflow.FeedbackStatus
	Priority     Priority
	Governorate  string
	Search       string
	Limit        int
	Offset       int
}

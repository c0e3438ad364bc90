package models

import (
	"time"

	"civicdesk/internal/intake/workflow"
	"civicdesk/pkg/domain"
)

// DateLayout is the wire and storage layout of calendar dates.
const DateLayout = "2006-01-02"

// EntityProfile is a government body's registration record.
type EntityProfile struct {
	ID          domain.EntityID `json:"id"`
	EntityName  string          `json:"entity_name"`
	EntityType  EntityType      `json:"entity_type"`
	Governorate Governorate     `json:"governorate"`
	Address     string          `json:"address"`

	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	Website     string `json:"website,omitempty"`

	ManagerName     string `json:"manager_name"`
	ManagerPosition string `json:"manager_position"`
	ManagerPhone    string `json:"manager_phone"`
	ManagerEmail    string `json:"manager_email"`

	EstablishmentDate string `json:"establishment_date"`
	EmployeeCount     int    `json:"employee_count"`
	// AnnualBudget is a decimal string with at most two fractional digits.
	AnnualBudget string `json:"annual_budget"`

	ServicesProvided string `json:"services_provided"`
	TargetAudience   string `json:"target_audience"`

	HasElectronicSystem bool   `json:"has_electronic_system"`
	SystemDescription   string `json:"system_description"`

	PublishesReports    bool `json:"publishes_reports"`
	HasComplaintsSystem bool `json:"has_complaints_system"`

	HasQualityCertificate  bool   `json:"has_quality_certificate"`
	QualityCertificateType string `json:"quality_certificate_type"`

	CurrentProjects string `json:"current_projects"`
	FuturePlans     string `json:"future_plans"`

	Partnerships             string `json:"partnerships"`
	InternationalCooperation string `json:"international_cooperation"`

	PerformanceIndicators string `json:"performance_indicators"`
	Challenges            string `json:"challenges"`
	Needs                 string `json:"needs"`

	AdditionalNotes string `json:"additional_notes"`

	SubmittedBy  domain.UserID  `json:"submitted_by"`
	IsApproved   bool           `json:"is_approved"`
	ApprovedBy   *domain.UserID `json:"approved_by"`
	ApprovalDate *time.Time     `json:"approval_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ApprovalState reports the review state derived from IsApproved.
func (e *EntityProfile) ApprovalState() workflow.ApprovalState {
	return workflow.ApprovalStateOf(e.IsApproved)
}

// Review applies an approval decision. Approving stamps the reviewer and
// time; rejecting clears both.
func (e *EntityProfile) Review(action workflow.ApprovalAction, reviewer domain.UserID, now time.Time) error {
	next, err := workflow.NextApproval(e.ApprovalState(), action)
	if err != nil {
		return err
	}
	if next == workflow.ApprovalApproved {
		by, at := reviewer, now
		e.IsApproved = true
		e.ApprovedBy = &by
		e.ApprovalDate = &at
	} else {
		e.IsApproved = false
		e.ApprovedBy = nil
		e.ApprovalDate = nil
	}
	e.UpdatedAt = now
	return nil
}

// EntityFilter narrows entity listings. Zero values mean "any".
type EntityFilter struct {
	Approved    *bool
	EntityType  EntityType
	Governorate Governorate
	Search      string
	Limit       int
	Offset      int
}

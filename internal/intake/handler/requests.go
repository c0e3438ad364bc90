package handler

import (
	"strings"

	"civicdesk/internal/intake/models"
	"civicdesk/pkg/domain"
	"civicdesk/pkg/platform/validation"
)

// EntityRequest is the registration form a government body fills in.
type EntityRequest struct {
	EntityName  string `json:"entity_name" validate:"required,max=200"`
	EntityType  string `json:"entity_type" validate:"required,oneof=ministry authority commission department directorate municipality governorate other"`
	Governorate string `json:"governorate" validate:"required,oneof=baghdad basra nineveh erbil najaf karbala wasit maysan babylon dhi_qar anbar diyala kirkuk salah_al_din sulaymaniyah duhok muthanna qadisiyyah"`
	Address     string `json:"address" validate:"required"`

	PhoneNumber string `json:"phone_number" validate:"required,phone"`
	Email       string `json:"email" validate:"required,email"`
	Website     string `json:"website" validate:"omitempty,url"`

	ManagerName     string `json:"manager_name" validate:"required,max=100"`
	ManagerPosition string `json:"manager_position" validate:"required,max=100"`
	ManagerPhone    string `json:"manager_phone" validate:"required,phone"`
	ManagerEmail    string `json:"manager_email" validate:"required,email"`

	EstablishmentDate string `json:"establishment_date" validate:"required,datetime=2006-01-02"`
	EmployeeCount     int    `json:"employee_count" validate:"gte=0"`
	AnnualBudget      string `json:"annual_budget" validate:"required,money"`

	ServicesProvided string `json:"services_provided" validate:"required"`
	TargetAudience   string `json:"target_audience" validate:"required"`

	HasElectronicSystem    bool   `json:"has_electronic_system"`
	SystemDescription      string `json:"system_description"`
	PublishesReports       bool   `json:"publishes_reports"`
	HasComplaintsSystem    bool   `json:"has_complaints_system"`
	HasQualityCertificate  bool   `json:"has_quality_certificate"`
	QualityCertificateType string `json:"quality_certificate_type" validate:"max=100"`

	CurrentProjects          string `json:"current_projects" validate:"required"`
	FuturePlans              string `json:"future_plans" validate:"required"`
	Partnerships             string `json:"partnerships"`
	InternationalCooperation string `json:"international_cooperation"`
	PerformanceIndicators    string `json:"performance_indicators" validate:"required"`
	Challenges               string `json:"challenges" validate:"required"`
	Needs                    string `json:"needs" validate:"required"`
	AdditionalNotes          string `json:"additional_notes"`
}

func (r *EntityRequest) Normalize() {
	for _, p := range []*string{
		&r.EntityName, &r.Address, &r.PhoneNumber, &r.Website,
		&r.ManagerName, &r.ManagerPosition, &r.ManagerPhone,
		&r.EstablishmentDate, &r.AnnualBudget,
		&r.ServicesProvided, &r.TargetAudience, &r.SystemDescription, &r.QualityCertificateType,
		&r.CurrentProjects, &r.FuturePlans, &r.Partnerships, &r.InternationalCooperation,
		&r.PerformanceIndicators, &r.Challenges, &r.Needs, &r.AdditionalNotes,
	} {
		*p = strings.TrimSpace(*p)
	}
	r.EntityType = strings.ToLower(strings.TrimSpace(r.EntityType))
	r.Governorate = strings.ToLower(strings.TrimSpace(r.Governorate))
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.ManagerEmail = strings.ToLower(strings.TrimSpace(r.ManagerEmail))
}

func (r *EntityRequest) Validate() error {
	return validation.Struct(r)
}

func (r *EntityRequest) Profile() models.EntityProfile {
	return models.EntityProfile{
		EntityName:               r.EntityName,
		EntityType:               models.EntityType(r.EntityType),
		Governorate:              models.Governorate(r.Governorate),
		Address:                  r.Address,
		PhoneNumber:              r.PhoneNumber,
		Email:                    r.Email,
		Website:                  r.Website,
		ManagerName:              r.ManagerName,
		ManagerPosition:          r.ManagerPosition,
		ManagerPhone:             r.ManagerPhone,
		ManagerEmail:             r.ManagerEmail,
		EstablishmentDate:        r.EstablishmentDate,
		EmployeeCount:            r.EmployeeCount,
		AnnualBudget:             r.AnnualBudget,
		ServicesProvided:         r.ServicesProvided,
		TargetAudience:           r.TargetAudience,
		HasElectronicSystem:      r.HasElectronicSystem,
		SystemDescription:        r.SystemDescription,
		PublishesReports:         r.PublishesReports,
		HasComplaintsSystem:      r.HasComplaintsSystem,
		HasQualityCertificate:    r.HasQualityCertificate,
		QualityCertificateType:   r.QualityCertificateType,
		CurrentProjects:          r.CurrentProjects,
		FuturePlans:              r.FuturePlans,
		Partnerships:             r.Partnerships,
		InternationalCooperation: r.InternationalCooperation,
		PerformanceIndicators:    r.PerformanceIndicators,
		Challenges:               r.Challenges,
		Needs:                    r.Needs,
		AdditionalNotes:          r.AdditionalNotes,
	}
}

// FeedbackRequest is a citizen report. Contact fields are checked by the
// service because anonymous reports drop them.
type FeedbackRequest struct {
	CitizenName    string `json:"citizen_name" validate:"max=100"`
	CitizenPhone   string `json:"citizen_phone" validate:"omitempty,phone"`
	CitizenEmail   string `json:"citizen_email" validate:"omitempty,email"`
	CitizenAddress string `json:"citizen_address"`
	CitizenID      string `json:"citizen_id" validate:"max=20"`

	Age            *int   `json:"age" validate:"omitempty,gte=1,lte=120"`
	Gender         string `json:"gender" validate:"omitempty,oneof=male female"`
	EducationLevel string `json:"education_level" validate:"omitempty,oneof=primary intermediate secondary diploma bachelor master phd"`
	Occupation     string `json:"occupation" validate:"max=100"`
	Governorate    string `json:"governorate" validate:"omitempty,oneof=baghdad basra nineveh erbil najaf karbala wasit maysan babylon dhi_qar anbar diyala kirkuk salah_al_din sulaymaniyah duhok muthanna qadisiyyah"`
	City           string `json:"city" validate:"max=100"`

	PreferredContactMethod      string `json:"preferred_contact_method" validate:"omitempty,oneof=email phone sms mail"`
	PreviousAttempts            bool   `json:"previous_attempts"`
	PreviousAttemptsDescription string `json:"previous_attempts_description"`
	ConsentDataProcessing       bool   `json:"consent_data_processing"`
	ConsentContact              bool   `json:"consent_contact"`

	FeedbackType  string `json:"feedback_type" validate:"required,oneof=complaint suggestion inquiry compliment report"`
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description" validate:"required"`
	RelatedEntity string `json:"related_entity" validate:"required,max=200"`
	Priority      string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`

	IsAnonymous bool `json:"is_anonymous"`
}

func (r *FeedbackRequest) Normalize() {
	for _, p := range []*string{
		&r.CitizenName, &r.CitizenPhone, &r.CitizenAddress, &r.CitizenID,
		&r.Occupation, &r.City, &r.PreviousAttemptsDescription,
		&r.Title, &r.Description, &r.RelatedEntity,
	} {
		*p = strings.TrimSpace(*p)
	}
	for _, p := range []*string{
		&r.CitizenEmail, &r.Gender, &r.EducationLevel, &r.Governorate,
		&r.PreferredContactMethod, &r.FeedbackType, &r.Priority,
	} {
		*p = strings.ToLower(strings.TrimSpace(*p))
	}
}

func (r *FeedbackRequest) Validate() error {
	return validation.Struct(r)
}

func (r *FeedbackRequest) Report() models.FeedbackReport {
	return models.FeedbackReport{
		CitizenName:                 r.CitizenName,
		CitizenPhone:                r.CitizenPhone,
		CitizenEmail:                r.CitizenEmail,
		CitizenAddress:              r.CitizenAddress,
		CitizenID:                   r.CitizenID,
		Age:                         r.Age,
		Gender:                      r.Gender,
		EducationLevel:              r.EducationLevel,
		Occupation:                  r.Occupation,
		Governorate:                 r.Governorate,
		City:                        r.City,
		PreferredContactMethod:      r.PreferredContactMethod,
		PreviousAttempts:            r.PreviousAttempts,
		PreviousAttemptsDescription: r.PreviousAttemptsDescription,
		ConsentDataProcessing:       r.ConsentDataProcessing,
		ConsentContact:              r.ConsentContact,
		FeedbackType:                models.FeedbackType(r.FeedbackType),
		Title:                       r.Title,
		Description:                 r.Description,
		RelatedEntity:               r.RelatedEntity,
		Priority:                    models.Priority(r.Priority),
		IsAnonymous:                 r.IsAnonymous,
	}
}

type AssignRequest struct {
	AssignedTo domain.UserID `json:"assigned_to" validate:"required"`
}

func (r *AssignRequest) Validate() error {
	return validation.Struct(r)
}

type ResolveRequest struct {
	Resolution string `json:"resolution"`
}

func (r *ResolveRequest) Normalize() {
	r.Resolution = strings.TrimSpace(r.Resolution)
}

type NoteRequest struct {
	Note string `json:"note" validate:"required"`
}

func (r *NoteRequest) Normalize() {
	r.Note = strings.TrimSpace(r.Note)
}

func (r *NoteRequest) Validate() error {
	return validation.Struct(r)
}

// StatusRequest carries the target status. Unknown values are rejected by
// the service with invalid_status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (r *StatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

func (r *StatusRequest) Validate() error {
	return validation.Struct(r)
}

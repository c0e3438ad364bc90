package handler

import (
	"encoding/json"
	"strings"

	"civicdesk/internal/forms/models"
	"civicdesk/internal/forms/schema"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/validation"
)

// FormRequest is the body of create and update calls.
type FormRequest struct {
	Title       string                   `json:"title" validate:"required,max=255"`
	Description string                   `json:"description"`
	Category    models.Category          `json:"category" validate:"oneof=general feedback complaints services employment surveys"`
	Fields      []schema.FieldDescriptor `json:"fields" validate:"required,min=1"`
	IsPublic    *bool                    `json:"is_public"`
	IsActive    *bool                    `json:"is_active"`
}

func (r *FormRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = models.Category(strings.ToLower(strings.TrimSpace(string(r.Category))))
	if r.Category == "" {
		r.Category = models.CategoryGeneral
	}
}

func (r *FormRequest) Validate() error {
	return validation.Struct(r)
}

func (r *FormRequest) Input() models.FormInput {
	return models.FormInput{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Fields:      r.Fields,
		IsPublic:    r.IsPublic,
		IsActive:    r.IsActive,
	}
}

// SubmitRequest is one response to a form. ResponseData must be a JSON object.
type SubmitRequest struct {
	ResponseData   json.RawMessage `json:"response_data"`
	SubmitterName  string          `json:"submitter_name"`
	SubmitterEmail string          `json:"submitter_email"`
	IsAnonymous    bool            `json:"is_anonymous"`
}

func (r *SubmitRequest) Normalize() {
	r.SubmitterName = strings.TrimSpace(r.SubmitterName)
	r.SubmitterEmail = strings.ToLower(strings.TrimSpace(r.SubmitterEmail))
}

func (r *SubmitRequest) Validate() error {
	if len(r.ResponseData) == 0 || string(r.ResponseData) == "null" {
		return dErrors.NewFieldErrors("response_data is required", dErrors.FieldErrors{
			"response_data": {Code: dErrors.CodeRequired, Message: "this field is required"},
		})
	}
	return nil
}

func (r *SubmitRequest) Input() models.SubmitInput {
	return models.SubmitInput{
		Answers:        r.ResponseData,
		SubmitterName:  r.SubmitterName,
		SubmitterEmail: r.SubmitterEmail,
		Anonymous:      r.IsAnonymous,
	}
}

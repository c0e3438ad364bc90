package models

import (
	"civicdesk/internal/forms/schema"
)

// FormInput carries the owner-editable attributes of a form. Nil flags keep
// their defaults on create and their current value on update.
type FormInput struct {
	Title       string
	Description string
	Category    Category
	Fields      []schema.FieldDescriptor
	IsPublic    *bool
	IsActive    *bool
}

// SubmitInput is one submission to a form.
type SubmitInput struct {
	Answers        any
	SubmitterName  string
	SubmitterEmail string
	Anonymous      bool
}

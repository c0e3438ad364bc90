// Package schema models a form's field list as data. A Schema is built once
// from descriptors, checked for structural soundness, and then read by the
// response validator and the renderer.
package schema

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	dErrors "civicdesk/pkg/domain-errors"
)

// FieldType names an input kind the renderer knows how to draw.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldEmail    FieldType = "email"
	FieldTel      FieldType = "tel"
	FieldNumber   FieldType = "number"
	FieldDate     FieldType = "date"
	FieldSelect   FieldType = "select"
	FieldRadio    FieldType = "radio"
	FieldCheckbox FieldType = "checkbox"
)

// IsValid reports whether t is a known field type.
func (t FieldType) IsValid() bool {
	switch t {
	case FieldText, FieldTextarea, FieldEmail, FieldTel, FieldNumber,
		FieldDate, FieldSelect, FieldRadio, FieldCheckbox:
		return true
	}
	return false
}

// RequiresOptions reports whether the type is only meaningful with choices.
func (t FieldType) RequiresOptions() bool {
	return t == FieldSelect || t == FieldRadio
}

// Option is one selectable choice.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// UnmarshalJSON also accepts a bare string, used as both value and label.
func (o *Option) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		o.Value, o.Label = s, s
		return nil
	}
	type plain Option
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Option(p)
	if o.Label == "" {
		o.Label = o.Value
	}
	return nil
}

// FieldDescriptor describes one input of a form.
type FieldDescriptor struct {
	ID          string    `json:"id"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Required    bool      `json:"required"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []Option  `json:"options,omitempty"`
}

// HasOption reports whether value is one of the field's option values.
func (f FieldDescriptor) HasOption(value string) bool {
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// OptionValues lists the accepted values in declaration order.
func (f FieldDescriptor) OptionValues() []string {
	values := make([]string, len(f.Options))
	for i, o := range f.Options {
		values[i] = o.Value
	}
	return values
}

// Schema is an ordered, validated list of field descriptors.
type Schema struct {
	fields []FieldDescriptor
	index  map[string]int
}

// New checks descriptors and builds a Schema. Order is preserved.
func New(fields []FieldDescriptor) (Schema, error) {
	problems := dErrors.FieldErrors{}
	index := make(map[string]int, len(fields))
	out := make([]FieldDescriptor, 0, len(fields))

	for i, f := range fields {
		f.ID = strings.TrimSpace(f.ID)
		key := f.ID
		if key == "" {
			key = fmt.Sprintf("fields[%d]", i)
			problems.Add(key, dErrors.CodeSchema, "field id is required")
			continue
		}
		if _, dup := index[f.ID]; dup {
			problems.Add(key, dErrors.CodeSchema, "duplicate field id")
			continue
		}
		if !f.Type.IsValid() {
			problems.Add(key, dErrors.CodeSchema, fmt.Sprintf("unknown field type %q", f.Type))
			continue
		}
		if f.Type.RequiresOptions() && len(f.Options) == 0 {
			problems.Add(key, dErrors.CodeSchema, fmt.Sprintf("%s field needs at least one option", f.Type))
			continue
		}
		if msg := checkOptions(f.Options); msg != "" {
			problems.Add(key, dErrors.CodeSchema, msg)
			continue
		}
		if strings.TrimSpace(f.Label) == "" {
			f.Label = f.ID
		}
		index[f.ID] = len(out)
		out = append(out, f)
	}

	if len(problems) > 0 {
		return Schema{}, NewSchemaError(problems)
	}
	return Schema{fields: out, index: index}, nil
}

func checkOptions(options []Option) string {
	seen := make(map[string]struct{}, len(options))
	for _, o := range options {
		if o.Value == "" {
			return "option value is required"
		}
		if _, dup := seen[o.Value]; dup {
			return fmt.Sprintf("duplicate option value %q", o.Value)
		}
		seen[o.Value] = struct{}{}
	}
	return ""
}

// NewSchemaError wraps structural problems under the schema_invalid code.
func NewSchemaError(problems dErrors.FieldErrors) error {
	return dErrors.NewFieldErrors("form schema is invalid", problems)
}

// Fields returns a copy of the descriptors in declaration order.
func (s Schema) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields.
func (s Schema) Len() int { return len(s.fields) }

// FieldByID looks up a descriptor.
func (s Schema) FieldByID(id string) (FieldDescriptor, bool) {
	i, ok := s.index[id]
	if !ok {
		return FieldDescriptor{}, false
	}
	return s.fields[i], true
}

// Fingerprint is a short stable hash of the field list. Responses carry the
// fingerprint of the schema they were validated against so later edits to
// the form can be detected.
func (s Schema) Fingerprint() string {
	b, _ := json.Marshal(s.fields)
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:8])
}

func (s Schema) MarshalJSON() ([]byte, error) {
	if s.fields == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.fields)
}

// UnmarshalJSON decodes a field list and runs the same checks as New.
func (s *Schema) UnmarshalJSON(b []byte) error {
	var fields []FieldDescriptor
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	built, err := New(fields)
	if err != nil {
		return err
	}
	*s = built
	return nil
}

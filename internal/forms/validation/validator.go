// Package validation checks a submitted answer set against a form schema.
package validation

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"civicdesk/internal/forms/schema"
	"civicdesk/internal/platform/config"
	dErrors "civicdesk/pkg/domain-errors"
	platformvalidation "civicdesk/pkg/platform/validation"
)

// Mode selects how identity fields are treated.
type Mode int

const (
	// ModeNormal enforces every required field.
	ModeNormal Mode = iota
	// ModeAnonymous exempts the policy's allow-list from the required check
	// and fills absent allow-listed answers with defaults.
	ModeAnonymous
)

func (m Mode) String() string {
	if m == ModeAnonymous {
		return "anonymous"
	}
	return "normal"
}

// DateLayout is the accepted format for date answers.
const DateLayout = "2006-01-02"

// Result carries the normalized answers and any per-field problems. Answers
// keeps keys the schema does not declare.
type Result struct {
	Answers map[string]any
	Errors  dErrors.FieldErrors
}

// Valid reports whether no field was rejected.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Err returns the field errors as a domain error, or nil.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return dErrors.NewFieldErrors("response does not match the form", r.Errors)
}

// Validator enforces a schema. It holds no per-request state.
type Validator struct {
	policy config.AnonymousPolicy
}

func New(policy config.AnonymousPolicy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks answers against sc. answers may be a decoded JSON object or
// raw JSON bytes. Field problems are reported in Result.Errors; the error
// return is reserved for input that is not a JSON object at all.
func (v *Validator) Validate(sc schema.Schema, answers any, mode Mode) (Result, error) {
	in, err := asObject(answers)
	if err != nil {
		return Result{}, err
	}

	out := make(map[string]any, len(in))
	for k, val := range in {
		out[k] = val
	}
	errs := dErrors.FieldErrors{}

	for _, f := range sc.Fields() {
		val, present := in[f.ID]
		if !present || isEmpty(f, val) {
			if mode == ModeAnonymous && v.policy.Exempts(f.ID) {
				out[f.ID] = v.anonymousDefault(f.ID)
				continue
			}
			if f.Required {
				errs.Add(f.ID, dErrors.CodeRequired, fmt.Sprintf("%s is required", f.Label))
			}
			continue
		}
		normalized, code, msg := checkValue(f, val)
		if code != "" {
			errs.Add(f.ID, code, msg)
			continue
		}
		out[f.ID] = normalized
	}

	return Result{Answers: out, Errors: errs}, nil
}

func (v *Validator) anonymousDefault(field string) string {
	if field == "name" {
		return v.policy.Placeholder
	}
	return ""
}

func asObject(answers any) (map[string]any, error) {
	switch a := answers.(type) {
	case map[string]any:
		return a, nil
	case json.RawMessage:
		return decodeObject(a)
	case []byte:
		return decodeObject(a)
	case string:
		return decodeObject([]byte(a))
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "answers must be a JSON object")
	}
}

func decodeObject(b []byte) (map[string]any, error) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "answers must be a JSON object")
	}
	return m, nil
}

func isEmpty(f schema.FieldDescriptor, val any) bool {
	switch x := val.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		return len(x) == 0
	case []string:
		return len(x) == 0
	case bool:
		// An unticked single checkbox is an absent answer.
		return f.Type == schema.FieldCheckbox && len(f.Options) == 0 && !x
	}
	return false
}

func checkValue(f schema.FieldDescriptor, val any) (any, dErrors.Code, string) {
	switch f.Type {
	case schema.FieldSelect, schema.FieldRadio:
		s, ok := scalarString(val)
		if !ok || !f.HasOption(s) {
			return nil, dErrors.CodeInvalidChoice, choiceMessage(f)
		}
		return s, "", ""

	case schema.FieldCheckbox:
		if len(f.Options) == 0 {
			switch val.(type) {
			case bool, string:
				return val, "", ""
			}
			return nil, dErrors.CodeInvalidFormat, "expected a true/false value"
		}
		values, ok := stringList(val)
		if !ok {
			return nil, dErrors.CodeInvalidChoice, choiceMessage(f)
		}
		for _, s := range values {
			if !f.HasOption(s) {
				return nil, dErrors.CodeInvalidChoice, choiceMessage(f)
			}
		}
		return values, "", ""

	case schema.FieldEmail:
		s, ok := val.(string)
		if !ok || !platformvalidation.IsEmail(strings.TrimSpace(s)) {
			return nil, dErrors.CodeInvalidFormat, "enter a valid email address"
		}
		return strings.TrimSpace(s), "", ""

	case schema.FieldTel:
		s, ok := val.(string)
		if !ok || !platformvalidation.IsPhone(strings.TrimSpace(s)) {
			return nil, dErrors.CodeInvalidFormat, "phone number must be 9 to 15 digits, optionally prefixed with +"
		}
		return strings.TrimSpace(s), "", ""

	case schema.FieldNumber:
		switch x := val.(type) {
		case float64, int, int64, json.Number:
			return x, "", ""
		case string:
			n, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, dErrors.CodeInvalidFormat, "enter a number"
			}
			return n, "", ""
		}
		return nil, dErrors.CodeInvalidFormat, "enter a number"

	case schema.FieldDate:
		s, ok := val.(string)
		if !ok {
			return nil, dErrors.CodeInvalidFormat, "enter a date as YYYY-MM-DD"
		}
		if _, err := time.Parse(DateLayout, strings.TrimSpace(s)); err != nil {
			return nil, dErrors.CodeInvalidFormat, "enter a date as YYYY-MM-DD"
		}
		return strings.TrimSpace(s), "", ""

	default:
		if _, ok := val.(string); !ok {
			return nil, dErrors.CodeInvalidFormat, "expected text"
		}
		return val, "", ""
	}
}

func choiceMessage(f schema.FieldDescriptor) string {
	return fmt.Sprintf("choose one of: %s", strings.Join(f.OptionValues(), ", "))
}

func scalarString(val any) (string, bool) {
	switch x := val.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case json.Number:
		return x.String(), true
	}
	return "", false
}

func stringList(val any) ([]string, bool) {
	switch x := val.(type) {
	case string:
		return []string{x}, true
	case []string:
		return x, true
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := scalarString(item)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"civicdesk/internal/forms/schema"
	"civicdesk/internal/platform/config"
	dErrors "civicdesk/pkg/domain-errors"
)

type ValidatorSuite struct {
	suite.Suite
	validator *Validator
	schema    schema.Schema
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupTest() {
	s.validator = New(config.AnonymousPolicy{
		AllowList:   config.DefaultAnonymousAllowList,
		Placeholder: "Anonymous",
	})
	sc, err := schema.New([]schema.FieldDescriptor{
		{ID: "name", Type: schema.FieldText, Label: "Name", Required: true},
		{ID: "phone", Type: schema.FieldTel, Label: "Phone", Required: true},
		{ID: "email", Type: schema.FieldEmail, Label: "Email", Required: true},
		{ID: "national_id", Type: schema.FieldText, Label: "National ID", Required: true},
		{ID: "topic", Type: schema.FieldSelect, Label: "Topic", Required: true, Options: []schema.Option{
			{Value: "a", Label: "A"}, {Value: "b", Label: "B"},
		}},
		{ID: "channels", Type: schema.FieldCheckbox, Label: "Channels", Options: []schema.Option{
			{Value: "sms"}, {Value: "mail"},
		}},
		{ID: "visits", Type: schema.FieldNumber, Label: "Visits"},
		{ID: "since", Type: schema.FieldDate, Label: "Since"},
	})
	s.Require().NoError(err)
	s.schema = sc
}

func (s *ValidatorSuite) complete() map[string]any {
	return map[string]any{
		"name":        "Sara Ali",
		"phone":       "+9647701234567",
		"email":       "sara@example.org",
		"national_id": "1990123456",
		"topic":       "a",
	}
}

func (s *ValidatorSuite) TestCompleteAnswersPass() {
	res, err := s.validator.Validate(s.schema, s.complete(), ModeNormal)
	s.Require().NoError(err)
	s.True(res.Valid())
	s.NoError(res.Err())
	s.Equal("a", res.Answers["topic"])
}

func (s *ValidatorSuite) TestRequiredFieldsInNormalMode() {
	for _, field := range config.DefaultAnonymousAllowList {
		if field == "address" {
			continue
		}
		s.Run(field, func() {
			answers := s.complete()
			delete(answers, field)

			res, err := s.validator.Validate(s.schema, answers, ModeNormal)
			s.Require().NoError(err)
			s.Require().Contains(res.Errors, field)
			s.Equal(dErrors.CodeRequired, res.Errors[field].Code)
			s.True(dErrors.HasCode(res.Err(), dErrors.CodeValidation))
		})
	}
}

func (s *ValidatorSuite) TestAnonymousModeFillsAllowListDefaults() {
	answers := map[string]any{"topic": "b", "name": "   "}

	res, err := s.validator.Validate(s.schema, answers, ModeAnonymous)
	s.Require().NoError(err)
	s.True(res.Valid(), "unexpected errors: %v", res.Errors)
	s.Equal("Anonymous", res.Answers["name"])
	s.Equal("", res.Answers["phone"])
	s.Equal("", res.Answers["email"])
	s.Equal("", res.Answers["national_id"])
}

func (s *ValidatorSuite) TestAnonymousModeStillRequiresOtherFields() {
	res, err := s.validator.Validate(s.schema, map[string]any{}, ModeAnonymous)
	s.Require().NoError(err)
	s.Equal([]string{"topic"}, res.Errors.Keys())
}

func (s *ValidatorSuite) TestAnonymousModeKeepsProvidedValues() {
	answers := s.complete()
	res, err := s.validator.Validate(s.schema, answers, ModeAnonymous)
	s.Require().NoError(err)
	s.Equal("Sara Ali", res.Answers["name"])
}

func (s *ValidatorSuite) TestInvalidChoice() {
	answers := s.complete()
	answers["topic"] = "c"
	answers["channels"] = []any{"sms", "pigeon"}

	res, err := s.validator.Validate(s.schema, answers, ModeNormal)
	s.Require().NoError(err)
	s.Equal(dErrors.CodeInvalidChoice, res.Errors["topic"].Code)
	s.Equal(dErrors.CodeInvalidChoice, res.Errors["channels"].Code)
	s.Equal(dErrors.CodeInvalidChoice, dErrors.CodeOf(res.Err()))
}

func (s *ValidatorSuite) TestFormatChecks() {
	answers := s.complete()
	answers["email"] = "not-an-email"
	answers["phone"] = "12-34"
	answers["visits"] = "many"
	answers["since"] = "01/02/2024"

	res, err := s.validator.Validate(s.schema, answers, ModeNormal)
	s.Require().NoError(err)
	s.Equal([]string{"email", "phone", "since", "visits"}, res.Errors.Keys())
	for _, k := range res.Errors.Keys() {
		s.Equal(dErrors.CodeInvalidFormat, res.Errors[k].Code, k)
	}
}

func (s *ValidatorSuite) TestNormalizesValues() {
	answers := s.complete()
	answers["visits"] = "3"
	answers["channels"] = "mail"

	res, err := s.validator.Validate(s.schema, answers, ModeNormal)
	s.Require().NoError(err)
	s.Require().True(res.Valid())
	s.Equal(float64(3), res.Answers["visits"])
	s.Equal([]string{"mail"}, res.Answers["channels"])
}

func (s *ValidatorSuite) TestUnknownKeysAreKept() {
	answers := s.complete()
	answers["legacy_field"] = map[string]any{"nested": true}

	res, err := s.validator.Validate(s.schema, answers, ModeNormal)
	s.Require().NoError(err)
	s.True(res.Valid())
	s.Equal(map[string]any{"nested": true}, res.Answers["legacy_field"])
}

func (s *ValidatorSuite) TestDoesNotMutateInput() {
	answers := map[string]any{"topic": "a"}
	_, err := s.validator.Validate(s.schema, answers, ModeAnonymous)
	s.Require().NoError(err)
	s.Equal(map[string]any{"topic": "a"}, answers)
}

func TestValidateMalformedInput(t *testing.T) {
	v := New(config.DefaultAnonymousPolicy())
	sc, err := schema.New(nil)
	require.NoError(t, err)

	for name, input := range map[string]any{
		"array":     []any{"a"},
		"raw array": json.RawMessage(`["a"]`),
		"number":    42,
		"nil":       nil,
		"bad json":  []byte(`{"a":`),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := v.Validate(sc, input, ModeNormal)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}

	res, err := v.Validate(sc, json.RawMessage(`{"free":"text"}`), ModeNormal)
	require.NoError(t, err)
	assert.Equal(t, "text", res.Answers["free"])
}

// Every select-typed field rejects values outside its options.
func TestSelectRejectsUnknownValues(t *testing.T) {
	v := New(config.DefaultAnonymousPolicy())
	for _, typ := range []schema.FieldType{schema.FieldSelect, schema.FieldRadio} {
		sc, err := schema.New([]schema.FieldDescriptor{{
			ID: "choice", Type: typ, Options: []schema.Option{{Value: "a"}, {Value: "b"}},
		}})
		require.NoError(t, err)

		for _, bad := range []any{"c", "A", "", 1.0, []any{"a"}} {
			res, err := v.Validate(sc, map[string]any{"choice": bad}, ModeNormal)
			require.NoError(t, err)
			if bad == "" {
				assert.True(t, res.Valid(), "empty optional answer is allowed")
				continue
			}
			assert.Equal(t, dErrors.CodeInvalidChoice, res.Errors["choice"].Code, "%s %v", typ, bad)
		}
	}
}

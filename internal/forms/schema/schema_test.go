package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	dErrors "civicdesk/pkg/domain-errors"
)

type SchemaSuite struct {
	suite.Suite
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaSuite))
}

func contactFields() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "name", Type: FieldText, Label: "Name", Required: true},
		{ID: "email", Type: FieldEmail, Label: "Email"},
		{ID: "topic", Type: FieldSelect, Label: "Topic", Required: true, Options: []Option{
			{Value: "roads", Label: "Roads"},
			{Value: "water", Label: "Water"},
		}},
	}
}

func (s *SchemaSuite) TestNewPreservesOrder() {
	sc, err := New(contactFields())
	s.Require().NoError(err)

	fields := sc.Fields()
	s.Require().Len(fields, 3)
	s.Equal([]string{"name", "email", "topic"}, []string{fields[0].ID, fields[1].ID, fields[2].ID})

	f, ok := sc.FieldByID("topic")
	s.True(ok)
	s.True(f.HasOption("water"))
	s.False(f.HasOption("power"))

	_, ok = sc.FieldByID("missing")
	s.False(ok)
}

func (s *SchemaSuite) TestNewRejectsStructuralProblems() {
	tests := []struct {
		name   string
		fields []FieldDescriptor
		key    string
	}{
		{"empty id", []FieldDescriptor{{ID: " ", Type: FieldText}}, "fields[0]"},
		{"duplicate id", []FieldDescriptor{{ID: "a", Type: FieldText}, {ID: "a", Type: FieldTextarea}}, "a"},
		{"unknown type", []FieldDescriptor{{ID: "a", Type: "file"}}, "a"},
		{"select without options", []FieldDescriptor{{ID: "a", Type: FieldSelect}}, "a"},
		{"radio without options", []FieldDescriptor{{ID: "a", Type: FieldRadio}}, "a"},
		{"repeated option", []FieldDescriptor{{ID: "a", Type: FieldRadio, Options: []Option{{Value: "x"}, {Value: "x"}}}}, "a"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := New(tt.fields)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeSchema))
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), "schema errors belong to the validation family")
			s.Contains(dErrors.FieldErrorsOf(err), tt.key)
		})
	}
}

func (s *SchemaSuite) TestCheckboxWithoutOptionsIsAllowed() {
	_, err := New([]FieldDescriptor{{ID: "agree", Type: FieldCheckbox, Required: true}})
	s.NoError(err)
}

func (s *SchemaSuite) TestFingerprintTracksFieldChanges() {
	a, err := New(contactFields())
	s.Require().NoError(err)
	b, err := New(contactFields())
	s.Require().NoError(err)
	s.Equal(a.Fingerprint(), b.Fingerprint())
	s.Len(a.Fingerprint(), 16)

	changed := contactFields()
	changed[1].Required = true
	c, err := New(changed)
	s.Require().NoError(err)
	s.NotEqual(a.Fingerprint(), c.Fingerprint())
}

func TestSchemaJSON(t *testing.T) {
	raw := `[{"id":"city","type":"radio","label":"City","required":true,"options":["Basra",{"value":"najaf","label":"Najaf"}]}]`

	var sc Schema
	require.NoError(t, json.Unmarshal([]byte(raw), &sc))
	f, ok := sc.FieldByID("city")
	require.True(t, ok)
	assert.Equal(t, []string{"Basra", "najaf"}, f.OptionValues())
	assert.Equal(t, "Basra", f.Options[0].Label)

	out, err := json.Marshal(sc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"value":"najaf"`)

	var bad Schema
	err = json.Unmarshal([]byte(`[{"id":"x","type":"select"}]`), &bad)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeSchema))
}

package forms

import (
	"context"
	"fmt"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	SignIn(username string, staff bool)
	Save(name, value string)
}

// RegisterSteps registers form builder and submission steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &formSteps{tc: tc}

	ctx.Step(`^"([^"]*)" has published a form with a required select field "([^"]*)" offering "([^"]*)"$`, steps.publishSelectForm)
	ctx.Step(`^I answer "([^"]*)" with "([^"]*)"$`, steps.answer)
	ctx.Step(`^"([^"]*)" exports the form$`, steps.export)
	ctx.Step(`^the export should contain (\d+) responses?$`, steps.exportCount)
	ctx.Step(`^exported response (\d+) should answer "([^"]*)" with "([^"]*)"$`, steps.exportedAnswer)
}

type formSteps struct {
	tc TestContext
}

func (s *formSteps) publishSelectForm(ctx context.Context, owner, field, options string) error {
	s.tc.SignIn(owner, false)
	body := map[string]any{
		"title":     "Service survey",
		"category":  "surveys",
		"is_public": true,
		"fields": []map[string]any{{
			"id":       field,
			"type":     "select",
			"label":    field,
			"required": true,
			"options":  strings.Split(options, ","),
		}},
	}
	if err := s.tc.POST("/forms", body); err != nil {
		return err
	}
	if status := s.tc.GetLastResponseStatus(); status != 201 {
		return fmt.Errorf("create form: status %d", status)
	}
	id, err := s.tc.GetResponseField("id")
	if err != nil {
		return err
	}
	s.tc.Save("form_id", fmt.Sprint(id))
	return nil
}

func (s *formSteps) answer(ctx context.Context, field, value string) error {
	return s.tc.POST("/forms/{form_id}/responses", map[string]any{
		"response_data": map[string]any{field: value},
		"is_anonymous":  true,
	})
}

func (s *formSteps) export(ctx context.Context, owner string) error {
	s.tc.SignIn(owner, false)
	return s.tc.GET("/forms/{form_id}/export")
}

func (s *formSteps) exportCount(ctx context.Context, n int) error {
	got, err := s.tc.GetResponseField("responses")
	if err != nil {
		return err
	}
	list, ok := got.([]any)
	if !ok || len(list) != n {
		return fmt.Errorf("expected %d exported responses, got %v", n, got)
	}
	return nil
}

func (s *formSteps) exportedAnswer(ctx context.Context, index int, field, value string) error {
	got, err := s.tc.GetResponseField(fmt.Sprintf("responses.%d.response_data.%s", index-1, field))
	if err != nil {
		return err
	}
	if got != value {
		return fmt.Errorf("expected %q, got %v", value, got)
	}
	return nil
}

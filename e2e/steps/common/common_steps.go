package common

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	SignIn(username string, staff bool)
	SignOut()
	Save(name, value string)
}

// RegisterSteps registers generic request and assertion steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	ctx.Step(`^I am signed in as citizen "([^"]*)"$`, steps.signInCitizen)
	ctx.Step(`^I am signed in as staff "([^"]*)"$`, steps.signInStaff)
	ctx.Step(`^I am not signed in$`, steps.signOut)

	ctx.Step(`^I GET "([^"]*)"$`, steps.get)
	ctx.Step(`^I POST to "([^"]*)" with body:$`, steps.postDocString)

	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the error code should be "([^"]*)"$`, steps.errorCodeShouldBe)
	ctx.Step(`^the field error for "([^"]*)" should be "([^"]*)"$`, steps.fieldErrorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be (\d+)$`, steps.fieldShouldBeNumber)
	ctx.Step(`^the response field "([^"]*)" should not be empty$`, steps.fieldShouldNotBeEmpty)
	ctx.Step(`^I save the response field "([^"]*)" as "([^"]*)"$`, steps.saveField)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) signInCitizen(ctx context.Context, username string) error {
	s.tc.SignIn(username, false)
	return nil
}

func (s *commonSteps) signInStaff(ctx context.Context, username string) error {
	s.tc.SignIn(username, true)
	return nil
}

func (s *commonSteps) signOut(ctx context.Context) error {
	s.tc.SignOut()
	return nil
}

func (s *commonSteps) get(ctx context.Context, path string) error {
	return s.tc.GET(path)
}

func (s *commonSteps) postDocString(ctx context.Context, path string, body *godog.DocString) error {
	return s.tc.POST(path, body.Content)
}

func (s *commonSteps) statusShouldBe(ctx context.Context, expected int) error {
	if got := s.tc.GetLastResponseStatus(); got != expected {
		return fmt.Errorf("expected status %d, got %d", expected, got)
	}
	return nil
}

func (s *commonSteps) errorCodeShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldBe(ctx, "error", code)
}

func (s *commonSteps) fieldErrorShouldBe(ctx context.Context, field, code string) error {
	return s.fieldShouldBe(ctx, "fields."+field+".code", code)
}

func (s *commonSteps) fieldShouldBe(ctx context.Context, field, expected string) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if fmt.Sprint(got) != expected {
		return fmt.Errorf("expected %s to be %q, got %v", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeNumber(ctx context.Context, field string, expected int) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	n, ok := got.(float64)
	if !ok || n != float64(expected) {
		return fmt.Errorf("expected %s to be %d, got %v", field, expected, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldNotBeEmpty(ctx context.Context, field string) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got == nil || reflect.ValueOf(got).IsZero() {
		return fmt.Errorf("expected %s to be set", field)
	}
	return nil
}

func (s *commonSteps) saveField(ctx context.Context, field, name string) error {
	got, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	switch v := got.(type) {
	case string:
		s.tc.Save(name, v)
	case float64:
		s.tc.Save(name, strconv.FormatFloat(v, 'f', -1, 64))
	default:
		return fmt.Errorf("%s is not a scalar: %v", field, got)
	}
	return nil
}

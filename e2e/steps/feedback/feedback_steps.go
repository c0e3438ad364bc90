package feedback

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	ActorID(username string) (string, error)
	Save(name, value string)
}

// RegisterSteps registers citizen feedback and triage steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &feedbackSteps{tc: tc}

	ctx.Step(`^I submit anonymous feedback titled "([^"]*)" about "([^"]*)"$`, steps.submitAnonymous)
	ctx.Step(`^I assign the feedback to "([^"]*)"$`, steps.assign)
	ctx.Step(`^I resolve the feedback with "([^"]*)"$`, steps.resolve)
	ctx.Step(`^the feedback should be assigned to "([^"]*)"$`, steps.assignedTo)
}

type feedbackSteps struct {
	tc TestContext
}

func (s *feedbackSteps) submitAnonymous(ctx context.Context, title, entity string) error {
	err := s.tc.POST("/feedback", map[string]any{
		"feedback_type":  "complaint",
		"title":          title,
		"description":    "Reported through the public desk.",
		"related_entity": entity,
		"citizen_name":   "Someone Real",
		"is_anonymous":   true,
	})
	if err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 201 {
		return nil
	}
	id, err := s.tc.GetResponseField("feedback.id")
	if err != nil {
		return err
	}
	s.tc.Save("feedback_id", fmt.Sprint(id))
	return nil
}

func (s *feedbackSteps) assign(ctx context.Context, username string) error {
	id, err := s.tc.ActorID(username)
	if err != nil {
		return err
	}
	return s.tc.POST("/feedback/{feedback_id}/assign", map[string]any{"assigned_to": id})
}

func (s *feedbackSteps) resolve(ctx context.Context, resolution string) error {
	return s.tc.POST("/feedback/{feedback_id}/resolve", map[string]any{"resolution": resolution})
}

func (s *feedbackSteps) assignedTo(ctx context.Context, username string) error {
	want, err := s.tc.ActorID(username)
	if err != nil {
		return err
	}
	got, err := s.tc.GetResponseField("assigned_to")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected assignee %s, got %v", want, got)
	}
	return nil
}

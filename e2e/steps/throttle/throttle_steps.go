package throttle

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GetLastResponseStatus() int
	GetLastResponseHeader(name string) string
	SetClientIP(ip string)
}

// RegisterSteps registers public submission throttle steps
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &throttleSteps{tc: tc}

	ctx.Step(`^my client IP is "([^"]*)"$`, steps.clientIP)
	ctx.Step(`^I send (\d+) anonymous feedback reports$`, steps.sendReports)
	ctx.Step(`^the first (\d+) should be accepted$`, steps.firstAccepted)
	ctx.Step(`^the last should be rejected with status (\d+)$`, steps.lastRejected)
	ctx.Step(`^the response should carry a "([^"]*)" header$`, steps.hasHeader)
}

type throttleSteps struct {
	tc       TestContext
	statuses []int
}

func (s *throttleSteps) clientIP(ctx context.Context, ip string) error {
	s.tc.SetClientIP(ip)
	return nil
}

func (s *throttleSteps) sendReports(ctx context.Context, n int) error {
	s.statuses = s.statuses[:0]
	for i := 0; i < n; i++ {
		err := s.tc.POST("/feedback", map[string]any{
			"feedback_type":  "inquiry",
			"title":          fmt.Sprintf("report %d", i+1),
			"description":    "Opening hours?",
			"related_entity": "Civil Registry",
			"is_anonymous":   true,
		})
		if err != nil {
			return err
		}
		s.statuses = append(s.statuses, s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *throttleSteps) firstAccepted(ctx context.Context, n int) error {
	if len(s.statuses) < n {
		return fmt.Errorf("only %d requests were sent", len(s.statuses))
	}
	for i, status := range s.statuses[:n] {
		if status != 201 {
			return fmt.Errorf("request %d: expected 201, got %d", i+1, status)
		}
	}
	return nil
}

func (s *throttleSteps) lastRejected(ctx context.Context, status int) error {
	if len(s.statuses) == 0 {
		return fmt.Errorf("no requests were sent")
	}
	if got := s.statuses[len(s.statuses)-1]; got != status {
		return fmt.Errorf("expected %d, got %d", status, got)
	}
	return nil
}

func (s *throttleSteps) hasHeader(ctx context.Context, name string) error {
	if s.tc.GetLastResponseHeader(name) == "" {
		return fmt.Errorf("header %s missing", name)
	}
	return nil
}

package e2e

import (
	"github.com/cucumber/godog"

	"civicdesk/e2e/steps/common"
	"civicdesk/e2e/steps/feedback"
	"civicdesk/e2e/steps/forms"
	"civicdesk/e2e/steps/throttle"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Sign-in, raw requests and response assertions
	common.RegisterSteps(ctx, tc)

	forms.RegisterSteps(ctx, tc)
	feedback.RegisterSteps(ctx, tc)
	throttle.RegisterSteps(ctx, tc)
}

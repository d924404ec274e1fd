package e2e

import (
	"github.com/cucumber/godog"

	"campuspass/e2e/steps/common"
	"campuspass/e2e/steps/verification"
	"campuspass/e2e/steps/widget"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (health, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register verification flow steps
	verification.RegisterSteps(ctx, tc)

	// Register vendor widget steps
	widget.RegisterSteps(ctx, tc)
}

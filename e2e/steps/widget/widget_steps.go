package widget

import (
	"context"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	POSTWithHeaders(path string, body interface{}, headers map[string]string) error
	Expand(s string) string
	VendorHeaders() map[string]string
}

// RegisterSteps registers vendor widget step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &widgetSteps{tc: tc}

	ctx.Step(`^I issue a widget token for the demo student and vendor$`, steps.issueForDemo)
	ctx.Step(`^the demo vendor consumes widget token "([^"]*)"$`, steps.vendorConsumes)
	ctx.Step(`^the demo vendor peeks at widget token "([^"]*)"$`, steps.vendorPeeks)
	ctx.Step(`^I consume widget token "([^"]*)" without vendor credentials$`, steps.consumeWithoutCredentials)
	ctx.Step(`^the demo vendor consumes widget token "([^"]*)" with key "([^"]*)"$`, steps.vendorConsumesWithKey)
}

type widgetSteps struct {
	tc TestContext
}

func (s *widgetSteps) issueForDemo(ctx context.Context) error {
	return s.tc.POST("/widget/tokens", map[string]interface{}{
		"student_id": s.tc.Expand("{student_id}"),
		"vendor_id":  s.tc.Expand("{vendor_id}"),
		"product_id": s.tc.Expand("{product_id}"),
	})
}

func (s *widgetSteps) vendorConsumes(ctx context.Context, token string) error {
	return s.tc.POSTWithHeaders("/widget/tokens/consume", tokenBody(s.tc.Expand(token)), s.tc.VendorHeaders())
}

func (s *widgetSteps) vendorPeeks(ctx context.Context, token string) error {
	return s.tc.POSTWithHeaders("/widget/tokens/peek", tokenBody(s.tc.Expand(token)), s.tc.VendorHeaders())
}

func (s *widgetSteps) consumeWithoutCredentials(ctx context.Context, token string) error {
	return s.tc.POST("/widget/tokens/consume", tokenBody(s.tc.Expand(token)))
}

func (s *widgetSteps) vendorConsumesWithKey(ctx context.Context, token, key string) error {
	headers := s.tc.VendorHeaders()
	headers["X-Vendor-Key"] = key
	return s.tc.POSTWithHeaders("/widget/tokens/consume", tokenBody(s.tc.Expand(token)), headers)
}

func tokenBody(token string) map[string]interface{} {
	return map[string]interface{}{"token": token}
}

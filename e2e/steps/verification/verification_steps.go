package verification

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body interface{}) error
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
	Expand(s string) string
}

// RegisterSteps registers verification flow step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &verificationSteps{tc: tc}

	// Method discovery
	ctx.Step(`^I list the verification methods of the demo university$`, steps.listMethods)
	ctx.Step(`^I ask for a recommendation for email "([^"]*)"$`, steps.recommendForEmail)
	ctx.Step(`^I ask for a recommendation for email "([^"]*)" with a phone number$`, steps.recommendForEmailWithPhone)
	ctx.Step(`^method "([^"]*)" should be listed as available$`, steps.methodShouldBeAvailable)
	ctx.Step(`^method "([^"]*)" should be listed as unavailable$`, steps.methodShouldBeUnavailable)

	// Magic link
	ctx.Step(`^I request a magic link for "([^"]*)"$`, steps.requestMagicLink)
	ctx.Step(`^I consume magic link token "([^"]*)"$`, steps.consumeMagicLink)

	// OTP
	ctx.Step(`^I request a WhatsApp code for "([^"]*)"$`, steps.requestWhatsAppCode)
	ctx.Step(`^I confirm code "([^"]*)" for "([^"]*)"$`, steps.confirmCode)
	ctx.Step(`^I confirm code "([^"]*)" for "([^"]*)" (\d+) times$`, steps.confirmCodeNTimes)

	// Status
	ctx.Step(`^I check the verification status of the demo student$`, steps.checkStatus)
	ctx.Step(`^I list the verification history of the demo student$`, steps.listHistory)
}

type verificationSteps struct {
	tc TestContext
}

func (s *verificationSteps) listMethods(ctx context.Context) error {
	return s.tc.GET("/universities/{university_id}/methods", nil)
}

func (s *verificationSteps) recommendForEmail(ctx context.Context, email string) error {
	return s.tc.POST("/universities/{university_id}/methods/recommend", map[string]interface{}{
		"email": email,
	})
}

func (s *verificationSteps) recommendForEmailWithPhone(ctx context.Context, email string) error {
	return s.tc.POST("/universities/{university_id}/methods/recommend", map[string]interface{}{
		"email":            email,
		"has_phone_number": true,
	})
}

func (s *verificationSteps) methodShouldBeAvailable(ctx context.Context, method string) error {
	return s.methodAvailability(method, true)
}

func (s *verificationSteps) methodShouldBeUnavailable(ctx context.Context, method string) error {
	return s.methodAvailability(method, false)
}

func (s *verificationSteps) methodAvailability(method string, want bool) error {
	raw, err := s.tc.GetResponseField("methods")
	if err != nil {
		return err
	}
	methods, ok := raw.([]interface{})
	if !ok {
		return fmt.Errorf("methods is not a list: %s", s.tc.GetLastResponseBody())
	}
	for _, m := range methods {
		entry, ok := m.(map[string]interface{})
		if !ok || entry["method"] != method {
			continue
		}
		if got, _ := entry["is_available"].(bool); got != want {
			return fmt.Errorf("expected %s availability %v, got %v", method, want, got)
		}
		return nil
	}
	return fmt.Errorf("method %s not listed: %s", method, s.tc.GetLastResponseBody())
}

func (s *verificationSteps) requestMagicLink(ctx context.Context, email string) error {
	return s.tc.POST("/verify/email/magic-link", map[string]interface{}{
		"email":         email,
		"university_id": s.tc.Expand("{university_id}"),
	})
}

func (s *verificationSteps) consumeMagicLink(ctx context.Context, token string) error {
	return s.tc.POST("/verify/email/consume", map[string]interface{}{
		"token": token,
	})
}

func (s *verificationSteps) requestWhatsAppCode(ctx context.Context, phone string) error {
	return s.tc.POST("/verify/otp/request", map[string]interface{}{
		"target":  phone,
		"channel": "whatsapp",
	})
}

func (s *verificationSteps) confirmCode(ctx context.Context, code, target string) error {
	return s.tc.POST("/verify/otp/confirm", map[string]interface{}{
		"target": target,
		"code":   code,
	})
}

func (s *verificationSteps) confirmCodeNTimes(ctx context.Context, code, target string, times int) error {
	for i := 0; i < times; i++ {
		if err := s.confirmCode(ctx, code, target); err != nil {
			return err
		}
	}
	return nil
}

func (s *verificationSteps) checkStatus(ctx context.Context) error {
	return s.tc.GET("/students/{student_id}/verification-status", nil)
}

func (s *verificationSteps) listHistory(ctx context.Context) error {
	return s.tc.GET("/students/{student_id}/verification-history", nil)
}

package notify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	twilio "github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappScheme = "whatsapp:"

type messageCreator interface {
	CreateMessage(params *openapi.CreateMessageParams) (*openapi.ApiV2010Message, error)
}

// TwilioWhatsAppSender sends WhatsApp messages through the Twilio Messages API.
// Twilio's client takes no context; the call is skipped when ctx is already done.
type TwilioWhatsAppSender struct {
	api    messageCreator
	from   string
	logger *slog.Logger
}

func NewTwilioWhatsAppSender(accountSID, authToken, from string, logger *slog.Logger) *TwilioWhatsAppSender {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioWhatsAppSender(client.Api, from, logger)
}

func newTwilioWhatsAppSender(api messageCreator, from string, logger *slog.Logger) *TwilioWhatsAppSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &TwilioWhatsAppSender{api: api, from: whatsappAddress(from), logger: logger}
}

func (t *TwilioWhatsAppSender) SendWhatsApp(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send whatsapp: %w", err)
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(whatsappAddress(to))
	params.SetFrom(t.from)
	params.SetBody(body)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		t.logger.WarnContext(ctx, "failed to send whatsapp message via twilio",
			"to", maskPhone(to),
			"error", err,
		)
		return fmt.Errorf("send whatsapp: %w", err)
	}
	attrs := []any{"to", maskPhone(to)}
	if resp != nil && resp.Sid != nil {
		attrs = append(attrs, "sid", *resp.Sid)
	}
	t.logger.InfoContext(ctx, "whatsapp message sent", attrs...)
	return nil
}

func whatsappAddress(number string) string {
	number = strings.TrimSpace(number)
	if strings.HasPrefix(number, whatsappScheme) {
		return number
	}
	return whatsappScheme + number
}

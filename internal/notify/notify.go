// Package notify delivers verification emails and WhatsApp messages.
//
// Delivery retries live here, not in callers. The log senders stand in for
// the real providers when credentials are not configured.
package notify

import (
	"context"
	"log/slog"
	"strings"
)

// SendResult reports how a delivery went.
type SendResult struct {
	Success   bool
	MessageID string
	Attempts  int
}

// EmailSender delivers an HTML email.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, html string) (SendResult, error)
}

// MessageSender delivers a WhatsApp text message.
type MessageSender interface {
	SendWhatsApp(ctx context.Context, to, body string) error
}

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (l *LogSender) SendEmail(ctx context.Context, to, subject, html string) (SendResult, error) {
	l.logger.InfoContext(ctx, "email not sent, no provider configured",
		"to", maskEmail(to),
		"subject", subject,
		"bytes", len(html),
	)
	return SendResult{Success: true, Attempts: 1}, nil
}

func (l *LogSender) SendWhatsApp(ctx context.Context, to, body string) error {
	l.logger.InfoContext(ctx, "whatsapp message not sent, no provider configured",
		"to", maskPhone(to),
		"bytes", len(body),
	)
	return nil
}

func maskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	switch {
	case at < 0:
		return "***"
	case at <= 1:
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

func maskPhone(phone string) string {
	if len(phone) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(phone)-4) + phone[len(phone)-4:]
}

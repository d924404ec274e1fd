package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	defaultMaxAttempts = 3
	defaultBaseDelay   = 500 * time.Millisecond
)

// ErrPermanent marks a delivery failure that retrying cannot fix.
var ErrPermanent = errors.New("permanent delivery failure")

type sendgridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender sends email through SendGrid with exponential backoff on
// transport errors, 429 and 5xx responses.
type SendGridSender struct {
	client      sendgridClient
	from        *mail.Email
	logger      *slog.Logger
	maxAttempts int
	baseDelay   time.Duration
}

type SendGridOption func(*SendGridSender)

func WithSendGridLogger(logger *slog.Logger) SendGridOption {
	return func(s *SendGridSender) {
		s.logger = logger
	}
}

// WithRetry sets the attempt budget and the delay before the second attempt.
// Each further delay doubles.
func WithRetry(maxAttempts int, baseDelay time.Duration) SendGridOption {
	return func(s *SendGridSender) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		if baseDelay >= 0 {
			s.baseDelay = baseDelay
		}
	}
}

func withClient(c sendgridClient) SendGridOption {
	return func(s *SendGridSender) {
		s.client = c
	}
}

func NewSendGridSender(apiKey, fromName, fromEmail string, opts ...SendGridOption) *SendGridSender {
	s := &SendGridSender{
		client:      sendgrid.NewSendClient(apiKey),
		from:        mail.NewEmail(fromName, fromEmail),
		logger:      slog.Default(),
		maxAttempts: defaultMaxAttempts,
		baseDelay:   defaultBaseDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SendGridSender) SendEmail(ctx context.Context, to, subject, html string) (SendResult, error) {
	message := mail.NewSingleEmail(s.from, subject, mail.NewEmail("", to), "", html)

	var lastErr error
	delay := s.baseDelay
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return SendResult{Attempts: attempt - 1}, fmt.Errorf("send email: %w", ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := s.client.SendWithContext(ctx, message)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("sendgrid request: %w", err)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = fmt.Errorf("sendgrid returned %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			s.logger.WarnContext(ctx, "sendgrid rejected email",
				"status", resp.StatusCode,
				"to", maskEmail(to),
			)
			return SendResult{Attempts: attempt}, fmt.Errorf("sendgrid returned %d: %w", resp.StatusCode, ErrPermanent)
		default:
			s.logger.InfoContext(ctx, "email sent",
				"to", maskEmail(to),
				"status", resp.StatusCode,
				"attempts", attempt,
			)
			return SendResult{
				Success:   true,
				MessageID: http.Header(resp.Headers).Get("X-Message-Id"),
				Attempts:  attempt,
			}, nil
		}
		s.logger.WarnContext(ctx, "sendgrid send failed",
			"attempt", attempt,
			"error", lastErr,
		)
	}
	return SendResult{Attempts: s.maxAttempts}, fmt.Errorf("send email after %d attempts: %w", s.maxAttempts, lastErr)
}


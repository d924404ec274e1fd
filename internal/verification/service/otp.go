package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"campuspass/internal/verification/emaildomain"
	"campuspass/internal/verification/models"
	"campuspass/internal/verification/otp"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	audit "campuspass/pkg/platform/audit"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/requestcontext"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	codePattern  = regexp.MustCompile(`^[0-9]{4,10}$`)
)

const otpEmailSubject = "Your verification code"

// OTPSent confirms a challenge was stored and delivered.
type OTPSent struct {
	Target    string
	Channel   models.Channel
	ExpiresAt time.Time
}

// RequestOTP creates a challenge for a phone number or email address and
// delivers the code. The channel is inferred from the target when nil.
// A new request replaces any pending challenge for the same target.
func (s *Service) RequestOTP(ctx context.Context, target string, channel *models.Channel) (*OTPSent, error) {
	normalized, ch, err := normalizeOTPTarget(target, channel)
	if err != nil {
		return nil, err
	}

	code, err := otp.Generate(s.otpLength)
	if err != nil {
		return nil, err
	}
	validity := otp.DefaultValidity
	if ch == models.ChannelWhatsApp {
		validity = otp.WhatsAppValidity
	}
	expiresAt := requestcontext.Now(ctx).Add(validity)

	challenge := &models.OTPChallenge{
		Target:    normalized,
		Channel:   ch,
		Code:      code,
		ExpiresAt: expiresAt,
	}
	if err := s.challenges.Save(ctx, challenge); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save otp challenge")
	}

	if err := s.deliverOTP(ctx, normalized, ch, code, validity); err != nil {
		s.logger.WarnContext(ctx, "failed to deliver otp",
			"channel", ch,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to deliver verification code")
	}

	method := methodForChannel(ch)
	if s.metrics != nil {
		s.metrics.IncrementOTPRequest(string(ch))
	}
	s.emit(ctx, audit.Event{
		Action: string(audit.EventOTPRequested),
		Method: string(method),
	})
	return &OTPSent{Target: normalized, Channel: ch, ExpiresAt: expiresAt}, nil
}

// VerifyOTP redeems a challenge. With a student in context the verification is
// recorded for them, provided the target is that student's phone or email.
func (s *Service) VerifyOTP(ctx context.Context, target, code string, studentID *id.StudentID) (*VerificationResult, error) {
	normalized, ch, err := normalizeOTPTarget(target, nil)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if !codePattern.MatchString(code) {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "code must be 4 to 10 digits")
	}

	var result *VerificationResult
	method := methodForChannel(ch)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		challenge, err := s.challenges.Verify(ctx, normalized, code, requestcontext.Now(ctx))
		if err != nil {
			return translateChallenge(err)
		}
		email := ""
		cred := credential{phone: challenge.Target}
		if challenge.Channel == models.ChannelEmail {
			email = challenge.Target
			cred = credential{email: email}
		}
		sid, err := s.ownerOf(ctx, studentID, cred)
		if err != nil {
			return err
		}
		record, err := s.completeVerification(ctx, sid, method)
		if err != nil {
			return err
		}
		result = &VerificationResult{
			Method:    method,
			StudentID: sid,
			Email:     email,
			Record:    record,
		}
		return nil
	})
	s.countVerification(method, err)
	if err != nil {
		s.verificationFailed(ctx, studentID, method, err)
		return nil, err
	}
	s.verificationSucceeded(ctx, result)
	return result, nil
}

func (s *Service) deliverOTP(ctx context.Context, target string, ch models.Channel, code string, validity time.Duration) error {
	minutes := int(validity / time.Minute)
	if ch == models.ChannelWhatsApp {
		body := fmt.Sprintf("Your CampusPass verification code is %s. It expires in %d minutes.", code, minutes)
		return s.whatsapp.SendWhatsApp(ctx, target, body)
	}
	html := fmt.Sprintf(`<p>Your verification code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>`, code, minutes)
	_, err := s.email.SendEmail(ctx, target, otpEmailSubject, html)
	return err
}

// normalizeOTPTarget lower-cases emails and strips spaces and dashes from phone numbers.
func normalizeOTPTarget(target string, channel *models.Channel) (string, models.Channel, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "target is required")
	}
	inferred := models.ChannelWhatsApp
	if strings.Contains(target, "@") {
		inferred = models.ChannelEmail
	}
	if channel != nil {
		if !channel.IsValid() {
			return "", "", dErrors.New(dErrors.CodeInvalidInput, "channel must be whatsapp or email")
		}
		if *channel != inferred {
			return "", "", dErrors.Newf(dErrors.CodeInvalidInput, "target is not a valid %s address", *channel)
		}
	}

	if inferred == models.ChannelEmail {
		if _, err := emaildomain.DomainOf(target); err != nil {
			return "", "", err
		}
		return strings.ToLower(target), inferred, nil
	}
	phone := normalizePhone(target)
	if !phonePattern.MatchString(phone) {
		return "", "", dErrors.New(dErrors.CodeInvalidInput, "phone number is malformed")
	}
	return phone, inferred, nil
}

// normalizePhone strips the separators people type into phone numbers.
func normalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
}

func translateChallenge(err error) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "no pending code for this target")
	case errors.Is(err, sentinel.ErrAlreadyUsed):
		return dErrors.New(dErrors.CodeAlreadyUsed, "code has already been used")
	case errors.Is(err, sentinel.ErrExpired):
		return dErrors.New(dErrors.CodeExpired, "code has expired")
	case errors.Is(err, sentinel.ErrLocked):
		return dErrors.New(dErrors.CodeUnauthorized, "too many attempts")
	case errors.Is(err, sentinel.ErrMismatch):
		return dErrors.New(dErrors.CodeUnauthorized, "code does not match")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to verify code")
	}
}

func methodForChannel(ch models.Channel) models.MethodKind {
	if ch == models.ChannelEmail {
		return models.MethodEmail
	}
	return models.MethodWhatsApp
}

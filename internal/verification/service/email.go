package service

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"

	"campuspass/internal/verification/emaildomain"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	audit "campuspass/pkg/platform/audit"
)

const magicLinkSubject = "Verify your student email"

// MagicLinkSent confirms delivery. The raw token only ever travels in the email.
type MagicLinkSent struct {
	Email     string
	ExpiresAt time.Time
	MessageID string
}

// VerificationResult is the outcome of redeeming a tier credential.
// StudentID and Record are nil when the credential proved an identity that no
// student account claims yet.
type VerificationResult struct {
	Method    models.MethodKind
	StudentID *id.StudentID
	Email     string
	Record    *models.Record
}

// IssueMagicLink checks the email against the university's domains, issues a
// magic-link token and mails it. A named student must own the email and belong
// to the university.
func (s *Service) IssueMagicLink(ctx context.Context, email string, universityID id.UniversityID, studentID *id.StudentID) (*MagicLinkSent, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	university, _, err := s.loadUniversity(ctx, universityID)
	if err != nil {
		return nil, err
	}
	if _, err := emaildomain.IsEmailDomainAllowed(email, university); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotConfigured) {
			s.logger.ErrorContext(ctx, "magic link refused: university has no email domains",
				"university_id", universityID,
				"operator_action", true,
			)
		}
		return nil, err
	}

	uid := universityID
	if studentID != nil && !studentID.IsNil() {
		if _, err := s.ownerOf(ctx, studentID, credential{universityID: &uid, email: email}); err != nil {
			return nil, err
		}
	}

	from := s.journeyStart(ctx, studentID)
	issued, err := s.tokens.IssueMagicLink(ctx, email, &uid, studentID)
	if err != nil {
		return nil, err
	}

	link := s.magicLinkURL(issued.Token)
	result, err := s.email.SendEmail(ctx, email, magicLinkSubject, magicLinkBody(university.Name, link, issued.ExpiresAt))
	if err != nil {
		s.logger.WarnContext(ctx, "failed to send magic link",
			"university_id", universityID,
			"error", err,
		)
		return nil, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "failed to send verification email")
	}

	s.transition(ctx, from, models.JourneyPending, models.MethodEmail)
	if s.metrics != nil {
		s.metrics.IncrementTokenIssued(string(models.TokenKindMagicLink))
	}
	s.emit(ctx, audit.Event{
		StudentID:    studentIDOrNil(studentID),
		UniversityID: universityID,
		Action:       string(audit.EventMagicLinkIssued),
		Method:       string(models.MethodEmail),
	})
	return &MagicLinkSent{Email: email, ExpiresAt: issued.ExpiresAt, MessageID: result.MessageID}, nil
}

// ConsumeMagicLink redeems the token and records the verification in one unit of work.
func (s *Service) ConsumeMagicLink(ctx context.Context, raw string) (*VerificationResult, error) {
	var result *VerificationResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		t, err := s.tokens.Consume(ctx, raw, models.Expectation{Kind: models.TokenKindMagicLink})
		if err != nil {
			return err
		}
		payload := t.MagicLink
		if payload == nil {
			return dErrors.New(dErrors.CodeInternal, "magic link token has no payload")
		}
		studentID, err := s.ownerOf(ctx, payload.StudentID, credential{
			universityID: payload.UniversityID,
			email:        payload.Email,
		})
		if err != nil {
			return err
		}
		record, err := s.completeVerification(ctx, studentID, models.MethodEmail)
		if err != nil {
			return err
		}
		result = &VerificationResult{
			Method:    models.MethodEmail,
			StudentID: studentID,
			Email:     payload.Email,
			Record:    record,
		}
		return nil
	})
	s.countVerification(models.MethodEmail, err)
	if err != nil {
		s.verificationFailed(ctx, nil, models.MethodEmail, err)
		return nil, err
	}
	s.verificationSucceeded(ctx, result)
	return result, nil
}

func (s *Service) verificationSucceeded(ctx context.Context, result *VerificationResult) {
	s.transition(ctx, models.JourneyPending, models.JourneyVerified, result.Method)
	s.emit(ctx, audit.Event{
		StudentID: studentIDOrNil(result.StudentID),
		Action:    string(audit.EventVerificationCompleted),
		Method:    string(result.Method),
		Decision:  audit.DecisionGranted,
	})
}

func (s *Service) verificationFailed(ctx context.Context, studentID *id.StudentID, method models.MethodKind, err error) {
	s.transition(ctx, models.JourneyPending, models.JourneyUnverified, method)
	s.emit(ctx, audit.Event{
		StudentID: studentIDOrNil(studentID),
		Action:    string(audit.EventVerificationFailed),
		Method:    string(method),
		Decision:  audit.DecisionDenied,
		Reason:    string(dErrors.CodeOf(err)),
	})
}

func (s *Service) magicLinkURL(raw string) string {
	base := strings.TrimRight(s.frontendURL, "/")
	return base + "/verify/email?token=" + url.QueryEscape(raw)
}

func magicLinkBody(universityName, link string, expiresAt time.Time) string {
	return fmt.Sprintf(
		`<p>Confirm your %s student email by opening the link below.</p>`+
			`<p><a href="%s">Verify my email</a></p>`+
			`<p>The link works once and expires at %s UTC.</p>`,
		html.EscapeString(universityName),
		html.EscapeString(link),
		expiresAt.UTC().Format("15:04"),
	)
}

package service

import (
	"context"
	"strings"

	unimodels "campuspass/internal/university/models"
	"campuspass/internal/verification/emaildomain"
	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	dErrors "campuspass/pkg/domain-errors"
	audit "campuspass/pkg/platform/audit"
)

// Signals are what the caller already knows about the student.
type Signals struct {
	Email                 string
	HasRegistrationNumber bool
	HasPhoneNumber        bool
}

// DetermineBestMethod walks the university's methods in order and returns the
// first one whose precondition holds. A nil method means none is eligible.
func (s *Service) DetermineBestMethod(ctx context.Context, universityID id.UniversityID, signals Signals) (*models.MethodKind, error) {
	university, available, err := s.loadUniversity(ctx, universityID)
	if err != nil {
		return nil, err
	}

	var chosen *models.MethodKind
	for _, entry := range available {
		if !entry.IsAvailable {
			continue
		}
		if s.eligible(ctx, entry.Method, university, signals) {
			method := entry.Method
			chosen = &method
			break
		}
	}

	label := "none"
	if chosen != nil {
		label = string(*chosen)
	}
	if s.metrics != nil {
		s.metrics.IncrementRecommendation(label)
	}
	s.logger.InfoContext(ctx, "verification method recommended",
		"university_id", universityID,
		"method", label,
	)
	s.emit(ctx, audit.Event{
		UniversityID: universityID,
		Action:       string(audit.EventMethodRecommended),
		Method:       label,
	})
	return chosen, nil
}

func (s *Service) eligible(ctx context.Context, method models.MethodKind, university *unimodels.University, signals Signals) bool {
	switch method {
	case models.MethodPortal:
		return true
	case models.MethodEmail:
		email := strings.TrimSpace(signals.Email)
		if email == "" {
			return false
		}
		_, err := emaildomain.IsEmailDomainAllowed(email, university)
		if err == nil {
			return true
		}
		if dErrors.HasCode(err, dErrors.CodeNotConfigured) {
			s.logger.ErrorContext(ctx, "email tier skipped: university has no email domains",
				"university_id", university.ID,
				"operator_action", true,
			)
		}
		return false
	case models.MethodRegistration:
		return signals.HasRegistrationNumber
	case models.MethodWhatsApp:
		return signals.HasPhoneNumber
	default:
		return false
	}
}

// AcademicCheck is the outcome of a university-agnostic email pre-check.
type AcademicCheck struct {
	Email    string
	Domain   string
	Academic bool
}

// CheckAcademicEmail reports whether email carries a generic academic suffix.
// It backs signup forms that have no university yet and never grants a
// verification; the magic-link tier still checks the university's own domains.
func (s *Service) CheckAcademicEmail(ctx context.Context, email string) (*AcademicCheck, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "email is required")
	}
	domain, err := emaildomain.DomainOf(email)
	if err != nil {
		return nil, err
	}
	academic := emaildomain.IsAcademicEmail(email)
	s.logger.DebugContext(ctx, "academic email pre-check",
		"domain", domain,
		"academic", academic,
	)
	return &AcademicCheck{Email: email, Domain: domain, Academic: academic}, nil
}

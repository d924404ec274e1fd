// Package emaildomain decides whether an email address belongs to a university.
//
// The per-university domain set is authoritative. The generic academic suffix
// list is a lower-trust pre-check for flows with no university in context.
package emaildomain

import (
	"strings"

	unimodels "campuspass/internal/university/models"
	dErrors "campuspass/pkg/domain-errors"
	pstrings "campuspass/pkg/platform/strings"
)

// AcademicSuffixes are accepted by IsAcademicEmail.
var AcademicSuffixes = []string{"edu", "edu.ng", "ac.ng", "sch.ng"}

// Match is a successful domain decision.
type Match struct {
	Allowed       bool
	MatchedDomain string
}

// DomainOf returns the lower-cased part after the last '@'.
func DomainOf(email string) (string, error) {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "email address is malformed")
	}
	domain := strings.ToLower(email[at+1:])
	if strings.ContainsAny(domain, " \t") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return "", dErrors.New(dErrors.CodeInvalidInput, "email address is malformed")
	}
	return domain, nil
}

// IsEmailDomainAllowed checks email against the university's configured domains.
//
// Errors:
//   - invalid_input when the email has no usable domain
//   - not_configured when the university has no domains at all
//   - validation when the domain matches none of them; the message names the accepted domains
func IsEmailDomainAllowed(email string, university *unimodels.University) (Match, error) {
	domain, err := DomainOf(email)
	if err != nil {
		return Match{}, err
	}

	allowed := university.AllowedDomains()
	if len(allowed) == 0 {
		return Match{}, dErrors.New(dErrors.CodeNotConfigured, "no email domains configured for university")
	}

	for _, candidate := range allowed {
		if pstrings.HasLabelSuffix(domain, candidate) {
			return Match{Allowed: true, MatchedDomain: candidate}, nil
		}
	}
	return Match{}, dErrors.New(dErrors.CodeValidation,
		"email domain does not match; use an email ending with "+strings.Join(allowed, ", "))
}

// IsAcademicEmail reports whether email ends in a generic academic suffix.
// Never use this as the decision for a specific university.
func IsAcademicEmail(email string) bool {
	domain, err := DomainOf(email)
	if err != nil {
		return false
	}
	for _, suffix := range AcademicSuffixes {
		if pstrings.HasLabelSuffix(domain, suffix) && domain != suffix {
			return true
		}
	}
	return false
}

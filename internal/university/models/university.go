package models

import (
	vmodels "campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/strings"
)

// DefaultLookupAuthHeader carries the lookup API key when a university names no header.
const DefaultLookupAuthHeader = "X-API-Key"

// University is a tenant. Configured by administrators; read-only here.
//
// Invariants:
//   - email verification requires at least one allowed domain
//   - an inactive university refuses every verification operation
type University struct {
	ID            id.UniversityID
	Name          string
	PrimaryDomain string
	Domains       []string
	Active        bool
	// DatabaseURL is the general registration lookup endpoint; a method-specific
	// endpoint takes precedence.
	DatabaseURL string
	Lookup      LookupConfig
}

// LookupConfig authenticates calls to the university's registration API.
type LookupConfig struct {
	APIKey     string
	AuthHeader string
}

// Header returns the configured auth header name or the default.
func (c LookupConfig) Header() string {
	if c.AuthHeader == "" {
		return DefaultLookupAuthHeader
	}
	return c.AuthHeader
}

// AllowedDomains returns the primary and extra domains, trimmed, lower-cased and
// de-duplicated, primary first.
func (u *University) AllowedDomains() []string {
	all := make([]string, 0, len(u.Domains)+1)
	all = append(all, u.PrimaryDomain)
	all = append(all, u.Domains...)
	return strings.DedupeAndTrimLower(all)
}

// MethodConfig is one configured verification tier for a university.
// Lower Priority sorts first.
type MethodConfig struct {
	UniversityID id.UniversityID
	Method       vmodels.MethodKind
	Active       bool
	Priority     int
	// Endpoint overrides University.DatabaseURL for the registration tier.
	Endpoint string
}

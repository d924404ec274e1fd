package models

import "time"

// VerificationStatus is the externally visible trust state.
type VerificationStatus string

const (
	StatusUnverified VerificationStatus = "unverified"
	StatusVerified   VerificationStatus = "verified"
	StatusExpired    VerificationStatus = "expired"
)

// StatusView is derived at read time and never persisted.
type StatusView struct {
	IsVerified           bool               `json:"is_verified"`
	Status               VerificationStatus `json:"status"`
	LastVerificationDate *time.Time         `json:"last_verification_date,omitempty"`
	Method               *MethodKind        `json:"method,omitempty"`
	ExpiresAt            *time.Time         `json:"expires_at,omitempty"`
}

// DeriveStatus projects the latest record onto a status view.
// Expiry is strict: a record expiring exactly at now is still verified.
func DeriveStatus(latest *Record, now time.Time) StatusView {
	if latest == nil {
		return StatusView{Status: StatusUnverified}
	}

	isExpired := latest.ExpiresAt != nil && now.After(*latest.ExpiresAt)
	persistedVerified := latest.Status == RecordStatusVerified

	status := VerificationStatus(latest.Status)
	if isExpired {
		status = StatusExpired
	}

	verifiedAt := latest.VerifiedAt
	method := latest.Method
	view := StatusView{
		IsVerified:           persistedVerified && !isExpired,
		Status:               status,
		LastVerificationDate: &verifiedAt,
		Method:               &method,
	}
	if latest.ExpiresAt != nil {
		exp := *latest.ExpiresAt
		view.ExpiresAt = &exp
	}
	return view
}

package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into coded domain errors.
//
//   - ErrNotFound: row/key does not exist
//   - ErrExpired: token or challenge is past its validity window
//   - ErrAlreadyUsed: single-use credential was already consumed
//   - ErrOwnerMismatch: credential belongs to a different vendor
//   - ErrMismatch: supplied secret (OTP code) does not match
//   - ErrLocked: too many failed attempts against a challenge
//   - ErrUnavailable: backing service temporarily unavailable
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrExpired       = errors.New("expired")
	ErrAlreadyUsed   = errors.New("already used")
	ErrOwnerMismatch = errors.New("owner mismatch")
	ErrMismatch      = errors.New("mismatch")
	ErrLocked        = errors.New("locked")
	ErrInvalidState  = errors.New("invalid state")
	ErrUnavailable   = errors.New("unavailable")
)

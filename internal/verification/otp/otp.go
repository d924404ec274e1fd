// Package otp generates and time-bounds numeric one-time codes.
// Storage and single-use enforcement belong to the challenge store.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	dErrors "campuspass/pkg/domain-errors"
)

const (
	DefaultLength = 6
	MinLength     = 4
	MaxLength     = 10

	// MaxAttempts wrong codes lock a challenge.
	MaxAttempts = 5
)

// Validity windows.
const (
	DefaultValidity  = 10 * time.Minute
	WhatsAppValidity = 5 * time.Minute
)

// Generate draws a code uniformly from [0, 10^length) with crypto/rand and
// left-pads it with zeros, so every digit string of that length is equally likely.
func Generate(length int) (string, error) {
	if length == 0 {
		length = DefaultLength
	}
	if length < MinLength || length > MaxLength {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "otp length must be between %d and %d", MinLength, MaxLength)
	}
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate otp")
	}
	return fmt.Sprintf("%0*d", length, n.Int64()), nil
}

// IsExpired reports whether now is at or past expiresAt.
func IsExpired(expiresAt, now time.Time) bool {
	return !now.Before(expiresAt)
}

// ExpiryFrom returns now plus the given number of minutes.
func ExpiryFrom(now time.Time, minutes int) time.Time {
	return now.Add(time.Duration(minutes) * time.Minute)
}

// Matches compares codes in constant time.
func Matches(expected, given string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(given)) == 1
}

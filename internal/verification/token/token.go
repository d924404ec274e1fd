// Package token issues and redeems the single-use credentials of the email
// and vendor-widget tiers.
//
// Token strings are an operational prefix ("ml_" or "wt_") followed by
// base64url of 32 random bytes. Only the SHA-256 of the full string is
// persisted, so a leaked table cannot be replayed.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"campuspass/internal/verification/models"
)

const (
	MagicLinkPrefix = "ml_"
	WidgetPrefix    = "wt_"

	entropyBytes = 32
)

func prefixFor(kind models.TokenKind) string {
	if kind == models.TokenKindWidget {
		return WidgetPrefix
	}
	return MagicLinkPrefix
}

// Generate returns a fresh token string for kind.
func Generate(kind models.TokenKind) (string, error) {
	buf := make([]byte, entropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return prefixFor(kind) + base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash is the storage key for a token string.
func Hash(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// wellFormed rejects strings that could never have been issued, so they are
// answered as not found without a store round trip. The prefix is not
// checked against the expected kind here; the store does that.
func wellFormed(raw string) bool {
	var body string
	switch {
	case strings.HasPrefix(raw, MagicLinkPrefix):
		body = strings.TrimPrefix(raw, MagicLinkPrefix)
	case strings.HasPrefix(raw, WidgetPrefix):
		body = strings.TrimPrefix(raw, WidgetPrefix)
	default:
		return false
	}
	decoded, err := base64.RawURLEncoding.DecodeString(body)
	return err == nil && len(decoded) == entropyBytes
}

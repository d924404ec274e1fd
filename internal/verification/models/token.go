package models

import (
	"time"

	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// TokenKind discriminates the two single-use credential kinds.
type TokenKind string

const (
	TokenKindMagicLink TokenKind = "magic_link"
	TokenKindWidget    TokenKind = "widget"
)

// MagicLinkPayload is the owner context of an email verification link.
type MagicLinkPayload struct {
	Email        string
	UniversityID *id.UniversityID
	StudentID    *id.StudentID
}

// WidgetPayload is the owner context of a vendor widget token.
type WidgetPayload struct {
	StudentID id.StudentID
	VendorID  id.VendorID
	ProductID *id.ProductID
}

// Token is a persisted single-use credential. Exactly one of MagicLink or Widget
// is set, matching Kind. Hash is the SHA-256 of the opaque token string; the raw
// string is never stored.
//
// Invariants:
//   - usable only while now < ExpiresAt and UsedAt == nil
//   - UsedAt is written at most once
//   - a widget token is only usable by the vendor it was issued for
type Token struct {
	Hash      string
	Kind      TokenKind
	MagicLink *MagicLinkPayload
	Widget    *WidgetPayload
	IssuedAt  time.Time
	ExpiresAt time.Time
	UsedAt    *time.Time
}

// Expectation is what the presenter of a token claims about it.
type Expectation struct {
	Kind     TokenKind
	VendorID id.VendorID
}

// IsExpired reports whether now is at or past ExpiresAt.
func (t *Token) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *Token) IsUsed() bool {
	return t.UsedAt != nil
}

// Validate runs the consume checks in order: kind, expiry, prior use, ownership.
// A kind mismatch is reported as not found so one kind can never be redeemed as the other.
// Returns a sentinel error; callers translate it.
func (t *Token) Validate(exp Expectation, now time.Time) error {
	if t.Kind != exp.Kind {
		return sentinel.ErrNotFound
	}
	if t.IsExpired(now) {
		return sentinel.ErrExpired
	}
	if t.IsUsed() {
		return sentinel.ErrAlreadyUsed
	}
	if t.Kind == TokenKindWidget {
		if t.Widget == nil || t.Widget.VendorID != exp.VendorID {
			return sentinel.ErrOwnerMismatch
		}
	}
	return nil
}

// MarkUsed records consumption. Call only after Validate returns nil.
func (t *Token) MarkUsed(now time.Time) {
	used := now
	t.UsedAt = &used
}

// Clone returns a deep copy so stores never hand out their own pointers.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	if t.MagicLink != nil {
		ml := *t.MagicLink
		c.MagicLink = &ml
	}
	if t.Widget != nil {
		w := *t.Widget
		c.Widget = &w
	}
	if t.UsedAt != nil {
		u := *t.UsedAt
		c.UsedAt = &u
	}
	return &c
}

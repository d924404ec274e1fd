package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/testutil"
)

func TestCanonicalIndex(t *testing.T) {
	assert.Equal(t, 0, CanonicalIndex(MethodPortal))
	assert.Equal(t, 3, CanonicalIndex(MethodWhatsApp))
	assert.Equal(t, 4, CanonicalIndex(MethodKind("sms")))

	_, err := ParseMethodKind("sms")
	require.Error(t, err)
	m, err := ParseMethodKind("email")
	require.NoError(t, err)
	assert.Equal(t, MethodEmail, m)
}

func TestTokenValidate(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	vendor := id.VendorID(uuid.New())
	other := id.VendorID(uuid.New())

	widget := func() *Token {
		return &Token{
			Kind:      TokenKindWidget,
			Widget:    &WidgetPayload{StudentID: id.StudentID(uuid.New()), VendorID: vendor},
			IssuedAt:  now.Add(-time.Minute),
			ExpiresAt: now.Add(time.Minute),
		}
	}

	t.Run("valid widget token", func(t *testing.T) {
		assert.NoError(t, widget().Validate(Expectation{Kind: TokenKindWidget, VendorID: vendor}, now))
	})

	t.Run("kind mismatch reads as not found", func(t *testing.T) {
		err := widget().Validate(Expectation{Kind: TokenKindMagicLink}, now)
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("expiry is checked before prior use", func(t *testing.T) {
		tok := widget()
		tok.MarkUsed(now.Add(-30 * time.Second))
		err := tok.Validate(Expectation{Kind: TokenKindWidget, VendorID: vendor}, tok.ExpiresAt)
		assert.ErrorIs(t, err, sentinel.ErrExpired)
	})

	t.Run("used token", func(t *testing.T) {
		tok := widget()
		tok.MarkUsed(now)
		err := tok.Validate(Expectation{Kind: TokenKindWidget, VendorID: vendor}, now)
		assert.ErrorIs(t, err, sentinel.ErrAlreadyUsed)
	})

	t.Run("other vendor", func(t *testing.T) {
		err := widget().Validate(Expectation{Kind: TokenKindWidget, VendorID: other}, now)
		assert.ErrorIs(t, err, sentinel.ErrOwnerMismatch)
	})
}

func TestTokenClone(t *testing.T) {
	uni := id.UniversityID(uuid.New())
	tok := &Token{Kind: TokenKindMagicLink, MagicLink: &MagicLinkPayload{Email: "a@unilag.edu.ng", UniversityID: &uni}}
	c := tok.Clone()
	c.MagicLink.Email = "changed"
	c.MarkUsed(time.Now())
	assert.Equal(t, "a@unilag.edu.ng", tok.MagicLink.Email)
	assert.Nil(t, tok.UsedAt)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	student := id.StudentID(uuid.New())

	t.Run("no record", func(t *testing.T) {
		view := DeriveStatus(nil, now)
		assert.False(t, view.IsVerified)
		assert.Equal(t, StatusUnverified, view.Status)
		assert.Nil(t, view.Method)
	})

	t.Run("active record", func(t *testing.T) {
		rec := NewVerifiedRecord(id.RecordID(uuid.New()), student, MethodEmail, now.Add(-time.Hour), 24*time.Hour)
		view := DeriveStatus(rec, now)
		assert.True(t, view.IsVerified)
		assert.Equal(t, StatusVerified, view.Status)
		require.NotNil(t, view.Method)
		assert.Equal(t, MethodEmail, *view.Method)
	})

	t.Run("past expiry reports expired despite verified flag", func(t *testing.T) {
		rec := NewVerifiedRecord(id.RecordID(uuid.New()), student, MethodRegistration, now.Add(-48*time.Hour), 24*time.Hour)
		require.Equal(t, RecordStatusVerified, rec.Status)
		view := DeriveStatus(rec, now)
		assert.False(t, view.IsVerified)
		assert.Equal(t, StatusExpired, view.Status)
	})

	t.Run("expiry is strict", func(t *testing.T) {
		rec := NewVerifiedRecord(id.RecordID(uuid.New()), student, MethodEmail, now.Add(-time.Hour), time.Hour)
		view := DeriveStatus(rec, now)
		assert.True(t, view.IsVerified)
	})

	t.Run("no horizon never expires", func(t *testing.T) {
		rec := NewVerifiedRecord(id.RecordID(uuid.New()), student, MethodPortal, now.Add(-10*365*24*time.Hour), 0)
		view := DeriveStatus(rec, now)
		assert.True(t, view.IsVerified)
		assert.Nil(t, view.ExpiresAt)
	})
}

func TestJourneyTransitions(t *testing.T) {
	allowed := map[[2]JourneyState]bool{
		{JourneyUnverified, JourneyPending}: true,
		{JourneyPending, JourneyVerified}:   true,
		{JourneyPending, JourneyUnverified}: true,
		{JourneyVerified, JourneyExpired}:   true,
		{JourneyExpired, JourneyPending}:    true,
	}
	states := []JourneyState{JourneyUnverified, JourneyPending, JourneyVerified, JourneyExpired}
	for _, from := range states {
		for _, to := range states {
			assert.Equal(t, allowed[[2]JourneyState{from, to}], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, JourneyExpired.CanTransitionTo(JourneyVerified))
}

func TestRecordLifecycle(t *testing.T) {
	verifiedAt := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	horizon := 365 * 24 * time.Hour
	var rec *Record

	testutil.Given(t, "a student verified by registration number", func(t *testing.T) {
		rec = NewVerifiedRecord(id.RecordID(uuid.New()), id.StudentID(uuid.New()), MethodRegistration, verifiedAt, horizon)
		require.NotNil(t, rec.ExpiresAt)
		assert.Equal(t, verifiedAt.Add(horizon), *rec.ExpiresAt)
	})

	testutil.When(t, "the academic year is still running", func(t *testing.T) {
		view := DeriveStatus(rec, verifiedAt.Add(200*24*time.Hour))
		assert.True(t, view.IsVerified)
		assert.Equal(t, StatusVerified, view.Status)
	})

	testutil.Then(t, "the record lapses once the horizon has passed", func(t *testing.T) {
		view := DeriveStatus(rec, verifiedAt.Add(horizon+time.Second))
		assert.False(t, view.IsVerified)
		assert.Equal(t, StatusExpired, view.Status)
		require.NotNil(t, view.LastVerificationDate)
		assert.Equal(t, verifiedAt, *view.LastVerificationDate)
	})
}

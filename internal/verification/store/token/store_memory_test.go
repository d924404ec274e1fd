package token

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

type TokenStoreSuite struct {
	suite.Suite
	store *InMemoryTokenStore
	now   time.Time
}

func TestTokenStoreSuite(t *testing.T) {
	suite.Run(t, new(TokenStoreSuite))
}

func (s *TokenStoreSuite) SetupTest() {
	s.store = New()
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *TokenStoreSuite) widgetToken(hash string, vendorID id.VendorID, ttl time.Duration) *models.Token {
	return &models.Token{
		Hash:      hash,
		Kind:      models.TokenKindWidget,
		Widget:    &models.WidgetPayload{StudentID: id.StudentID(uuid.New()), VendorID: vendorID},
		IssuedAt:  s.now,
		ExpiresAt: s.now.Add(ttl),
	}
}

func (s *TokenStoreSuite) magicLink(hash string, ttl time.Duration) *models.Token {
	return &models.Token{
		Hash:      hash,
		Kind:      models.TokenKindMagicLink,
		MagicLink: &models.MagicLinkPayload{Email: "ada@unilag.edu.ng"},
		IssuedAt:  s.now,
		ExpiresAt: s.now.Add(ttl),
	}
}

func (s *TokenStoreSuite) TestCreate() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.magicLink("h1", time.Minute)))

	s.Run("duplicate hash conflicts", func() {
		err := s.store.Create(ctx, s.magicLink("h1", time.Minute))
		s.ErrorIs(err, sentinel.ErrConflict)
	})
}

func (s *TokenStoreSuite) TestConsume() {
	ctx := context.Background()
	vendorID := id.VendorID(uuid.New())

	s.Run("fresh token is consumed once", func() {
		s.Require().NoError(s.store.Create(ctx, s.magicLink("ml-1", 15*time.Minute)))
		exp := models.Expectation{Kind: models.TokenKindMagicLink}

		t, err := s.store.Consume(ctx, "ml-1", exp, s.now.Add(time.Minute))
		s.Require().NoError(err)
		s.Require().NotNil(t.UsedAt)
		s.Equal("ada@unilag.edu.ng", t.MagicLink.Email)

		_, err = s.store.Consume(ctx, "ml-1", exp, s.now.Add(2*time.Minute))
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("unknown hash is not found", func() {
		_, err := s.store.Consume(ctx, "missing", models.Expectation{Kind: models.TokenKindMagicLink}, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("expiry boundary is exclusive", func() {
		s.Require().NoError(s.store.Create(ctx, s.magicLink("ml-exp", time.Minute)))
		_, err := s.store.Consume(ctx, "ml-exp", models.Expectation{Kind: models.TokenKindMagicLink}, s.now.Add(time.Minute))
		s.ErrorIs(err, sentinel.ErrExpired)
	})

	s.Run("expired and used reports expired", func() {
		s.Require().NoError(s.store.Create(ctx, s.magicLink("ml-both", time.Minute)))
		exp := models.Expectation{Kind: models.TokenKindMagicLink}
		_, err := s.store.Consume(ctx, "ml-both", exp, s.now)
		s.Require().NoError(err)
		_, err = s.store.Consume(ctx, "ml-both", exp, s.now.Add(time.Hour))
		s.ErrorIs(err, sentinel.ErrExpired)
	})

	s.Run("kind mismatch is not found", func() {
		s.Require().NoError(s.store.Create(ctx, s.widgetToken("wt-kind", vendorID, time.Minute)))
		_, err := s.store.Consume(ctx, "wt-kind", models.Expectation{Kind: models.TokenKindMagicLink}, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("other vendor is rejected without consuming", func() {
		s.Require().NoError(s.store.Create(ctx, s.widgetToken("wt-owner", vendorID, time.Minute)))
		_, err := s.store.Consume(ctx, "wt-owner", models.Expectation{Kind: models.TokenKindWidget, VendorID: id.VendorID(uuid.New())}, s.now)
		s.ErrorIs(err, sentinel.ErrOwnerMismatch)

		t, err := s.store.Consume(ctx, "wt-owner", models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}, s.now)
		s.Require().NoError(err)
		s.Equal(vendorID, t.Widget.VendorID)
	})
}

func (s *TokenStoreSuite) TestPeekDoesNotConsume() {
	ctx := context.Background()
	vendorID := id.VendorID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.widgetToken("wt-peek", vendorID, time.Minute)))
	exp := models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}

	for range 3 {
		t, err := s.store.Peek(ctx, "wt-peek", exp, s.now)
		s.Require().NoError(err)
		s.Nil(t.UsedAt)
	}
	_, err := s.store.Consume(ctx, "wt-peek", exp, s.now)
	s.NoError(err)
}

func (s *TokenStoreSuite) TestConcurrentConsumeHasOneWinner() {
	ctx := context.Background()
	vendorID := id.VendorID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.widgetToken("wt-race", vendorID, time.Minute)))
	exp := models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
		used      atomic.Int32
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.store.Consume(ctx, "wt-race", exp, s.now)
			switch {
			case err == nil:
				successes.Add(1)
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				used.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), successes.Load())
	s.Equal(int32(49), used.Load())
}

func (s *TokenStoreSuite) TestReturnedTokenIsACopy() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.magicLink("ml-copy", time.Minute)))
	t, err := s.store.Peek(ctx, "ml-copy", models.Expectation{Kind: models.TokenKindMagicLink}, s.now)
	s.Require().NoError(err)
	t.MagicLink.Email = "changed@example.com"

	again, err := s.store.Peek(ctx, "ml-copy", models.Expectation{Kind: models.TokenKindMagicLink}, s.now)
	s.Require().NoError(err)
	s.Equal("ada@unilag.edu.ng", again.MagicLink.Email)
}

func (s *TokenStoreSuite) TestExpiredTokensAreRetained() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, s.magicLink("old", time.Minute)))
	exp := models.Expectation{Kind: models.TokenKindMagicLink}

	for i := 0; i < 2; i++ {
		_, err := s.store.Peek(ctx, "old", exp, s.now.Add(24*time.Hour))
		s.ErrorIs(err, sentinel.ErrExpired)
	}
	err := s.store.Create(ctx, s.magicLink("old", time.Hour))
	s.ErrorIs(err, sentinel.ErrConflict)
}

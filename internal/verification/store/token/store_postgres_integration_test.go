//go:build integration

package token_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campuspass/internal/platform/postgres"
	"campuspass/internal/verification/models"
	tokenstore "campuspass/internal/verification/store/token"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/testutil/containers"
)

type PostgresTokenStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *tokenstore.PostgresStore
	now      time.Time
}

func TestPostgresTokenStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresTokenStoreSuite))
}

func (s *PostgresTokenStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.Require().NoError(postgres.ApplySchema(context.Background(), s.postgres.DB))
	s.store = tokenstore.NewPostgres(s.postgres.DB)
	s.now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *PostgresTokenStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "verification_tokens"))
}

func (s *PostgresTokenStoreSuite) widget(hash string, vendorID id.VendorID) *models.Token {
	productID := id.ProductID(uuid.New())
	return &models.Token{
		Hash: hash,
		Kind: models.TokenKindWidget,
		Widget: &models.WidgetPayload{
			StudentID: id.StudentID(uuid.New()),
			VendorID:  vendorID,
			ProductID: &productID,
		},
		IssuedAt:  s.now,
		ExpiresAt: s.now.Add(30 * time.Minute),
	}
}

func (s *PostgresTokenStoreSuite) TestMagicLinkRoundTrip() {
	ctx := context.Background()
	universityID := id.UniversityID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, &models.Token{
		Hash:      "ml-1",
		Kind:      models.TokenKindMagicLink,
		MagicLink: &models.MagicLinkPayload{Email: "ada@unilag.edu.ng", UniversityID: &universityID},
		IssuedAt:  s.now,
		ExpiresAt: s.now.Add(15 * time.Minute),
	}))

	exp := models.Expectation{Kind: models.TokenKindMagicLink}
	t, err := s.store.Consume(ctx, "ml-1", exp, s.now.Add(time.Minute))
	s.Require().NoError(err)
	s.Equal("ada@unilag.edu.ng", t.MagicLink.Email)
	s.Require().NotNil(t.MagicLink.UniversityID)
	s.Equal(universityID, *t.MagicLink.UniversityID)
	s.Nil(t.MagicLink.StudentID)

	_, err = s.store.Consume(ctx, "ml-1", exp, s.now.Add(2*time.Minute))
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)
}

func (s *PostgresTokenStoreSuite) TestRefusalsAreClassified() {
	ctx := context.Background()
	vendorID := id.VendorID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.widget("wt-1", vendorID)))

	s.Run("duplicate create conflicts", func() {
		s.ErrorIs(s.store.Create(ctx, s.widget("wt-1", vendorID)), sentinel.ErrConflict)
	})
	s.Run("missing", func() {
		_, err := s.store.Consume(ctx, "nope", models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.Run("wrong kind", func() {
		_, err := s.store.Consume(ctx, "wt-1", models.Expectation{Kind: models.TokenKindMagicLink}, s.now)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.Run("wrong vendor", func() {
		_, err := s.store.Consume(ctx, "wt-1", models.Expectation{Kind: models.TokenKindWidget, VendorID: id.VendorID(uuid.New())}, s.now)
		s.ErrorIs(err, sentinel.ErrOwnerMismatch)
	})
	s.Run("expired", func() {
		_, err := s.store.Consume(ctx, "wt-1", models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}, s.now.Add(30*time.Minute))
		s.ErrorIs(err, sentinel.ErrExpired)
	})
	s.Run("peek leaves token usable", func() {
		t, err := s.store.Peek(ctx, "wt-1", models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}, s.now)
		s.Require().NoError(err)
		s.Nil(t.UsedAt)
		s.Require().NotNil(t.Widget.ProductID)
	})
}

func (s *PostgresTokenStoreSuite) TestConcurrentConsumeHasOneWinner() {
	ctx := context.Background()
	vendorID := id.VendorID(uuid.New())
	s.Require().NoError(s.store.Create(ctx, s.widget("wt-race", vendorID)))
	exp := models.Expectation{Kind: models.TokenKindWidget, VendorID: vendorID}

	var (
		wg        sync.WaitGroup
		successes atomic.Int32
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.store.Consume(ctx, "wt-race", exp, s.now); err == nil {
				successes.Add(1)
			}
		}()
	}
	wg.Wait()
	s.Equal(int32(1), successes.Load())
}

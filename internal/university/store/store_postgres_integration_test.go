//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campuspass/internal/platform/postgres"
	"campuspass/internal/university/models"
	"campuspass/internal/university/store"
	vmodels "campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.Require().NoError(postgres.ApplySchema(context.Background(), s.postgres.DB))
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	err := s.postgres.TruncateTables(context.Background(), "verification_method_configs", "universities")
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestRoundTripsDomainsArray() {
	ctx := context.Background()
	u := &models.University{
		ID:            id.UniversityID(uuid.New()),
		Name:          "University of Lagos",
		PrimaryDomain: "unilag.edu.ng",
		Domains:       []string{"live.unilag.edu.ng", "staff.unilag.edu.ng"},
		Active:        true,
		DatabaseURL:   "https://registry.unilag.edu.ng/lookup",
		Lookup:        models.LookupConfig{APIKey: "k", AuthHeader: "X-Registry-Key"},
	}
	s.Require().NoError(s.store.Upsert(ctx, u))

	found, err := s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.ID, found.ID)
	s.Equal(u.Domains, found.Domains)
	s.Equal("X-Registry-Key", found.Lookup.Header())

	_, err = s.store.FindByID(ctx, id.UniversityID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListMethodConfigsOrdersByPriority() {
	ctx := context.Background()
	u := &models.University{ID: id.UniversityID(uuid.New()), Name: "UI", Active: true}
	s.Require().NoError(s.store.Upsert(ctx, u))
	s.Require().NoError(s.store.UpsertMethodConfig(ctx, models.MethodConfig{UniversityID: u.ID, Method: vmodels.MethodEmail, Active: true, Priority: 2}))
	s.Require().NoError(s.store.UpsertMethodConfig(ctx, models.MethodConfig{UniversityID: u.ID, Method: vmodels.MethodRegistration, Active: false, Priority: 1, Endpoint: "https://x"}))

	configs, err := s.store.ListMethodConfigs(ctx, u.ID)
	s.Require().NoError(err)
	s.Require().Len(configs, 2)
	s.Equal(vmodels.MethodRegistration, configs[0].Method)
	s.False(configs[0].Active)
	s.Equal("https://x", configs[0].Endpoint)
	s.Equal(u.ID, configs[0].UniversityID)
}

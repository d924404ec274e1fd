package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campuspass/internal/university/models"
	vmodels "campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

type UniversityStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *UniversityStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestUniversityStoreSuite(t *testing.T) {
	suite.Run(t, new(UniversityStoreSuite))
}

func (s *UniversityStoreSuite) TestFindByID() {
	u := &models.University{ID: id.UniversityID(uuid.New()), Name: "Unilag", PrimaryDomain: "unilag.edu.ng", Active: true}
	s.store.Put(u)

	s.Run("returns a copy", func() {
		found, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("Unilag", found.Name)
		found.Name = "mutated"

		again, err := s.store.FindByID(s.ctx, u.ID)
		s.Require().NoError(err)
		s.Equal("Unilag", again.Name)
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.UniversityID(uuid.New()))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *UniversityStoreSuite) TestListMethodConfigs() {
	uniID := id.UniversityID(uuid.New())

	s.Run("empty when unconfigured", func() {
		configs, err := s.store.ListMethodConfigs(s.ctx, uniID)
		s.Require().NoError(err)
		s.Empty(configs)
	})

	s.Run("returns configured rows", func() {
		s.store.PutMethodConfigs(uniID, []models.MethodConfig{
			{UniversityID: uniID, Method: vmodels.MethodRegistration, Active: true, Priority: 0},
			{UniversityID: uniID, Method: vmodels.MethodEmail, Active: true, Priority: 1},
		})
		configs, err := s.store.ListMethodConfigs(s.ctx, uniID)
		s.Require().NoError(err)
		s.Len(configs, 2)
		s.Equal(vmodels.MethodRegistration, configs[0].Method)
	})
}

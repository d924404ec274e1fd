package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"campuspass/internal/directory/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

type DirectoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *DirectoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestDirectoryStoreSuite(t *testing.T) {
	suite.Run(t, new(DirectoryStoreSuite))
}

func (s *DirectoryStoreSuite) TestStudents() {
	st := models.Student{ID: id.StudentID(uuid.New()), Email: "Ada@Unilag.edu.ng", Active: true}
	s.store.PutStudent(st)

	s.Run("by id", func() {
		found, err := s.store.FindStudent(s.ctx, st.ID)
		s.Require().NoError(err)
		s.Equal(st.Email, found.Email)
	})

	s.Run("by email ignores case", func() {
		found, err := s.store.FindStudentByEmail(s.ctx, "ada@unilag.edu.ng")
		s.Require().NoError(err)
		s.Equal(st.ID, found.ID)
	})

	s.Run("unknown", func() {
		_, err := s.store.FindStudentByEmail(s.ctx, "nobody@unilag.edu.ng")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *DirectoryStoreSuite) TestVendorsAndProducts() {
	vendor := models.Vendor{ID: id.VendorID(uuid.New()), Name: "Campus Books", Active: true}
	product := models.Product{ID: id.ProductID(uuid.New()), VendorID: vendor.ID, Name: "Textbook"}
	s.store.PutVendor(vendor)
	s.store.PutProduct(product)

	found, err := s.store.FindProduct(s.ctx, product.ID)
	s.Require().NoError(err)
	s.True(found.BelongsTo(vendor.ID))
	s.False(found.BelongsTo(id.VendorID(uuid.New())))

	_, err = s.store.FindVendor(s.ctx, id.VendorID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

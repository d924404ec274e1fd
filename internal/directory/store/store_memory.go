package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"campuspass/internal/directory/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// InMemory is a directory of students, vendors and products for tests/dev.
type InMemory struct {
	mu       sync.RWMutex
	students map[id.StudentID]models.Student
	vendors  map[id.VendorID]models.Vendor
	products map[id.ProductID]models.Product
}

func NewInMemory() *InMemory {
	return &InMemory{
		students: make(map[id.StudentID]models.Student),
		vendors:  make(map[id.VendorID]models.Vendor),
		products: make(map[id.ProductID]models.Product),
	}
}

func (s *InMemory) PutStudent(st models.Student) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students[st.ID] = st
}

func (s *InMemory) PutVendor(v models.Vendor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendors[v.ID] = v
}

func (s *InMemory) PutProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *InMemory) FindStudent(_ context.Context, studentID id.StudentID) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.students[studentID]
	if !ok {
		return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
	}
	return &st, nil
}

// FindStudentByEmail matches case-insensitively.
func (s *InMemory) FindStudentByEmail(_ context.Context, email string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, st := range s.students {
		if strings.EqualFold(st.Email, email) {
			found := st
			return &found, nil
		}
	}
	return nil, fmt.Errorf("student not found: %w", sentinel.ErrNotFound)
}

func (s *InMemory) FindVendor(_ context.Context, vendorID id.VendorID) (*models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vendors[vendorID]
	if !ok {
		return nil, fmt.Errorf("vendor not found: %w", sentinel.ErrNotFound)
	}
	return &v, nil
}

func (s *InMemory) FindProduct(_ context.Context, productID id.ProductID) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("product not found: %w", sentinel.ErrNotFound)
	}
	return &p, nil
}

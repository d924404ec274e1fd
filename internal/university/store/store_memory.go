package store

import (
	"context"
	"fmt"
	"sync"

	"campuspass/internal/university/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// InMemory holds universities and their method configuration for tests/dev.
type InMemory struct {
	mu           sync.RWMutex
	universities map[id.UniversityID]*models.University
	methods      map[id.UniversityID][]models.MethodConfig
}

// NewInMemory constructs an empty in-memory university store.
func NewInMemory() *InMemory {
	return &InMemory{
		universities: make(map[id.UniversityID]*models.University),
		methods:      make(map[id.UniversityID][]models.MethodConfig),
	}
}

// Put inserts or replaces a university. Seeding only; the orchestrator never writes.
func (s *InMemory) Put(u *models.University) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *u
	c.Domains = append([]string(nil), u.Domains...)
	s.universities[u.ID] = &c
}

// PutMethodConfigs replaces the method configuration of a university.
func (s *InMemory) PutMethodConfigs(universityID id.UniversityID, configs []models.MethodConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods[universityID] = append([]models.MethodConfig(nil), configs...)
}

func (s *InMemory) FindByID(_ context.Context, universityID id.UniversityID) (*models.University, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.universities[universityID]
	if !ok {
		return nil, fmt.Errorf("university not found: %w", sentinel.ErrNotFound)
	}
	c := *u
	c.Domains = append([]string(nil), u.Domains...)
	return &c, nil
}

func (s *InMemory) ListMethodConfigs(_ context.Context, universityID id.UniversityID) ([]models.MethodConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.MethodConfig(nil), s.methods[universityID]...), nil
}

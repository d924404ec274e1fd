package record

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"campuspass/internal/verification/models"
	id "campuspass/pkg/domain"
	"campuspass/pkg/platform/sentinel"
)

// InMemoryRecordStore keeps verification records per student in insertion order.
type InMemoryRecordStore struct {
	mu      sync.RWMutex
	records map[id.StudentID][]models.Record
}

func New() *InMemoryRecordStore {
	return &InMemoryRecordStore{records: make(map[id.StudentID][]models.Record)}
}

func (s *InMemoryRecordStore) Create(_ context.Context, r *models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.records[r.StudentID] {
		if existing.ID == r.ID {
			return fmt.Errorf("record already exists: %w", sentinel.ErrConflict)
		}
	}
	s.records[r.StudentID] = append(s.records[r.StudentID], cloneRecord(*r))
	return nil
}

// LatestByStudent returns the record with the greatest VerifiedAt. Ties go to
// the record written last.
func (s *InMemoryRecordStore) LatestByStudent(_ context.Context, studentID id.StudentID) (*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.records[studentID]
	if len(rs) == 0 {
		return nil, fmt.Errorf("verification record not found: %w", sentinel.ErrNotFound)
	}
	latest := rs[0]
	for _, r := range rs[1:] {
		if !r.VerifiedAt.Before(latest.VerifiedAt) {
			latest = r
		}
	}
	out := cloneRecord(latest)
	return &out, nil
}

// ListByStudent returns records newest first.
func (s *InMemoryRecordStore) ListByStudent(_ context.Context, studentID id.StudentID) ([]*models.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.records[studentID]
	out := make([]*models.Record, 0, len(rs))
	for i := len(rs) - 1; i >= 0; i-- {
		r := cloneRecord(rs[i])
		out = append(out, &r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VerifiedAt.After(out[j].VerifiedAt)
	})
	return out, nil
}

func cloneRecord(r models.Record) models.Record {
	if r.ExpiresAt != nil {
		exp := *r.ExpiresAt
		r.ExpiresAt = &exp
	}
	return r
}

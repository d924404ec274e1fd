package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"campuspass/internal/verification/models"
	"campuspass/pkg/platform/sentinel"
)

// Error Contract:
// - ErrNotFound when no token has the hash, or the kind differs from the expectation
// - ErrExpired, ErrAlreadyUsed, ErrOwnerMismatch from validation, in that order
// - ErrConflict when Create sees a hash that already exists

// InMemoryTokenStore keeps tokens keyed by hash for tests and single-process dev.
type InMemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*models.Token
}

func New() *InMemoryTokenStore {
	return &InMemoryTokenStore{tokens: make(map[string]*models.Token)}
}

func (s *InMemoryTokenStore) Create(_ context.Context, t *models.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.tokens[t.Hash]; exists {
		return fmt.Errorf("token already exists: %w", sentinel.ErrConflict)
	}
	s.tokens[t.Hash] = t.Clone()
	return nil
}

// Consume validates and marks the token used under one lock, so of two
// concurrent callers exactly one succeeds.
func (s *InMemoryTokenStore) Consume(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error) {
	return s.Execute(ctx, hash,
		func(t *models.Token) error { return t.Validate(exp, now) },
		func(t *models.Token) { t.MarkUsed(now) },
	)
}

// Peek runs the consume checks without marking the token used.
func (s *InMemoryTokenStore) Peek(ctx context.Context, hash string, exp models.Expectation, now time.Time) (*models.Token, error) {
	return s.Execute(ctx, hash,
		func(t *models.Token) error { return t.Validate(exp, now) },
		func(*models.Token) {},
	)
}

// Execute runs validate then mutate on the stored token while holding the lock.
// mutate is skipped when validate fails.
func (s *InMemoryTokenStore) Execute(_ context.Context, hash string, validate func(*models.Token) error, mutate func(*models.Token)) (*models.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tokens[hash]
	if !ok {
		return nil, fmt.Errorf("token not found: %w", sentinel.ErrNotFound)
	}
	if err := validate(t); err != nil {
		return nil, fmt.Errorf("token rejected: %w", err)
	}
	mutate(t)
	return t.Clone(), nil
}

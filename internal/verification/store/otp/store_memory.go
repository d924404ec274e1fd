package otp

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"campuspass/internal/verification/models"
	"campuspass/internal/verification/otp"
	"campuspass/pkg/platform/sentinel"
)

// Error Contract for Verify, checked in order:
// - ErrNotFound: no challenge for the target
// - ErrAlreadyUsed: the challenge was redeemed
// - ErrExpired: now is at or past ExpiresAt
// - ErrLocked: MaxAttempts wrong codes were already submitted
// - ErrMismatch: wrong code; the attempt is counted

// InMemoryChallengeStore keeps one challenge per target.
type InMemoryChallengeStore struct {
	mu         sync.Mutex
	challenges map[string]*models.OTPChallenge
}

func New() *InMemoryChallengeStore {
	return &InMemoryChallengeStore{challenges: make(map[string]*models.OTPChallenge)}
}

// Save replaces any pending challenge for the same target.
func (s *InMemoryChallengeStore) Save(_ context.Context, c *models.OTPChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *c
	cp.UsedAt = nil
	cp.Attempts = 0
	s.challenges[normalizeTarget(c.Target)] = &cp
	return nil
}

func (s *InMemoryChallengeStore) Verify(_ context.Context, target, code string, now time.Time) (*models.OTPChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.challenges[normalizeTarget(target)]
	if !ok {
		return nil, fmt.Errorf("otp challenge not found: %w", sentinel.ErrNotFound)
	}
	if c.UsedAt != nil {
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrAlreadyUsed)
	}
	if otp.IsExpired(c.ExpiresAt, now) {
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrExpired)
	}
	if c.Attempts >= otp.MaxAttempts {
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrLocked)
	}
	if !otp.Matches(c.Code, code) {
		c.Attempts++
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrMismatch)
	}
	used := now
	c.UsedAt = &used
	out := *c
	return &out, nil
}

func normalizeTarget(target string) string {
	return strings.ToLower(strings.TrimSpace(target))
}

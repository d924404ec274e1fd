package otp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"campuspass/internal/verification/models"
	"campuspass/internal/verification/otp"
	"campuspass/pkg/platform/sentinel"
)

var verifyDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "campuspass_otp_verify_duration_ms",
	Help:    "Latency of Redis OTP verification in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const (
	challengeKeyPrefix = "otp:challenge:"

	// expiredRetention keeps a challenge readable past its expiry so a late
	// attempt is reported as expired instead of not found.
	expiredRetention = time.Hour
)

// verifyScript checks and redeems a challenge atomically.
// KEYS[1] challenge hash; ARGV[1] code, ARGV[2] now (unix ms), ARGV[3] max attempts.
var verifyScript = redis.NewScript(`
local key = KEYS[1]
if redis.call('EXISTS', key) == 0 then
	return {'not_found'}
end
local h = redis.call('HMGET', key, 'code', 'expires_at', 'used_at', 'attempts', 'channel', 'target')
if h[3] and h[3] ~= '' then
	return {'already_used'}
end
local now = tonumber(ARGV[2])
if now >= tonumber(h[2]) then
	return {'expired'}
end
local attempts = tonumber(h[4]) or 0
if attempts >= tonumber(ARGV[3]) then
	return {'locked'}
end
if h[1] ~= ARGV[1] then
	redis.call('HINCRBY', key, 'attempts', 1)
	return {'mismatch'}
end
redis.call('HSET', key, 'used_at', ARGV[2])
return {'ok', h[6], h[5], h[2], tostring(attempts)}
`)

// RedisChallengeStore keeps OTP challenges in Redis hashes so every instance
// sees the same attempt counter.
type RedisChallengeStore struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *RedisChallengeStore {
	return &RedisChallengeStore{client: client}
}

func challengeKey(target string) string {
	return challengeKeyPrefix + normalizeTarget(target)
}

// Save replaces any pending challenge for the same target.
func (s *RedisChallengeStore) Save(ctx context.Context, c *models.OTPChallenge) error {
	key := challengeKey(c.Target)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key,
			"target", c.Target,
			"channel", string(c.Channel),
			"code", c.Code,
			"expires_at", strconv.FormatInt(c.ExpiresAt.UnixMilli(), 10),
			"used_at", "",
			"attempts", "0",
		)
		pipe.PExpireAt(ctx, key, c.ExpiresAt.Add(expiredRetention))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save otp challenge: %w", err)
	}
	return nil
}

func (s *RedisChallengeStore) Verify(ctx context.Context, target, code string, now time.Time) (*models.OTPChallenge, error) {
	start := time.Now()
	defer func() {
		verifyDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	res, err := verifyScript.Run(ctx, s.client,
		[]string{challengeKey(target)},
		code, strconv.FormatInt(now.UnixMilli(), 10), otp.MaxAttempts,
	).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("verify otp challenge: %w", err)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("verify otp challenge: empty script result")
	}

	switch res[0] {
	case "not_found":
		return nil, fmt.Errorf("otp challenge not found: %w", sentinel.ErrNotFound)
	case "already_used":
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrAlreadyUsed)
	case "expired":
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrExpired)
	case "locked":
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrLocked)
	case "mismatch":
		return nil, fmt.Errorf("otp challenge: %w", sentinel.ErrMismatch)
	case "ok":
		if len(res) < 5 {
			return nil, fmt.Errorf("verify otp challenge: short script result")
		}
		expiresMs, err := strconv.ParseInt(res[3], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("verify otp challenge: parse expiry: %w", err)
		}
		attempts, _ := strconv.Atoi(res[4])
		used := now
		return &models.OTPChallenge{
			Target:    res[1],
			Channel:   models.Channel(res[2]),
			Code:      code,
			ExpiresAt: time.UnixMilli(expiresMs).UTC(),
			UsedAt:    &used,
			Attempts:  attempts,
		}, nil
	default:
		return nil, fmt.Errorf("verify otp challenge: unexpected result %q", res[0])
	}
}

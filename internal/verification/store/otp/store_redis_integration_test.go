//go:build integration

package otp_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"campuspass/internal/verification/models"
	otpstore "campuspass/internal/verification/store/otp"
	"campuspass/pkg/platform/sentinel"
	"campuspass/pkg/testutil/containers"
)

type RedisChallengeStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *otpstore.RedisChallengeStore
}

func TestRedisChallengeStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisChallengeStoreSuite))
}

func (s *RedisChallengeStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = otpstore.NewRedis(s.redis.Client.Client)
}

func (s *RedisChallengeStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.Reset(context.Background()))
}

func (s *RedisChallengeStoreSuite) TestScriptAgainstRealRedis() {
	ctx := context.Background()
	now := time.Now().UTC()
	s.Require().NoError(s.store.Save(ctx, &models.OTPChallenge{
		Target:    "+2348012345678",
		Channel:   models.ChannelWhatsApp,
		Code:      "004211",
		ExpiresAt: now.Add(5 * time.Minute),
	}))

	_, err := s.store.Verify(ctx, "+2348012345678", "999999", now)
	s.ErrorIs(err, sentinel.ErrMismatch)

	c, err := s.store.Verify(ctx, "+2348012345678", "004211", now)
	s.Require().NoError(err)
	s.Equal(1, c.Attempts)
	s.Equal("+2348012345678", c.Target)

	ttl, err := s.redis.Client.PTTL(ctx, "otp:challenge:+2348012345678").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Hour)
}

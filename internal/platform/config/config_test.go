package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("CAMPUSPASS_ADDR", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("MAGIC_LINK_TTL", "")
	t.Setenv("SEED_DEMO_DATA", "")

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Empty(t, cfg.Postgres.DSN)
	assert.Equal(t, 15*time.Minute, cfg.Verification.MagicLinkTTL)
	assert.Equal(t, 30*time.Minute, cfg.Verification.WidgetTTL)
	assert.Equal(t, 365*24*time.Hour, cfg.Verification.RecordTTL)
	assert.Equal(t, 10*time.Second, cfg.Verification.LookupTimeout)
	assert.Equal(t, 6, cfg.Verification.OTPLength)
	assert.False(t, cfg.Server.SeedDemoData)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CAMPUSPASS_ADDR", ":9090")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example")
	t.Setenv("WIDGET_TOKEN_TTL", "45m")
	t.Setenv("OTP_LENGTH", "not-a-number")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SEED_DEMO_DATA", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, []string{"https://shop.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 45*time.Minute, cfg.Verification.WidgetTTL)
	assert.Equal(t, 6, cfg.Verification.OTPLength)
	assert.True(t, cfg.Server.IsProduction())
	assert.True(t, cfg.Server.SeedDemoData)
}

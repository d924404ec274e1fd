package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full process configuration.
type Config struct {
	Server       Server
	Postgres     PostgresConfig
	Redis        RedisConfig
	Kafka        KafkaConfig
	Email        EmailConfig
	WhatsApp     WhatsAppConfig
	Verification VerificationConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	Environment     string
	AllowedOrigins  []string
	OTPRequestLimit int
	ShutdownTimeout time.Duration
	// SeedDemoData loads a demo university, student and vendor into the
	// in-memory stores. Ignored when DATABASE_URL is set.
	SeedDemoData bool
}

// PostgresConfig selects the relational stores. Empty DSN keeps everything in memory.
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig selects the Redis OTP challenge store. Empty URL keeps challenges in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig enables the Kafka audit publisher when Brokers is set.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// EmailConfig configures SendGrid delivery. Empty APIKey logs emails instead.
type EmailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// WhatsAppConfig configures Twilio delivery. Empty credentials log messages instead.
type WhatsAppConfig struct {
	AccountSID string
	AuthToken  string
	From       string
}

// VerificationConfig holds verification lifetimes and endpoints.
type VerificationConfig struct {
	FrontendURL   string
	MagicLinkTTL  time.Duration
	WidgetTTL     time.Duration
	RecordTTL     time.Duration
	LookupTimeout time.Duration
	OTPLength     int
}

// Default lifetimes used when the environment leaves them unset.
var (
	DefaultMagicLinkTTL  = 15 * time.Minute
	DefaultWidgetTTL     = 30 * time.Minute
	DefaultRecordTTL     = 365 * 24 * time.Hour
	DefaultLookupTimeout = 10 * time.Second
)

// Load reads an optional .env file and then the process environment.
func Load() Config {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getEnv("CAMPUSPASS_ADDR", ":8080"),
			Environment:     getEnv("APP_ENV", "development"),
			AllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
			OTPRequestLimit: getInt("OTP_REQUESTS_PER_MINUTE", 5),
			ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
			SeedDemoData:    getBool("SEED_DEMO_DATA"),
		},
		Postgres: PostgresConfig{
			DSN:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_AUDIT_TOPIC", "campuspass.audit"),
		},
		Email: EmailConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromName:  getEnv("EMAIL_FROM_NAME", "CampusPass"),
			FromEmail: getEnv("EMAIL_FROM_ADDRESS", "no-reply@campuspass.local"),
		},
		WhatsApp: WhatsAppConfig{
			AccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			From:       os.Getenv("TWILIO_WHATSAPP_FROM"),
		},
		Verification: VerificationConfig{
			FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),
			MagicLinkTTL:  getDuration("MAGIC_LINK_TTL", DefaultMagicLinkTTL),
			WidgetTTL:     getDuration("WIDGET_TOKEN_TTL", DefaultWidgetTTL),
			RecordTTL:     getDuration("VERIFICATION_RECORD_TTL", DefaultRecordTTL),
			LookupTimeout: getDuration("LOOKUP_TIMEOUT", DefaultLookupTimeout),
			OTPLength:     getInt("OTP_LENGTH", 6),
		},
	}
}

// IsProduction reports whether the process runs with production defaults.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Storage      StorageConfig
	Notification NotificationConfig
	RateLimit    RateLimitConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values. Redis only backs the
// submission rate limiter; an empty Addr disables it.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines the admin gate parameters. AdminPasswordHash takes
// precedence over AdminPassword when both are set.
type AuthConfig struct {
	AdminPassword     string
	AdminPasswordHash string
	JWTSecret         string
	TokenTTLMinutes   int
}

// StorageConfig holds attachment bucket values. Endpoint is optional and
// only needed for S3-compatible stores such as MinIO.
type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// NotificationConfig holds the webhook and email sender values. Any empty
// value disables the corresponding sender rather than failing submissions.
type NotificationConfig struct {
	DiscordWebhookURL string
	ResendAPIKey      string
	EmailFrom         string
	AdminEmail        string
}

// RateLimitConfig bounds public form submissions per client IP.
type RateLimitConfig struct {
	SubmissionsPerMinute int
}

// Load reads configuration from environment variables, applying defaults
// where possible. A missing POSTGRES_DSN is a startup error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("POSTGRES_DSN is required")
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "contact-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            dsn,
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
			AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
			JWTSecret:         getEnv("AUTH_JWT_SECRET", "dev-secret"),
			TokenTTLMinutes:   getEnvAsInt("AUTH_TOKEN_TTL_MINUTES", 120),
		},
		Storage: StorageConfig{
			Bucket:        os.Getenv("STORAGE_BUCKET"),
			Region:        getEnv("STORAGE_REGION", "us-east-1"),
			Endpoint:      os.Getenv("STORAGE_ENDPOINT"),
			PublicBaseURL: os.Getenv("STORAGE_PUBLIC_BASE_URL"),
		},
		Notification: NotificationConfig{
			DiscordWebhookURL: os.Getenv("DISCORD_WEBHOOK_URL"),
			ResendAPIKey:      os.Getenv("RESEND_API_KEY"),
			EmailFrom:         getEnv("RESEND_FROM_EMAIL", "onboarding@resend.dev"),
			AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		},
		RateLimit: RateLimitConfig{
			SubmissionsPerMinute: getEnvAsInt("SUBMISSIONS_PER_MINUTE", 10),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TokenTTL returns the admin session token lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	if a.TokenTTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(a.TokenTTLMinutes) * time.Minute
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

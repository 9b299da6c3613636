package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// Config aggregates application-wide configuration values. Credentials are
// read exactly once here and handed to components by reference; nothing
// else in the process touches the environment.
type Config struct {
	Port        string
	DatabaseURL string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	GeminiTimeout time.Duration

	EmailReputationAPIKey  string
	EmailReputationBaseURL string
	VerifyTimeout          time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	SeedAnalystEmail    string
	SeedAnalystPassword string

	RateLimitProfile RateLimitConfig
	PhoneRegion      string
	LogLevel         string
}

// Load reads configuration from environment variables and applies sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		// The legacy deployment accepted the key under either name.
		GeminiAPIKey:  firstEnv("GEMINI_API_KEY", "API_KEY"),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		GeminiBaseURL: os.Getenv("GEMINI_BASE_URL"),
		GeminiTimeout: parseDuration(getEnv("GEMINI_TIMEOUT", "60s"), 60*time.Second),

		EmailReputationAPIKey:  os.Getenv("ABSTRACT_EMAIL_API_KEY"),
		EmailReputationBaseURL: os.Getenv("EMAIL_REPUTATION_BASE_URL"),
		VerifyTimeout:          parseDuration(getEnv("VERIFY_TIMEOUT", "15s"), 15*time.Second),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),
		TokenTTL:  parseDuration(getEnv("JWT_TTL", "24h"), 24*time.Hour),

		SeedAnalystEmail:    os.Getenv("SEED_ANALYST_EMAIL"),
		SeedAnalystPassword: os.Getenv("SEED_ANALYST_PASSWORD"),

		PhoneRegion: getEnv("DEFAULT_PHONE_REGION", "ES"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	rl, err := parseRateLimit(getEnv("RATE_LIMIT_PROFILE", "10/min"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PROFILE value: %w", err)
	}
	cfg.RateLimitProfile = rl

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
	}
	return ""
}

func parseDuration(input string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

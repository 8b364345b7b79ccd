package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	AITimeout     time.Duration

	// Redis (optional, rate limiting only)
	RedisURL          string
	AIRateLimitPerMin int

	// Server
	APIPort string

	// Demo
	SeedDemoData bool
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AITimeout:     time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 30)) * time.Second,

		RedisURL:          getEnv("REDIS_URL", ""),
		AIRateLimitPerMin: getEnvInt("AI_RATE_LIMIT_PER_MIN", 20),

		APIPort: getEnv("API_PORT", "3000"),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
	}
}

// IsAIEnabled reports whether the generation credential is configured. When
// it is not, every AI-backed operation degrades to a canned user-visible
// message instead of crashing.
func (c *Config) IsAIEnabled() bool {
	return c.GeminiAPIKey != ""
}

func (c *Config) Validate(log *zap.Logger) {
	if c.GeminiAPIKey == "" {
		log.Warn("GEMINI_API_KEY is not set, AI operations will return canned fallback messages")
	}
	if c.RedisURL == "" {
		log.Info("REDIS_URL is not set, AI endpoint rate limiting disabled")
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

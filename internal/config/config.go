// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the HTTP server, the answer provider, the knowledge store, and the
// follow-up generator.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Answer provider (external RAG pipeline service)
	RAGBaseURL string
	RAGTimeout time.Duration

	// Knowledge store (Elasticsearch). Empty addresses fall back to the
	// in-memory index.
	ESAddresses []string
	ESUsername  string
	ESPassword  string
	ESIndex     string

	// Follow-up generation
	OpenAIAPIKey        string
	OpenAIBaseURL       string // Optional override for OpenAI-compatible gateways
	FollowupModel       string
	FollowupModelLegacy string
	UseLLMFollowups     bool
	DebugFollowups      bool // Expose the generator source in chat responses
	FollowupCount       int

	// Metrics Authentication
	MetricsAuthEnabled bool
	MetricsUsername    string
	MetricsPassword    string

	// Sentry (Better Stack Errors)
	SentryEnabled     bool
	SentryToken       string
	SentryHost        string
	SentryEnvironment string
	SentryRelease     string
	SentrySampleRate  float64

	// Better Stack Logs
	BetterStackToken    string
	BetterStackEndpoint string
}

// Load reads configuration from environment variables
// It attempts to load .env file first, then reads from env vars
func Load() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "8000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		RAGBaseURL: strings.TrimRight(getEnv(EnvRAGBaseURL, ""), "/"),
		RAGTimeout: getDurationEnv(EnvRAGTimeout, AnswerRequest),

		ESAddresses: splitList(getEnv(EnvESAddresses, "")),
		ESUsername:  getEnv(EnvESUsername, ""),
		ESPassword:  getEnv(EnvESPassword, ""),
		ESIndex:     getEnv(EnvESIndex, "knowledge_base"),

		OpenAIAPIKey:        getEnv(EnvOpenAIAPIKey, getEnv(EnvOpenAIAPIKeyCompat, "")),
		OpenAIBaseURL:       getEnv(EnvOpenAIBaseURL, ""),
		FollowupModel:       getEnv(EnvFollowupModel, "gpt-4o-mini"),
		FollowupModelLegacy: getEnv(EnvFollowupModelLegacy, getEnv(EnvFollowupModelLegacyCompat, "gpt-3.5-turbo")),
		UseLLMFollowups:     getBoolEnv(EnvUseLLMFollowups, true),
		DebugFollowups:      getBoolEnv(EnvDebugFollowups, false),
		FollowupCount:       getIntEnv(EnvFollowupCount, 4),

		MetricsAuthEnabled: getBoolEnv(EnvMetricsAuthEnabled, false),
		MetricsUsername:    getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword:    getEnv(EnvMetricsPassword, ""),

		SentryEnabled:     getBoolEnv(EnvSentryEnabled, false),
		SentryToken:       getEnv(EnvSentryToken, ""),
		SentryHost:        getEnv(EnvSentryHost, "errors.betterstack.com"),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentryRelease:     getEnv(EnvSentryRelease, ""),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.RAGBaseURL == "" {
		errs = append(errs, errors.New(EnvRAGBaseURL+" is required"))
	}
	if c.RAGTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvRAGTimeout, c.RAGTimeout))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvShutdownTimeout, c.ShutdownTimeout))
	}
	if c.FollowupCount < 1 || c.FollowupCount > 10 {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 10, got %d", EnvFollowupCount, c.FollowupCount))
	}
	if c.SentryEnabled && c.SentryToken == "" {
		errs = append(errs, errors.New(EnvSentryToken+" is required when Sentry is enabled"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// HasElasticsearch returns true if a document store is configured.
func (c *Config) HasElasticsearch() bool {
	return len(c.ESAddresses) > 0
}

// HasOpenAI returns true if LLM follow-up generation can be enabled.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// splitList splits a comma-separated env value into trimmed entries.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

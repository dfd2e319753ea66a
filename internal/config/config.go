package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the storefront assistant service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	AllowAnyOrigin bool

	LLMMode        string
	LLMAPIKey      string
	LLMBaseURL     string
	LLMModel       string
	LLMRetryBase   time.Duration
	LLMCallTimeout time.Duration

	DatabaseURL       string
	KnowledgeBasePath string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "shopbot"),
		AllowAnyOrigin:   false,
		LLMMode:          envOrDefault("LLM_MODE", "auto"),
		LLMAPIKey:        stringsTrimSpace("LLM_API_KEY"),
		// Empty base URL means the provider default; OpenAI-compatible
		// gateways fronting other model families accept the same wire format.
		LLMBaseURL:        stringsTrimSpace("LLM_BASE_URL"),
		LLMModel:          envOrDefault("LLM_MODEL", "gpt-4o-mini"),
		LLMRetryBase:      3 * time.Second,
		LLMCallTimeout:    60 * time.Second,
		DatabaseURL:       stringsTrimSpace("DATABASE_URL"),
		KnowledgeBasePath: envOrDefault("KNOWLEDGE_BASE_PATH", "data/knowledge_base.json"),
		ShutdownTimeout:   15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.LLMRetryBase, err = durationFromEnv("LLM_RETRY_BASE_DELAY", cfg.LLMRetryBase)
	if err != nil {
		return Config{}, err
	}
	cfg.LLMCallTimeout, err = durationFromEnv("LLM_CALL_TIMEOUT", cfg.LLMCallTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.LLMRetryBase <= 0 {
		return Config{}, fmt.Errorf("LLM_RETRY_BASE_DELAY must be positive")
	}
	if cfg.LLMCallTimeout <= 0 {
		return Config{}, fmt.Errorf("LLM_CALL_TIMEOUT must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LLMMode)) {
	case "auto", "openai", "mock":
	default:
		return Config{}, fmt.Errorf("invalid LLM_MODE: %q (expected auto|openai|mock)", cfg.LLMMode)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func stringsTrimSpace(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := stringsTrimSpace(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(stringsTrimSpace(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}

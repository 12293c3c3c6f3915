// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	// Database (PostgreSQL). Required: both endpoints need the store.
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Gemini. Optional: when the key is absent the chat endpoint answers
	// with an UNCONFIGURED error instead of the process refusing to start.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// Single-attempt bound around the LLM call
	LLMTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// Chat history: messages read back as context, and the per-session
	// retention cap applied on every write
	HistoryWindow      int `env:"HISTORY_WINDOW" envDefault:"6"`
	MaxSessionMessages int `env:"MAX_SESSION_MESSAGES" envDefault:"50"`
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.HistoryWindow <= 0 {
		return nil, fmt.Errorf("HISTORY_WINDOW must be positive, got %d", cfg.HistoryWindow)
	}
	if cfg.MaxSessionMessages < cfg.HistoryWindow {
		return nil, fmt.Errorf("MAX_SESSION_MESSAGES (%d) must be at least HISTORY_WINDOW (%d)",
			cfg.MaxSessionMessages, cfg.HistoryWindow)
	}
	return cfg, nil
}

// ChatConfigured reports whether the LLM credential is present
func (c *Config) ChatConfigured() bool {
	return c.GeminiAPIKey != ""
}

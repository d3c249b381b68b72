// Package config resolves the application configuration once at startup.
//
// Resolution order, lowest to highest priority:
// built-in defaults → ~/.lmchat/config.yaml → ./.lmchat/config.yaml →
// .env file → LMCHAT_* environment variables. The result is a single
// immutable struct; nothing re-reads the chain after Load returns.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the resolved application configuration.
type Config struct {
	BaseURL        string  `yaml:"base_url" env:"LMCHAT_BASE_URL"`
	Model          string  `yaml:"model" env:"LMCHAT_MODEL"`
	Temperature    float64 `yaml:"temperature" env:"LMCHAT_TEMPERATURE"`
	TimeoutSeconds int     `yaml:"timeout_seconds" env:"LMCHAT_TIMEOUT_SECONDS"`
	APIKey         string  `yaml:"api_key" env:"LMCHAT_API_KEY"`
	SystemMessage  string  `yaml:"system_message" env:"LMCHAT_SYSTEM_MESSAGE"`
	ListenAddr     string  `yaml:"listen_addr" env:"LMCHAT_LISTEN_ADDR"`
	LogLevel       string  `yaml:"log_level" env:"LMCHAT_LOG_LEVEL"`
}

// Timeout returns the oracle request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks that required fields are present and sane.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url is required")
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", c.Temperature)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds)
	}
	return nil
}

// Load resolves config from defaults → user file → project file → env.
func Load() (*Config, error) {
	cfg := defaults()

	// user-level config
	if home, err := os.UserHomeDir(); err == nil {
		userPath := filepath.Join(home, ".lmchat", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config
	projectPath := filepath.Join(".lmchat", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	// .env file, then real environment (highest priority)
	_ = godotenv.Load()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		BaseURL:        "http://localhost:1234",
		Model:          "local-model",
		Temperature:    0.7,
		TimeoutSeconds: 60,
		// LM Studio accepts any key; the field exists for remote
		// OpenAI-compatible servers that check it.
		APIKey:        "lm-studio",
		SystemMessage: "You are a helpful AI assistant. Be concise, friendly, and informative.",
		ListenAddr:    ":8080",
		LogLevel:      "info",
	}
}

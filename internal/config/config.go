// Package config provides configuration loading and gateway construction.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/provider"
)

// Environment variable names.
const (
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvDatabaseURL     = "DATABASE_URL"
	EnvAuthSecret      = "AUTH_SECRET"
	EnvPort            = "PORT"
)

// geminiModels is the ranked Gemini fallback chain.
var geminiModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// anthropicModel is the cross-protocol fallback after all Gemini ranks.
const anthropicModel = "claude-haiku-4-5"

// defaultCallsPerMinute caps each provider's call rate.
const defaultCallsPerMinute = 60

// Config represents process configuration loadable from a JSON file, with
// environment variables taking precedence for credentials.
// All fields are optional.
type Config struct {
	GeminiAPIKey    string           `json:"gemini_api_key,omitempty"`
	AnthropicAPIKey string           `json:"anthropic_api_key,omitempty"`
	DatabaseURL     string           `json:"database_url,omitempty"`
	AuthSecret      string           `json:"auth_secret,omitempty"`
	Port            string           `json:"port,omitempty"`
	CallsPerMinute  int              `json:"calls_per_minute,omitempty"`
	Policy          *matching.Policy `json:"policy,omitempty"`
}

// LoadConfig loads configuration from a JSON file. An empty path returns a
// config populated from the environment only.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables onto the config. Env values win
// over file values for credentials; file values win for the rest.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvGeminiAPIKey); v != "" {
		c.GeminiAPIKey = v
	}
	if v := os.Getenv(EnvAnthropicAPIKey); v != "" {
		c.AnthropicAPIKey = v
	}
	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv(EnvAuthSecret); v != "" {
		c.AuthSecret = v
	}
	if c.Port == "" {
		c.Port = os.Getenv(EnvPort)
	}
	if c.Port == "" {
		c.Port = "8080"
	}
}

// MatchingPolicy returns the configured policy or the defaults.
func (c *Config) MatchingPolicy() matching.Policy {
	if c.Policy != nil {
		return *c.Policy
	}
	return matching.DefaultPolicy()
}

// BuildGateway constructs the provider gateway from available credentials.
// Providers without a key are simply not registered; an empty gateway is
// valid and every stage degrades to its fallback.
func (c *Config) BuildGateway(ctx context.Context) (*provider.Gateway, error) {
	gw := provider.NewGateway()

	limit := c.CallsPerMinute
	if limit <= 0 {
		limit = defaultCallsPerMinute
	}

	if c.GeminiAPIKey != "" {
		backend, err := provider.NewGeminiBackend(ctx, c.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Gemini backend: %w", err)
		}
		for rank, model := range geminiModels {
			gw.Register(provider.Spec{
				ID:             model,
				Model:          model,
				Rank:           rank,
				Kinds:          []provider.Kind{provider.KindMultimodal, provider.KindStructured, provider.KindScoring},
				CallsPerMinute: limit,
			}, backend)
		}
	}

	if c.AnthropicAPIKey != "" {
		backend, err := provider.NewAnthropicBackend(c.AnthropicAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Anthropic backend: %w", err)
		}
		gw.Register(provider.Spec{
			ID:             anthropicModel,
			Model:          anthropicModel,
			Rank:           len(geminiModels),
			Kinds:          []provider.Kind{provider.KindStructured, provider.KindScoring},
			CallsPerMinute: limit,
		}, backend)
	}

	return gw, nil
}

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/provider"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"gemini_api_key": "file-key",
		"calls_per_minute": 30,
		"policy": {
			"proceed_threshold": 0.8,
			"reject_threshold": 0.3,
			"confidence_floor": 0.6,
			"neutral_overlap_score": 0.5,
			"heuristic_confidence": 0.2
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.GeminiAPIKey)
	assert.Equal(t, 30, cfg.CallsPerMinute)
	assert.Equal(t, 0.8, cfg.MatchingPolicy().ProceedThreshold)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"gemini_api_key": "file-key"}`), 0644))
	t.Setenv(EnvGeminiAPIKey, "env-key")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.GeminiAPIKey)
}

func TestLoadConfigEmptyPathUsesEnv(t *testing.T) {
	t.Setenv(EnvAnthropicAPIKey, "anthropic-key")
	t.Setenv(EnvPort, "9000")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "anthropic-key", cfg.AnthropicAPIKey)
	assert.Equal(t, "9000", cfg.Port)
}

func TestLoadConfigDefaultPort(t *testing.T) {
	t.Setenv(EnvPort, "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfigBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestMatchingPolicyDefaults(t *testing.T) {
	cfg := &Config{}
	pol := cfg.MatchingPolicy()
	assert.Equal(t, 0.70, pol.ProceedThreshold)
	assert.Equal(t, 0.40, pol.RejectThreshold)
}

func TestBuildGatewayNoKeysIsEmpty(t *testing.T) {
	cfg := &Config{}
	gw, err := cfg.BuildGateway(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gw.Ranked(provider.KindMultimodal))
	assert.Empty(t, gw.Ranked(provider.KindStructured))
}

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir keeps a developer's .env out of the test.
func inTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)
	t.Setenv("API_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DefaultAPIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.AnalyticsRefresh)
	assert.Equal(t, 15*time.Second, cfg.PanelRefresh)
	assert.Equal(t, 2*time.Second, cfg.FlashTTL)
	assert.Equal(t, 150*time.Millisecond, cfg.TurnRevealDelay)
	assert.Equal(t, 50, cfg.ConversationsLim)
	assert.Equal(t, 100, cfg.LogsLimit)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
	assert.False(t, cfg.DemoMode)
}

func TestLoadFromEnv(t *testing.T) {
	inTempDir(t)
	t.Setenv("API_BASE_URL", "http://localhost:8000/")
	t.Setenv("PORT", "9090")
	t.Setenv("FLASH_TTL", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("DEMO_MODE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.FlashTTL)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins())
	assert.True(t, cfg.DemoMode)
}

func TestLoadViteAlias(t *testing.T) {
	inTempDir(t)
	t.Setenv("API_BASE_URL", "")
	t.Setenv("VITE_API_BASE_URL", "https://voice.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://voice.example.com", cfg.APIBaseURL)
}

func TestLoadRejectsInvalid(t *testing.T) {
	inTempDir(t)
	t.Setenv("API_BASE_URL", "not a url")

	_, err := Load()
	assert.Error(t, err)
}

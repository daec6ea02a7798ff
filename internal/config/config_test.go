package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "gardenbloom.db", cfg.DBPath)
	assert.Empty(t, cfg.CatalogPath)
	assert.Empty(t, cfg.SyncURL)
	assert.Equal(t, time.Second, cfg.TickInterval)
	assert.Equal(t, 30*time.Second, cfg.AutosaveEvery)
	assert.Equal(t, 5*time.Second, cfg.BackgroundInterval)
	assert.Equal(t, time.Minute, cfg.RecentSaveSkip)
	assert.Equal(t, 2*time.Minute, cfg.AdminChangeSkip)
	assert.Equal(t, 5*time.Minute, cfg.RestockInterval)
	assert.Zero(t, cfg.EventMaxRetries)
	assert.Zero(t, cfg.EventRetryDelay)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "9191")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("SYNC_URL", "ws://sync.example:9090/sync")
	t.Setenv("SYNC_TOKEN", "bearer-token")
	t.Setenv("EVENT_MAX_RETRIES", "3")
	t.Setenv("EVENT_RETRY_DELAY", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "ws://sync.example:9090/sync", cfg.SyncURL)
	assert.Equal(t, "bearer-token", cfg.SyncToken)
	assert.Equal(t, 3, cfg.EventMaxRetries)
	assert.Equal(t, 5*time.Second, cfg.EventRetryDelay)
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("PORT", "not-a-port")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("AUTOSAVE_INTERVAL", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsNonPositiveDuration(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("BACKGROUND_INTERVAL", "-5s")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateEnvSchemaVersionOptional(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "")
	t.Setenv("API_KEY", "test-key")

	assert.NoError(t, ValidateEnv())
}

func TestValidateEnvSchemaVersionMismatch(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", "0.9")
	t.Setenv("API_KEY", "test-key")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV_SCHEMA_VERSION")
}

func TestValidateEnvMissingRequired(t *testing.T) {
	t.Setenv("ENV_SCHEMA_VERSION", ExpectedEnvSchemaVersion)
	t.Setenv("API_KEY", "")

	err := ValidateEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestValidateEnvWarnings(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SYNC_URL", "ws://sync.example:9090/sync")
	t.Setenv("SYNC_TOKEN", "")
	t.Setenv("DB_PATH", "")

	warnings, err := ValidateEnvWithWarnings()
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
}

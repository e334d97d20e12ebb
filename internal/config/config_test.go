package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: 9090
  log_level: debug
redash:
  url: http://redash.local/api/queries/1/results.json
  timeout: 5s
  api_key_env: TEST_ALERTDASH_KEY
`), 0o644))
	t.Setenv("TEST_ALERTDASH_KEY", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.App.Host)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, slog.LevelDebug, cfg.App.SlogLevel())
	assert.Equal(t, "http://redash.local/api/queries/1/results.json", cfg.Redash.URL)
	assert.Equal(t, 5*time.Second, cfg.Redash.GetTimeoutDuration())
	assert.Equal(t, "secret", cfg.Redash.APIKey)
	assert.Equal(t, Default().Links, cfg.Links)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestGetTimeoutDurationFallback(t *testing.T) {
	c := RedashConfig{Timeout: "bogus"}
	assert.Equal(t, 30*time.Second, c.GetTimeoutDuration())
}

func TestAppConfigAddr(t *testing.T) {
	c := AppConfig{Host: "127.0.0.1", Port: 8080}
	assert.Equal(t, "127.0.0.1:8080", c.Addr())
	assert.Equal(t, slog.LevelInfo, c.SlogLevel())
}

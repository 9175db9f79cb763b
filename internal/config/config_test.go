package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s := Load(v)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Empty(t, s.BaseURL)
	assert.Equal(t, 15*time.Second, s.Timeout)
	assert.Equal(t, filepath.Join(home, ".local/share/fraudwatch/history.db"), s.StoragePath)
	assert.Equal(t, ".", s.ExportDir)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "console", s.LogFormat)
	assert.Empty(t, s.LogFile)
	assert.Equal(t, "default", s.Theme)
}

func TestInit_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fraudwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
service:
  base_url: "http://predict.internal:5000"
  timeout: 3s
storage:
  path: ""
logging:
  level: debug
dashboard:
  theme: catppuccin-mocha
`), 0o600))

	v := viper.New()
	require.NoError(t, Init(v, path))
	s := Load(v)

	assert.Equal(t, "http://predict.internal:5000", s.BaseURL)
	assert.Equal(t, 3*time.Second, s.Timeout)
	assert.Empty(t, s.StoragePath, "an empty storage path disables the cache")
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, "catppuccin-mocha", s.Theme)
}

func TestInit_EnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service:\n  base_url: http://from-file\n"), 0o600))
	t.Setenv("FRAUDWATCH_SERVICE_BASE_URL", "http://from-env:8080")
	t.Setenv("FRAUDWATCH_LOGGING_FORMAT", "json")

	v := viper.New()
	require.NoError(t, Init(v, path))
	s := Load(v)

	assert.Equal(t, "http://from-env:8080", s.BaseURL)
	assert.Equal(t, "json", s.LogFormat)
}

func TestInit_MalformedConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service: [unterminated"), 0o600))

	err := Init(viper.New(), path)
	assert.ErrorContains(t, err, "failed to read config")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("FRAUDWATCH_TEST_DIR", "/srv/exports")

	assert.Empty(t, ExpandPath(""))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, filepath.Join(home, "history.db"), ExpandPath("~/history.db"))
	assert.Equal(t, "/srv/exports/out", ExpandPath("$FRAUDWATCH_TEST_DIR/out"))
	assert.Equal(t, "relative/path", ExpandPath("relative/path"))
}

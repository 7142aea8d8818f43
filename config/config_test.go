package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"AIRMAP_API_BASE", "AIRMAP_TIMEOUT", "AIRMAP_MAP_SHAPEFILE",
	"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE",
	"AIRMAP_MAX_ROUTES", "AIRMAP_SEARCH_DEBOUNCE", "AIRMAP_DEFAULT_RADIUS_KM",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8000/api", cfg.APIBase)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "info", cfg.LoggingConfig.Level)
		assert.Equal(t, "", cfg.LoggingConfig.File)
		assert.Equal(t, 50, cfg.ViewConfig.MaxRoutesDisplay)
		assert.Equal(t, 300*time.Millisecond, cfg.ViewConfig.SearchDebounce)
		assert.Equal(t, 10, cfg.ViewConfig.SearchLimit)
		assert.Equal(t, 800*time.Millisecond, cfg.ViewConfig.HighlightFor)
		assert.Equal(t, 10.0, cfg.ViewConfig.FocusZoom)
		assert.Equal(t, *Default(), *cfg)
	})

	t.Run("environment variable override", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("AIRMAP_API_BASE", "https://maps.example.com/api/")
		t.Setenv("AIRMAP_MAX_ROUTES", "20")
		t.Setenv("AIRMAP_SEARCH_DEBOUNCE", "150ms")
		t.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "https://maps.example.com/api", cfg.APIBase, "trailing slash trimmed")
		assert.Equal(t, 20, cfg.ViewConfig.MaxRoutesDisplay)
		assert.Equal(t, 150*time.Millisecond, cfg.ViewConfig.SearchDebounce)
		assert.Equal(t, "debug", cfg.LoggingConfig.Level)
	})

	t.Run("env file", func(t *testing.T) {
		clearEnv(t)
		os.Unsetenv("AIRMAP_API_BASE")
		path := filepath.Join(t.TempDir(), "test.env")
		require.NoError(t, os.WriteFile(path, []byte("AIRMAP_API_BASE=http://10.0.0.5:9000/api\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "http://10.0.0.5:9000/api", cfg.APIBase)
		os.Unsetenv("AIRMAP_API_BASE")
	})

	t.Run("missing env file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		clearEnv(t)
		chdir(t, t.TempDir())
		t.Setenv("AIRMAP_API_BASE", "not a url")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.ViewConfig.MaxRoutesDisplay = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.RequestTimeout = 0
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.ViewConfig.DefaultRadiusKm = -1
	assert.Error(t, cfg.Validate())
}

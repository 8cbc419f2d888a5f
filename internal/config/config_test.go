package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iroll/miniviewer/internal/config"
)

const partialYAML = `
extensions:
  - "*.jpg"
  - "*.png"
zoom:
  max: 4.0
rename:
  date_format: "20060102-"
`

const invalidYAML = `
zoom:
  min: 2.0
  max: 1.0
`

const brokenYAML = `
extensions: [unclosed
`

// createTestYAML writes content to a config file in a temp dir and returns
// its path.
func createTestYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFile(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)

		assert.Contains(t, cfg.Extensions, "*.heic")
		assert.True(t, cfg.Navigation.Wrap)
		assert.Equal(t, 0.05, cfg.Zoom.Min)
		assert.Equal(t, 8.0, cfg.Zoom.Max)
		assert.Equal(t, 1.25, cfg.Zoom.In)
		assert.Equal(t, 0.8, cfg.Zoom.Out)
		assert.Equal(t, "2006-01-02_", cfg.Rename.DateFormat)
	})

	t.Run("partial file merges with defaults", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, partialYAML))
		require.NoError(t, err)

		assert.Equal(t, []string{"*.jpg", "*.png"}, cfg.Extensions)
		assert.Equal(t, 4.0, cfg.Zoom.Max)
		assert.Equal(t, "20060102-", cfg.Rename.DateFormat)

		// Unset fields keep their defaults
		assert.Equal(t, 0.05, cfg.Zoom.Min)
		assert.Equal(t, 1.25, cfg.Zoom.In)
		assert.Equal(t, 1100, cfg.Window.Width)
	})

	t.Run("wrap can be turned off", func(t *testing.T) {
		cfg, err := config.LoadConfigFile(createTestYAML(t, "navigation:\n  wrap: false\n"))
		require.NoError(t, err)
		assert.False(t, cfg.Navigation.Wrap)
	})

	t.Run("invalid settings are rejected", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, invalidYAML))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "zoom max")
	})

	t.Run("unparseable file is an error", func(t *testing.T) {
		_, err := config.LoadConfigFile(createTestYAML(t, brokenYAML))
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, config.New().Validate())
	})

	t.Run("empty extensions", func(t *testing.T) {
		cfg := config.New()
		cfg.Extensions = nil
		assert.Error(t, cfg.Validate())
	})

	t.Run("zoom out step must shrink", func(t *testing.T) {
		cfg := config.New()
		cfg.Zoom.Out = 1.5
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing date format", func(t *testing.T) {
		cfg := config.New()
		cfg.Rename.DateFormat = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := config.New()
	cfg.Window.Width = 640
	require.NoError(t, config.SaveConfig(cfg, path))

	loaded, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 640, loaded.Window.Width)
	assert.Equal(t, cfg.Extensions, loaded.Extensions)
}

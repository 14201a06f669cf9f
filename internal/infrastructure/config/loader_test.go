package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_LoadApp(t *testing.T) {
	loader := NewLoader("../../../cmd/editor/configs")

	cfg, err := loader.LoadApp()
	require.NoError(t, err)

	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 768, cfg.Window.Height)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, "Phantom Editor", cfg.Window.Title)
	assert.Equal(t, "gpu", cfg.Render.Backend)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoader_DefaultsForAbsentFields(t *testing.T) {
	fsys := fstest.MapFS{
		"configs/app.yaml": {Data: []byte("window:\n  width: 640\n")},
	}

	cfg, err := NewFSLoader(fsys, "configs").LoadApp()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, DefaultHeight, cfg.Window.Height)
	assert.Equal(t, DefaultTitle, cfg.Window.Title)
	assert.Equal(t, DefaultBackend, cfg.Render.Backend)
}

func TestLoader_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"bad.yaml":  {Data: []byte("window: [unterminated")},
		"zero.yaml": {Data: []byte("window:\n  width: 0\n")},
	}
	loader := NewFSLoader(fsys, "")

	_, err := loader.Load("missing.yaml")
	assert.ErrorContains(t, err, "failed to read missing.yaml")

	_, err = loader.Load("bad.yaml")
	assert.ErrorContains(t, err, "failed to parse bad.yaml")

	_, err = loader.Load("zero.yaml")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("PHANTOM_WIDTH", "800")
	t.Setenv("PHANTOM_FULLSCREEN", "true")
	t.Setenv("PHANTOM_TITLE", "Scratch")
	t.Setenv("PHANTOM_LOG_LEVEL", "debug")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, DefaultHeight, cfg.Window.Height)
	assert.True(t, cfg.Window.Fullscreen)
	assert.Equal(t, "Scratch", cfg.Window.Title)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, DefaultBackend, cfg.Render.Backend)
}

func TestApplyEnv_IgnoresInvalidBool(t *testing.T) {
	t.Setenv("PHANTOM_FULLSCREEN", "sometimes")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.False(t, cfg.Window.Fullscreen)
}

func TestApplyEnv_BadNumber(t *testing.T) {
	t.Setenv("PHANTOM_HEIGHT", "tall")

	err := Default().ApplyEnv()

	assert.ErrorContains(t, err, "failed to parse environment")
}

func TestLoadDotEnv(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "absent.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PHANTOM_DOTENV_PROBE=loaded\n"), 0o600))
	t.Setenv("PHANTOM_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("PHANTOM_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "loaded", os.Getenv("PHANTOM_DOTENV_PROBE"))
}

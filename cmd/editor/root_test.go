package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/phantom/internal/infrastructure/config"
	"github.com/younwookim/phantom/internal/logging"
)

func parse(t *testing.T, args ...string) (*Options, func(string) bool) {
	t.Helper()
	opts := &Options{}
	cmd := newRootCommand(opts, logging.NewLogger(nil, logging.LevelError))
	require.NoError(t, cmd.ParseFlags(args))
	return opts, cmd.Flags().Changed
}

func TestLoadConfig_EmbeddedDefaults(t *testing.T) {
	opts, changed := parse(t, "--env-file", filepath.Join(t.TempDir(), "none.env"))

	cfg, err := loadConfig(opts, changed)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultWidth, cfg.Window.Width)
	assert.Equal(t, config.DefaultHeight, cfg.Window.Height)
	assert.False(t, cfg.Window.Fullscreen)
	assert.Equal(t, config.DefaultTitle, cfg.Window.Title)
	assert.Equal(t, "gpu", cfg.Render.Backend)
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window:\n  width: 640\n  height: 480\n  title: From File\n"), 0o600))
	t.Setenv("PHANTOM_HEIGHT", "400")
	t.Setenv("PHANTOM_TITLE", "From Env")

	opts, changed := parse(t,
		"--config", path,
		"--env-file", filepath.Join(dir, "none.env"),
		"--title", "From Flag",
		"--fullscreen",
	)

	cfg, err := loadConfig(opts, changed)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Window.Width, "file")
	assert.Equal(t, 400, cfg.Window.Height, "env overrides file")
	assert.Equal(t, "From Flag", cfg.Window.Title, "flag overrides env")
	assert.True(t, cfg.Window.Fullscreen)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("PHANTOM_WIDTH=900\n"), 0o600))
	t.Setenv("PHANTOM_WIDTH", "")
	require.NoError(t, os.Unsetenv("PHANTOM_WIDTH"))

	opts, changed := parse(t, "--env-file", envFile)

	cfg, err := loadConfig(opts, changed)
	require.NoError(t, err)
	assert.Equal(t, 900, cfg.Window.Width)
}

func TestLoadConfig_InvalidFlag(t *testing.T) {
	opts, changed := parse(t, "--env-file", filepath.Join(t.TempDir(), "none.env"), "--width", "0")

	_, err := loadConfig(opts, changed)

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	opts, changed := parse(t,
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
		"--env-file", filepath.Join(t.TempDir(), "none.env"),
	)

	_, err := loadConfig(opts, changed)

	assert.ErrorContains(t, err, "failed to read missing.yaml")
}

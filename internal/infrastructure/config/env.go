package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// appEnv captures PHANTOM_* overrides.
type appEnv struct {
	// Width is the window width from PHANTOM_WIDTH.
	Width int `env:"PHANTOM_WIDTH"`
	// Height is the window height from PHANTOM_HEIGHT.
	Height int `env:"PHANTOM_HEIGHT"`
	// Fullscreen toggles fullscreen from PHANTOM_FULLSCREEN.
	Fullscreen string `env:"PHANTOM_FULLSCREEN"`
	// Title is the window title from PHANTOM_TITLE.
	Title string `env:"PHANTOM_TITLE"`
	// Icon is the icon path from PHANTOM_ICON.
	Icon string `env:"PHANTOM_ICON"`
	// Backend is the renderer backend from PHANTOM_BACKEND.
	Backend string `env:"PHANTOM_BACKEND"`
	// LogLevel is the logging level from PHANTOM_LOG_LEVEL.
	LogLevel string `env:"PHANTOM_LOG_LEVEL"`
}

// LoadDotEnv loads variables from a .env file without overriding the process
// environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides c with the PHANTOM_* variables that are set.
func (c *AppConfig) ApplyEnv() error {
	var e appEnv
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	if e.Width > 0 {
		c.Window.Width = e.Width
	}
	if e.Height > 0 {
		c.Window.Height = e.Height
	}
	if v, ok := parseEnvBool(e.Fullscreen); ok {
		c.Window.Fullscreen = v
	}
	if e.Title != "" {
		c.Window.Title = e.Title
	}
	if e.Icon != "" {
		c.Window.Icon = e.Icon
	}
	if e.Backend != "" {
		c.Render.Backend = e.Backend
	}
	if e.LogLevel != "" {
		c.Log.Level = e.LogLevel
	}
	return c.Validate()
}

// parseEnvBool parses a boolean string and reports if it was present and valid.
func parseEnvBool(value string) (bool, bool) {
	if strings.TrimSpace(value) == "" {
		return false, false
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, false
	}
	return parsed, true
}

package app

import (
	"fmt"

	"github.com/younwookim/phantom/internal/infrastructure/config"
	"github.com/younwookim/phantom/internal/render"
)

// Config is the startup configuration. It is read once by Run.
type Config struct {
	Width      uint32
	Height     uint32
	Fullscreen bool
	Title      string
	// Icon is an optional image path. The built-in icon is used when empty.
	Icon    string
	Backend render.Backend

	// Record saves the input of the session to this file when set.
	Record string
	// Replay plays back the input recorded in this file when set.
	Replay string
}

// DefaultConfig returns a 1024x768 windowed GPU configuration.
func DefaultConfig() Config {
	return Config{
		Width:   config.DefaultWidth,
		Height:  config.DefaultHeight,
		Title:   config.DefaultTitle,
		Backend: render.BackendGPU,
	}
}

// ConfigFrom converts a loaded application file into a Config.
func ConfigFrom(c *config.AppConfig) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	backend, err := render.ParseBackend(c.Render.Backend)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Width:      uint32(c.Window.Width),
		Height:     uint32(c.Window.Height),
		Fullscreen: c.Window.Fullscreen,
		Title:      c.Window.Title,
		Icon:       c.Window.Icon,
		Backend:    backend,
	}, nil
}

// Validate checks the window size.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: window size %dx%d", config.ErrInvalidConfig, c.Width, c.Height)
	}
	return nil
}

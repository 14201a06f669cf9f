package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "app.yaml"

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Loader loads application configuration from YAML files using fs.FS interface
type Loader struct {
	fsys fs.FS
	dir  string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys: os.DirFS(basePath),
		dir:  ".",
	}
}

// NewFSLoader creates a new config loader from fs.FS, reading files under dir
func NewFSLoader(fsys fs.FS, dir string) *Loader {
	if dir == "" {
		dir = "."
	}
	return &Loader{
		fsys: fsys,
		dir:  dir,
	}
}

// Load reads the named YAML file on top of the defaults.
func (l *Loader) Load(name string) (*AppConfig, error) {
	data, err := fs.ReadFile(l.fsys, path.Join(l.dir, name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}

	return cfg, nil
}

// LoadApp reads app.yaml.
func (l *Loader) LoadApp() (*AppConfig, error) {
	return l.Load(FileName)
}

// Validate checks the window size and required names.
func (c *AppConfig) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Render.Backend == "" {
		return fmt.Errorf("%w: empty render backend", ErrInvalidConfig)
	}
	return nil
}

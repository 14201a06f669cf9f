package config

// Default window and runtime settings.
const (
	DefaultWidth    = 1024
	DefaultHeight   = 768
	DefaultTitle    = "Phantom Editor"
	DefaultBackend  = "gpu"
	DefaultLogLevel = "info"
)

// AppConfig holds the application configuration read from app.yaml.
type AppConfig struct {
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	Log    LogConfig    `yaml:"log"`
}

// WindowConfig describes the main window.
type WindowConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	Title      string `yaml:"title"`
	Icon       string `yaml:"icon"`
}

// RenderConfig selects the renderer backend.
type RenderConfig struct {
	Backend string `yaml:"backend"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *AppConfig {
	return &AppConfig{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			Title:  DefaultTitle,
		},
		Render: RenderConfig{Backend: DefaultBackend},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

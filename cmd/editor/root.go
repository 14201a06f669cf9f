package main

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/younwookim/phantom/internal/application/app"
	"github.com/younwookim/phantom/internal/infrastructure/config"
	"github.com/younwookim/phantom/internal/logging"
)

// logHistory is the number of log lines kept for the log panel.
const logHistory = 200

// Options stores the command-line flags.
type Options struct {
	ConfigPath string
	EnvFile    string
	Width      int
	Height     int
	Fullscreen bool
	Title      string
	Icon       string
	Backend    string
	LogLevel   string
	Record     string
	Replay     string
}

// Execute builds the root command, runs it with args and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	cmd := newRootCommand(&Options{}, logger)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "editor",
		Short:         "Phantom scene editor",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, err := loadConfig(opts, cmd.Flags().Changed)
			if err != nil {
				return err
			}
			cfg, err := app.ConfigFrom(file)
			if err != nil {
				return err
			}
			cfg.Record = opts.Record
			cfg.Replay = opts.Replay

			lines := logging.NewLines(logHistory)
			logger = logging.NewTeeLogger(os.Stderr, lines, logging.ParseLevel(file.Log.Level))
			logger.Debug("configuration loaded",
				"width", cfg.Width,
				"height", cfg.Height,
				"fullscreen", cfg.Fullscreen,
				"backend", cfg.Backend,
			)

			return app.Run(NewEditor(logger, lines), cfg, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.ConfigPath, "config", "c", "", "Path to app.yaml (defaults to the built-in configuration)")
	flags.StringVar(&opts.EnvFile, "env-file", ".env", "Path to a .env file")
	flags.IntVar(&opts.Width, "width", config.DefaultWidth, "Window width in pixels")
	flags.IntVar(&opts.Height, "height", config.DefaultHeight, "Window height in pixels")
	flags.BoolVar(&opts.Fullscreen, "fullscreen", false, "Start in fullscreen mode")
	flags.StringVar(&opts.Title, "title", config.DefaultTitle, "Window title")
	flags.StringVar(&opts.Icon, "icon", "", "Window icon image (png, jpeg, gif, bmp, webp)")
	flags.StringVar(&opts.Backend, "backend", config.DefaultBackend, "Renderer backend (gpu)")
	flags.StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.Record, "record", "", "Record input to file (e.g. --record replay.json)")
	flags.StringVar(&opts.Replay, "replay", "", "Replay input from a recorded file")

	return cmd
}

// loadConfig merges the configuration file, the environment and the flags
// that were set explicitly, in increasing priority.
func loadConfig(opts *Options, changed func(name string) bool) (*config.AppConfig, error) {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return nil, err
	}

	var loader *config.Loader
	name := config.FileName
	if opts.ConfigPath != "" {
		loader = config.NewLoader(filepath.Dir(opts.ConfigPath))
		name = filepath.Base(opts.ConfigPath)
	} else {
		fsys, err := fs.Sub(configFS, "configs")
		if err != nil {
			return nil, fmt.Errorf("failed to get config subfs: %w", err)
		}
		loader = config.NewFSLoader(fsys, ".")
	}

	cfg, err := loader.Load(name)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if changed("width") {
		cfg.Window.Width = opts.Width
	}
	if changed("height") {
		cfg.Window.Height = opts.Height
	}
	if changed("fullscreen") {
		cfg.Window.Fullscreen = opts.Fullscreen
	}
	if changed("title") {
		cfg.Window.Title = opts.Title
	}
	if changed("icon") {
		cfg.Window.Icon = opts.Icon
	}
	if changed("backend") {
		cfg.Render.Backend = opts.Backend
	}
	if changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

package app

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/younwookim/phantom/internal/application/replay"
	"github.com/younwookim/phantom/internal/application/state"
	"github.com/younwookim/phantom/internal/infrastructure/ebitenplatform"
	"github.com/younwookim/phantom/internal/infrastructure/icon"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render/backend"
	"github.com/younwookim/phantom/internal/render/hal"
	"github.com/younwookim/phantom/internal/render/hal/ebitenhal"
)

// Run opens the window, creates the renderer and drives initial until the
// stack drains, the window closes or a fatal error occurs.
func Run(initial state.State, cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	icons, err := loadIcons(cfg.Icon)
	if err != nil {
		return err
	}

	graphics, err := hal.LoadEnv()
	if err != nil {
		return err
	}
	backends, err := graphics.BackendSet()
	if err != nil {
		return err
	}

	driver, err := ebitenplatform.New(ebitenplatform.Options{
		Title:           cfg.Title,
		Width:           int(cfg.Width),
		Height:          int(cfg.Height),
		Fullscreen:      cfg.Fullscreen,
		Icons:           icons,
		GraphicsLibrary: ebitenhal.GraphicsLibrary(backends),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}

	width, height := driver.Size()
	renderer, err := backend.New(cfg.Backend, driver, width, height, backend.Options{
		Env:    graphics,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	if d, ok := renderer.(interface{ Destroy() }); ok {
		defer d.Destroy()
	}

	orch := NewOrchestrator(initial, Handles{
		Window:   driver,
		Gamepads: driver,
		Renderer: renderer,
	}, logger)

	handler, recorder, replayer, err := wrapHandler(orch.Handle, cfg)
	if err != nil {
		return err
	}

	attrs := []any{"width", width, "height", height, "backend", cfg.Backend}
	if a, ok := renderer.(interface{ AdapterInfo() hal.AdapterInfo }); ok {
		attrs = append(attrs, "adapter", a.AdapterInfo().Name)
	}
	logger.Info("Phantom app started", attrs...)

	runErr := driver.Run(handler)
	orch.Shutdown()

	if replayer != nil {
		logReplayEnd(logger, replayer)
	}

	if recorder != nil {
		if err := recorder.Save(cfg.Record); err != nil {
			logger.Error("failed to save replay", "error", err)
		} else {
			logger.Info("replay saved", "file", cfg.Record, "frames", recorder.FrameCount())
		}
	}

	return errors.Join(runErr, orch.Err())
}

// wrapHandler adds recording and playback around h. Recording sits inside
// playback so a replayed session can be recorded again.
func wrapHandler(h platform.Handler, cfg Config) (platform.Handler, *replay.Recorder, *replay.Replayer, error) {
	var recorder *replay.Recorder
	if cfg.Record != "" {
		recorder = replay.NewRecorder()
		h = recorder.Wrap(h)
	}
	var replayer *replay.Replayer
	if cfg.Replay != "" {
		data, err := replay.LoadReplay(cfg.Replay)
		if err != nil {
			return nil, nil, nil, err
		}
		replayer = replay.NewReplayer(*data)
		h = replayer.Wrap(h)
	}
	return h, recorder, replayer, nil
}

// logReplayEnd reports whether the session outlived the replay.
func logReplayEnd(logger *slog.Logger, r *replay.Replayer) {
	if r.Done() {
		logger.Info("replay finished", "frames", r.TotalFrames())
		return
	}
	logger.Warn("replay interrupted", "frame", r.CurrentFrame(), "frames", r.TotalFrames())
}

func loadIcons(path string) ([]image.Image, error) {
	if path == "" {
		return icon.DefaultSet()
	}
	img, err := icon.Load(path)
	if err != nil {
		return nil, err
	}
	return []image.Image{img}, nil
}

package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/younwookim/phantom/internal/application/resources"
	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/application/state"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/logging"
	"github.com/younwookim/phantom/internal/platform"
)

const (
	// triangleSpeed is the demo world rotation in radians per second.
	triangleSpeed = 0.8
	// logPanelLines is the number of log lines shown in the bottom panel.
	logPanelLines = 6
)

// Editor is the main editor state. It ticks the world and lays out the
// editor panels.
type Editor struct {
	state.Base

	logger *slog.Logger
	lines  *logging.Lines
	world  *scene.Triangle
	assets []string
}

// NewEditor creates the editor state. lines may be nil.
func NewEditor(logger *slog.Logger, lines *logging.Lines) *Editor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Editor{
		logger: logger.With("state", "editor"),
		lines:  lines,
		world:  scene.NewTriangle(triangleSpeed),
	}
}

func (e *Editor) OnStart(res *resources.Resources) error {
	e.logger.Info("editor started")
	res.SetCursorVisible(true)
	return nil
}

func (e *Editor) OnStop(*resources.Resources) error {
	e.logger.Info("editor stopped", "assets", len(e.assets))
	return nil
}

func (e *Editor) OnPause(*resources.Resources) error {
	e.logger.Debug("editor paused")
	return nil
}

func (e *Editor) OnResume(*resources.Resources) error {
	e.logger.Debug("editor resumed")
	return nil
}

func (e *Editor) OnKey(res *resources.Resources, key platform.Key, st platform.ElementState) (state.Transition, error) {
	e.logger.Debug("key", "key", key, "state", st)
	if st != platform.Pressed {
		return state.None(), nil
	}
	switch key {
	case platform.KeyF1:
		return state.Push(NewHelp(e.logger)), nil
	case platform.KeyF11:
		if res.Window != nil {
			res.Window.SetFullscreen(!res.Window.IsFullscreen())
		}
	}
	return state.None(), nil
}

func (e *Editor) OnMouse(_ *resources.Resources, button platform.MouseButton, st platform.ElementState) (state.Transition, error) {
	e.logger.Debug("mouse", "button", button, "state", st)
	return state.None(), nil
}

func (e *Editor) OnFileDropped(_ *resources.Resources, path string) (state.Transition, error) {
	e.logger.Info("file dropped", "path", path)
	e.assets = append(e.assets, path)
	return state.None(), nil
}

func (e *Editor) OnGamepadEvent(_ *resources.Resources, ev platform.GamepadEvent) (state.Transition, error) {
	e.logger.Debug("gamepad event",
		"id", ev.ID,
		"kind", ev.Kind,
		"button", ev.Button,
		"axis", ev.Axis,
		"value", ev.Value,
	)
	return state.None(), nil
}

func (e *Editor) Update(res *resources.Resources) (state.Transition, error) {
	if err := e.world.Tick(res.System.DeltaTime); err != nil {
		return state.None(), fmt.Errorf("failed to tick world: %w", err)
	}
	e.world.Draw(res.Scene)
	return state.None(), nil
}

func (e *Editor) UpdateGUI(res *resources.Resources) (state.Transition, error) {
	ctx := res.GUI
	var next state.Transition

	gui.TopPanel("top_panel").Show(ctx, func(ui *gui.UI) {
		ui.MenuBar(func(ui *gui.UI) {
			ui.DarkLightModeSwitch()
			ui.Separator()
			if ui.Button("Help") {
				next = state.Push(NewHelp(e.logger))
			}
			if ui.Button("Quit") {
				next = state.Quit()
			}
		})
	})

	gui.SidePanelLeft("scene_explorer").Show(ctx, func(ui *gui.UI) {
		ui.Heading("Scene Explorer")
		ui.Label("Triangle")
	})

	gui.SidePanelRight("inspector").Show(ctx, func(ui *gui.UI) {
		ui.Heading("Inspector")
		ui.Label(fmt.Sprintf("Angle: %.2f rad", e.world.Angle()))
		ui.Label(fmt.Sprintf("Speed: %.2f rad/s", e.world.Speed))
		ui.Separator()
		ui.Label(fmt.Sprintf("Frame: %d", res.System.FrameCount))
		if res.System.DeltaTime > 0 {
			ui.Label(fmt.Sprintf("FPS: %.0f", 1/res.System.DeltaTime))
		}
	})

	gui.BottomPanel("assets").Show(ctx, func(ui *gui.UI) {
		ui.Heading("Assets")
		if len(e.assets) == 0 {
			ui.Label("Drop files onto the window to add assets.")
		}
		for _, path := range e.assets {
			ui.Label(filepath.Base(path))
		}
		if e.lines == nil {
			return
		}
		ui.Separator()
		logs := e.lines.Snapshot()
		if len(logs) > logPanelLines {
			logs = logs[len(logs)-logPanelLines:]
		}
		for _, line := range logs {
			ui.Label(line)
		}
	})

	return next, nil
}

// Assets returns the dropped file paths.
func (e *Editor) Assets() []string {
	return e.assets
}

// Help lists the editor shortcuts. F1 or Backspace returns to the editor.
type Help struct {
	state.Base
	logger *slog.Logger
}

// NewHelp creates the help state.
func NewHelp(logger *slog.Logger) *Help {
	return &Help{logger: logger}
}

func (h *Help) OnStart(*resources.Resources) error {
	h.logger.Debug("help opened")
	return nil
}

func (h *Help) OnStop(*resources.Resources) error {
	h.logger.Debug("help closed")
	return nil
}

func (h *Help) OnKey(_ *resources.Resources, key platform.Key, st platform.ElementState) (state.Transition, error) {
	if st == platform.Pressed && (key == platform.KeyF1 || key == platform.KeyBackspace) {
		return state.Pop(), nil
	}
	return state.None(), nil
}

func (h *Help) UpdateGUI(res *resources.Resources) (state.Transition, error) {
	gui.SidePanelLeft("help").DefaultSize(260).Show(res.GUI, func(ui *gui.UI) {
		ui.Heading("Shortcuts")
		ui.Label("F1         toggle this help")
		ui.Label("F11        toggle fullscreen")
		ui.Label("Backspace  close help")
		ui.Label("Escape     quit")
	})
	return state.None(), nil
}

// Package app provides the frame orchestrator that binds the platform event
// loop to the state machine, the GUI and the renderer.
package app

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/younwookim/phantom/internal/application/resources"
	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/application/state"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render"
)

// Handles are the long-lived platform and render handles lent to states.
type Handles struct {
	Window   platform.Window
	Gamepads platform.GamepadSource
	Renderer render.Renderer
}

// Orchestrator owns the state machine and the per-frame collaborators.
// It is driven by Handle and is not safe for concurrent use.
type Orchestrator struct {
	machine *state.Machine
	handles Handles
	logger  *slog.Logger

	gui    *gui.Context
	input  *resources.Input
	system *resources.System
	scene  *scene.DrawList
	now    func() time.Time

	started bool
	err     error
}

// NewOrchestrator creates an orchestrator seeded with initial. The machine
// starts on the first event.
func NewOrchestrator(initial state.State, handles Handles, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		machine: state.NewMachine(initial),
		handles: handles,
		logger:  logger,
		gui:     gui.NewContext(),
		input:   resources.NewInput(),
		scene:   &scene.DrawList{},
		now:     time.Now,
	}
	o.system = resources.NewSystem(o.now())
	if handles.Window != nil {
		o.system.Width, o.system.Height = handles.Window.Size()
		o.system.ScaleFactor = handles.Window.ScaleFactor()
	}
	return o
}

// Machine returns the state machine.
func (o *Orchestrator) Machine() *state.Machine {
	return o.machine
}

// System returns the frame timing resource.
func (o *Orchestrator) System() *resources.System {
	return o.system
}

// Err returns the fatal error that ended the loop, if any.
func (o *Orchestrator) Err() error {
	return o.err
}

func (o *Orchestrator) resources() *resources.Resources {
	return &resources.Resources{
		Window:   o.handles.Window,
		Gamepads: o.handles.Gamepads,
		Renderer: o.handles.Renderer,
		GUI:      o.gui,
		Input:    o.input,
		System:   o.system,
		Scene:    o.scene,
	}
}

// Handle processes one platform event. It implements platform.Handler.
func (o *Orchestrator) Handle(ev platform.Event) platform.ControlFlow {
	res := o.resources()
	defer res.Release()

	if !o.started {
		if err := o.machine.Start(res); err != nil {
			o.err = fmt.Errorf("failed to start initial state: %w", err)
			o.logger.Error("application error", "error", err)
			return platform.Exit
		}
		o.started = true
	}

	o.gui.HandleEvent(ev)
	o.input.Handle(ev)

	switch e := ev.(type) {
	case platform.CloseRequested:
		o.quit(res)
		return platform.Exit
	case platform.KeyboardInput:
		if e.Key == platform.KeyEscape && e.State == platform.Pressed {
			o.quit(res)
			return platform.Exit
		}
	}

	o.contain(res, o.machine.HandleEvent(res, ev))

	switch e := ev.(type) {
	case platform.KeyboardInput:
		o.contain(res, o.machine.Key(res, e.Key, e.State))
	case platform.MouseInput:
		o.contain(res, o.machine.Mouse(res, e.Button, e.State))
	case platform.FileDropped:
		o.contain(res, o.machine.FileDropped(res, e.Path))
	case platform.Resized:
		o.system.Width, o.system.Height = e.Width, e.Height
		if o.handles.Renderer != nil {
			o.handles.Renderer.Resize(e.Width, e.Height)
		}
	case platform.ScaleFactorChanged:
		if e.ScaleFactor > 0 {
			o.system.ScaleFactor = e.ScaleFactor
		}
	case platform.FrameReady:
		o.frame(res)
	}

	if o.err != nil || !o.machine.IsRunning() || o.system.ExitRequested {
		if o.machine.IsRunning() {
			o.quit(res)
		}
		return platform.Exit
	}
	return platform.Continue
}

// frame runs one update, GUI build and render.
func (o *Orchestrator) frame(res *resources.Resources) {
	o.system.Tick(o.now())

	if o.handles.Gamepads != nil {
		if ev, ok := o.handles.Gamepads.NextEvent(); ok {
			o.contain(res, o.machine.Gamepad(res, ev))
		}
	}

	o.contain(res, o.machine.Update(res))
	if !o.machine.IsRunning() {
		return
	}

	scale := o.system.ScaleFactor
	if scale <= 0 {
		scale = 1
	}
	o.gui.BeginFrame(gui.RawInput{
		ScreenSize:     gui.Pt(float32(float64(o.system.Width)/scale), float32(float64(o.system.Height)/scale)),
		PixelsPerPoint: float32(scale),
		Time:           o.system.Elapsed,
	})
	o.contain(res, o.machine.UpdateGUI(res))
	out := o.gui.EndFrame()

	if o.machine.IsRunning() && o.handles.Renderer != nil {
		paint := gui.PaintData{
			Jobs:           o.gui.Tessellate(out.Shapes),
			Textures:       out.Textures,
			PixelsPerPoint: out.PixelsPerPoint,
		}
		if err := o.handles.Renderer.Render(paint, o.scene); err != nil {
			if render.IsFatal(err) {
				o.err = err
				o.logger.Error("fatal render error", "error", err)
			} else {
				o.logger.Error("failed to render frame", "error", err)
			}
		}
	}

	o.input.EndFrame()
	o.scene.Reset()
}

// contain logs err and pops the state whose hook failed.
func (o *Orchestrator) contain(res *resources.Resources, err error) {
	if err == nil {
		return
	}
	o.logger.Error("application error", "error", err)
	if rerr := o.machine.Recover(res, err); rerr != nil {
		o.logger.Error("failed to recover from application error", "error", rerr)
	}
}

func (o *Orchestrator) quit(res *resources.Resources) {
	if err := o.machine.Transition(res, state.Quit()); err != nil {
		o.logger.Error("application error", "error", err)
	}
}

// Shutdown stops every remaining state.
func (o *Orchestrator) Shutdown() {
	if !o.machine.IsRunning() {
		return
	}
	res := o.resources()
	defer res.Release()
	o.quit(res)
}

package app

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/phantom/internal/application/resources"
	"github.com/younwookim/phantom/internal/application/scene"
	"github.com/younwookim/phantom/internal/application/state"
	"github.com/younwookim/phantom/internal/gui"
	"github.com/younwookim/phantom/internal/logging"
	"github.com/younwookim/phantom/internal/platform"
	"github.com/younwookim/phantom/internal/render/hal"
)

type fakeWindow struct {
	width, height uint32
	scale         float64
}

func (w *fakeWindow) Size() (uint32, uint32)   { return w.width, w.height }
func (w *fakeWindow) ScaleFactor() float64     { return w.scale }
func (w *fakeWindow) SetTitle(string)          {}
func (w *fakeWindow) SetCursorGrab(bool) error { return nil }
func (w *fakeWindow) SetCursorVisible(bool)    {}
func (w *fakeWindow) SetFullscreen(bool)       {}
func (w *fakeWindow) IsFullscreen() bool       { return false }

type fakeRenderer struct {
	journal *[]string
	resizes [][2]uint32
	paints  []gui.PaintData
	draws   []int
	err     error
}

func (r *fakeRenderer) Resize(width, height uint32) {
	r.resizes = append(r.resizes, [2]uint32{width, height})
}

func (r *fakeRenderer) Render(paint gui.PaintData, world *scene.DrawList) error {
	*r.journal = append(*r.journal, "Render")
	r.paints = append(r.paints, paint)
	r.draws = append(r.draws, world.Len())
	return r.err
}

type fakeGamepads struct {
	events []platform.GamepadEvent
}

func (g *fakeGamepads) NextEvent() (platform.GamepadEvent, bool) {
	if len(g.events) == 0 {
		return platform.GamepadEvent{}, false
	}
	ev := g.events[0]
	g.events = g.events[1:]
	return ev, true
}

// scriptState journals its hooks and returns the scripted results.
type scriptState struct {
	state.Base
	name    string
	journal *[]string

	onKey     func(key platform.Key, st platform.ElementState) state.Transition
	onUpdate  func(res *resources.Resources) state.Transition
	startErr  error
	updateErr error
}

func (s *scriptState) log(hook string) { *s.journal = append(*s.journal, s.name+"."+hook) }

func (s *scriptState) OnStart(*resources.Resources) error  { s.log("OnStart"); return s.startErr }
func (s *scriptState) OnStop(*resources.Resources) error   { s.log("OnStop"); return nil }
func (s *scriptState) OnPause(*resources.Resources) error  { s.log("OnPause"); return nil }
func (s *scriptState) OnResume(*resources.Resources) error { s.log("OnResume"); return nil }

func (s *scriptState) OnKey(_ *resources.Resources, key platform.Key, st platform.ElementState) (state.Transition, error) {
	s.log("OnKey")
	if s.onKey != nil {
		return s.onKey(key, st), nil
	}
	return state.None(), nil
}

func (s *scriptState) OnMouse(*resources.Resources, platform.MouseButton, platform.ElementState) (state.Transition, error) {
	s.log("OnMouse")
	return state.None(), nil
}

func (s *scriptState) OnFileDropped(_ *resources.Resources, path string) (state.Transition, error) {
	s.log("OnFileDropped:" + path)
	return state.None(), nil
}

func (s *scriptState) OnGamepadEvent(_ *resources.Resources, ev platform.GamepadEvent) (state.Transition, error) {
	s.log(fmt.Sprintf("OnGamepadEvent:%d", ev.Button))
	return state.None(), nil
}

func (s *scriptState) Update(res *resources.Resources) (state.Transition, error) {
	s.log("Update")
	if s.updateErr != nil {
		return state.None(), s.updateErr
	}
	if s.onUpdate != nil {
		return s.onUpdate(res), nil
	}
	return state.None(), nil
}

func (s *scriptState) UpdateGUI(*resources.Resources) (state.Transition, error) {
	s.log("UpdateGUI")
	return state.None(), nil
}

type harness struct {
	orch     *Orchestrator
	journal  *[]string
	renderer *fakeRenderer
	gamepads *fakeGamepads
	logs     *bytes.Buffer
}

func newHarness(t *testing.T, initial func(journal *[]string) state.State) *harness {
	t.Helper()
	journal := &[]string{}
	logs := &bytes.Buffer{}
	h := &harness{
		journal:  journal,
		renderer: &fakeRenderer{journal: journal},
		gamepads: &fakeGamepads{},
		logs:     logs,
	}
	h.orch = NewOrchestrator(initial(journal), Handles{
		Window:   &fakeWindow{width: 800, height: 600, scale: 2},
		Gamepads: h.gamepads,
		Renderer: h.renderer,
	}, logging.NewLogger(logs, logging.LevelDebug))
	clock := time.Unix(0, 0)
	h.orch.now = func() time.Time {
		clock = clock.Add(16 * time.Millisecond)
		return clock
	}
	return h
}

func simple(name string) func(*[]string) state.State {
	return func(journal *[]string) state.State {
		return &scriptState{name: name, journal: journal}
	}
}

func TestOrchestrator_StartsLazilyOnce(t *testing.T) {
	h := newHarness(t, simple("A"))
	assert.False(t, h.orch.Machine().IsRunning())

	assert.Equal(t, platform.Continue, h.orch.Handle(platform.Focused{Focused: true}))
	assert.Equal(t, platform.Continue, h.orch.Handle(platform.Focused{Focused: false}))

	assert.Equal(t, []string{"A.OnStart"}, *h.journal)
	assert.True(t, h.orch.Machine().IsRunning())
}

func TestOrchestrator_StartFailureIsFatal(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, startErr: errors.New("boom")}
	})

	assert.Equal(t, platform.Exit, h.orch.Handle(platform.FrameReady{}))
	assert.ErrorContains(t, h.orch.Err(), "failed to start initial state")
}

func TestOrchestrator_EscapeExitsBeforeDispatch(t *testing.T) {
	h := newHarness(t, simple("A"))

	flow := h.orch.Handle(platform.KeyboardInput{Key: platform.KeyEscape, State: platform.Pressed})

	assert.Equal(t, platform.Exit, flow)
	assert.Equal(t, []string{"A.OnStart", "A.OnStop"}, *h.journal)
	assert.False(t, h.orch.Machine().IsRunning())
	assert.NoError(t, h.orch.Err())
}

func TestOrchestrator_EscapeReleaseIsDispatched(t *testing.T) {
	h := newHarness(t, simple("A"))

	flow := h.orch.Handle(platform.KeyboardInput{Key: platform.KeyEscape, State: platform.Released})

	assert.Equal(t, platform.Continue, flow)
	assert.Equal(t, []string{"A.OnStart", "A.OnKey"}, *h.journal)
}

func TestOrchestrator_CloseRequestedDrainsStack(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onKey: func(platform.Key, platform.ElementState) state.Transition {
			return state.Push(&scriptState{name: "B", journal: journal})
		}}
	})
	h.orch.Handle(platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed})
	require.Equal(t, 2, h.orch.Machine().Len())

	flow := h.orch.Handle(platform.CloseRequested{})

	assert.Equal(t, platform.Exit, flow)
	assert.Equal(t, []string{"A.OnStart", "A.OnKey", "A.OnPause", "B.OnStart", "B.OnStop", "A.OnStop"}, *h.journal)
}

func TestOrchestrator_FrameOrder(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onUpdate: func(res *resources.Resources) state.Transition {
			scene.NewTriangle(1).Draw(res.Scene)
			return state.None()
		}}
	})
	h.gamepads.events = []platform.GamepadEvent{
		{Kind: platform.GamepadButtonPressed, Button: 3},
		{Kind: platform.GamepadButtonReleased, Button: 4},
	}

	assert.Equal(t, platform.Continue, h.orch.Handle(platform.FrameReady{}))

	assert.Equal(t, []string{"A.OnStart", "A.OnGamepadEvent:3", "A.Update", "A.UpdateGUI", "Render"}, *h.journal)
	assert.Len(t, h.gamepads.events, 1, "one gamepad event per iteration")
	require.Len(t, h.renderer.draws, 1)
	assert.Equal(t, 1, h.renderer.draws[0], "the scene drawn during Update is rendered")
	assert.Equal(t, 0, h.orch.scene.Len(), "the draw list is reset after the frame")
	assert.Equal(t, uint64(1), h.orch.System().FrameCount)
}

func TestOrchestrator_GUIUsesScaleFactor(t *testing.T) {
	h := newHarness(t, simple("A"))

	h.orch.Handle(platform.FrameReady{})
	h.orch.Handle(platform.FrameReady{})

	require.Len(t, h.renderer.paints, 2)
	first := h.renderer.paints[0]
	assert.Equal(t, float32(2), first.PixelsPerPoint)
	assert.False(t, first.Textures.IsEmpty(), "the font is uploaded on the first frame")
	assert.Equal(t, gui.Rect{Max: gui.Pt(400, 300)}, h.orch.gui.Screen())
	assert.True(t, h.renderer.paints[1].Textures.IsEmpty())
}

func TestOrchestrator_ResizeAndScale(t *testing.T) {
	h := newHarness(t, simple("A"))

	h.orch.Handle(platform.Resized{Width: 1280, Height: 720})
	h.orch.Handle(platform.ScaleFactorChanged{ScaleFactor: 1.5})

	assert.Equal(t, [][2]uint32{{1280, 720}}, h.renderer.resizes)
	assert.Equal(t, uint32(1280), h.orch.System().Width)
	assert.Equal(t, uint32(720), h.orch.System().Height)
	assert.Equal(t, 1.5, h.orch.System().ScaleFactor)
}

func TestOrchestrator_DispatchesInputHooks(t *testing.T) {
	h := newHarness(t, simple("A"))

	h.orch.Handle(platform.MouseInput{Button: platform.MouseButtonLeft, State: platform.Pressed})
	h.orch.Handle(platform.FileDropped{Path: "mesh.glb"})

	assert.Equal(t, []string{"A.OnStart", "A.OnMouse", "A.OnFileDropped:mesh.glb"}, *h.journal)
}

func TestOrchestrator_KeyTransitionsApplied(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onKey: func(key platform.Key, st platform.ElementState) state.Transition {
			if key == platform.KeyF1 && st == platform.Pressed {
				return state.Push(&scriptState{name: "B", journal: journal, onKey: func(platform.Key, platform.ElementState) state.Transition {
					return state.Pop()
				}})
			}
			return state.None()
		}}
	})

	h.orch.Handle(platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed})
	assert.Equal(t, 2, h.orch.Machine().Len())

	h.orch.Handle(platform.KeyboardInput{Key: platform.KeyF1, State: platform.Released})
	assert.Equal(t, 1, h.orch.Machine().Len())
	assert.Equal(t, []string{
		"A.OnStart", "A.OnKey", "A.OnPause", "B.OnStart",
		"B.OnKey", "B.OnStop", "A.OnResume",
	}, *h.journal)
}

func TestOrchestrator_HookErrorPopsState(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onKey: func(platform.Key, platform.ElementState) state.Transition {
			return state.Push(&scriptState{name: "B", journal: journal, updateErr: errors.New("broken")})
		}}
	})
	h.orch.Handle(platform.KeyboardInput{Key: platform.KeyF1, State: platform.Pressed})

	flow := h.orch.Handle(platform.FrameReady{})

	assert.Equal(t, platform.Continue, flow)
	assert.Equal(t, 1, h.orch.Machine().Len())
	assert.Contains(t, h.logs.String(), "broken")
	assert.Contains(t, *h.journal, "A.OnResume")
}

func TestOrchestrator_HookErrorInLastStateExits(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, updateErr: errors.New("broken")}
	})

	flow := h.orch.Handle(platform.FrameReady{})

	assert.Equal(t, platform.Exit, flow)
	assert.False(t, h.orch.Machine().IsRunning())
	assert.NotContains(t, *h.journal, "Render")
}

func TestOrchestrator_QuitTransitionExits(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onUpdate: func(*resources.Resources) state.Transition {
			return state.Quit()
		}}
	})

	assert.Equal(t, platform.Exit, h.orch.Handle(platform.FrameReady{}))
	assert.Equal(t, []string{"A.OnStart", "A.Update", "A.OnStop"}, *h.journal)
}

func TestOrchestrator_ExitRequested(t *testing.T) {
	h := newHarness(t, func(journal *[]string) state.State {
		return &scriptState{name: "A", journal: journal, onUpdate: func(res *resources.Resources) state.Transition {
			res.RequestExit()
			return state.None()
		}}
	})

	assert.Equal(t, platform.Exit, h.orch.Handle(platform.FrameReady{}))
	assert.False(t, h.orch.Machine().IsRunning())
	assert.Contains(t, *h.journal, "A.OnStop")
}

func TestOrchestrator_RenderErrors(t *testing.T) {
	t.Run("recoverable", func(t *testing.T) {
		h := newHarness(t, simple("A"))
		h.renderer.err = errors.New("validation failed")

		assert.Equal(t, platform.Continue, h.orch.Handle(platform.FrameReady{}))
		assert.NoError(t, h.orch.Err())
		assert.Contains(t, h.logs.String(), "failed to render frame")
	})

	t.Run("out of memory", func(t *testing.T) {
		h := newHarness(t, simple("A"))
		h.renderer.err = fmt.Errorf("render frame: %w", hal.ErrOutOfMemory)

		assert.Equal(t, platform.Exit, h.orch.Handle(platform.FrameReady{}))
		assert.ErrorIs(t, h.orch.Err(), hal.ErrOutOfMemory)
		assert.Equal(t, "A.OnStop", (*h.journal)[len(*h.journal)-1])
	})
}

func TestOrchestrator_Shutdown(t *testing.T) {
	h := newHarness(t, simple("A"))
	h.orch.Handle(platform.Focused{Focused: true})

	h.orch.Shutdown()
	h.orch.Shutdown()

	assert.Equal(t, []string{"A.OnStart", "A.OnStop"}, *h.journal)
}

func TestOrchestrator_NilLogger(t *testing.T) {
	o := NewOrchestrator(&state.Empty{}, Handles{}, nil)

	assert.Equal(t, platform.Continue, o.Handle(platform.FrameReady{}))
	assert.Equal(t, slog.Default(), o.logger)
}

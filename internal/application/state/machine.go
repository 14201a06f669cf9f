package state

import (
	"errors"
	"fmt"

	"github.com/younwookim/phantom/internal/application/resources"
	"github.com/younwookim/phantom/internal/platform"
)

// Machine is a pushdown automaton of States. Only the top state receives
// events and updates; states beneath it are paused.
type Machine struct {
	running bool
	states  []State
}

// NewMachine creates a stopped machine seeded with initial.
func NewMachine(initial State) *Machine {
	return &Machine{
		states: []State{initial},
	}
}

// CurrentState returns the top of the stack.
func (m *Machine) CurrentState() (State, error) {
	if len(m.states) == 0 {
		return nil, ErrEmptyStack
	}
	return m.states[len(m.states)-1], nil
}

// IsRunning reports whether the machine has been started and not yet drained.
func (m *Machine) IsRunning() bool {
	return m.running
}

// Len returns the number of states on the stack.
func (m *Machine) Len() int {
	return len(m.states)
}

// Start calls OnStart on the top state and marks the machine running.
// Calling Start on a running machine does nothing.
func (m *Machine) Start(res *resources.Resources) error {
	if m.running {
		return nil
	}
	top, err := m.CurrentState()
	if err != nil {
		return err
	}
	if err := hookErr("OnStart", top, m.top(), top.OnStart(res)); err != nil {
		return err
	}
	m.running = true
	return nil
}

// HandleEvent forwards ev to the top state and applies the result.
func (m *Machine) HandleEvent(res *resources.Resources, ev platform.Event) error {
	return m.dispatch(res, "OnEvent", func(s State) (Transition, error) {
		return s.OnEvent(res, ev)
	})
}

// Update runs the top state's per-frame update and applies the result.
func (m *Machine) Update(res *resources.Resources) error {
	return m.dispatch(res, "Update", func(s State) (Transition, error) {
		return s.Update(res)
	})
}

// UpdateGUI runs the top state's GUI build and applies the result.
func (m *Machine) UpdateGUI(res *resources.Resources) error {
	return m.dispatch(res, "UpdateGUI", func(s State) (Transition, error) {
		return s.UpdateGUI(res)
	})
}

// Key forwards a keyboard event to the top state.
func (m *Machine) Key(res *resources.Resources, key platform.Key, st platform.ElementState) error {
	return m.dispatch(res, "OnKey", func(s State) (Transition, error) {
		return s.OnKey(res, key, st)
	})
}

// Mouse forwards a mouse button event to the top state.
func (m *Machine) Mouse(res *resources.Resources, button platform.MouseButton, st platform.ElementState) error {
	return m.dispatch(res, "OnMouse", func(s State) (Transition, error) {
		return s.OnMouse(res, button, st)
	})
}

// FileDropped forwards a dropped file path to the top state.
func (m *Machine) FileDropped(res *resources.Resources, path string) error {
	return m.dispatch(res, "OnFileDropped", func(s State) (Transition, error) {
		return s.OnFileDropped(res, path)
	})
}

// Gamepad forwards a gamepad event to the top state.
func (m *Machine) Gamepad(res *resources.Resources, ev platform.GamepadEvent) error {
	return m.dispatch(res, "OnGamepadEvent", func(s State) (Transition, error) {
		return s.OnGamepadEvent(res, ev)
	})
}

func (m *Machine) dispatch(res *resources.Resources, hook string, call func(State) (Transition, error)) error {
	if !m.running {
		return nil
	}
	top, err := m.CurrentState()
	if err != nil {
		return err
	}
	t, err := call(top)
	if err != nil {
		return hookErr(hook, top, m.top(), err)
	}
	return m.Transition(res, t)
}

// Transition applies t to the stack. It does nothing while the machine
// is not running.
func (m *Machine) Transition(res *resources.Resources, t Transition) error {
	if !m.running {
		return nil
	}
	switch t.Kind() {
	case KindNone:
		return nil
	case KindPop:
		return m.pop(res)
	case KindPush:
		return m.push(res, t.State())
	case KindSwitch:
		return m.switchTo(res, t.State())
	case KindQuit:
		return m.Stop(res)
	default:
		return fmt.Errorf("unknown transition kind %d", t.Kind())
	}
}

func (m *Machine) push(res *resources.Resources, s State) error {
	if s == nil {
		return ErrNilState
	}
	if top, err := m.CurrentState(); err == nil {
		if err := hookErr("OnPause", top, m.top(), top.OnPause(res)); err != nil {
			return err
		}
	}
	m.states = append(m.states, s)
	return hookErr("OnStart", s, m.top(), s.OnStart(res))
}

func (m *Machine) pop(res *resources.Resources) error {
	top, err := m.CurrentState()
	if err != nil {
		return err
	}
	m.states = m.states[:len(m.states)-1]
	stopErr := hookErr("OnStop", top, -1, top.OnStop(res))

	next, err := m.CurrentState()
	if err != nil {
		m.running = false
		return stopErr
	}
	return errors.Join(stopErr, hookErr("OnResume", next, m.top(), next.OnResume(res)))
}

func (m *Machine) switchTo(res *resources.Resources, s State) error {
	if s == nil {
		return ErrNilState
	}
	var stopErr error
	if top, err := m.CurrentState(); err == nil {
		m.states = m.states[:len(m.states)-1]
		stopErr = hookErr("OnStop", top, -1, top.OnStop(res))
	}
	m.states = append(m.states, s)
	return errors.Join(stopErr, hookErr("OnStart", s, m.top(), s.OnStart(res)))
}

// Stop calls OnStop on every state from top to bottom, empties the
// stack and halts the machine. Every state is stopped even when an
// earlier OnStop fails; the failures are joined.
func (m *Machine) Stop(res *resources.Resources) error {
	if !m.running {
		return nil
	}
	var errs []error
	for len(m.states) > 0 {
		top := m.states[len(m.states)-1]
		m.states = m.states[:len(m.states)-1]
		if err := hookErr("OnStop", top, -1, top.OnStop(res)); err != nil {
			errs = append(errs, err)
		}
	}
	m.running = false
	return errors.Join(errs...)
}

// Recover contains a hook failure returned by another Machine method.
// When the failing state is still on top it is popped, so a broken
// state cannot keep failing every frame. Popping the last state halts
// the machine. The error from the recovery pop itself is returned.
//
// The failing state is matched by stack position, so States need not
// be comparable.
func (m *Machine) Recover(res *resources.Resources, err error) error {
	if !m.running {
		return nil
	}
	if len(m.states) == 0 {
		m.running = false
		return nil
	}
	if findHookError(err, m.top()) == nil {
		return nil
	}
	return m.pop(res)
}

// top is the index of the top state, -1 when the stack is empty.
func (m *Machine) top() int {
	return len(m.states) - 1
}

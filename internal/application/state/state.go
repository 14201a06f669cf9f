// Package state provides the stacked application state machine.
package state

import (
	"github.com/younwookim/phantom/internal/application/resources"
	"github.com/younwookim/phantom/internal/platform"
)

// State is one screen or mode of the application.
// Lifecycle hooks return an error only; input and frame hooks may also
// request a Transition.
type State interface {
	OnStart(res *resources.Resources) error
	OnStop(res *resources.Resources) error
	OnPause(res *resources.Resources) error
	OnResume(res *resources.Resources) error

	OnKey(res *resources.Resources, key platform.Key, st platform.ElementState) (Transition, error)
	OnMouse(res *resources.Resources, button platform.MouseButton, st platform.ElementState) (Transition, error)
	OnFileDropped(res *resources.Resources, path string) (Transition, error)
	OnGamepadEvent(res *resources.Resources, ev platform.GamepadEvent) (Transition, error)
	OnEvent(res *resources.Resources, ev platform.Event) (Transition, error)

	Update(res *resources.Resources) (Transition, error)
	UpdateGUI(res *resources.Resources) (Transition, error)
}

// Base implements every State hook as a no-op returning None.
// Embed it and override only the hooks you need.
type Base struct{}

func (Base) OnStart(*resources.Resources) error  { return nil }
func (Base) OnStop(*resources.Resources) error   { return nil }
func (Base) OnPause(*resources.Resources) error  { return nil }
func (Base) OnResume(*resources.Resources) error { return nil }

func (Base) OnKey(*resources.Resources, platform.Key, platform.ElementState) (Transition, error) {
	return None(), nil
}

func (Base) OnMouse(*resources.Resources, platform.MouseButton, platform.ElementState) (Transition, error) {
	return None(), nil
}

func (Base) OnFileDropped(*resources.Resources, string) (Transition, error) {
	return None(), nil
}

func (Base) OnGamepadEvent(*resources.Resources, platform.GamepadEvent) (Transition, error) {
	return None(), nil
}

func (Base) OnEvent(*resources.Resources, platform.Event) (Transition, error) {
	return None(), nil
}

func (Base) Update(*resources.Resources) (Transition, error)    { return None(), nil }
func (Base) UpdateGUI(*resources.Resources) (Transition, error) { return None(), nil }

// Empty is a state that does nothing.
type Empty struct {
	Base
}

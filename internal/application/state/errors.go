package state

import (
	"errors"
	"fmt"
)

// ErrEmptyStack is returned when the machine has no states.
var ErrEmptyStack = errors.New("state machine has no states")

// ErrNilState is returned when Push or Switch carries no state.
var ErrNilState = errors.New("transition carries a nil state")

// HookError records a failure in one state hook.
type HookError struct {
	Hook  string
	State State
	// Depth is the stack index State held when the hook failed, or -1
	// when it had already been removed.
	Depth int
	Err   error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("%s %T: %v", e.Hook, e.State, e.Err)
}

func (e *HookError) Unwrap() error {
	return e.Err
}

func hookErr(hook string, s State, depth int, err error) error {
	if err == nil {
		return nil
	}
	return &HookError{Hook: hook, State: s, Depth: depth, Err: err}
}

// findHookError returns the hook failure in err raised at depth.
func findHookError(err error, depth int) *HookError {
	switch e := err.(type) {
	case nil:
		return nil
	case *HookError:
		if e.Depth == depth {
			return e
		}
		return findHookError(e.Err, depth)
	case interface{ Unwrap() []error }:
		for _, inner := range e.Unwrap() {
			if he := findHookError(inner, depth); he != nil {
				return he
			}
		}
		return nil
	default:
		return findHookError(errors.Unwrap(err), depth)
	}
}

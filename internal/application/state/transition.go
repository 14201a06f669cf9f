package state

// Kind identifies a transition variant.
type Kind int

const (
	KindNone Kind = iota
	KindPop
	KindPush
	KindSwitch
	KindQuit
)

// String returns the string representation of the transition kind
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindPop:
		return "Pop"
	case KindPush:
		return "Push"
	case KindSwitch:
		return "Switch"
	case KindQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Transition is a request to change the state stack.
// The zero value is None.
type Transition struct {
	kind Kind
	next State
}

// None leaves the stack unchanged.
func None() Transition { return Transition{} }

// Pop removes the top state.
func Pop() Transition { return Transition{kind: KindPop} }

// Push pauses the top state and starts s above it.
func Push(s State) Transition { return Transition{kind: KindPush, next: s} }

// Switch stops the top state and replaces it with s.
func Switch(s State) Transition { return Transition{kind: KindSwitch, next: s} }

// Quit stops every state and halts the machine.
func Quit() Transition { return Transition{kind: KindQuit} }

// Kind returns the transition variant.
func (t Transition) Kind() Kind { return t.kind }

// State returns the state carried by Push and Switch, nil otherwise.
func (t Transition) State() State { return t.next }

// String returns the string representation of the transition
func (t Transition) String() string { return t.kind.String() }

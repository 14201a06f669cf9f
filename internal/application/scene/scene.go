// Package scene defines the world collaborator ticked by the application
// and the draw list it fills for the renderer.
package scene

// World is advanced once per frame and describes what to draw.
type World interface {
	// Tick advances the world by dt seconds.
	Tick(dt float64) error
	// Draw appends this frame's geometry to list.
	Draw(list *DrawList)
}

// Vertex is a colored point in normalized device coordinates
// (x and y in [-1, 1], y up).
type Vertex struct {
	Position [2]float32
	Color    [4]float32
}

// DrawCall is one indexed triangle list.
type DrawCall struct {
	Label    string
	Vertices []Vertex
	Indices  []uint32
}

// DrawList collects the draw calls of one frame.
type DrawList struct {
	Calls []DrawCall
}

// Add appends a draw call. Calls with no indices are dropped.
func (l *DrawList) Add(call DrawCall) {
	if len(call.Indices) == 0 {
		return
	}
	l.Calls = append(l.Calls, call)
}

// Len returns the number of draw calls.
func (l *DrawList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Calls)
}

// Reset empties the list, keeping its capacity.
func (l *DrawList) Reset() {
	l.Calls = l.Calls[:0]
}

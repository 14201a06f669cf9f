package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawList_AddAndReset(t *testing.T) {
	var list DrawList

	list.Add(DrawCall{Label: "empty"})
	assert.Equal(t, 0, list.Len(), "calls without indices are dropped")

	list.Add(DrawCall{Label: "tri", Vertices: make([]Vertex, 3), Indices: []uint32{0, 1, 2}})
	assert.Equal(t, 1, list.Len())

	list.Reset()
	assert.Equal(t, 0, list.Len())
	assert.GreaterOrEqual(t, cap(list.Calls), 1)
}

func TestDrawList_NilLen(t *testing.T) {
	var list *DrawList
	assert.Equal(t, 0, list.Len())
}

func TestTriangle_DrawAtRest(t *testing.T) {
	tri := NewTriangle(0)
	var list DrawList

	require.NoError(t, tri.Tick(1))
	tri.Draw(&list)

	require.Equal(t, 1, list.Len())
	call := list.Calls[0]
	assert.Equal(t, []uint32{0, 1, 2}, call.Indices)
	assert.Equal(t, triangleVertices[0].Position, call.Vertices[0].Position)
	assert.Equal(t, [4]float32{1, 0, 0, 1}, call.Vertices[0].Color)
}

func TestTriangle_Rotates(t *testing.T) {
	tri := NewTriangle(math.Pi / 2)
	var list DrawList

	require.NoError(t, tri.Tick(1))
	tri.Draw(&list)

	// The top vertex (0, 0.5) rotated a quarter turn lands on (-0.5, 0).
	top := list.Calls[0].Vertices[0].Position
	assert.InDelta(t, -0.5, top[0], 1e-6)
	assert.InDelta(t, 0, top[1], 1e-6)
	assert.InDelta(t, math.Pi/2, tri.Angle(), 1e-9)
}

func TestTriangle_AngleWraps(t *testing.T) {
	tri := NewTriangle(2 * math.Pi)

	for i := 0; i < 5; i++ {
		require.NoError(t, tri.Tick(0.75))
	}

	assert.Less(t, tri.Angle(), 2*math.Pi)
	assert.GreaterOrEqual(t, tri.Angle(), 0.0)
}

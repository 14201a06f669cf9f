package scene

import "math"

// Triangle is a single colored triangle rotating around the origin.
type Triangle struct {
	// Speed is the rotation speed in radians per second.
	Speed float64

	angle float64
}

// NewTriangle creates a triangle rotating at speed radians per second.
func NewTriangle(speed float64) *Triangle {
	return &Triangle{Speed: speed}
}

var triangleVertices = [3]Vertex{
	{Position: [2]float32{0, 0.5}, Color: [4]float32{1, 0, 0, 1}},
	{Position: [2]float32{-0.5, -0.5}, Color: [4]float32{0, 1, 0, 1}},
	{Position: [2]float32{0.5, -0.5}, Color: [4]float32{0, 0, 1, 1}},
}

// Tick advances the rotation.
func (t *Triangle) Tick(dt float64) error {
	t.angle = math.Mod(t.angle+t.Speed*dt, 2*math.Pi)
	return nil
}

// Angle returns the current rotation in radians.
func (t *Triangle) Angle() float64 {
	return t.angle
}

// Draw emits the rotated triangle.
func (t *Triangle) Draw(list *DrawList) {
	sin, cos := math.Sincos(t.angle)
	verts := make([]Vertex, len(triangleVertices))
	for i, v := range triangleVertices {
		x, y := float64(v.Position[0]), float64(v.Position[1])
		verts[i] = Vertex{
			Position: [2]float32{float32(x*cos - y*sin), float32(x*sin + y*cos)},
			Color:    v.Color,
		}
	}
	list.Add(DrawCall{
		Label:    "triangle",
		Vertices: verts,
		Indices:  []uint32{0, 1, 2},
	})
}

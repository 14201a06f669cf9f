package gui

import (
	"github.com/younwookim/phantom/internal/platform"
)

// RawInput describes the frame about to be built.
type RawInput struct {
	// ScreenSize is the window size in points.
	ScreenSize     Point
	PixelsPerPoint float32
	Time           float64
}

type pointerState struct {
	pos      Point
	known    bool
	down     bool
	pressed  bool
	released bool
}

// Context holds GUI state across frames.
type Context struct {
	visuals        Visuals
	atlas          *fontAtlas
	fontSent       bool
	pixelsPerPoint float32

	screen    Rect
	available Rect
	shapes    []ClippedShape
	time      float64

	pointer  pointerState
	panels   map[string]float32
	dragging string
}

// NewContext creates a context with the dark theme.
func NewContext() *Context {
	return &Context{
		visuals:        DarkVisuals(),
		atlas:          newFontAtlas(),
		pixelsPerPoint: 1,
		panels:         make(map[string]float32),
	}
}

// HandleEvent feeds a platform event to the GUI. Positions arrive in
// physical pixels and are converted to points.
func (c *Context) HandleEvent(ev platform.Event) {
	switch e := ev.(type) {
	case platform.CursorMoved:
		c.pointer.pos = Pt(float32(e.X)/c.pixelsPerPoint, float32(e.Y)/c.pixelsPerPoint)
		c.pointer.known = true
	case platform.MouseInput:
		if e.Button != platform.MouseButtonLeft {
			return
		}
		if e.State == platform.Pressed {
			c.pointer.down = true
			c.pointer.pressed = true
		} else {
			c.pointer.down = false
			c.pointer.released = true
		}
	case platform.Focused:
		if !e.Focused {
			c.pointer.down = false
			c.dragging = ""
		}
	}
}

// BeginFrame starts a new frame.
func (c *Context) BeginFrame(in RawInput) {
	if in.PixelsPerPoint > 0 {
		c.pixelsPerPoint = in.PixelsPerPoint
	}
	c.screen = Rect{Max: in.ScreenSize}
	c.available = c.screen
	c.shapes = c.shapes[:0]
	c.time = in.Time
}

// EndFrame finishes the frame and returns its shapes and texture changes.
func (c *Context) EndFrame() FullOutput {
	out := FullOutput{
		Shapes:         append([]ClippedShape(nil), c.shapes...),
		PixelsPerPoint: c.pixelsPerPoint,
	}
	if !c.fontSent {
		out.Textures.Set = map[TextureID]ImageDelta{
			FontTexture: {Image: c.atlas.img},
		}
		c.fontSent = true
	}
	c.pointer.pressed = false
	c.pointer.released = false
	return out
}

// Run builds one frame with build and returns its output.
func (c *Context) Run(in RawInput, build func(ctx *Context)) FullOutput {
	c.BeginFrame(in)
	build(c)
	return c.EndFrame()
}

// Reset makes the next frame upload every texture again. Call it after
// the renderer lost its textures.
func (c *Context) Reset() {
	c.fontSent = false
}

// SetDarkMode switches between the dark and light themes.
func (c *Context) SetDarkMode(dark bool) {
	if dark {
		c.visuals = DarkVisuals()
	} else {
		c.visuals = LightVisuals()
	}
}

// DarkMode reports whether the dark theme is active.
func (c *Context) DarkMode() bool {
	return c.visuals.Dark
}

// Visuals returns the active theme.
func (c *Context) Visuals() Visuals {
	return c.visuals
}

// PixelsPerPoint returns the scale used for the current frame.
func (c *Context) PixelsPerPoint() float32 {
	return c.pixelsPerPoint
}

// Screen returns the full screen rectangle in points.
func (c *Context) Screen() Rect {
	return c.screen
}

// Available returns the area not yet claimed by panels.
func (c *Context) Available() Rect {
	return c.available
}

// Time returns the time passed to BeginFrame.
func (c *Context) Time() float64 {
	return c.time
}

func (c *Context) paint(clip Rect, s Shape) {
	c.shapes = append(c.shapes, ClippedShape{Clip: clip, Shape: s})
}

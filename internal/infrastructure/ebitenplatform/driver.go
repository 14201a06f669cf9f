// Package ebitenplatform runs the application event loop on Ebitengine.
// It turns ebiten's polled input into platform events and exposes the
// game window.
package ebitenplatform

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/platform"
)

// ErrInvalidWindowSize is returned for a window with a zero dimension.
var ErrInvalidWindowSize = errors.New("window size must be positive")

// Options configures the window and the graphics library.
type Options struct {
	Title           string
	Width, Height   int
	Fullscreen      bool
	Icons           []image.Image
	GraphicsLibrary ebiten.GraphicsLibrary
	Logger          *slog.Logger
}

// Driver implements ebiten.Game, platform.EventLoop and platform.Window.
type Driver struct {
	opts   Options
	logger *slog.Logger

	handler platform.Handler
	input   *inputPoller
	pads    *gamepadQueue

	mu      sync.Mutex
	pending []platform.Event

	screen      *ebiten.Image
	width       uint32
	height      uint32
	scale       float64
	grabbed     bool
	cursorShown bool
	exit        bool
}

// New configures the ebiten window. It must be called before Run.
func New(opts Options) (*Driver, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidWindowSize, opts.Width, opts.Height)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(opts.Fullscreen)
	if len(opts.Icons) > 0 {
		ebiten.SetWindowIcon(opts.Icons)
	}
	// One Update per Draw keeps events, update and render in lockstep.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	scale := deviceScale()
	return &Driver{
		opts:        opts,
		logger:      logger,
		input:       newInputPoller(),
		pads:        newGamepadQueue(),
		width:       uint32(float64(opts.Width) * scale),
		height:      uint32(float64(opts.Height) * scale),
		scale:       scale,
		cursorShown: true,
	}, nil
}

// Run blocks until the handler returns platform.Exit or the window closes.
func (d *Driver) Run(h platform.Handler) error {
	d.handler = h
	err := ebiten.RunGameWithOptions(d, &ebiten.RunGameOptions{
		GraphicsLibrary: d.opts.GraphicsLibrary,
	})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update delivers the events collected since the last frame.
func (d *Driver) Update() error {
	if d.exit {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		d.queue(platform.CloseRequested{})
	}
	for _, ev := range d.input.poll() {
		d.queue(ev)
	}
	d.pads.poll()

	for _, ev := range d.drain() {
		if d.dispatch(ev) == platform.Exit {
			return ebiten.Termination
		}
	}
	return nil
}

// Draw sends FrameReady while the screen is available to the renderer.
func (d *Driver) Draw(screen *ebiten.Image) {
	if d.exit {
		return
	}
	d.screen = screen
	d.dispatch(platform.FrameReady{})
	d.screen = nil
}

// Layout implements ebiten.Game. Ebiten prefers LayoutF.
func (d *Driver) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := d.LayoutF(float64(outsideWidth), float64(outsideHeight))
	return int(w), int(h)
}

// LayoutF works in physical pixels and queues size and scale changes.
func (d *Driver) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	scale := deviceScale()
	w := uint32(outsideWidth * scale)
	h := uint32(outsideHeight * scale)

	d.mu.Lock()
	if scale != d.scale {
		d.scale = scale
		d.pending = append(d.pending, platform.ScaleFactorChanged{ScaleFactor: scale})
	}
	if w != d.width || h != d.height {
		d.width, d.height = w, h
		d.pending = append(d.pending, platform.Resized{Width: w, Height: h})
	}
	d.mu.Unlock()

	return float64(max(w, 1)), float64(max(h, 1))
}

// Screen returns the screen image during Draw and nil otherwise.
func (d *Driver) Screen() *ebiten.Image {
	return d.screen
}

// NextEvent implements platform.GamepadSource.
func (d *Driver) NextEvent() (platform.GamepadEvent, bool) {
	return d.pads.next()
}

func (d *Driver) queue(ev platform.Event) {
	d.mu.Lock()
	d.pending = append(d.pending, ev)
	d.mu.Unlock()
}

func (d *Driver) drain() []platform.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	evs := d.pending
	d.pending = nil
	return evs
}

func (d *Driver) dispatch(ev platform.Event) platform.ControlFlow {
	if d.handler == nil || d.exit {
		return platform.Exit
	}
	if d.handler(ev) == platform.Exit {
		d.exit = true
		return platform.Exit
	}
	return platform.Continue
}

func deviceScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		if s := m.DeviceScaleFactor(); s > 0 {
			return s
		}
	}
	return 1
}

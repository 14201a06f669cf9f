package ebitenhal

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/phantom/internal/render/hal"
)

// Surface presents into the screen image of the current Draw call.
type Surface struct {
	instance *Instance
	target   ScreenTarget
	config   *hal.SurfaceConfiguration
}

// PreferredFormat returns RGBA8, the only format ebiten images use.
func (s *Surface) PreferredFormat(adapter hal.Adapter) (gputypes.TextureFormat, error) {
	a, ok := adapter.(*Adapter)
	if !ok || a.instance != s.instance {
		return gputypes.TextureFormatUndefined, fmt.Errorf("%w: adapter %T", hal.ErrIncompatibleSurface, adapter)
	}
	return gputypes.TextureFormatRGBA8Unorm, nil
}

// Configure records the frame size and applies the present mode.
func (s *Surface) Configure(_ hal.Device, cfg hal.SurfaceConfiguration) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("invalid surface size %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Format != gputypes.TextureFormatRGBA8Unorm {
		return fmt.Errorf("unsupported surface format %v", cfg.Format)
	}
	if cfg.Usage&gputypes.TextureUsageRenderAttachment == 0 {
		return errors.New("surface usage must include render attachment")
	}
	ebiten.SetVsyncEnabled(cfg.PresentMode == hal.PresentModeFifo)
	s.config = &cfg
	return nil
}

// AcquireTexture returns the screen image. The surface is outdated when
// the screen no longer matches the configured size, and times out when
// called outside of Draw.
func (s *Surface) AcquireTexture() (hal.SurfaceTexture, error) {
	if s.config == nil {
		return nil, hal.ErrSurfaceLost
	}
	screen := s.target.Screen()
	if screen == nil {
		return nil, hal.ErrSurfaceTimeout
	}
	b := screen.Bounds()
	if uint32(b.Dx()) != s.config.Width || uint32(b.Dy()) != s.config.Height {
		return nil, fmt.Errorf("%w: screen %dx%d, configured %dx%d",
			hal.ErrSurfaceOutdated, b.Dx(), b.Dy(), s.config.Width, s.config.Height)
	}
	return &SurfaceTexture{tex: &Texture{img: screen, format: s.config.Format, borrowed: true}}, nil
}

func (s *Surface) Destroy() {
	s.config = nil
}

// SurfaceTexture is the screen image of one frame.
type SurfaceTexture struct {
	tex       *Texture
	presented bool
}

func (t *SurfaceTexture) Texture() hal.Texture { return t.tex }

// Present marks the frame done. Ebiten shows the screen once Draw returns.
func (t *SurfaceTexture) Present() error {
	if t.presented {
		return errors.New("surface texture already presented")
	}
	t.presented = true
	return nil
}

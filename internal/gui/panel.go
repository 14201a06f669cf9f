package gui

// Side is the screen edge a panel is attached to.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

const (
	panelMargin  = 4
	resizeHandle = 4
	minPanelSize = 16
)

// Panel is a region attached to one edge of the remaining screen space.
type Panel struct {
	id        string
	side      Side
	size      float32
	resizable bool
}

// TopPanel creates a panel along the top edge.
func TopPanel(id string) *Panel {
	return &Panel{id: id, side: SideTop, size: 24}
}

// BottomPanel creates a resizable panel along the bottom edge.
func BottomPanel(id string) *Panel {
	return &Panel{id: id, side: SideBottom, size: 120, resizable: true}
}

// SidePanelLeft creates a resizable panel along the left edge.
func SidePanelLeft(id string) *Panel {
	return &Panel{id: id, side: SideLeft, size: 200, resizable: true}
}

// SidePanelRight creates a resizable panel along the right edge.
func SidePanelRight(id string) *Panel {
	return &Panel{id: id, side: SideRight, size: 200, resizable: true}
}

// DefaultSize sets the size used until the user resizes the panel.
func (p *Panel) DefaultSize(size float32) *Panel {
	p.size = size
	return p
}

// Resizable enables dragging the inner edge.
func (p *Panel) Resizable(resizable bool) *Panel {
	p.resizable = resizable
	return p
}

// Show claims the panel area from the context, paints its background and
// runs add to fill it. It returns the panel rectangle.
func (p *Panel) Show(ctx *Context, add func(ui *UI)) Rect {
	size, ok := ctx.panels[p.id]
	if !ok {
		size = p.size
	}
	avail := ctx.available
	extent := avail.Width()
	if p.side == SideTop || p.side == SideBottom {
		extent = avail.Height()
	}
	size = max(min(size, extent), min(minPanelSize, extent))

	if p.resizable {
		size = p.drag(ctx, avail, size, extent)
	}
	ctx.panels[p.id] = size

	rect, edge := p.layout(avail, size)
	ctx.available = p.remaining(avail, size)

	v := ctx.visuals
	ctx.paint(ctx.screen, RectShape{Rect: rect, Fill: v.PanelFill})
	ctx.paint(ctx.screen, RectShape{Rect: edge, Fill: v.Separator})

	inner := rect.Shrink(panelMargin)
	ui := &UI{ctx: ctx, rect: inner, clip: rect.Intersect(ctx.screen), cursor: inner.Min}
	if add != nil {
		add(ui)
	}
	return rect
}

// layout returns the panel rectangle and its one-point separator line.
func (p *Panel) layout(avail Rect, size float32) (Rect, Rect) {
	r := avail
	var edge Rect
	switch p.side {
	case SideTop:
		r.Max.Y = avail.Min.Y + size
		edge = Rect{Min: Pt(r.Min.X, r.Max.Y-1), Max: r.Max}
	case SideBottom:
		r.Min.Y = avail.Max.Y - size
		edge = Rect{Min: r.Min, Max: Pt(r.Max.X, r.Min.Y+1)}
	case SideLeft:
		r.Max.X = avail.Min.X + size
		edge = Rect{Min: Pt(r.Max.X-1, r.Min.Y), Max: r.Max}
	case SideRight:
		r.Min.X = avail.Max.X - size
		edge = Rect{Min: r.Min, Max: Pt(r.Min.X+1, r.Max.Y)}
	}
	return r, edge
}

func (p *Panel) remaining(avail Rect, size float32) Rect {
	switch p.side {
	case SideTop:
		avail.Min.Y += size
	case SideBottom:
		avail.Max.Y -= size
	case SideLeft:
		avail.Min.X += size
	case SideRight:
		avail.Max.X -= size
	}
	return avail
}

// drag handles resizing by the inner edge and returns the new size.
func (p *Panel) drag(ctx *Context, avail Rect, size, extent float32) float32 {
	ptr := ctx.pointer
	rect, _ := p.layout(avail, size)
	handle := p.handle(rect)

	if ptr.pressed && ptr.known && handle.Contains(ptr.pos) {
		ctx.dragging = p.id
	}
	if ctx.dragging != p.id {
		return size
	}
	if !ptr.down {
		ctx.dragging = ""
		return size
	}

	switch p.side {
	case SideTop:
		size = ptr.pos.Y - avail.Min.Y
	case SideBottom:
		size = avail.Max.Y - ptr.pos.Y
	case SideLeft:
		size = ptr.pos.X - avail.Min.X
	case SideRight:
		size = avail.Max.X - ptr.pos.X
	}
	return max(min(size, extent), min(minPanelSize, extent))
}

func (p *Panel) handle(r Rect) Rect {
	const h = resizeHandle / 2
	switch p.side {
	case SideTop:
		return Rect{Min: Pt(r.Min.X, r.Max.Y-h), Max: Pt(r.Max.X, r.Max.Y+h)}
	case SideBottom:
		return Rect{Min: Pt(r.Min.X, r.Min.Y-h), Max: Pt(r.Max.X, r.Min.Y+h)}
	case SideLeft:
		return Rect{Min: Pt(r.Max.X-h, r.Min.Y), Max: Pt(r.Max.X+h, r.Max.Y)}
	default:
		return Rect{Min: Pt(r.Min.X-h, r.Min.Y), Max: Pt(r.Min.X+h, r.Max.Y)}
	}
}

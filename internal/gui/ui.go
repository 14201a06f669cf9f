package gui

import "image/color"

const (
	itemSpacing   = 4
	buttonPadding = 4
)

// UI places widgets inside a region, top to bottom or left to right.
type UI struct {
	ctx        *Context
	rect       Rect
	clip       Rect
	cursor     Point
	horizontal bool
	rowHeight  float32
}

// Context returns the owning context.
func (ui *UI) Context() *Context {
	return ui.ctx
}

// Rect returns the region the UI lays out into.
func (ui *UI) Rect() Rect {
	return ui.rect
}

// AllocateSpace reserves size at the cursor and returns the claimed rectangle.
func (ui *UI) AllocateSpace(size Point) Rect {
	r := RectFromMinSize(ui.cursor, size)
	if ui.horizontal {
		ui.cursor.X += size.X + itemSpacing
		ui.rowHeight = max(ui.rowHeight, size.Y)
	} else {
		ui.cursor.Y += size.Y + itemSpacing
	}
	return r
}

// Label shows a line of text.
func (ui *UI) Label(text string) {
	ui.text(text, ui.ctx.visuals.Text)
}

// Heading shows a line of emphasized text followed by extra spacing.
func (ui *UI) Heading(text string) {
	ui.text(text, ui.ctx.visuals.StrongText)
	if !ui.horizontal {
		ui.cursor.Y += itemSpacing
	}
}

func (ui *UI) text(text string, c color.RGBA) Rect {
	r := ui.AllocateSpace(ui.ctx.atlas.textSize(text))
	ui.ctx.paint(ui.clip, TextShape{Pos: r.Min, Text: text, Color: c})
	return r
}

// Button shows a clickable button and reports whether it was clicked
// this frame.
func (ui *UI) Button(text string) bool {
	ts := ui.ctx.atlas.textSize(text)
	r := ui.AllocateSpace(Pt(ts.X+2*buttonPadding, ts.Y+2*buttonPadding))

	ptr := ui.ctx.pointer
	hovered := ptr.known && r.Contains(ptr.pos) && ui.clip.Contains(ptr.pos) && ui.ctx.dragging == ""
	v := ui.ctx.visuals
	fill := v.ButtonFill
	switch {
	case hovered && ptr.down:
		fill = v.ButtonActive
	case hovered:
		fill = v.ButtonHover
	}
	ui.ctx.paint(ui.clip, RectShape{Rect: r, Fill: fill})
	ui.ctx.paint(ui.clip, TextShape{
		Pos:   Pt(r.Min.X+buttonPadding, r.Min.Y+buttonPadding),
		Text:  text,
		Color: v.StrongText,
	})
	return hovered && ptr.released
}

// Separator draws a line across the layout direction.
func (ui *UI) Separator() {
	v := ui.ctx.visuals
	if ui.horizontal {
		h := max(ui.rowHeight, ui.ctx.atlas.height)
		r := ui.AllocateSpace(Pt(1, h))
		ui.ctx.paint(ui.clip, RectShape{Rect: r, Fill: v.Separator})
		return
	}
	r := ui.AllocateSpace(Pt(ui.rect.Max.X-ui.cursor.X, 1))
	ui.ctx.paint(ui.clip, RectShape{Rect: r, Fill: v.Separator})
}

// Horizontal lays out the widgets added by add from left to right.
func (ui *UI) Horizontal(add func(ui *UI)) {
	child := &UI{
		ctx:        ui.ctx,
		rect:       Rect{Min: ui.cursor, Max: ui.rect.Max},
		clip:       ui.clip,
		cursor:     ui.cursor,
		horizontal: true,
	}
	add(child)
	ui.AllocateSpace(Pt(child.cursor.X-ui.cursor.X, child.rowHeight))
}

// MenuBar lays out menu entries in a row.
func (ui *UI) MenuBar(add func(ui *UI)) {
	ui.Horizontal(add)
}

// DarkLightModeSwitch shows a button toggling the theme.
func (ui *UI) DarkLightModeSwitch() {
	label := "Dark"
	if ui.ctx.DarkMode() {
		label = "Light"
	}
	if ui.Button(label) {
		ui.ctx.SetDarkMode(!ui.ctx.DarkMode())
	}
}

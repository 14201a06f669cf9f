package gui

import (
	"fmt"
	"testing"
)

const benchLabels = 2_000

func benchFrame(ctx *Context) []ClippedShape {
	ctx.BeginFrame(RawInput{ScreenSize: Pt(1920, 1080), PixelsPerPoint: 1})
	SidePanelLeft("left").Show(ctx, func(ui *UI) {
		for i := 0; i < benchLabels; i++ {
			ui.Label(fmt.Sprintf("entity %04d", i))
		}
	})
	return ctx.EndFrame().Shapes
}

func BenchmarkBuildFrame(b *testing.B) {
	ctx := NewContext()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = benchFrame(ctx)
	}
}

func BenchmarkTessellate(b *testing.B) {
	ctx := NewContext()
	shapes := benchFrame(ctx)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		jobs := ctx.Tessellate(shapes)
		if len(jobs) == 0 {
			b.Fatal("no paint jobs")
		}
	}
}

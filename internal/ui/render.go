package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/theme"
)

const frameDropThreshold = 3

var labelFace = basicfont.Face7x13

// paintState is a copy of everything a frame needs, so drawing can run off
// the event goroutine.
type paintState struct {
	lay     layout
	theme   *theme.Theme
	canvas  *image.RGBA
	tool    board.Tool
	style   board.Style
	palette []board.PaletteColor
	widths  []int

	imageRect image.Rectangle
	hasImage  bool
	textArmed bool

	editing bool
	draft   string

	hover        image.Point
	message      string
	messageErr   bool
	messageUntil time.Time
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(st.lay.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	if !render(ctx, b.RGBA(), st) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

// render paints one frame into dst. It returns false when ctx was cancelled
// part way through.
func render(ctx context.Context, dst *image.RGBA, st paintState) bool {
	th := st.theme
	fill(dst, dst.Bounds(), th.Background)
	fill(dst, image.Rect(0, 0, toolbarWidth, st.lay.status.Min.Y), th.ToolbarBackground)

	shadow := canvasShadow(st.lay.canvas)
	draw.DrawMask(dst, shadow.Bounds(), image.Black, image.Point{}, shadow, shadow.Bounds().Min, draw.Over)
	draw.Draw(dst, st.lay.canvas, st.canvas, st.canvas.Bounds().Min, draw.Src)
	outline(dst, st.lay.canvas.Inset(-1), th.SurfaceBorder)
	if st.hasImage {
		r := st.imageRect.Add(st.lay.canvas.Min).Intersect(st.lay.canvas)
		dashed(dst, r, 4, th.OverlayHandle)
		h := image.Rect(r.Max.X-4, r.Max.Y-4, r.Max.X+1, r.Max.Y+1).Intersect(st.lay.canvas)
		fill(dst, h, th.OverlayHandle)
	}
	if ctx.Err() != nil {
		return false
	}

	for _, c := range st.lay.controls {
		pressed := st.active(c.act)
		bg, fg := th.ButtonBackground, th.ButtonText
		switch {
		case pressed:
			bg, fg = th.ButtonBackgroundPress, th.ButtonTextPress
		case st.hover.In(c.rect):
			bg = th.ButtonBackgroundHover
		}
		fill(dst, c.rect, bg)
		outline(dst, c.rect, th.ButtonBorder)
		drawLabel(dst, c.rect.Min.Add(image.Pt(4, 3)), c.label, fg)
	}
	for i, r := range st.lay.swatches {
		if i >= len(st.palette) {
			break
		}
		fill(dst, r, st.palette[i].Color)
		if st.palette[i].Color == st.style.Color {
			outline(dst, r.Inset(-1), th.SwatchSelected)
			outline(dst, r, th.SwatchSelected)
		} else {
			outline(dst, r, th.SwatchBorder)
		}
	}
	for i, r := range st.lay.widths {
		if i >= len(st.widths) {
			break
		}
		if st.widths[i] == st.style.Width {
			fill(dst, r, th.ButtonBackgroundPress)
		}
		thick := min(st.widths[i], r.Dy()-2)
		mid := r.Min.Y + (r.Dy()-thick)/2
		fill(dst, image.Rect(r.Min.X+4, mid, r.Max.X-4, mid+thick), th.ButtonText)
	}
	if ctx.Err() != nil {
		return false
	}

	text, col := st.statusLine()
	drawLabel(dst, st.lay.status.Min.Add(image.Pt(margin, 4)), text, col)
	return true
}

func (st paintState) active(a action) bool {
	switch a {
	case actBrush:
		return st.tool == board.ToolBrush
	case actEraser:
		return st.tool == board.ToolEraser
	case actRect:
		return st.tool == board.ToolRect
	case actCircle:
		return st.tool == board.ToolCircle
	case actTriangle:
		return st.tool == board.ToolTriangle
	case actFill:
		return st.style.Fill
	case actText:
		return st.editing || st.textArmed
	}
	return false
}

func (st paintState) statusLine() (string, color.RGBA) {
	switch {
	case st.editing:
		return "text: " + st.draft + "_  (Enter to place, Esc to cancel)", st.theme.Foreground
	case st.message != "" && time.Now().Before(st.messageUntil):
		if st.messageErr {
			return st.message, st.theme.Error
		}
		return st.message, st.theme.Foreground
	case st.textArmed:
		return "click the surface to place the text", st.theme.Foreground
	}
	fillState := "off"
	if st.style.Fill {
		fillState = "on"
	}
	return fmt.Sprintf("tool: %s  width: %d  color: %s  fill: %s",
		st.tool, st.style.Width, board.HexColor(st.style.Color), fillState), st.theme.Foreground
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func dashed(dst *image.RGBA, r image.Rectangle, dash int, c color.RGBA) {
	for x := r.Min.X; x < r.Max.X; x++ {
		if (x-r.Min.X)/dash%2 == 0 {
			dst.SetRGBA(x, r.Min.Y, c)
			dst.SetRGBA(x, r.Max.Y-1, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		if (y-r.Min.Y)/dash%2 == 0 {
			dst.SetRGBA(r.Min.X, y, c)
			dst.SetRGBA(r.Max.X-1, y, c)
		}
	}
}

// drawLabel writes s with its top-left corner at p.
func drawLabel(dst *image.RGBA, p image.Point, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: labelFace,
		Dot:  fixed.P(p.X, p.Y+labelFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

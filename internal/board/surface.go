package board

import (
	"image"
	"image/color"
	"image/draw"
)

// Surface is the fixed-size pixel buffer every draw operation targets.
type Surface struct {
	img        *image.RGBA
	background color.RGBA
}

// NewSurface allocates a width×height surface filled with bg.
func NewSurface(width, height int, bg color.RGBA) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height)), background: bg}
	s.Clear()
	return s
}

// Image exposes the live buffer. Callers must not retain it across events if
// they need a stable copy; use Snapshot instead.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

func (s *Surface) Background() color.RGBA { return s.background }

// Clear resets every pixel to the background color.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Snapshot returns a full copy of the buffer.
func (s *Surface) Snapshot() *image.RGBA {
	cp := image.NewRGBA(s.img.Bounds())
	copy(cp.Pix, s.img.Pix)
	return cp
}

// Restore overwrites the buffer with snap. Snapshots of another size are
// ignored.
func (s *Surface) Restore(snap *image.RGBA) {
	if snap == nil || snap.Rect != s.img.Rect {
		return
	}
	copy(s.img.Pix, snap.Pix)
}

// Load paints src over the background with its top-left corner at the origin.
// Content outside the surface is discarded.
func (s *Surface) Load(src image.Image) {
	b := src.Bounds()
	draw.Draw(s.img, b.Sub(b.Min), src, b.Min, draw.Over)
}

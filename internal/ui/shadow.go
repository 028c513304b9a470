package ui

import (
	"image"
	"image/color"
	"image/draw"
	"sync"
)

const (
	shadowRadius  = 4
	shadowOffset  = 3
	shadowOpacity = 0.45
)

var shadowCache sync.Map // image.Rectangle -> *image.Alpha

// canvasShadow returns the cached shadow mask for a canvas at r.
func canvasShadow(r image.Rectangle) *image.Alpha {
	if m, ok := shadowCache.Load(r); ok {
		return m.(*image.Alpha)
	}
	m := shadowMask(r, shadowRadius, image.Pt(shadowOffset, shadowOffset), shadowOpacity)
	shadowCache.Store(r, m)
	return m
}

// shadowMask returns a soft alpha mask for a shadow cast by r, shifted by
// offset and blurred over radius pixels.
func shadowMask(r image.Rectangle, radius int, offset image.Point, opacity float64) *image.Alpha {
	radius = max(radius, 0)
	opacity = min(max(opacity, 0), 1)
	box := r.Add(offset)
	bounds := box.Inset(-radius)
	m := image.NewAlpha(bounds)
	draw.Draw(m, box, image.NewUniform(color.Alpha{A: uint8(opacity*255 + 0.5)}), image.Point{}, draw.Src)
	boxBlur(m.Pix, m.Stride, bounds.Dx(), bounds.Dy(), radius)
	return m
}

// boxBlur runs a horizontal then a vertical box filter in place using
// running prefix sums.
func boxBlur(pix []uint8, stride, w, h, radius int) {
	if radius <= 0 || w == 0 || h == 0 {
		return
	}
	tmp := make([]uint8, len(pix))
	prefix := make([]int, max(w, h)+1)
	for y := 0; y < h; y++ {
		row := y * stride
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(pix[row+x])
		}
		for x := 0; x < w; x++ {
			x0, x1 := max(x-radius, 0), min(x+radius, w-1)
			tmp[row+x] = uint8((prefix[x1+1] - prefix[x0]) / (x1 - x0 + 1))
		}
	}
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp[y*stride+x])
		}
		for y := 0; y < h; y++ {
			y0, y1 := max(y-radius, 0), min(y+radius, h-1)
			pix[y*stride+x] = uint8((prefix[y1+1] - prefix[y0]) / (y1 - y0 + 1))
		}
	}
}

package board

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			px := x + dx
			py := y + dy
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
	}
}

func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawCircleThin(img *image.RGBA, cx, cy, r int, col color.Color) {
	if !ringMeets(img.Bounds(), cx, cy, r) {
		return
	}
	x := r
	y := 0
	err := 1 - r
	for x >= y {
		pts := [][2]int{{x, y}, {y, x}, {-y, x}, {-x, y}, {-x, -y}, {-y, -x}, {y, -x}, {x, -y}}
		for _, p := range pts {
			px := cx + p[0]
			py := cy + p[1]
			if image.Pt(px, py).In(img.Bounds()) {
				img.Set(px, py, col)
			}
		}
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2 * (y - x + 1)
		}
	}
}

// drawCircle strokes a ring of the given thickness centred on radius r.
func drawCircle(img *image.RGBA, cx, cy, r int, col color.Color, thick int) {
	if thick <= 1 {
		drawCircleThin(img, cx, cy, r, col)
		return
	}
	inner := float64(r) - float64(thick)/2
	outer := float64(r) + float64(thick)/2
	box := circleBox(img, cx, cy, r+thick)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			d := math.Hypot(float64(x-cx), float64(y-cy))
			if d < inner || d > outer {
				continue
			}
			img.Set(x, y, col)
		}
	}
}

func drawFilledCircle(img *image.RGBA, cx, cy, r int, col color.Color) {
	box := circleBox(img, cx, cy, r)
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			dx, dy := x-cx, y-cy
			if dx*dx+dy*dy <= r*r {
				img.Set(x, y, col)
			}
		}
	}
}

// circleBox is the square of half-width ext around the centre, clipped to img
// so the work is bounded by the surface rather than the radius.
func circleBox(img *image.RGBA, cx, cy, ext int) image.Rectangle {
	return image.Rect(cx-ext, cy-ext, cx+ext+1, cy+ext+1).Intersect(img.Bounds())
}

// ringMeets reports whether a circle of radius r can touch b: the box around
// it must overlap b and b must not sit wholly inside the circle.
func ringMeets(b image.Rectangle, cx, cy, r int) bool {
	if image.Rect(cx-r, cy-r, cx+r+1, cy+r+1).Intersect(b).Empty() {
		return false
	}
	for _, p := range []image.Point{b.Min, {b.Max.X - 1, b.Min.Y}, {b.Min.X, b.Max.Y - 1}, b.Max.Sub(image.Pt(1, 1))} {
		if math.Hypot(float64(p.X-cx), float64(p.Y-cy)) >= float64(r)-1 {
			return true
		}
	}
	return false
}

// changedWithin reports whether any pixel inside r differs between before and
// after. Both images must share bounds.
func changedWithin(before, after *image.RGBA, r image.Rectangle) bool {
	r = r.Intersect(after.Bounds()).Intersect(before.Bounds())
	if r.Empty() {
		return false
	}
	n := r.Dx() * 4
	for y := r.Min.Y; y < r.Max.Y; y++ {
		a, b := before.PixOffset(r.Min.X, y), after.PixOffset(r.Min.X, y)
		if !bytes.Equal(before.Pix[a:a+n], after.Pix[b:b+n]) {
			return true
		}
	}
	return false
}

// strokeRect outlines the box whose opposite corners are a and b. Both corners
// lie on the outline.
func strokeRect(img *image.RGBA, a, b image.Point, col color.Color, thick int) {
	drawLine(img, a.X, a.Y, b.X, a.Y, col, thick)
	drawLine(img, b.X, a.Y, b.X, b.Y, col, thick)
	drawLine(img, b.X, b.Y, a.X, b.Y, col, thick)
	drawLine(img, a.X, b.Y, a.X, a.Y, col, thick)
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.Color) {
	draw.Draw(img, rect.Canon(), image.NewUniform(col), image.Point{}, draw.Src)
}

func strokePolygon(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	for i := range pts {
		a := pts[i]
		b := pts[(i+1)%len(pts)]
		drawLine(img, a.X, a.Y, b.X, b.Y, col, thick)
	}
}

// fillPolygon rasterizes a closed polygon with anti-aliased edges. Vertices
// address pixel centres so the fill lines up with stroked outlines.
func fillPolygon(img *image.RGBA, pts []image.Point, col color.Color) {
	if len(pts) < 3 {
		return
	}
	box := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box = box.Union(image.Rectangle{Min: p, Max: p})
	}
	box.Max = box.Max.Add(image.Pt(1, 1))
	if box.Intersect(img.Bounds()).Empty() {
		return
	}
	z := vector.NewRasterizer(box.Dx(), box.Dy())
	at := func(p image.Point) (float32, float32) {
		return float32(p.X-box.Min.X) + 0.5, float32(p.Y-box.Min.Y) + 0.5
	}
	z.MoveTo(at(pts[0]))
	for _, p := range pts[1:] {
		z.LineTo(at(p))
	}
	z.ClosePath()
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(img, box, image.NewUniform(col), image.Point{}, mask, image.Point{}, draw.Over)
}

// cropImage returns a zero-based copy of rect from img. Parts of rect outside
// img are left transparent.
func cropImage(img *image.RGBA, rect image.Rectangle) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	src := rect.Intersect(img.Bounds())
	if !src.Empty() {
		draw.Draw(out, src.Sub(rect.Min), img, src.Min, draw.Src)
	}
	return out
}

// pasteImage copies a cropImage result back to rect, clipped to img.
func pasteImage(img *image.RGBA, rect image.Rectangle, patch *image.RGBA) {
	if patch == nil {
		return
	}
	clip := rect.Intersect(img.Bounds())
	if clip.Empty() {
		return
	}
	draw.Draw(img, clip, patch, clip.Min.Sub(rect.Min), draw.Src)
}

// DrawLine draws a line between the two points with the given thickness.
func DrawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.Color, thick int) {
	drawLine(img, x0, y0, x1, y1, col, thick)
}

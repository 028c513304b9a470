package ui

import (
	"image"
	"testing"
)

func TestShadowMask(t *testing.T) {
	r := image.Rect(10, 10, 50, 40)
	m := shadowMask(r, 4, image.Pt(3, 3), 0.5)
	if want := r.Add(image.Pt(3, 3)).Inset(-4); m.Bounds() != want {
		t.Fatalf("bounds = %v, want %v", m.Bounds(), want)
	}
	if a := m.AlphaAt(30, 25).A; a != 128 {
		t.Errorf("center alpha = %d, want 128", a)
	}
	edge := m.AlphaAt(13, 25).A
	if edge == 0 || edge >= 128 {
		t.Errorf("edge alpha = %d, want a soft falloff", edge)
	}
	if a := m.AlphaAt(m.Bounds().Min.X, m.Bounds().Min.Y).A; a >= edge/4 {
		t.Errorf("outer corner alpha = %d, want near zero", a)
	}
}

func TestShadowMaskWithoutBlur(t *testing.T) {
	r := image.Rect(0, 0, 4, 4)
	m := shadowMask(r, 0, image.Point{}, 2)
	if m.Bounds() != r {
		t.Fatalf("bounds = %v", m.Bounds())
	}
	for _, a := range m.Pix {
		if a != 255 {
			t.Fatalf("opacity not clamped: %d", a)
		}
	}
	if canvasShadow(r) != canvasShadow(r) {
		t.Error("shadow not cached")
	}
}

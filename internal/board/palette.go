package board

import (
	"fmt"
	"image/color"
	"sort"
	"sync"
)

// PaletteColor is a named swatch.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

var (
	paletteMu sync.RWMutex
	palette   = []PaletteColor{
		{"Black", color.RGBA{0, 0, 0, 255}},
		{"White", color.RGBA{255, 255, 255, 255}},
		{"Red", color.RGBA{255, 0, 0, 255}},
		{"Lime", color.RGBA{0, 255, 0, 255}},
		{"Blue", color.RGBA{0, 0, 255, 255}},
		{"Yellow", color.RGBA{255, 255, 0, 255}},
		{"Cyan", color.RGBA{0, 255, 255, 255}},
		{"Magenta", color.RGBA{255, 0, 255, 255}},
		{"Maroon", color.RGBA{128, 0, 0, 255}},
		{"Green", color.RGBA{0, 128, 0, 255}},
		{"Navy", color.RGBA{0, 0, 128, 255}},
		{"Olive", color.RGBA{128, 128, 0, 255}},
		{"Teal", color.RGBA{0, 128, 128, 255}},
		{"Purple", color.RGBA{128, 0, 128, 255}},
		{"Silver", color.RGBA{192, 192, 192, 255}},
		{"Gray", color.RGBA{128, 128, 128, 255}},
	}
)

var (
	widthsMu sync.RWMutex
	widths   = []int{1, 2, 5, 8, 12, 20}
)

// PaletteColors returns a copy of the swatches.
func PaletteColors() []PaletteColor {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	out := make([]PaletteColor, len(palette))
	copy(out, palette)
	return out
}

// EnsurePaletteColor makes sure col is present in the palette and returns its
// index. Custom picker values are appended under their hex name.
func EnsurePaletteColor(col color.RGBA, name string) int {
	paletteMu.Lock()
	defer paletteMu.Unlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	if name == "" {
		name = HexColor(col)
	}
	palette = append(palette, PaletteColor{Name: name, Color: col})
	return len(palette) - 1
}

// PaletteIndex returns the index of col or -1.
func PaletteIndex(col color.RGBA) int {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	for idx, existing := range palette {
		if existing.Color == col {
			return idx
		}
	}
	return -1
}

// WidthOptions returns a copy of the offered brush widths.
func WidthOptions() []int {
	widthsMu.RLock()
	defer widthsMu.RUnlock()
	out := make([]int, len(widths))
	copy(out, widths)
	return out
}

// EnsureWidth makes sure width is offered and returns its index.
func EnsureWidth(width int) int {
	if width < 1 {
		width = 1
	}
	widthsMu.Lock()
	defer widthsMu.Unlock()
	for idx, existing := range widths {
		if existing == width {
			return idx
		}
	}
	widths = append(widths, width)
	sort.Ints(widths)
	for idx, existing := range widths {
		if existing == width {
			return idx
		}
	}
	return 0
}

// HexColor formats col as #RRGGBB, or #RRGGBBAA when translucent.
func HexColor(col color.RGBA) string {
	if col.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", col.R, col.G, col.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", col.R, col.G, col.B, col.A)
}

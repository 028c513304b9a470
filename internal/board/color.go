package board

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor accepts CSS color names, palette names, hex values (#RGB,
// #RRGGBB, #RRGGBBAA) and the computed-style forms rgb(r, g, b) and
// rgba(r, g, b, a).
func ParseColor(s string) (color.RGBA, error) {
	val := strings.ToLower(strings.TrimSpace(s))
	if val == "" {
		return color.RGBA{}, fmt.Errorf("%w: color cannot be empty", ErrInvalidColor)
	}
	if c, ok := colornames.Map[val]; ok {
		return c, nil
	}
	for _, entry := range PaletteColors() {
		if strings.EqualFold(entry.Name, val) {
			return entry.Color, nil
		}
	}
	var (
		c   color.RGBA
		err error
	)
	switch {
	case strings.HasPrefix(val, "#"):
		c, err = parseHex(val[1:])
	case strings.HasPrefix(val, "rgb"):
		c, err = parseFunctional(val)
	default:
		err = fmt.Errorf("unrecognised format")
	}
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
	}
	return c, nil
}

func parseHex(hex string) (color.RGBA, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		return color.RGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid hex length")
}

func parseFunctional(val string) (color.RGBA, error) {
	open := strings.IndexByte(val, '(')
	if open < 0 || !strings.HasSuffix(val, ")") {
		return color.RGBA{}, fmt.Errorf("missing parentheses")
	}
	parts := strings.Split(val[open+1:len(val)-1], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return color.RGBA{}, fmt.Errorf("expected 3 or 4 components, got %d", len(parts))
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil {
			return color.RGBA{}, err
		}
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("component %d out of range", v)
		}
		rgb[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil {
			return color.RGBA{}, err
		}
		if a < 0 || a > 1 {
			return color.RGBA{}, fmt.Errorf("alpha %v out of range", a)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

// Package board implements the drawing surface controller: a fixed-size raster
// surface together with the tool, style, gesture, text and image overlay state
// that mutates it. All state is owned by a single Controller and is driven by
// events delivered one at a time.
package board

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	// ErrUnknownTool is returned when a tool identifier is not recognised.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrInvalidWidth is returned for non-positive or non-numeric brush widths.
	ErrInvalidWidth = errors.New("invalid brush width")
	// ErrInvalidColor is returned when a color value cannot be parsed.
	ErrInvalidColor = errors.New("invalid color")
	// ErrDecode is returned when an imported image cannot be decoded.
	ErrDecode = errors.New("image decode failed")
	// ErrNoImage is returned by operations that need an image overlay.
	ErrNoImage = errors.New("no image loaded")
	// ErrBadEvent is returned when an event's value does not match its kind.
	ErrBadEvent = errors.New("malformed event")
)

// Tool identifies the active drawing tool.
type Tool int

const (
	ToolBrush Tool = iota
	ToolEraser
	ToolRect
	ToolCircle
	ToolTriangle
	// ToolUnknown is selected after a rejected identifier. Gestures with it
	// leave the surface untouched.
	ToolUnknown
)

var toolNames = [...]string{
	ToolBrush:    "brush",
	ToolEraser:   "eraser",
	ToolRect:     "rectangle",
	ToolCircle:   "circle",
	ToolTriangle: "triangle",
	ToolUnknown:  "unknown",
}

func (t Tool) String() string {
	if t < 0 || int(t) >= len(toolNames) {
		return fmt.Sprintf("Tool(%d)", int(t))
	}
	return toolNames[t]
}

// Freehand reports whether the tool accumulates strokes instead of previewing.
func (t Tool) Freehand() bool { return t == ToolBrush || t == ToolEraser }

// Shape reports whether the tool rubber-bands a primitive shape.
func (t Tool) Shape() bool { return t == ToolRect || t == ToolCircle || t == ToolTriangle }

// Tools lists the selectable tools in toolbar order.
func Tools() []Tool {
	return []Tool{ToolBrush, ToolEraser, ToolRect, ToolCircle, ToolTriangle}
}

// ParseTool resolves a tool identifier. Unknown identifiers yield ToolUnknown
// together with an error wrapping ErrUnknownTool.
func ParseTool(name string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "brush", "pen":
		return ToolBrush, nil
	case "eraser":
		return ToolEraser, nil
	case "rectangle", "rect":
		return ToolRect, nil
	case "circle":
		return ToolCircle, nil
	case "triangle", "tri":
		return ToolTriangle, nil
	}
	return ToolUnknown, fmt.Errorf("%w %q", ErrUnknownTool, name)
}

// DefaultWidth is the initial brush width.
const DefaultWidth = 5

// Style holds the stroke settings shared by every draw operation.
type Style struct {
	Width int
	Color color.RGBA
	// Fill selects solid shapes instead of outlines.
	Fill bool
}

// DefaultStyle returns a black 5px outline style.
func DefaultStyle() Style {
	return Style{Width: DefaultWidth, Color: color.RGBA{0, 0, 0, 255}}
}

package board

import "image"

// EventKind keys the controller's dispatch table.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventPointerLeave
	EventToolSelect
	EventWidthChange
	EventColorChange
	EventFillToggle
	EventClear
	EventExport
	EventTextArm
	EventTextCancel
	EventImageLoaded
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	case EventPointerLeave:
		return "pointer-leave"
	case EventToolSelect:
		return "tool-select"
	case EventWidthChange:
		return "width-change"
	case EventColorChange:
		return "color-change"
	case EventFillToggle:
		return "fill-toggle"
	case EventClear:
		return "clear"
	case EventExport:
		return "export"
	case EventTextArm:
		return "text-arm"
	case EventTextCancel:
		return "text-cancel"
	case EventImageLoaded:
		return "image-loaded"
	}
	return "unknown"
}

// Event is anything the controller can react to.
type Event interface {
	Kind() EventKind
}

// PointerDown starts a gesture at Pos, in surface coordinates. Resize is set
// when the modifier that turns an image drag into a resize is held.
type PointerDown struct {
	Pos    image.Point
	Resize bool
}

type PointerMove struct {
	Pos image.Point
}

type PointerUp struct{}

// PointerLeave is sent when the pointer exits the surface; it ends any drag.
type PointerLeave struct{}

type ToolSelect struct {
	Name string
}

// WidthChange carries the raw value of the width control.
type WidthChange struct {
	Value string
}

// ColorChange carries a palette name, CSS name, hex or rgb() value.
type ColorChange struct {
	Value string
}

type FillToggle struct {
	Fill bool
}

type ClearRequest struct{}

type ExportRequest struct{}

// TextArm arms a single text commit on the next pointer down.
type TextArm struct {
	Content string
	Style   TextStyle
}

type TextCancel struct{}

func (PointerDown) Kind() EventKind   { return EventPointerDown }
func (PointerMove) Kind() EventKind   { return EventPointerMove }
func (PointerUp) Kind() EventKind     { return EventPointerUp }
func (PointerLeave) Kind() EventKind  { return EventPointerLeave }
func (ToolSelect) Kind() EventKind    { return EventToolSelect }
func (WidthChange) Kind() EventKind   { return EventWidthChange }
func (ColorChange) Kind() EventKind   { return EventColorChange }
func (FillToggle) Kind() EventKind    { return EventFillToggle }
func (ClearRequest) Kind() EventKind  { return EventClear }
func (ExportRequest) Kind() EventKind { return EventExport }
func (TextArm) Kind() EventKind       { return EventTextArm }
func (TextCancel) Kind() EventKind    { return EventTextCancel }

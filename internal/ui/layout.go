package ui

import "image"

const (
	toolbarWidth = 96
	rowHeight    = 22
	swatchSize   = 18
	widthRow     = 16
	statusHeight = 22
	margin       = 8
	gap          = 4
)

// action names something the toolbar or keyboard can trigger.
type action string

const (
	actBrush    action = "brush"
	actEraser   action = "eraser"
	actRect     action = "rectangle"
	actCircle   action = "circle"
	actTriangle action = "triangle"
	actFill     action = "fill"
	actText     action = "text"
	actOpen     action = "open"
	actPaste    action = "paste"
	actCopy     action = "copy"
	actSave     action = "save"
	actClear    action = "clear"
	actCancel   action = "cancel"
	actQuit     action = "quit"
)

type control struct {
	label string
	act   action
	rect  image.Rectangle
}

var controlSpecs = []struct {
	label string
	act   action
}{
	{"B:Brush", actBrush},
	{"E:Eraser", actEraser},
	{"R:Rect", actRect},
	{"C:Circle", actCircle},
	{"G:Triangle", actTriangle},
	{"F:Fill", actFill},
	{"T:Text", actText},
	{"O:Open", actOpen},
	{"^V:Paste", actPaste},
	{"^C:Copy", actCopy},
	{"^S:Save", actSave},
	{"^N:Clear", actClear},
}

type hitKind int

const (
	hitNone hitKind = iota
	hitCanvas
	hitControl
	hitSwatch
	hitWidth
)

// layout positions the chrome around a canvas of fixed size. It is rebuilt
// whenever the palette or width table grows.
type layout struct {
	size     image.Point
	canvas   image.Rectangle
	controls []control
	swatches []image.Rectangle
	widths   []image.Rectangle
	status   image.Rectangle
}

func swatchColumns() int { return (toolbarWidth - gap) / swatchSize }

func newLayout(canvas image.Point, paletteLen, widthsLen int) layout {
	var l layout
	y := gap
	for _, spec := range controlSpecs {
		l.controls = append(l.controls, control{
			label: spec.label,
			act:   spec.act,
			rect:  image.Rect(gap, y, toolbarWidth-gap, y+rowHeight-2),
		})
		y += rowHeight
	}
	y += gap
	cols := swatchColumns()
	for i := 0; i < paletteLen; i++ {
		x0 := gap + (i%cols)*swatchSize
		y0 := y + (i/cols)*swatchSize
		l.swatches = append(l.swatches, image.Rect(x0, y0, x0+swatchSize-2, y0+swatchSize-2))
	}
	y += (paletteLen + cols - 1) / cols * swatchSize
	y += gap
	for i := 0; i < widthsLen; i++ {
		l.widths = append(l.widths, image.Rect(gap, y, toolbarWidth-gap, y+widthRow-2))
		y += widthRow
	}
	y += gap

	l.canvas = image.Rectangle{Min: image.Pt(toolbarWidth+margin, margin)}
	l.canvas.Max = l.canvas.Min.Add(canvas)
	h := max(y, l.canvas.Max.Y+margin)
	l.size = image.Pt(l.canvas.Max.X+margin, h+statusHeight)
	l.status = image.Rect(0, h, l.size.X, l.size.Y)
	return l
}

// hit reports what lies under p. Canvas hits report index -1.
func (l layout) hit(p image.Point) (hitKind, int) {
	if p.In(l.canvas) {
		return hitCanvas, -1
	}
	for i, c := range l.controls {
		if p.In(c.rect) {
			return hitControl, i
		}
	}
	for i, r := range l.swatches {
		if p.In(r) {
			return hitSwatch, i
		}
	}
	for i, r := range l.widths {
		if p.In(r) {
			return hitWidth, i
		}
	}
	return hitNone, -1
}

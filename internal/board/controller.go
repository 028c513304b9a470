package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"reflect"
	"strconv"
	"strings"
)

// Controller owns the surface and every piece of state that mutates it.
// It is not safe for concurrent use; one event loop drives it.
type Controller struct {
	surface *Surface
	tool    Tool
	style   Style

	drag gesture

	textStyle   TextStyle
	textArmed   bool
	pendingText string
	pendingFmt  TextStyle
	text        *textAnnotation

	overlay  *ImageOverlay
	imageErr error

	exporter   *Exporter
	lastExport string

	logger   *log.Logger
	onChange func()

	width, height int
	background    color.RGBA
	initial       image.Image
}

// Option configures a Controller.
type Option func(*Controller)

// WithSize sets the surface dimensions. The default is 800×600.
func WithSize(width, height int) Option {
	return func(c *Controller) { c.width, c.height = width, height }
}

// WithBackground sets the clear color. The default is white.
func WithBackground(bg color.RGBA) Option { return func(c *Controller) { c.background = bg } }

// WithStyle sets the initial stroke style.
func WithStyle(st Style) Option { return func(c *Controller) { c.style = st } }

// WithTextStyle sets the style used by Text when none is given.
func WithTextStyle(st TextStyle) Option { return func(c *Controller) { c.textStyle = st } }

// WithExporter sets where exports are written.
func WithExporter(e *Exporter) Option { return func(c *Controller) { c.exporter = e } }

// WithLogger enables transition logging.
func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithCanvas starts from an existing picture instead of a blank surface. The
// surface takes the picture's size unless WithSize is also given.
func WithCanvas(img image.Image) Option { return func(c *Controller) { c.initial = img } }

// WithChangeListener registers fn to run after every dispatched event.
func WithChangeListener(fn func()) Option { return func(c *Controller) { c.onChange = fn } }

// NewController builds a controller with a cleared surface.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		tool:       ToolBrush,
		style:      DefaultStyle(),
		textStyle:  DefaultTextStyle(),
		background: color.RGBA{255, 255, 255, 255},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.initial != nil && c.width == 0 && c.height == 0 {
		b := c.initial.Bounds()
		c.width, c.height = b.Dx(), b.Dy()
	}
	if c.width == 0 || c.height == 0 {
		c.width, c.height = 800, 600
	}
	c.surface = NewSurface(c.width, c.height, c.background)
	if c.initial != nil {
		c.surface.Load(c.initial)
		c.initial = nil
	}
	if c.style.Width < 1 {
		c.style.Width = DefaultWidth
	}
	return c
}

// eventAs unwraps ev as the concrete type its kind promises.
func eventAs[T Event](ev Event) (T, error) {
	e, ok := ev.(T)
	if !ok {
		return e, fmt.Errorf("%w: %T for %s", ErrBadEvent, ev, ev.Kind())
	}
	return e, nil
}

var handlers = map[EventKind]func(*Controller, Event) error{
	EventPointerDown: func(c *Controller, ev Event) error {
		e, err := eventAs[PointerDown](ev)
		if err != nil {
			return err
		}
		return c.pointerDown(e.Pos, e.Resize)
	},
	EventPointerMove: func(c *Controller, ev Event) error {
		e, err := eventAs[PointerMove](ev)
		if err != nil {
			return err
		}
		c.pointerMove(e.Pos)
		return nil
	},
	EventPointerUp:    func(c *Controller, _ Event) error { c.endGesture(); return nil },
	EventPointerLeave: func(c *Controller, _ Event) error { c.endGesture(); return nil },
	EventToolSelect: func(c *Controller, ev Event) error {
		e, err := eventAs[ToolSelect](ev)
		if err != nil {
			return err
		}
		t, err := ParseTool(e.Name)
		c.tool = t
		c.logf("tool %s", t)
		return err
	},
	EventWidthChange: func(c *Controller, ev Event) error {
		e, err := eventAs[WidthChange](ev)
		if err != nil {
			return err
		}
		raw := strings.TrimSpace(e.Value)
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w %q: not a number", ErrInvalidWidth, raw)
		}
		if n < 1 {
			return fmt.Errorf("%w %d: must be at least 1", ErrInvalidWidth, n)
		}
		c.style.Width = n
		return nil
	},
	EventColorChange: func(c *Controller, ev Event) error {
		e, err := eventAs[ColorChange](ev)
		if err != nil {
			return err
		}
		col, err := ParseColor(e.Value)
		if err != nil {
			return err
		}
		c.style.Color = col
		return nil
	},
	EventFillToggle: func(c *Controller, ev Event) error {
		e, err := eventAs[FillToggle](ev)
		if err != nil {
			return err
		}
		c.style.Fill = e.Fill
		return nil
	},
	EventClear: func(c *Controller, _ Event) error {
		c.clear()
		return nil
	},
	EventExport: func(c *Controller, _ Event) error {
		return c.export()
	},
	EventTextArm: func(c *Controller, ev Event) error {
		e, err := eventAs[TextArm](ev)
		if err != nil {
			return err
		}
		c.textArmed = true
		c.pendingText = e.Content
		c.pendingFmt = e.Style
		return nil
	},
	EventTextCancel: func(c *Controller, _ Event) error {
		c.textArmed = false
		c.pendingText = ""
		return nil
	},
	EventImageLoaded: func(c *Controller, ev Event) error {
		e, err := eventAs[ImageLoaded](ev)
		if err != nil {
			return err
		}
		return c.imageLoaded(e)
	},
}

// Dispatch routes ev to its handler. Pointers to event values are accepted
// and dereferenced. The change listener runs even when the handler fails,
// since a rejected tool still changes what a gesture does.
func (c *Controller) Dispatch(ev Event) error {
	ev, err := derefEvent(ev)
	if err != nil {
		return err
	}
	h, ok := handlers[ev.Kind()]
	if !ok {
		return fmt.Errorf("no handler for %s event", ev.Kind())
	}
	err = h(c, ev)
	if c.onChange != nil {
		c.onChange()
	}
	return err
}

// derefEvent turns *PointerDown and friends into their values. Nil events and
// nil pointers are rejected before Kind can be called on them.
func derefEvent(ev Event) (Event, error) {
	if ev == nil {
		return nil, fmt.Errorf("%w: nil", ErrBadEvent)
	}
	v := reflect.ValueOf(ev)
	if v.Kind() != reflect.Pointer {
		return ev, nil
	}
	if v.IsNil() {
		return nil, fmt.Errorf("%w: nil %T", ErrBadEvent, ev)
	}
	if inner, ok := v.Elem().Interface().(Event); ok {
		return inner, nil
	}
	return ev, nil
}

func (c *Controller) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

func (c *Controller) pointerDown(pos image.Point, resize bool) error {
	// A down without an up (focus lost mid drag) closes the old gesture.
	c.endGesture()
	img := c.surface.Image()
	switch {
	case c.textArmed:
		return c.commitText(pos)
	case c.overlay.Contains(pos):
		kind := dragImageMove
		if resize {
			kind = dragImageResize
		}
		c.overlay.lift(img)
		c.drag.begin(kind, c.surface, pos)
		c.drag.origin = c.overlay.rect
		c.overlay.blit(img)
	case c.text != nil && pos.In(c.text.box()):
		pasteImage(img, c.text.footprint(), c.text.under)
		c.drag.begin(dragText, c.surface, pos)
		c.drag.origin = image.Rectangle{Min: c.text.at, Max: c.text.at}
		if err := c.text.render(img); err != nil {
			return err
		}
	default:
		c.drag.begin(dragTool, c.surface, pos)
	}
	c.logf("begin %s drag at %v", c.drag.kind, pos)
	return nil
}

func (c *Controller) pointerMove(pos image.Point) {
	if !c.drag.active() {
		return
	}
	img := c.surface.Image()
	d := c.drag.delta(pos)
	switch c.drag.kind {
	case dragTool:
		switch {
		case c.tool.Freehand():
			col := c.style.Color
			if c.tool == ToolEraser {
				col = c.surface.Background()
			}
			drawLine(img, c.drag.last.X, c.drag.last.Y, pos.X, pos.Y, col, c.style.Width)
		case c.tool.Shape():
			c.drag.restore(c.surface)
			DrawShape(img, c.tool, c.drag.start, pos, c.style)
		}
	case dragImageMove:
		c.drag.restore(c.surface)
		c.overlay.rect = c.drag.origin.Add(d)
		c.overlay.blit(img)
	case dragImageResize:
		c.drag.restore(c.surface)
		r := c.drag.origin
		r.Max = r.Max.Add(d)
		if r.Dx() < 1 {
			r.Max.X = r.Min.X + 1
		}
		if r.Dy() < 1 {
			r.Max.Y = r.Min.Y + 1
		}
		c.overlay.rect = r
		c.overlay.blit(img)
	case dragText:
		c.drag.restore(c.surface)
		c.text.at = c.drag.origin.Min.Add(d)
		if err := c.text.render(img); err != nil {
			c.logf("text render: %v", err)
		}
	}
	c.drag.last = pos
}

// endGesture returns to idle. Overlay drags record what now lies beneath the
// overlay so the next drag can lift it cleanly. Any other placement whose
// pixels the gesture touched is flattened into the raster, since the pixels
// it saved from under itself are stale.
func (c *Controller) endGesture() {
	if !c.drag.active() {
		return
	}
	img := c.surface.Image()
	switch c.drag.kind {
	case dragTool:
		if c.overlay != nil && changedWithin(c.drag.snapshot, img, c.overlay.rect) {
			c.flattenImage()
		}
		if c.text != nil && changedWithin(c.drag.snapshot, img, c.text.footprint()) {
			c.flattenText()
		}
	case dragImageMove, dragImageResize:
		c.overlay.under = cropImage(c.drag.snapshot, c.overlay.rect)
		if c.text != nil && c.text.footprint().Overlaps(c.drag.origin.Union(c.overlay.rect)) {
			c.flattenText()
		}
	case dragText:
		c.text.under = cropImage(c.drag.snapshot, c.text.footprint())
		from := c.text.footprint().Add(c.drag.origin.Min.Sub(c.text.at))
		if c.overlay != nil && c.overlay.rect.Overlaps(from.Union(c.text.footprint())) {
			c.flattenImage()
		}
	}
	c.logf("end %s drag at %v", c.drag.kind, c.drag.last)
	c.drag.end()
}

// flattenImage leaves the overlay's pixels in the raster but stops treating
// them as a movable image.
func (c *Controller) flattenImage() {
	c.logf("image flattened at %v", c.overlay.rect)
	c.overlay = nil
}

func (c *Controller) flattenText() {
	c.logf("text %q flattened", c.text.content)
	c.text = nil
}

func (c *Controller) commitText(pos image.Point) error {
	content, st := c.pendingText, c.pendingFmt
	c.textArmed = false
	c.pendingText = ""
	if content == "" {
		return nil
	}
	t, err := newTextAnnotation(content, st, pos)
	if err != nil {
		return err
	}
	img := c.surface.Image()
	t.under = cropImage(img, t.footprint())
	if err := t.render(img); err != nil {
		return err
	}
	if c.overlay != nil && c.overlay.rect.Overlaps(t.footprint()) {
		c.flattenImage()
	}
	c.text = t
	c.logf("text %q at %v", content, pos)
	return nil
}

func (c *Controller) imageLoaded(ev ImageLoaded) error {
	if ev.Err == nil && ev.Image == nil {
		ev.Err = fmt.Errorf("%w %s: empty image", ErrDecode, ev.Name)
	}
	if ev.Err != nil {
		if !errors.Is(ev.Err, ErrDecode) {
			ev.Err = fmt.Errorf("%w %s: %w", ErrDecode, ev.Name, ev.Err)
		}
		c.imageErr = ev.Err
		return ev.Err
	}
	c.endGesture()
	rect := ev.Rect
	if rect.Empty() {
		rect = DefaultImageRect
	}
	c.imageErr = nil
	c.overlay = newImageOverlay(ev.Image, rect)
	c.overlay.place(c.surface.Image())
	if c.text != nil && c.text.footprint().Overlaps(c.overlay.rect) {
		c.flattenText()
	}
	c.logf("image %s placed at %v", ev.Name, c.overlay.rect)
	return nil
}

func (c *Controller) clear() {
	c.drag.end()
	c.surface.Clear()
	c.overlay = nil
	c.text = nil
}

func (c *Controller) export() error {
	if c.exporter == nil {
		c.exporter = NewExporter(".")
	}
	path, err := c.exporter.Save(c.surface.Image())
	if err != nil {
		return err
	}
	c.lastExport = path
	c.logf("exported %s", path)
	return nil
}

// SelectTool activates the named tool. Unknown names leave the controller in
// the ToolUnknown state and return an error wrapping ErrUnknownTool.
func (c *Controller) SelectTool(name string) error { return c.Dispatch(ToolSelect{Name: name}) }

// SetWidth sets the brush width. Values below 1 are rejected.
func (c *Controller) SetWidth(n int) error {
	return c.Dispatch(WidthChange{Value: strconv.Itoa(n)})
}

// SetWidthString parses the raw value of a width control.
func (c *Controller) SetWidthString(s string) error { return c.Dispatch(WidthChange{Value: s}) }

// SetColor sets the stroke color.
func (c *Controller) SetColor(col color.RGBA) error {
	return c.Dispatch(ColorChange{Value: HexColor(col)})
}

// SetColorString parses s with ParseColor and sets the stroke color.
func (c *Controller) SetColorString(s string) error { return c.Dispatch(ColorChange{Value: s}) }

// SetFill toggles filled shapes.
func (c *Controller) SetFill(fill bool) error { return c.Dispatch(FillToggle{Fill: fill}) }

// Begin is a pointer down at pos.
func (c *Controller) Begin(pos image.Point) error { return c.Dispatch(PointerDown{Pos: pos}) }

// Update is a pointer move to pos. It does nothing when no gesture is active.
func (c *Controller) Update(pos image.Point) error { return c.Dispatch(PointerMove{Pos: pos}) }

// End is a pointer up.
func (c *Controller) End() error { return c.Dispatch(PointerUp{}) }

// Drag runs a whole gesture: down at the first point, a move to every point
// including the first, then up.
func (c *Controller) Drag(points ...image.Point) error {
	if len(points) == 0 {
		return nil
	}
	if err := c.Begin(points[0]); err != nil {
		return err
	}
	for _, p := range points {
		if err := c.Update(p); err != nil {
			return err
		}
	}
	return c.End()
}

// Clear wipes the surface to the background and forgets placements.
func (c *Controller) Clear() error { return c.Dispatch(ClearRequest{}) }

// Export writes the surface and returns the file path.
func (c *Controller) Export() (string, error) {
	if err := c.Dispatch(ExportRequest{}); err != nil {
		return "", err
	}
	return c.lastExport, nil
}

// ArmText arms a one-shot commit of content on the next pointer down.
func (c *Controller) ArmText(content string, st TextStyle) error {
	return c.Dispatch(TextArm{Content: content, Style: st})
}

// Text places content at pos with the controller's text style.
func (c *Controller) Text(pos image.Point, content string) error {
	if err := c.ArmText(content, c.textStyle); err != nil {
		return err
	}
	if err := c.Begin(pos); err != nil {
		return err
	}
	return c.End()
}

// LoadImage decodes r and places it at rect, or DefaultImageRect when rect is
// empty. It blocks until the decode completes or ctx is done.
func (c *Controller) LoadImage(ctx context.Context, name string, r io.Reader, rect image.Rectangle) error {
	res := <-DecodeImage(ctx, name, r)
	res.Rect = rect
	return c.Dispatch(res)
}

// Tool reports the active tool.
func (c *Controller) Tool() Tool { return c.tool }

// Style reports the stroke style.
func (c *Controller) Style() Style { return c.style }

// TextStyle reports the style used by Text.
func (c *Controller) TextStyle() TextStyle { return c.textStyle }

// SetTextStyle changes the style used by Text.
func (c *Controller) SetTextStyle(st TextStyle) { c.textStyle = st }

// Surface returns the drawing surface.
func (c *Controller) Surface() *Surface { return c.surface }

// Image is the live pixel buffer.
func (c *Controller) Image() *image.RGBA { return c.surface.Image() }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.drag.active() }

// TextArmed reports whether the next pointer down commits text.
func (c *Controller) TextArmed() bool { return c.textArmed }

// ImageRect reports the overlay placement, if an image is loaded.
func (c *Controller) ImageRect() (image.Rectangle, bool) {
	if c.overlay == nil {
		return image.Rectangle{}, false
	}
	return c.overlay.rect, true
}

// TextBox reports the hit box of the last committed text.
func (c *Controller) TextBox() (image.Rectangle, bool) {
	if c.text == nil {
		return image.Rectangle{}, false
	}
	return c.text.box(), true
}

// ImageError is the most recent decode failure, cleared by a successful load.
func (c *Controller) ImageError() error { return c.imageErr }

// LastExport is the path written by the most recent export.
func (c *Controller) LastExport() string { return c.lastExport }

// Exporter returns the exporter, creating the default one on first use.
func (c *Controller) Exporter() *Exporter {
	if c.exporter == nil {
		c.exporter = NewExporter(".")
	}
	return c.exporter
}

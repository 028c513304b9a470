package board

import (
	"bytes"
	"errors"
	"image"
	"testing"
)

func newTestController(t *testing.T, w, h int, opts ...Option) *Controller {
	t.Helper()
	return NewController(append([]Option{WithSize(w, h)}, opts...)...)
}

func allPixels(t *testing.T, img *image.RGBA, want func(x, y int) bool, msg string) {
	t.Helper()
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !want(x, y) {
				t.Fatalf("%s: pixel (%d,%d) = %v", msg, x, y, img.RGBAAt(x, y))
			}
		}
	}
}

func TestControllerDefaults(t *testing.T) {
	c := NewController()
	if c.Tool() != ToolBrush {
		t.Errorf("default tool = %v, want brush", c.Tool())
	}
	st := c.Style()
	if st.Width != 5 || st.Color != black || st.Fill {
		t.Errorf("default style = %+v", st)
	}
	if b := c.Image().Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Errorf("default size = %v", b)
	}
	assertPixel(t, c.Image(), 0, 0, white)
	if c.Dragging() {
		t.Error("new controller is dragging")
	}
}

func TestBrushStrokeScenario(t *testing.T) {
	c := newTestController(t, 40, 20)
	if err := c.SelectTool("brush"); err != nil {
		t.Fatalf("SelectTool: %v", err)
	}
	if err := c.SetWidth(5); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if err := c.SetColorString("red"); err != nil {
		t.Fatalf("SetColorString: %v", err)
	}
	if err := c.Begin(image.Pt(0, 0)); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	for _, p := range []image.Point{{0, 0}, {0, 0}, {10, 0}} {
		if err := c.Update(p); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	if err := c.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	img := c.Image()
	for x := 0; x <= 10; x++ {
		for y := 0; y <= 2; y++ {
			assertPixel(t, img, x, y, red)
		}
	}
	assertPixel(t, img, 5, 3, white)
	assertPixel(t, img, 13, 0, white)
}

func TestRectangleDragScenario(t *testing.T) {
	c := newTestController(t, 100, 100)
	c.SelectTool("rectangle")
	c.SetFill(false)
	c.SetColorString("black")
	c.SetWidth(1)
	if err := c.Drag(image.Pt(10, 10), image.Pt(80, 80), image.Pt(50, 40)); err != nil {
		t.Fatalf("Drag: %v", err)
	}
	want := blank(100, 100)
	DrawShape(want, ToolRect, image.Pt(10, 10), image.Pt(50, 40), Style{Width: 1, Color: black})
	if !bytes.Equal(want.Pix, c.Image().Pix) {
		t.Fatal("buffer holds more than the final rectangle outline")
	}
	assertPixel(t, c.Image(), 80, 10, white)
}

func TestFreehandStrokesAccumulate(t *testing.T) {
	c := newTestController(t, 50, 50)
	c.SetWidth(1)
	c.Drag(image.Pt(5, 5), image.Pt(40, 5), image.Pt(40, 40))
	assertPixel(t, c.Image(), 20, 5, black)
	assertPixel(t, c.Image(), 40, 20, black)
}

func TestEraserPaintsBackground(t *testing.T) {
	c := newTestController(t, 50, 50)
	c.SetWidth(3)
	c.Drag(image.Pt(5, 10), image.Pt(45, 10))
	assertPixel(t, c.Image(), 20, 10, black)
	c.SelectTool("eraser")
	c.SetWidth(8)
	c.Drag(image.Pt(5, 10), image.Pt(45, 10))
	allPixels(t, c.Image(), func(x, y int) bool { return c.Image().RGBAAt(x, y) == white }, "after erase")
}

func TestUpdateWhenIdleIsNoop(t *testing.T) {
	c := newTestController(t, 30, 30)
	before := append([]byte(nil), c.Image().Pix...)
	if err := c.Update(image.Pt(10, 10)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !bytes.Equal(before, c.Image().Pix) {
		t.Fatal("idle update changed the buffer")
	}
}

func TestGestureStateMachine(t *testing.T) {
	c := newTestController(t, 30, 30)
	c.Begin(image.Pt(1, 1))
	if !c.Dragging() || c.drag.snapshot == nil {
		t.Fatal("Begin did not enter dragging state with a snapshot")
	}
	c.Dispatch(PointerLeave{})
	if c.Dragging() || c.drag.snapshot != nil {
		t.Fatal("leave did not return to idle and drop the snapshot")
	}
	c.Begin(image.Pt(1, 1))
	c.End()
	if c.Dragging() {
		t.Fatal("End left the controller dragging")
	}
}

func TestSelectUnknownTool(t *testing.T) {
	c := newTestController(t, 40, 40)
	err := c.SelectTool("spray")
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("SelectTool error = %v, want ErrUnknownTool", err)
	}
	if c.Tool() != ToolUnknown {
		t.Fatalf("tool = %v, want unknown", c.Tool())
	}
	before := append([]byte(nil), c.Image().Pix...)
	c.Drag(image.Pt(1, 1), image.Pt(30, 30))
	if !bytes.Equal(before, c.Image().Pix) {
		t.Fatal("unknown tool drew on the buffer")
	}
}

func TestToolAliases(t *testing.T) {
	tests := map[string]Tool{
		"brush": ToolBrush, "eraser": ToolEraser, "rectangle": ToolRect, "rect": ToolRect,
		"circle": ToolCircle, "triangle": ToolTriangle, "tri": ToolTriangle, " Circle ": ToolCircle,
	}
	for name, want := range tests {
		got, err := ParseTool(name)
		if err != nil || got != want {
			t.Errorf("ParseTool(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
}

func TestSetWidthValidation(t *testing.T) {
	c := newTestController(t, 10, 10)
	for _, raw := range []string{"0", "-3", "abc", "", "2.5"} {
		if err := c.SetWidthString(raw); !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("SetWidthString(%q) = %v, want ErrInvalidWidth", raw, err)
		}
	}
	if err := c.SetWidth(0); !errors.Is(err, ErrInvalidWidth) {
		t.Errorf("SetWidth(0) = %v", err)
	}
	if c.Style().Width != DefaultWidth {
		t.Errorf("rejected widths changed state to %d", c.Style().Width)
	}
	if err := c.SetWidthString(" 12 "); err != nil {
		t.Fatalf("SetWidthString: %v", err)
	}
	if c.Style().Width != 12 {
		t.Errorf("width = %d, want 12", c.Style().Width)
	}
}

func TestSetColorValidation(t *testing.T) {
	c := newTestController(t, 10, 10)
	if err := c.SetColorString("not-a-color"); !errors.Is(err, ErrInvalidColor) {
		t.Fatalf("SetColorString = %v, want ErrInvalidColor", err)
	}
	if c.Style().Color != black {
		t.Fatalf("rejected color changed state to %v", c.Style().Color)
	}
	if err := c.SetColor(blue); err != nil {
		t.Fatalf("SetColor: %v", err)
	}
	if c.Style().Color != blue {
		t.Fatalf("color = %v, want blue", c.Style().Color)
	}
}

func TestClearResetsEveryPixel(t *testing.T) {
	bg := red
	c := newTestController(t, 60, 60, WithBackground(bg))
	c.SetColor(blue)
	c.SetWidth(4)
	c.Drag(image.Pt(0, 0), image.Pt(59, 59))
	c.SelectTool("circle")
	c.SetFill(true)
	c.Drag(image.Pt(30, 30), image.Pt(40, 40))
	c.Begin(image.Pt(5, 5))
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if c.Dragging() {
		t.Error("Clear left a drag active")
	}
	allPixels(t, c.Image(), func(x, y int) bool { return c.Image().RGBAAt(x, y) == bg }, "after clear")
}

type bogusEvent struct{}

func (bogusEvent) Kind() EventKind { return EventKind(99) }

func TestDispatchUnknownEvent(t *testing.T) {
	c := newTestController(t, 10, 10)
	if err := c.Dispatch(bogusEvent{}); err == nil {
		t.Fatal("expected error for unhandled event")
	}
}

func TestChangeListener(t *testing.T) {
	calls := 0
	c := newTestController(t, 10, 10, WithChangeListener(func() { calls++ }))
	c.SelectTool("circle")
	c.SetWidth(-1)
	if calls != 2 {
		t.Fatalf("listener called %d times, want 2", calls)
	}
}

func TestWithCanvasTakesPictureSize(t *testing.T) {
	src := blank(33, 21)
	src.SetRGBA(3, 4, blue)
	c := NewController(WithCanvas(src))
	if b := c.Image().Bounds(); b.Dx() != 33 || b.Dy() != 21 {
		t.Fatalf("size = %v", b)
	}
	assertPixel(t, c.Image(), 3, 4, blue)
}

func TestPointerPosition(t *testing.T) {
	origin := image.Pt(10, 40)
	p := Pointer{Client: image.Pt(15, 45)}
	if got := p.Position(origin); got != image.Pt(5, 5) {
		t.Errorf("mouse position = %v", got)
	}
	p.Touches = []image.Point{{30, 60}, {100, 100}}
	if got := p.Position(origin); got != image.Pt(20, 20) {
		t.Errorf("touch position = %v", got)
	}
}

type misnamedDown struct{}

func (misnamedDown) Kind() EventKind { return EventPointerDown }

func TestDispatchAcceptsEventPointers(t *testing.T) {
	c := newTestController(t, 20, 20)
	c.SetWidth(1)
	for _, ev := range []Event{&PointerDown{Pos: image.Pt(2, 2)}, &PointerMove{Pos: image.Pt(8, 2)}, &PointerUp{}} {
		if err := c.Dispatch(ev); err != nil {
			t.Fatalf("Dispatch(%T): %v", ev, err)
		}
	}
	assertPixel(t, c.Image(), 5, 2, black)
	if c.Dragging() {
		t.Fatal("pointer up by reference did not end the gesture")
	}

	var none *PointerDown
	for _, ev := range []Event{nil, none, misnamedDown{}} {
		if err := c.Dispatch(ev); !errors.Is(err, ErrBadEvent) {
			t.Errorf("Dispatch(%#v) = %v, want ErrBadEvent", ev, err)
		}
	}
}

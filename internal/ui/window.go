// Package ui hosts the drawing board in a native window. The window owns the
// event loop; every input becomes a board event dispatched to the controller.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/clipboard"
	"github.com/example/sketchpad/internal/theme"
)

const messageDuration = 2 * time.Second

type sender interface {
	Send(event interface{})
}

// Window drives a board.Controller from a shiny window.
type Window struct {
	ctrl      *board.Controller
	theme     *theme.Theme
	title     string
	imagePath string
	onSave    func(path string)
	onCopy    func()

	copyImage  func(image.Image) error
	pasteImage func() (image.Image, error)

	ctx    context.Context
	cancel context.CancelFunc
	out    sender

	lay          layout
	hover        image.Point
	editing      bool
	draft        string
	message      string
	messageErr   bool
	messageUntil time.Time
	quit         bool
}

// Option configures a Window.
type Option func(*Window)

// WithTheme sets the chrome colors.
func WithTheme(t *theme.Theme) Option { return func(w *Window) { w.theme = t } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(w *Window) { w.title = title } }

// WithImagePath sets the file the Open action decodes onto the surface.
func WithImagePath(path string) Option { return func(w *Window) { w.imagePath = path } }

// WithOnSave registers fn to run after each successful export.
func WithOnSave(fn func(path string)) Option { return func(w *Window) { w.onSave = fn } }

// WithOnCopy registers fn to run after the surface is copied to the clipboard.
func WithOnCopy(fn func()) Option { return func(w *Window) { w.onCopy = fn } }

// New prepares a window around ctrl. Nothing is shown until Run.
func New(ctrl *board.Controller, opts ...Option) *Window {
	w := &Window{
		ctrl:       ctrl,
		theme:      theme.Default(),
		title:      "Sketchpad",
		copyImage:  clipboard.WriteImage,
		pasteImage: clipboard.ReadImage,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.relayout()
	return w
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run() {
	driver.Main(w.Main)
}

// queueLatest replaces any frame still waiting in ch with st. The event loop
// is the only sender, so once the slot is drained the send cannot block.
func queueLatest(ch chan paintState, st paintState) {
	select {
	case <-ch:
	default:
	}
	ch <- st
}

// Main is the screen entry point used by Run.
func (w *Window) Main(s screen.Screen) {
	defer w.cancel()
	win, err := s.NewWindow(&screen.NewWindowOptions{Width: w.lay.size.X, Height: w.lay.size.Y, Title: w.title})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer win.Release()
	w.out = win

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(w.ctx)
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, win, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
		case size.Event:
			win.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			queueLatest(paintCh, w.paintState())
		case error:
			log.Print(e)
		default:
			if w.handle(e) {
				win.Send(paint.Event{})
			}
			if w.quit {
				return
			}
		}
	}
}

// handle applies one input event. It reports whether a redraw is needed.
func (w *Window) handle(e interface{}) bool {
	var redraw bool
	switch e := e.(type) {
	case mouse.Event:
		redraw = w.handleMouse(e)
	case touch.Event:
		redraw = w.handleTouch(e)
	case key.Event:
		redraw = w.handleKey(e)
	case board.ImageLoaded:
		if err := w.ctrl.Dispatch(e); err != nil {
			w.report(err)
		} else {
			w.setMessage(fmt.Sprintf("loaded %s", e.Name), false)
		}
		redraw = true
	}
	if redraw {
		w.relayout()
	}
	return redraw
}

func (w *Window) handleMouse(e mouse.Event) bool {
	ptr := board.Pointer{Client: image.Pt(int(e.X), int(e.Y))}
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		w.press(ptr, e.Modifiers&key.ModShift != 0)
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft || !w.ctrl.Dragging() {
			return false
		}
		w.report(w.ctrl.Dispatch(board.PointerUp{}))
		return true
	}
	prev := w.hover
	w.hover = ptr.Client
	if w.ctrl.Dragging() {
		w.move(ptr)
		return true
	}
	pk, pi := w.lay.hit(prev)
	hk, hi := w.lay.hit(w.hover)
	return pk != hk || pi != hi
}

// handleTouch follows the first finger only.
func (w *Window) handleTouch(e touch.Event) bool {
	if e.Sequence != 0 {
		return false
	}
	ptr := board.Pointer{Touches: []image.Point{image.Pt(int(e.X), int(e.Y))}}
	switch e.Type {
	case touch.TypeBegin:
		w.press(ptr, false)
	case touch.TypeMove:
		if !w.ctrl.Dragging() {
			return false
		}
		w.move(ptr)
	case touch.TypeEnd:
		if !w.ctrl.Dragging() {
			return false
		}
		w.report(w.ctrl.Dispatch(board.PointerUp{}))
	}
	return true
}

func (w *Window) press(ptr board.Pointer, resize bool) {
	client := ptr.Position(image.Point{})
	kind, idx := w.lay.hit(client)
	switch kind {
	case hitCanvas:
		w.report(w.ctrl.Dispatch(board.PointerDown{Pos: ptr.Position(w.lay.canvas.Min), Resize: resize}))
	case hitControl:
		w.perform(w.lay.controls[idx].act)
	case hitSwatch:
		if pal := board.PaletteColors(); idx < len(pal) {
			w.report(w.ctrl.SetColor(pal[idx].Color))
		}
	case hitWidth:
		if ws := board.WidthOptions(); idx < len(ws) {
			w.report(w.ctrl.SetWidth(ws[idx]))
		}
	}
}

// move continues a drag. Leaving the surface ends the gesture.
func (w *Window) move(ptr board.Pointer) {
	if !ptr.Position(image.Point{}).In(w.lay.canvas) {
		w.report(w.ctrl.Dispatch(board.PointerLeave{}))
		return
	}
	w.report(w.ctrl.Dispatch(board.PointerMove{Pos: ptr.Position(w.lay.canvas.Min)}))
}

func (w *Window) handleKey(e key.Event) bool {
	if e.Direction == key.DirRelease {
		return false
	}
	if w.editing {
		next, done, cancel := editDraft(w.draft, e)
		switch {
		case done:
			w.editing, w.draft = false, ""
			w.report(w.ctrl.ArmText(next, w.ctrl.TextStyle()))
		case cancel:
			w.editing, w.draft = false, ""
		default:
			w.draft = next
		}
		return true
	}
	a, ok := actionForKey(e)
	if !ok {
		return false
	}
	w.perform(a)
	return true
}

func (w *Window) perform(a action) {
	switch a {
	case actBrush, actEraser, actRect, actCircle, actTriangle:
		w.report(w.ctrl.SelectTool(string(a)))
	case actFill:
		w.report(w.ctrl.SetFill(!w.ctrl.Style().Fill))
	case actText:
		w.editing, w.draft = true, ""
	case actCancel:
		if w.ctrl.TextArmed() {
			w.report(w.ctrl.Dispatch(board.TextCancel{}))
		}
	case actClear:
		if err := w.ctrl.Clear(); err != nil {
			w.report(err)
			return
		}
		w.setMessage("cleared", false)
	case actSave:
		path, err := w.ctrl.Export()
		if err != nil {
			w.report(err)
			return
		}
		w.setMessage("saved "+path, false)
		if w.onSave != nil {
			w.onSave(path)
		}
	case actCopy:
		if err := w.copyImage(w.ctrl.Image()); err != nil {
			w.report(err)
			return
		}
		w.setMessage("copied to clipboard", false)
		if w.onCopy != nil {
			w.onCopy()
		}
	case actPaste:
		w.paste()
	case actOpen:
		w.open()
	case actQuit:
		w.quit = true
	}
}

// open decodes the configured image off the event goroutine and posts the
// result back as a board.ImageLoaded event.
func (w *Window) open() {
	if w.imagePath == "" {
		w.setMessage("no image to open; start with -image", true)
		return
	}
	f, err := os.Open(w.imagePath)
	if err != nil {
		w.report(err)
		return
	}
	ch := board.DecodeImage(w.ctx, w.imagePath, f)
	out := w.out
	go func() {
		defer f.Close()
		res := <-ch
		if out != nil {
			out.Send(res)
		}
	}()
	w.setMessage("loading "+w.imagePath, false)
}

func (w *Window) paste() {
	read, out := w.pasteImage, w.out
	go func() {
		img, err := read()
		if out != nil {
			out.Send(board.ImageLoaded{Name: "clipboard", Image: img, Err: err})
		}
	}()
}

func (w *Window) report(err error) {
	if err != nil {
		w.setMessage(err.Error(), true)
	}
}

func (w *Window) setMessage(msg string, isErr bool) {
	log.Print(msg)
	w.message, w.messageErr = msg, isErr
	w.messageUntil = time.Now().Add(messageDuration)
}

func (w *Window) relayout() {
	w.lay = newLayout(w.ctrl.Image().Bounds().Size(), len(board.PaletteColors()), len(board.WidthOptions()))
}

func (w *Window) paintState() paintState {
	rect, hasImage := w.ctrl.ImageRect()
	return paintState{
		lay:          w.lay,
		theme:        w.theme,
		canvas:       w.ctrl.Surface().Snapshot(),
		tool:         w.ctrl.Tool(),
		style:        w.ctrl.Style(),
		palette:      board.PaletteColors(),
		widths:       board.WidthOptions(),
		imageRect:    rect,
		hasImage:     hasImage,
		textArmed:    w.ctrl.TextArmed(),
		editing:      w.editing,
		draft:        w.draft,
		hover:        w.hover,
		message:      w.message,
		messageErr:   w.messageErr,
		messageUntil: w.messageUntil,
	}
}

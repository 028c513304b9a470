package board

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultImageRect is where a freshly loaded image lands: (50,50) at 200×150.
var DefaultImageRect = image.Rect(50, 50, 250, 200)

// ImageOverlay is an imported bitmap blitted into the surface. It remembers
// the pixels it covers so it can be lifted off and re-blitted elsewhere.
type ImageOverlay struct {
	src   image.Image
	rect  image.Rectangle
	under *image.RGBA
}

func newImageOverlay(src image.Image, rect image.Rectangle) *ImageOverlay {
	return &ImageOverlay{src: src, rect: rect.Canon()}
}

// Rect reports the current placement.
func (o *ImageOverlay) Rect() image.Rectangle {
	if o == nil {
		return image.Rectangle{}
	}
	return o.rect
}

// Contains reports whether p falls inside the placement. A nil overlay
// contains nothing.
func (o *ImageOverlay) Contains(p image.Point) bool {
	return o != nil && p.In(o.rect)
}

// place records what lies under rect and then blits the image there.
func (o *ImageOverlay) place(img *image.RGBA) {
	o.under = cropImage(img, o.rect)
	o.blit(img)
}

func (o *ImageOverlay) blit(img *image.RGBA) {
	xdraw.ApproxBiLinear.Scale(img, o.rect, o.src, o.src.Bounds(), xdraw.Over, nil)
}

// lift restores the pixels the overlay covered.
func (o *ImageOverlay) lift(img *image.RGBA) {
	pasteImage(img, o.rect, o.under)
}

// ImageLoaded reports the outcome of an asynchronous decode.
type ImageLoaded struct {
	Name  string
	Image image.Image
	Rect  image.Rectangle // zero means DefaultImageRect
	Err   error
}

func (ImageLoaded) Kind() EventKind { return EventImageLoaded }

// DecodeImage decodes r in a goroutine and delivers exactly one ImageLoaded on
// the returned channel. Decode failures wrap ErrDecode. If ctx is done first
// the result carries ctx.Err() and the decoder's output is discarded.
func DecodeImage(ctx context.Context, name string, r io.Reader) <-chan ImageLoaded {
	out := make(chan ImageLoaded, 1)
	go func() {
		defer close(out)
		type result struct {
			img image.Image
			err error
		}
		done := make(chan result, 1)
		go func() {
			img, _, err := image.Decode(r)
			done <- result{img, err}
		}()
		select {
		case <-ctx.Done():
			out <- ImageLoaded{Name: name, Err: ctx.Err()}
		case res := <-done:
			if res.err != nil {
				out <- ImageLoaded{Name: name, Err: fmt.Errorf("%w %s: %v", ErrDecode, name, res.err)}
				return
			}
			out <- ImageLoaded{Name: name, Image: res.img}
		}
	}()
	return out
}

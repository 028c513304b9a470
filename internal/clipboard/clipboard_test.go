//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"errors"
	"image"
	"sync"
	"testing"
)

func resetInit(t *testing.T) {
	t.Helper()
	initOnce = sync.Once{}
	initErr = nil
	active = nil
	t.Cleanup(func() {
		initOnce = sync.Once{}
		initErr = nil
		active = nil
	})
}

func TestEnsureInitWithoutDisplay(t *testing.T) {
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	resetInit(t)

	if err := WriteImage(image.NewRGBA(image.Rect(0, 0, 2, 2))); !errors.Is(err, errNoDisplay) {
		t.Fatalf("WriteImage: expected errNoDisplay, got %v", err)
	}
	if _, err := ReadImage(); !errors.Is(err, errNoDisplay) {
		t.Fatalf("ReadImage: expected errNoDisplay, got %v", err)
	}
}

type memBackend struct{ data []byte }

func (m *memBackend) writePNG(data []byte) error { m.data = data; return nil }
func (m *memBackend) readPNG() ([]byte, error)   { return m.data, nil }

func TestRoundTripThroughBackend(t *testing.T) {
	resetInit(t)
	initOnce.Do(func() {})
	mem := &memBackend{}
	active = mem

	if _, err := ReadImage(); !errors.Is(err, ErrNoImage) {
		t.Fatalf("empty clipboard: %v", err)
	}
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.Pix[0] = 200
	src.Pix[3] = 255
	if err := WriteImage(src); err != nil {
		t.Fatalf("WriteImage: %v", err)
	}
	got, err := ReadImage()
	if err != nil {
		t.Fatalf("ReadImage: %v", err)
	}
	if got.Bounds() != src.Bounds() {
		t.Fatalf("bounds = %v", got.Bounds())
	}
	r, _, _, a := got.At(0, 0).RGBA()
	if r>>8 != 200 || a>>8 != 255 {
		t.Fatalf("pixel = %v", got.At(0, 0))
	}

	mem.data = []byte("garbage")
	if _, err := ReadImage(); err == nil {
		t.Fatal("garbage decoded")
	}
}

package board

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Format selects the raster encoding used for exports.
type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

// DefaultJPEGQuality applies when an exporter has no quality set.
const DefaultJPEGQuality = 90

func (f Format) String() string {
	if f == FormatJPEG {
		return "jpeg"
	}
	return "png"
}

// Ext returns the filename extension including the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// ParseFormat accepts png, jpeg and jpg. Empty means png.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpeg", "jpg":
		return FormatJPEG, nil
	}
	return FormatPNG, fmt.Errorf("unknown export format %q", s)
}

// Exporter writes flattened surfaces to timestamp-named files. Names come
// from a millisecond clock and never repeat for one exporter, even when the
// clock has not advanced between calls.
type Exporter struct {
	Dir     string
	Format  Format
	Quality int

	now  func() time.Time
	mu   sync.Mutex
	last int64
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

func WithFormat(f Format) ExportOption { return func(e *Exporter) { e.Format = f } }

func WithQuality(q int) ExportOption { return func(e *Exporter) { e.Quality = q } }

// WithClock replaces time.Now.
func WithClock(now func() time.Time) ExportOption { return func(e *Exporter) { e.now = now } }

func NewExporter(dir string, opts ...ExportOption) *Exporter {
	e := &Exporter{Dir: dir, Quality: DefaultJPEGQuality, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) stamp() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := time.Now
	if e.now != nil {
		now = e.now
	}
	ms := now().UnixMilli()
	if ms <= e.last {
		ms = e.last + 1
	}
	e.last = ms
	return ms
}

// NextName reserves the next file name, without the directory.
func (e *Exporter) NextName() string {
	return fmt.Sprintf("%d%s", e.stamp(), e.Format.Ext())
}

// Encode writes img to w in the exporter's format.
func (e *Exporter) Encode(w io.Writer, img image.Image) error {
	if e.Format == FormatJPEG {
		q := e.Quality
		if q < 1 || q > 100 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	}
	return png.Encode(w, img)
}

// Save encodes img into a new file under Dir and returns its path. Existing
// files are never overwritten.
func (e *Exporter) Save(img image.Image) (string, error) {
	dir := e.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	var (
		out  *os.File
		path string
		err  error
	)
	for range 16 {
		path = filepath.Join(dir, e.NextName())
		out, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, fs.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	if err := e.Encode(out, img); err != nil {
		_ = out.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("export: encode: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("export: closing file: %w", err)
	}
	return path, nil
}

package board

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	c := newTestController(t, 64, 48, WithExporter(NewExporter(dir)))
	c.SetColor(red)
	c.Drag(image.Pt(2, 2), image.Pt(60, 40))
	c.SelectTool("triangle")
	c.SetFill(true)
	c.SetColor(color.RGBA{10, 200, 30, 255})
	c.Drag(image.Pt(30, 5), image.Pt(50, 45))

	path, err := c.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if c.LastExport() != path {
		t.Fatalf("LastExport = %q, want %q", c.LastExport(), path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	img := c.Image()
	if decoded.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			got := color.RGBAModel.Convert(decoded.At(x, y)).(color.RGBA)
			if got != img.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, img.RGBAAt(x, y))
			}
		}
	}
}

func TestExportNamesAreUnique(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, WithClock(fixedClock(1000)))
	img := blank(4, 4)
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		path, err := e.Save(img)
		if err != nil {
			t.Fatalf("Save: %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate export name %s", path)
		}
		seen[path] = true
	}
	for _, name := range []string{"1000.png", "1004.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}

func TestExportNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "2000.png"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	e := NewExporter(dir, WithClock(fixedClock(2000)))
	path, err := e.Save(blank(2, 2))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "2001.png" {
		t.Fatalf("path = %s, want 2001.png", path)
	}
	data, _ := os.ReadFile(filepath.Join(dir, "2000.png"))
	if string(data) != "keep" {
		t.Fatal("existing file overwritten")
	}
}

func TestExportTimestampFollowsClock(t *testing.T) {
	now := int64(5000)
	e := NewExporter(t.TempDir(), WithClock(func() time.Time { return time.UnixMilli(now) }))
	if got := e.NextName(); got != "5000.png" {
		t.Fatalf("first name = %s", got)
	}
	now = 9000
	if got := e.NextName(); got != "9000.png" {
		t.Fatalf("second name = %s", got)
	}
	now = 100
	if got := e.NextName(); got != "9001.png" {
		t.Fatalf("name after clock went backwards = %s", got)
	}
}

func TestExportJPEG(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir, WithFormat(FormatJPEG), WithQuality(75))
	path, err := e.Save(blank(16, 16))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !strings.HasSuffix(path, ".jpg") {
		t.Fatalf("path = %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := jpeg.Decode(f); err != nil {
		t.Fatalf("decode jpeg: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": FormatPNG, "png": FormatPNG, "PNG": FormatPNG, "jpeg": FormatJPEG, "jpg": FormatJPEG}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat(gif) succeeded")
	}
}

func TestExportIntoMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	path, err := NewExporter(dir).Save(blank(2, 2))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("export missing: %v", err)
	}
}

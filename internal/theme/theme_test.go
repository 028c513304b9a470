package theme

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsDefaultsForMissingKeys(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: Mine\nbackground: #102030\nOverlayHandle: red\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if th.Name != "Mine" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Background != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("Background = %v", th.Background)
	}
	if th.OverlayHandle != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("OverlayHandle = %v", th.OverlayHandle)
	}
	if th.ButtonBorder != Default().ButtonBorder {
		t.Errorf("ButtonBorder lost its default: %v", th.ButtonBorder)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Foreground: #12\n")); err == nil {
		t.Fatal("expected error")
	}
}

func TestWriteParseRoundTrip(t *testing.T) {
	in := Default()
	in.Name = "copy"
	in.SwatchSelected = color.RGBA{1, 2, 3, 4}
	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out, err := Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if *out != *in {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", in, out)
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\nBackground: navy\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	custom := &Theme{Name: "inline"}
	l := &Loader{ConfigDir: dir, Custom: map[string]*Theme{"dark": custom}}

	if th, err := l.Load("dark"); err != nil || th != custom {
		t.Errorf("config theme did not shadow embedded: %v %v", th, err)
	}
	if th, err := l.Load("light"); err != nil || th.Name != "Light" {
		t.Errorf("embedded light = %v, %v", th, err)
	}
	if th, err := l.Load("ocean"); err != nil || th.Name != "Ocean" {
		t.Errorf("config dir ocean = %v, %v", th, err)
	}
	if th, err := l.Load(filepath.Join(dir, "ocean.theme")); err != nil || th.Name != "Ocean" {
		t.Errorf("path ocean = %v, %v", th, err)
	}
	if th, err := l.Load(""); err != nil || th.Name != "Default" {
		t.Errorf("empty name = %v, %v", th, err)
	}
	if _, err := l.Load("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing = %v, want ErrNotFound", err)
	}
}

func TestEmbeddedThemesParse(t *testing.T) {
	names := Names()
	if len(names) < 2 {
		t.Fatalf("embedded themes = %v", names)
	}
	l := &Loader{}
	for _, name := range names {
		if _, err := l.Load(name); err != nil {
			t.Errorf("Load(%s): %v", name, err)
		}
	}
}

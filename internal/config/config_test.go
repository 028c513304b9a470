package config

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/sketchpad/internal/board"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/drawings
export_format = JPG
jpeg_quality = 70
background = #FFFFF0
color = "crimson"
width = 8
fill = true
canvas_width = 1024
canvas_height = 768

[text]
size = 32
family = mono
weight = bold
color = rgb(10, 20, 30)
underline = true

[notify]
save = false
copy = true

[theme.my_custom_theme]
Background = #111111
Foreground: #FFFFFF
`
	r := strings.NewReader(input)
	cfg, err := Parse(r)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/drawings" {
		t.Errorf("Expected save_dir '/tmp/drawings', got '%s'", cfg.SaveDir)
	}
	if cfg.ExportFormat != "jpg" || cfg.JPEGQuality != 70 {
		t.Errorf("export = %s q%d", cfg.ExportFormat, cfg.JPEGQuality)
	}
	if cfg.CanvasWidth != 1024 || cfg.CanvasHeight != 768 {
		t.Errorf("canvas = %dx%d", cfg.CanvasWidth, cfg.CanvasHeight)
	}

	st, err := cfg.Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if st.Width != 8 || !st.Fill || st.Color != (color.RGBA{220, 20, 60, 255}) {
		t.Errorf("style = %+v", st)
	}

	ts, err := cfg.TextStyle()
	if err != nil {
		t.Fatalf("TextStyle: %v", err)
	}
	if ts.Size != 32 || ts.Family != "mono" || ts.Weight != "bold" || !ts.Underline || ts.Border {
		t.Errorf("text style = %+v", ts)
	}
	if ts.Color != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("text color = %v", ts.Color)
	}

	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}

	theme, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if theme.Background.R != 0x11 || theme.Background.G != 0x11 || theme.Background.B != 0x11 {
		t.Errorf("Unexpected Background color: %+v", theme.Background)
	}
	if theme.Foreground != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Unexpected Foreground color: %+v", theme.Foreground)
	}
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	st, err := cfg.Style()
	if err != nil {
		t.Fatalf("Style: %v", err)
	}
	if st != board.DefaultStyle() {
		t.Errorf("default style = %+v", st)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil || bg != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("background = %v, %v", bg, err)
	}
	e, err := cfg.Exporter("")
	if err != nil {
		t.Fatalf("Exporter: %v", err)
	}
	if e.Format != board.FormatPNG {
		t.Errorf("default export format = %v", e.Format)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"width = 0", nil},
		{"width = wide", nil},
		{"color = nope", board.ErrInvalidColor},
		{"[text]\ncolor = #1", board.ErrInvalidColor},
		{"export_format = gif", nil},
		{"jpeg_quality = 101", nil},
		{"[notify]\nsave = maybe", nil},
		{"[theme.x]\nBackground: #XYZXYZ", board.ErrInvalidColor},
	}
	for _, tt := range tests {
		_, err := Parse(strings.NewReader(tt.input))
		if err == nil {
			t.Errorf("Parse(%q) succeeded", tt.input)
			continue
		}
		if tt.want != nil && !errors.Is(err, tt.want) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/drawings
width = 12
color = #336699
fill = true

[text]
size = 14.5
border = true

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Background = #000000
Foreground = #FFFFFF
`
	// 1. Parse initial input
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	// 2. Generate string representation
	generated := cfg.String()

	// 3. Parse generated string
	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	// 4. Compare relevant fields
	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Text != cfg2.Text {
		t.Errorf("Text mismatch: %+v vs %+v", cfg.Text, cfg2.Text)
	}
	if cfg.Width != cfg2.Width || cfg.Color != cfg2.Color || cfg.Fill != cfg2.Fill {
		t.Errorf("style mismatch")
	}

	// Check theme persistence
	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderDevMode(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	if err := os.WriteFile(filepath.Join(dir, ".sketchpadrc"), []byte("width = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := NewLoader("dev", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != 3 {
		t.Errorf("dev config not used: width %d", cfg.Width)
	}
	cfg, err = NewLoader("1.0.0", "").Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Width != board.DefaultWidth {
		t.Errorf("release build read the dev config")
	}
}

func TestSaveAndOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.rc")
	cfg := New()
	cfg.Theme = "dark"
	cfg.Notify.Copy = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := NewLoader("1.0.0", path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Theme != "dark" || !loaded.Notify.Copy {
		t.Errorf("loaded = %+v", loaded)
	}
}

package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Text holds the defaults for text annotations.
type Text struct {
	Size      float64
	Family    string
	Weight    string
	Color     string
	Underline bool
	Border    bool
}

// Config holds the application configuration.
type Config struct {
	Theme        string
	SaveDir      string
	ExportFormat string
	JPEGQuality  int
	Background   string
	Color        string
	Width        int
	Fill         bool
	CanvasWidth  int
	CanvasHeight int
	Text         Text
	Notify       Notify
	Themes       map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme:        "", // Default to empty to allow fallback to Env/Default
		ExportFormat: "png",
		JPEGQuality:  board.DefaultJPEGQuality,
		Background:   "white",
		Color:        "black",
		Width:        board.DefaultWidth,
		CanvasWidth:  800,
		CanvasHeight: 600,
		Text: Text{
			Size:   board.DefaultTextSize,
			Family: "sans",
			Weight: "normal",
			Color:  "black",
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// Style resolves the stroke defaults.
func (c *Config) Style() (board.Style, error) {
	col, err := board.ParseColor(c.Color)
	if err != nil {
		return board.Style{}, fmt.Errorf("color: %w", err)
	}
	if c.Width < 1 {
		return board.Style{}, fmt.Errorf("width: %w %d", board.ErrInvalidWidth, c.Width)
	}
	return board.Style{Width: c.Width, Color: col, Fill: c.Fill}, nil
}

// TextStyle resolves the text defaults.
func (c *Config) TextStyle() (board.TextStyle, error) {
	col, err := board.ParseColor(c.Text.Color)
	if err != nil {
		return board.TextStyle{}, fmt.Errorf("text color: %w", err)
	}
	return board.TextStyle{
		Size:      c.Text.Size,
		Family:    c.Text.Family,
		Weight:    c.Text.Weight,
		Color:     col,
		Underline: c.Text.Underline,
		Border:    c.Text.Border,
	}, nil
}

// BackgroundColor resolves the surface clear color.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	return board.ParseColor(c.Background)
}

// Exporter builds an exporter writing to dir, or SaveDir when dir is empty.
func (c *Config) Exporter(dir string) (*board.Exporter, error) {
	if dir == "" {
		dir = c.SaveDir
	}
	format, err := board.ParseFormat(c.ExportFormat)
	if err != nil {
		return nil, err
	}
	return board.NewExporter(dir, board.WithFormat(format), board.WithQuality(c.JPEGQuality)), nil
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "export_format = %s\n", c.ExportFormat)
	fmt.Fprintf(&sb, "jpeg_quality = %d\n", c.JPEGQuality)
	fmt.Fprintf(&sb, "background = %s\n", c.Background)
	fmt.Fprintf(&sb, "color = %s\n", c.Color)
	fmt.Fprintf(&sb, "width = %d\n", c.Width)
	fmt.Fprintf(&sb, "fill = %v\n", c.Fill)
	fmt.Fprintf(&sb, "canvas_width = %d\n", c.CanvasWidth)
	fmt.Fprintf(&sb, "canvas_height = %d\n", c.CanvasHeight)
	sb.WriteString("\n")

	sb.WriteString("[text]\n")
	fmt.Fprintf(&sb, "size = %g\n", c.Text.Size)
	fmt.Fprintf(&sb, "family = %s\n", c.Text.Family)
	fmt.Fprintf(&sb, "weight = %s\n", c.Text.Weight)
	fmt.Fprintf(&sb, "color = %s\n", c.Text.Color)
	fmt.Fprintf(&sb, "underline = %v\n", c.Text.Underline)
	fmt.Fprintf(&sb, "border = %v\n", c.Text.Border)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Write(&sb, c.Themes[name])
		sb.WriteString("\n")
	}

	return sb.String()
}

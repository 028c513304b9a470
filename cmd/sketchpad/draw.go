package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/clipboard"
)

// drawCmd runs one gesture headlessly and exports the result.
type drawCmd struct {
	*root
	fs          *flag.FlagSet
	canvas      canvasFlags
	colorSpec   string
	width       int
	fill        bool
	fillSet     bool
	toClipboard bool

	op     string
	pts    []image.Point
	text   string
	image  string
	geom   []string
	stdout func(format string, args ...any)
}

func (d *drawCmd) FlagSet() *flag.FlagSet {
	return d.fs
}

func (d *drawCmd) Template() string { return "draw.txt" }

var drawFlagNames = map[string]struct{}{
	"file": {}, "output": {}, "verbose": {}, "color": {}, "width": {}, "fill": {},
	"to-clipboard": {}, "to-clip": {},
}

var drawBoolFlags = map[string]struct{}{
	"verbose": {}, "fill": {}, "to-clipboard": {}, "to-clip": {},
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	d.canvas.register(fs)
	fs.StringVar(&d.colorSpec, "color", "", "stroke or fill color name, hex or rgb() value (defaults to the configured color)")
	fs.IntVar(&d.width, "width", 0, "stroke width in pixels (defaults to the configured width)")
	fs.BoolVar(&d.fill, "fill", false, "fill closed shapes")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clip", false, "copy the result to the clipboard (alias)")

	flagArgs, positionals, err := splitDrawArgs(args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fill" {
			d.fillSet = true
		}
	})
	if len(positionals) < 1 {
		return nil, &UsageError{of: d}
	}
	d.op = strings.ToLower(positionals[0])
	remaining := positionals[1:]
	switch d.op {
	case "brush", "eraser":
		d.pts, err = points(remaining, 1, d.op)
	case "rect", "rectangle", "circle", "triangle":
		var v []int
		v, err = expectInts(remaining, 4, d.op)
		if err == nil {
			d.pts = []image.Point{{v[0], v[1]}, {v[2], v[3]}}
		}
	case "text":
		if len(remaining) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		var v []int
		v, err = expectInts(remaining[:2], 2, d.op)
		if err == nil {
			d.pts = []image.Point{{v[0], v[1]}}
		}
		d.text = strings.Join(remaining[2:], " ")
		if strings.TrimSpace(d.text) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
	case "image":
		if len(remaining) != 1 && len(remaining) != 5 {
			return nil, fmt.Errorf("image requires a path and optionally x y w h")
		}
		d.image, d.geom = remaining[0], remaining[1:]
	case "clear":
		if len(remaining) != 0 {
			return nil, fmt.Errorf("clear takes no arguments")
		}
	default:
		return nil, fmt.Errorf("unsupported operation %q", d.op)
	}
	if err != nil {
		return nil, err
	}
	if d.colorSpec != "" {
		if _, err := board.ParseColor(d.colorSpec); err != nil {
			return nil, err
		}
	}
	if d.width < 0 {
		return nil, fmt.Errorf("%w %d: must be at least 1", board.ErrInvalidWidth, d.width)
	}
	return d, nil
}

func (d *drawCmd) Run() error {
	c, err := d.root.newController(d.canvas)
	if err != nil {
		return err
	}
	if err := d.apply(c); err != nil {
		return err
	}
	path, err := c.Export()
	if err != nil {
		return err
	}
	saved := path
	if abs, err := filepath.Abs(path); err == nil {
		saved = abs
	}
	d.printf("saved %s\n", saved)
	d.root.notifySave(saved)
	if d.toClipboard {
		if err := clipboard.WriteImage(c.Image()); err != nil {
			return fmt.Errorf("copy PNG to clipboard: %w", err)
		}
		detail := filepath.Base(saved)
		d.printf("copied %s to clipboard\n", detail)
		d.root.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) apply(c *board.Controller) error {
	if d.colorSpec != "" {
		if err := c.SetColorString(d.colorSpec); err != nil {
			return err
		}
	}
	if d.width > 0 {
		if err := c.SetWidth(d.width); err != nil {
			return err
		}
	}
	if d.fillSet {
		if err := c.SetFill(d.fill); err != nil {
			return err
		}
	}
	switch d.op {
	case "brush", "eraser", "rect", "rectangle", "circle", "triangle":
		if err := c.SelectTool(d.op); err != nil {
			return err
		}
		return c.Drag(d.pts...)
	case "text":
		return c.Text(d.pts[0], d.text)
	case "image":
		return loadOverlay(context.Background(), c, d.image, d.geom)
	case "clear":
		return c.Clear()
	}
	return fmt.Errorf("unsupported operation %q", d.op)
}

func (d *drawCmd) printf(format string, args ...any) {
	if d.stdout != nil {
		d.stdout(format, args...)
		return
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

// splitDrawArgs separates known flags from positional arguments so flags may
// follow the operation, e.g. `draw rect 0 0 10 10 -color red`.
func splitDrawArgs(args []string) ([]string, []string, error) {
	var flags []string
	var positionals []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			positionals = append(positionals, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positionals = append(positionals, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if name == "" {
			positionals = append(positionals, arg)
			continue
		}
		parts := strings.SplitN(name, "=", 2)
		base := strings.ToLower(parts[0])
		if _, ok := drawFlagNames[base]; !ok {
			// Negative coordinates look like flags.
			positionals = append(positionals, arg)
			continue
		}
		norm := "-" + base
		if len(parts) == 2 {
			flags = append(flags, norm+"="+parts[1])
			continue
		}
		if _, ok := drawBoolFlags[base]; ok {
			flags = append(flags, norm)
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag %s requires a value", arg)
		}
		flags = append(flags, norm, args[i+1])
		i++
	}
	return flags, positionals, nil
}

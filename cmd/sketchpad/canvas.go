package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strconv"

	"github.com/example/sketchpad/internal/board"
	"github.com/example/sketchpad/internal/config"
)

// canvasFlags are the flags every command that owns a controller accepts.
type canvasFlags struct {
	file    string
	output  string
	verbose bool
}

func (c *canvasFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.file, "file", "", "start from this image instead of a blank canvas")
	fs.StringVar(&c.output, "output", "", "directory exports are written to (defaults to save_dir, then the current directory)")
	fs.BoolVar(&c.verbose, "verbose", false, "log gesture and overlay transitions to stderr")
}

// newController builds a controller from the loaded configuration.
func (r *root) newController(cf canvasFlags) (*board.Controller, error) {
	cfg := config.New()
	if r != nil && r.config != nil {
		cfg = r.config
	}
	style, err := cfg.Style()
	if err != nil {
		return nil, err
	}
	textStyle, err := cfg.TextStyle()
	if err != nil {
		return nil, err
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	exp, err := cfg.Exporter(cf.output)
	if err != nil {
		return nil, err
	}
	opts := []board.Option{
		board.WithStyle(style),
		board.WithTextStyle(textStyle),
		board.WithBackground(bg),
		board.WithExporter(exp),
	}
	if cf.file != "" {
		img, err := decodeFile(context.Background(), cf.file)
		if err != nil {
			return nil, err
		}
		opts = append(opts, board.WithCanvas(img))
	} else {
		opts = append(opts, board.WithSize(cfg.CanvasWidth, cfg.CanvasHeight))
	}
	if cf.verbose {
		opts = append(opts, board.WithLogger(log.New(os.Stderr, "board: ", log.LstdFlags)))
	}
	board.EnsurePaletteColor(style.Color, "")
	board.EnsureWidth(style.Width)
	return board.NewController(opts...), nil
}

func decodeFile(ctx context.Context, path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("error closing %q: %v", f.Name(), err)
		}
	}()
	res := <-board.DecodeImage(ctx, path, f)
	if res.Err != nil {
		return nil, res.Err
	}
	return res.Image, nil
}

// loadOverlay decodes path onto the controller. Four trailing integers give
// the placement as x y w h; none selects the default rectangle.
func loadOverlay(ctx context.Context, c *board.Controller, path string, geom []string) error {
	var rect image.Rectangle
	switch len(geom) {
	case 0:
	case 4:
		v, err := expectInts(geom, 4, "image")
		if err != nil {
			return err
		}
		if v[2] < 1 || v[3] < 1 {
			return fmt.Errorf("image size must be positive, got %dx%d", v[2], v[3])
		}
		rect = image.Rect(v[0], v[1], v[0]+v[2], v[1]+v[3])
	default:
		return fmt.Errorf("image requires a path and optionally x y w h")
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return c.LoadImage(ctx, path, f, rect)
}

func expectInts(args []string, n int, op string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", op, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

// points pairs up an even list of integers.
func points(args []string, least int, op string) ([]image.Point, error) {
	if len(args)%2 != 0 || len(args) < 2*least {
		return nil, fmt.Errorf("%s requires at least %d x y pairs", op, least)
	}
	vals, err := expectInts(args, len(args), op)
	if err != nil {
		return nil, err
	}
	pts := make([]image.Point, 0, len(vals)/2)
	for i := 0; i < len(vals); i += 2 {
		pts = append(pts, image.Pt(vals[i], vals[i+1]))
	}
	return pts, nil
}

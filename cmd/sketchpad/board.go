package main

import (
	"flag"

	"github.com/example/sketchpad/internal/ui"
)

// boardCmd opens the drawing window.
type boardCmd struct {
	*root
	fs     *flag.FlagSet
	canvas canvasFlags
	image  string
}

func (b *boardCmd) FlagSet() *flag.FlagSet {
	return b.fs
}

func (b *boardCmd) Template() string { return "board.txt" }

func parseBoardCmd(args []string, r *root) (*boardCmd, error) {
	fs := flag.NewFlagSet("board", flag.ExitOnError)
	b := &boardCmd{root: r, fs: fs}
	fs.Usage = usageFunc(b)
	b.canvas.register(fs)
	fs.StringVar(&b.image, "image", "", "image the O key places on the canvas")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: b}
	}
	return b, nil
}

func (b *boardCmd) Run() error {
	ctrl, err := b.root.newController(b.canvas)
	if err != nil {
		return err
	}
	opts := []ui.Option{
		ui.WithImagePath(b.image),
		ui.WithOnSave(b.root.notifySave),
		ui.WithOnCopy(func() { b.root.notifyCopy("drawing") }),
	}
	if b.root.activeTheme != nil {
		opts = append(opts, ui.WithTheme(b.root.activeTheme))
	}
	ui.New(ctrl, opts...).Run()
	return nil
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/sketchpad/internal/board"
)

type commandList []string

func (c *commandList) String() string {
	return strings.Join(*c, ";")
}

func (c *commandList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

// interactiveCmd is a line console over one controller. Each line maps to a
// single board event, so a script replays exactly what the window would do.
type interactiveCmd struct {
	*root
	fs     *flag.FlagSet
	canvas canvasFlags
	execs  commandList

	ctrl   *board.Controller
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (i *interactiveCmd) FlagSet() *flag.FlagSet {
	return i.fs
}

func (i *interactiveCmd) Template() string { return "interactive.txt" }

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	i := &interactiveCmd{root: r, fs: fs, stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	fs.Usage = usageFunc(i)
	i.canvas.register(fs)
	fs.Var(&i.execs, "e", "execute a command and exit (may be specified multiple times)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: i}
	}
	return i, nil
}

func (i *interactiveCmd) Run() error {
	if i.ctrl == nil {
		ctrl, err := i.root.newController(i.canvas)
		if err != nil {
			return err
		}
		i.ctrl = ctrl
	}
	if len(i.execs) > 0 {
		for _, line := range i.execs {
			done, err := i.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(i.stdout, "Enter commands (type 'help' for a list, 'exit' to quit)")
	scanner := bufio.NewScanner(i.stdin)
	for {
		fmt.Fprint(i.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := i.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(i.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

const interactiveHelp = `commands:
  tool <brush|eraser|rectangle|circle|triangle>
  width <n>              color <name|#hex|rgb()>      fill <on|off>
  down <x> <y> [resize]  move <x> <y>                 up | leave
  text <words...>        arm text for the next down
  click <x> <y>          down then up at one point
  image <path> [x y w h] | image
  clear  export  status  exit`

// executeLine runs one console command. It reports whether the session
// should end.
func (i *interactiveCmd) executeLine(line string) (bool, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return false, nil
	}
	c := i.ctrl
	cmd, rest := strings.ToLower(args[0]), args[1:]
	switch cmd {
	case "exit", "quit":
		return true, nil
	case "help":
		fmt.Fprintln(i.stdout, interactiveHelp)
		return false, nil
	case "tool":
		if len(rest) != 1 {
			return false, fmt.Errorf("tool requires a name")
		}
		return false, c.SelectTool(rest[0])
	case "width":
		if len(rest) != 1 {
			return false, fmt.Errorf("width requires a value")
		}
		return false, c.SetWidthString(rest[0])
	case "color":
		if len(rest) == 0 {
			return false, fmt.Errorf("color requires a value")
		}
		return false, c.SetColorString(strings.Join(rest, " "))
	case "fill":
		on, err := parseSwitch(rest)
		if err != nil {
			return false, err
		}
		return false, c.SetFill(on)
	case "down":
		if len(rest) == 3 && strings.EqualFold(rest[2], "resize") {
			p, err := pointArg(cmd, rest[:2])
			if err != nil {
				return false, err
			}
			return false, c.Dispatch(board.PointerDown{Pos: p, Resize: true})
		}
		p, err := pointArg(cmd, rest)
		if err != nil {
			return false, err
		}
		return false, c.Begin(p)
	case "move":
		p, err := pointArg(cmd, rest)
		if err != nil {
			return false, err
		}
		return false, c.Update(p)
	case "up":
		return false, c.End()
	case "leave":
		return false, c.Dispatch(board.PointerLeave{})
	case "click":
		p, err := pointArg(cmd, rest)
		if err != nil {
			return false, err
		}
		if err := c.Begin(p); err != nil {
			return false, err
		}
		return false, c.End()
	case "text":
		return false, c.ArmText(strings.Join(rest, " "), c.TextStyle())
	case "image":
		if len(rest) == 0 {
			rect, ok := c.ImageRect()
			if !ok {
				return false, fmt.Errorf("image: %w", board.ErrNoImage)
			}
			fmt.Fprintf(i.stdout, "image at %v\n", rect)
			return false, nil
		}
		return false, loadOverlay(context.Background(), c, rest[0], rest[1:])
	case "clear":
		return false, c.Clear()
	case "export", "save":
		path, err := c.Export()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(i.stdout, "exported %s\n", path)
		i.root.notifySave(path)
		return false, nil
	case "status":
		i.printStatus()
		return false, nil
	}
	return false, fmt.Errorf("unknown command %q (try 'help')", cmd)
}

func (i *interactiveCmd) printStatus() {
	c := i.ctrl
	st := c.Style()
	fmt.Fprintf(i.stdout, "tool %s width %d color %s fill %t\n", c.Tool(), st.Width, board.HexColor(st.Color), st.Fill)
	b := c.Image().Bounds()
	fmt.Fprintf(i.stdout, "canvas %dx%d dragging %t text-armed %t\n", b.Dx(), b.Dy(), c.Dragging(), c.TextArmed())
	if rect, ok := c.ImageRect(); ok {
		fmt.Fprintf(i.stdout, "image %v\n", rect)
	}
	if err := c.ImageError(); err != nil {
		fmt.Fprintf(i.stdout, "image error: %v\n", err)
	}
	if box, ok := c.TextBox(); ok {
		fmt.Fprintf(i.stdout, "text %v\n", box)
	}
	if last := c.LastExport(); last != "" {
		fmt.Fprintf(i.stdout, "last export %s\n", last)
	}
}

func pointArg(cmd string, args []string) (image.Point, error) {
	v, err := expectInts(args, 2, cmd)
	if err != nil {
		return image.Point{}, err
	}
	return image.Pt(v[0], v[1]), nil
}

var errSwitch = errors.New("expected on or off")

func parseSwitch(args []string) (bool, error) {
	if len(args) == 0 {
		return false, fmt.Errorf("fill: %w", errSwitch)
	}
	switch strings.ToLower(args[0]) {
	case "on", "yes":
		return true, nil
	case "off", "no":
		return false, nil
	}
	v, err := strconv.ParseBool(args[0])
	if err != nil {
		return false, fmt.Errorf("fill %q: %w", args[0], errSwitch)
	}
	return v, nil
}

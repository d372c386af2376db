package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/edgeterm/pkg/ppm"
	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// maxUndo bounds the undo history.
const maxUndo = 20

// REPL is the interactive editor loop: one key per line, optionally
// followed by arguments ("o photo.png", "/canny midpoint", "s out.pgm").
type REPL struct {
	Prompt *Prompter
	Out    io.Writer
	Engine *Engine
	Store  *MetaStore
	Logger logrus.FieldLogger

	// Preview renders the current image; nil disables previews.
	Preview func(img *raster.Image, format string) error
	// SelectCommand picks a command interactively; nil or a failure falls
	// back to a numbered list.
	SelectCommand func([]CommandSpec) (string, error)
	// Update runs the update check for the 'u' key.
	Update func() error

	cur     *raster.Image
	format  string
	path    string
	history []*raster.Image
}

// NewREPL wires a REPL around prompt and engine with the default command set.
func NewREPL(prompt *Prompter, out io.Writer, engine *Engine) *REPL {
	engine.Out = out
	return &REPL{
		Prompt: prompt,
		Out:    out,
		Engine: engine,
		Store:  NewMetaStore(Commands),
		Logger: engine.Logger,
	}
}

// Current returns the image being edited, or nil.
func (r *REPL) Current() *raster.Image { return r.cur }

func (r *REPL) usage() {
	fmt.Fprintln(r.Out, "Commands available:")
	fmt.Fprintln(r.Out, "  /  - select and apply command (or /name args...)")
	fmt.Fprintln(r.Out, "  o  - open another image")
	fmt.Fprintln(r.Out, "  s  - save current image")
	fmt.Fprintln(r.Out, "  z  - undo last command")
	fmt.Fprintln(r.Out, "  u  - check for updates")
	fmt.Fprintln(r.Out, "  h  - show this help message")
	fmt.Fprintln(r.Out, "  q  - quit")
}

func (r *REPL) log() logrus.FieldLogger {
	if r.Logger == nil {
		return discardLogger()
	}
	return r.Logger
}

func (r *REPL) errorf(format string, args ...interface{}) {
	fmt.Fprintf(r.Out, "error: "+format+"\n", args...)
}

// Run loads path when it is non-empty and then reads keys until 'q' or
// the end of input.
func (r *REPL) Run(path string) error {
	if path != "" {
		if err := r.open(path); err != nil {
			return err
		}
	}
	fmt.Fprintln(r.Out, "Terminal Edge Editor")
	r.usage()

	for {
		line, err := r.Prompt.Line("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			continue
		}
		key, rest := line[0], strings.TrimSpace(line[1:])

		switch key {
		case '/':
			r.command(rest)
		case 'o':
			if rest == "" {
				if rest, err = r.Prompt.LineOrFzf("Enter path to image to open ('/' for fzf, empty to cancel): "); err != nil || rest == "" {
					fmt.Fprintln(r.Out, "open cancelled")
					continue
				}
			}
			if err := r.open(rest); err != nil {
				r.errorf("%v", err)
			}
		case 's':
			r.save(rest)
		case 'z':
			r.undo()
		case 'u':
			if r.Update == nil {
				fmt.Fprintln(r.Out, "updates are not available")
				continue
			}
			if err := r.Update(); err != nil {
				r.errorf("update check: %v", err)
			}
		case 'h':
			r.usage()
		case 'q':
			fmt.Fprintln(r.Out, "Exiting...")
			return nil
		default:
			fmt.Fprintf(r.Out, "unknown key %q, press h for help\n", key)
		}
	}
}

func (r *REPL) open(path string) error {
	img, format, err := ppm.LoadAny(path)
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	r.cur, r.format, r.path = img, format, path
	r.history = nil
	r.log().WithFields(logrus.Fields{"path": path, "format": format}).Info("opened image")
	fmt.Fprintf(r.Out, "Opened %s\n", path)
	r.show()
	return nil
}

func (r *REPL) save(path string) {
	if r.cur == nil {
		fmt.Fprintln(r.Out, "No image loaded.")
		return
	}
	if path == "" {
		var err error
		if path, err = r.Prompt.Line("Enter output filename: "); err != nil || path == "" {
			fmt.Fprintln(r.Out, "no filename provided")
			return
		}
	}
	if err := ppm.SaveAny(path, r.cur); err != nil {
		r.errorf("failed to write image: %v", err)
		return
	}
	r.log().WithField("path", path).Info("saved image")
	fmt.Fprintf(r.Out, "Saved to %s\n", path)
}

func (r *REPL) undo() {
	if len(r.history) == 0 {
		fmt.Fprintln(r.Out, "nothing to undo")
		return
	}
	r.cur = r.history[len(r.history)-1]
	r.history = r.history[:len(r.history)-1]
	fmt.Fprintln(r.Out, "Undone")
	r.show()
}

// show previews the current image and prints its summary.
func (r *REPL) show() {
	if r.Preview != nil {
		if err := r.Preview(r.cur, r.format); err != nil {
			r.log().WithError(err).Debug("preview failed")
		}
	}
	fmt.Fprintln(r.Out, ImageInfo(r.cur, r.format))
}

// command applies "name args..." or, when input is empty, asks for a
// command and then for each of its arguments.
func (r *REPL) command(input string) {
	if r.cur == nil {
		fmt.Fprintln(r.Out, "No image loaded. Press 'o' to open an image first.")
		return
	}

	var name string
	var rawArgs []string
	var err error
	if fields := strings.Fields(input); len(fields) > 0 {
		if name, err = r.Store.Resolve(fields[0]); err != nil {
			r.errorf("%v", err)
			return
		}
		rawArgs = fields[1:]
	} else {
		if name, err = r.chooseCommand(); err != nil {
			fmt.Fprintln(r.Out, err)
			return
		}
		if rawArgs, err = r.promptArgs(name); err != nil {
			r.errorf("input error: %v", err)
			return
		}
	}

	args, err := NormalizeArgs(r.Store, name, rawArgs)
	if err != nil {
		r.errorf("input validation error: %v", err)
		return
	}
	out, err := r.Engine.Apply(r.cur, name, args)
	if err != nil {
		r.errorf("apply command error: %v", err)
		return
	}
	if out == nil {
		return
	}
	r.history = append(r.history, r.cur)
	if len(r.history) > maxUndo {
		r.history = r.history[1:]
	}
	r.cur = out
	fmt.Fprintf(r.Out, "Applied %s\n", name)
	r.show()
}

func (r *REPL) chooseCommand() (string, error) {
	if r.SelectCommand != nil {
		if name, err := r.SelectCommand(r.Store.Commands); err == nil && name != "" {
			return r.Store.Resolve(name)
		}
	}
	fmt.Fprintln(r.Out, "Command selection:")
	for i, c := range r.Store.Commands {
		fmt.Fprintf(r.Out, "  %d) %s - %s\n", i+1, c.Name, c.Description)
	}
	sel, err := r.Prompt.Line("Enter number or command name (leave empty to cancel): ")
	if err != nil || sel == "" {
		return "", errors.New("selection cancelled")
	}
	if idx, perr := strconv.Atoi(sel); perr == nil {
		if idx < 1 || idx > len(r.Store.Commands) {
			return "", errors.New("invalid selection")
		}
		return r.Store.Commands[idx-1].Name, nil
	}
	return r.Store.Resolve(sel)
}

func (r *REPL) promptArgs(name string) ([]string, error) {
	c, _ := r.Store.Lookup(name)
	if len(c.Args) == 0 {
		return nil, nil
	}
	tooltip, _ := r.Store.GetTooltip(name)
	fmt.Fprintln(r.Out, "\n"+tooltip+"\n")
	raw := make([]string, len(c.Args))
	for i, a := range c.Args {
		label := a.Type
		if a.Type == "enum" {
			label = fmt.Sprintf("enum(%s)", a.Description)
		}
		v, err := r.Prompt.Line(fmt.Sprintf("%s (%s): ", a.Name, label))
		if err != nil {
			return nil, err
		}
		raw[i] = v
	}
	return raw, nil
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/edgeterm/pkg/canny"
	"github.com/Fepozopo/edgeterm/pkg/effects"
	"github.com/Fepozopo/edgeterm/pkg/raster"
	"github.com/Fepozopo/edgeterm/pkg/termrender"
)

// Engine applies registry commands to rasters.
type Engine struct {
	// Options are the Canny defaults; command arguments override them per call.
	Options canny.Options
	Logger  logrus.FieldLogger
	// Out receives the text of printing commands (ascii, braille, identify).
	Out io.Writer
	// Cols is the text width for printing commands; 0 queries the terminal.
	Cols int
}

// NewEngine returns an engine printing to stdout.
func NewEngine(opts canny.Options, logger logrus.FieldLogger) *Engine {
	return &Engine{Options: opts, Logger: logger, Out: os.Stdout}
}

// ApplyCommand applies one command with default options. See Engine.Apply.
func ApplyCommand(img *raster.Image, commandName string, args []string) (*raster.Image, error) {
	return NewEngine(canny.DefaultOptions(), nil).Apply(img, commandName, args)
}

// Apply runs commandName with already normalized args and returns the new
// image; img itself is never modified. Printing commands write to e.Out and
// return a nil image.
func (e *Engine) Apply(img *raster.Image, commandName string, args []string) (*raster.Image, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	e.logger().WithFields(logrus.Fields{
		"command": commandName,
		"args":    args,
	}).Debug("applying command")

	switch commandName {
	case "canny":
		opts, err := e.cannyOptions(args)
		if err != nil {
			return nil, err
		}
		return canny.NewDetector(opts, e.Logger).Detect(img), nil

	case "stages":
		st := canny.NewDetector(e.Options, e.Logger).Run(img)
		switch strings.ToLower(argString(args, 0, "")) {
		case "smoothed":
			return st.Smoothed, nil
		case "magnitude":
			return st.Magnitude, nil
		case "suppressed":
			return st.Suppressed, nil
		case "classified":
			return st.Classified, nil
		case "edges":
			return st.Edges, nil
		}
		return nil, fmt.Errorf("unknown stage %q", argString(args, 0, ""))

	case "dither":
		out := img.Clone()
		effects.Dither(out)
		return out, nil

	case "ditherLevels":
		depth, err := argInt(args, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid depth: %w", err)
		}
		if depth < 2 {
			return nil, fmt.Errorf("ditherLevels requires depth >= 2, got %d", depth)
		}
		out := img.Clone()
		effects.DitherLevels(out, depth)
		return out, nil

	case "sdither":
		seed, err := argInt(args, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %w", err)
		}
		return effects.StochasticDither(img, effects.NewRand(int64(seed))), nil

	case "downscale":
		if img.Rows() < 2 || img.Cols() < 2 {
			return nil, fmt.Errorf("image too small to downscale (%dx%d)", img.Cols(), img.Rows())
		}
		return effects.Downscale(img), nil

	case "pixelsort":
		edges := canny.NewDetector(e.Options, e.Logger).Detect(img)
		out := img.Clone()
		if err := effects.PixelSort(out, edges); err != nil {
			return nil, err
		}
		return out, nil

	case "jitter":
		radius, err := argInt(args, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
		seed, err := argInt(args, 1, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %w", err)
		}
		out := img.Clone()
		effects.Jitter(out, radius, effects.NewRand(int64(seed)))
		return out, nil

	case "posterize":
		levels, err := argInt(args, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid levels: %w", err)
		}
		return effects.Posterize(img, levels), nil

	case "noise":
		amount, err := argFloat(args, 1, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
		seed, err := argInt(args, 2, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid seed: %w", err)
		}
		return effects.AddNoise(img, argString(args, 0, ""), amount, effects.NewRand(int64(seed)))

	case "grayscale":
		return img.Grayscale(), nil

	case "threshold":
		v, err := argFloat(args, 0, 0.5)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold: %w", err)
		}
		out := img.Clone()
		out.Threshold(v)
		out.Format = "P1"
		return out, nil

	case "flip":
		return img.FlipVertical(), nil

	case "flop":
		return img.FlipHorizontal(), nil

	case "rotate":
		switch argString(args, 0, "") {
		case "90":
			return img.RotateCW(), nil
		case "180":
			return img.Rotate180(), nil
		case "270":
			return img.RotateCCW(), nil
		}
		return nil, fmt.Errorf("rotate supports 90, 180 or 270 degrees, got %q", argString(args, 0, ""))

	case "label":
		row, err := argInt(args, 1, 13)
		if err != nil {
			return nil, fmt.Errorf("invalid row: %w", err)
		}
		col, err := argInt(args, 2, 1)
		if err != nil {
			return nil, fmt.Errorf("invalid col: %w", err)
		}
		return effects.Annotate(img, argString(args, 0, ""), row, col, 1), nil

	case "ascii", "braille":
		cols, err := argInt(args, 0, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid cols: %w", err)
		}
		if cols <= 0 {
			cols = e.cols()
		}
		if commandName == "ascii" {
			return nil, termrender.ASCII(e.out(), img, cols)
		}
		return nil, termrender.Braille(e.out(), img, cols)

	case "identify":
		_, err := fmt.Fprintln(e.out(), ImageInfo(img, ""))
		return nil, err

	default:
		return nil, fmt.Errorf("unknown command: %s", commandName)
	}
}

func (e *Engine) cannyOptions(args []string) (canny.Options, error) {
	opts := e.Options
	var err error
	if s := argString(args, 0, ""); s != "" {
		if opts.Smoothing, err = canny.ParseSmoothing(s); err != nil {
			return opts, err
		}
	}
	if s := argString(args, 1, ""); s != "" {
		if opts.WeakMode, err = canny.ParseWeakMode(s); err != nil {
			return opts, err
		}
	}
	if opts.IgnoreFloor, err = argFloat(args, 2, opts.IgnoreFloor); err != nil {
		return opts, fmt.Errorf("invalid ignoreFloor: %w", err)
	}
	return opts, nil
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return discardLogger()
	}
	return e.Logger
}

func (e *Engine) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Engine) cols() int {
	if e.Cols > 0 {
		return e.Cols
	}
	return termrender.StdoutSize().Cols
}

// argString returns args[i], or def when it is missing or empty.
func argString(args []string, i int, def string) string {
	if i < len(args) && strings.TrimSpace(args[i]) != "" {
		return strings.TrimSpace(args[i])
	}
	return def
}

func argInt(args []string, i int, def int) (int, error) {
	s := argString(args, i, "")
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(s)
}

func argFloat(args []string, i int, def float64) (float64, error) {
	s := argString(args, i, "")
	if s == "" {
		return def, nil
	}
	return strconv.ParseFloat(s, 64)
}

package cli

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Fepozopo/edgeterm/pkg/canny"
	"github.com/Fepozopo/edgeterm/pkg/effects"
	"github.com/Fepozopo/edgeterm/pkg/ppm"
	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// app carries the state shared by every subcommand once flags are parsed.
type app struct {
	cfg    Config
	logger *logrus.Logger

	debug       bool
	logLevel    string
	smoothing   string
	weakMode    string
	ignoreFloor float64
	envFile     string
}

// NewRootCommand builds the edgeterm command tree. Without a subcommand it
// starts the interactive editor on the optional image argument.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "edgeterm [image]",
		Short:         "Canny edge detection and terminal image effects",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: a.runREPL,
	}

	pf := root.PersistentFlags()
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (overrides "+EnvLogLevel+")")
	pf.StringVar(&a.smoothing, "smoothing", "", "smoothing kernel: separable|kernel159")
	pf.StringVar(&a.weakMode, "weak-mode", "", "weak threshold rule: groupmean|midpoint")
	pf.Float64Var(&a.ignoreFloor, "ignore-floor", canny.DefaultIgnoreFloor, "magnitudes at or below are left out of the threshold statistics")
	pf.StringVar(&a.envFile, "env-file", ".env", "dotenv file to load when present")

	root.AddCommand(
		a.cannyCommand(),
		a.applyCommand(),
		a.renderCommand("ascii", "Print an image as ASCII art"),
		a.renderCommand("braille", "Print an image as braille dots"),
		a.replCommand(),
		commandsCommand(),
		versionCommand(),
		a.updateCommand(),
	)
	return root
}

// setup loads the configuration and applies flags on top of it.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.envFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = a.debug
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("smoothing") {
		if cfg.Canny.Smoothing, err = canny.ParseSmoothing(a.smoothing); err != nil {
			return err
		}
	}
	if flags.Changed("weak-mode") {
		if cfg.Canny.WeakMode, err = canny.ParseWeakMode(a.weakMode); err != nil {
			return err
		}
	}
	if flags.Changed("ignore-floor") {
		if a.ignoreFloor < 0 {
			return fmt.Errorf("--ignore-floor must be >= 0, got %v", a.ignoreFloor)
		}
		cfg.Canny.IgnoreFloor = a.ignoreFloor
	}
	a.cfg = cfg

	if a.logger, err = NewLogger(cmd.ErrOrStderr(), cfg.Debug, cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	a.logger.WithFields(logrus.Fields{
		"version":   Version,
		"smoothing": cfg.Canny.Smoothing.String(),
		"weak_mode": cfg.Canny.WeakMode.String(),
	}).Debug("configuration loaded")
	return nil
}

func (a *app) engine(out io.Writer) *Engine {
	e := NewEngine(a.cfg.Canny, a.logger)
	e.Out = out
	return e
}

// writeImage saves img to path, or writes it to out as Netpbm when path is empty.
func writeImage(out io.Writer, path string, img *raster.Image) error {
	if path == "" {
		return ppm.Encode(out, img)
	}
	return ppm.SaveAny(path, img)
}

func (a *app) cannyCommand() *cobra.Command {
	var output, stagesDir, sheet string
	cmd := &cobra.Command{
		Use:   "canny IMAGE",
		Short: "Detect edges and write a binary edge map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, _, err := ppm.LoadAny(args[0])
			if err != nil {
				return err
			}
			st := canny.NewDetector(a.cfg.Canny, a.logger).Run(img)
			if stagesDir != "" {
				if err := writeStages(stagesDir, st); err != nil {
					return err
				}
				a.logger.WithField("dir", stagesDir).Info("wrote pipeline stages")
			}
			if sheet != "" {
				if err := ppm.SaveAny(sheet, stageSheet(st)); err != nil {
					return err
				}
				a.logger.WithField("path", sheet).Info("wrote stage sheet")
			}
			return writeImage(cmd.OutOrStdout(), output, st.Edges)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (Netpbm to stdout when empty)")
	cmd.Flags().StringVar(&stagesDir, "stages", "", "directory to write every intermediate stage to")
	cmd.Flags().StringVar(&sheet, "sheet", "", "write all stages side by side, labeled, to this file")
	return cmd
}

// writeStages saves each pipeline intermediate under dir.
func writeStages(dir string, st *canny.Stages) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, s := range []struct {
		name string
		img  *raster.Image
	}{
		{"1-smoothed.pgm", st.Smoothed},
		{"2-magnitude.pgm", st.Magnitude},
		{"3-suppressed.pgm", st.Suppressed},
		{"4-classified.pgm", st.Classified},
		{"5-edges.pbm", st.Edges},
	} {
		if err := ppm.SaveAny(filepath.Join(dir, s.name), s.img); err != nil {
			return fmt.Errorf("writing %s: %w", s.name, err)
		}
	}
	return nil
}

// stageSheet tiles every intermediate into one labeled image.
func stageSheet(st *canny.Stages) *raster.Image {
	return effects.Montage(
		[]*raster.Image{st.Smoothed, st.Magnitude, st.Suppressed, st.Classified, st.Edges},
		[]string{"smooth", "grad", "nms", "class", "edges"},
		4,
	)
}

func (a *app) applyCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "apply IMAGE COMMAND [ARGS...]",
		Short: "Apply one editor command to an image",
		Long:  "Apply one editor command to an image. Run 'edgeterm commands' for the list.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := NewMetaStore(Commands)
			name, err := store.Resolve(args[1])
			if err != nil {
				return err
			}
			norm, err := NormalizeArgs(store, name, args[2:])
			if err != nil {
				return err
			}
			img, format, err := ppm.LoadAny(args[0])
			if err != nil {
				return err
			}
			if name == "identify" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), ImageInfo(img, format))
				return err
			}
			out, err := a.engine(cmd.OutOrStdout()).Apply(img, name, norm)
			if err != nil || out == nil {
				return err
			}
			return writeImage(cmd.OutOrStdout(), output, out)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (Netpbm to stdout when empty)")
	return cmd
}

func (a *app) renderCommand(name, short string) *cobra.Command {
	var cols int
	cmd := &cobra.Command{
		Use:   name + " IMAGE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cols < 0 {
				return fmt.Errorf("--cols must be >= 0, got %d", cols)
			}
			img, _, err := ppm.LoadAny(args[0])
			if err != nil {
				return err
			}
			_, err = a.engine(cmd.OutOrStdout()).Apply(img, name, []string{strconv.Itoa(cols)})
			return err
		},
	}
	cmd.Flags().IntVar(&cols, "cols", 0, "output width in characters (0 = terminal width)")
	return cmd
}

func (a *app) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl [IMAGE]",
		Short: "Start the interactive editor",
		Args:  cobra.MaximumNArgs(1),
		RunE:  a.runREPL,
	}
}

func (a *app) runREPL(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	prompt := NewPrompter(cmd.InOrStdin(), out)
	r := NewREPL(prompt, out, a.engine(out))
	if PreviewSupported() {
		previewer := NewPreviewer(a.cfg, a.logger)
		previewer.Out = out
		r.Preview = previewer.Preview
	}
	if _, err := exec.LookPath("fzf"); err == nil {
		r.SelectCommand = SelectCommandWithFzf
	}
	r.Update = func() error {
		updated, err := NewUpdater(out, prompt).Check()
		if err != nil || !updated {
			return err
		}
		return Restart()
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return r.Run(path)
}

func commandsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "commands",
		Short: "List the editor commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, c := range Commands {
				fmt.Fprintf(w, "%-14s %s\n", c.Name, c.Description)
				fmt.Fprintf(w, "%-14s usage: %s\n", "", c.Usage)
			}
			return nil
		},
	}
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "edgeterm %s\n", Version)
		},
	}
}

func (a *app) updateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check GitHub for a newer release and install it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			updated, err := NewUpdater(out, NewPrompter(cmd.InOrStdin(), out)).Check()
			if err != nil {
				return err
			}
			if updated {
				fmt.Fprintln(out, "Restart edgeterm to use the new version.")
			}
			return nil
		},
	}
}

package cli

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "enum", "string"
	Required    bool
	Default     string // textual default (for help only)
	Description string // for enums, the accepted values separated by '|'
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string
	Description string
	// Prints reports a command that writes to the terminal instead of
	// producing a new image.
	Prints bool
}

// Commands is the authoritative list of commands understood by Engine.Apply.
var Commands = []CommandSpec{
	{
		Name: "canny",
		Args: []ArgSpec{
			{"smoothing", "enum", false, "separable", "separable|kernel159"},
			{"weakMode", "enum", false, "groupmean", "groupmean|midpoint"},
			{"ignoreFloor", "float", false, "0.00196", "magnitudes at or below are left out of the statistics"},
		},
		Usage:       "canny [smoothing] [weakMode] [ignoreFloor]",
		Description: "Canny edge detection; yields a binary edge map.",
	},
	{
		Name: "stages",
		Args: []ArgSpec{
			{"stage", "enum", true, "", "smoothed|magnitude|suppressed|classified|edges"},
		},
		Usage:       "stages <stage>",
		Description: "Run the Canny pipeline and keep one intermediate stage.",
	},
	{
		Name:        "dither",
		Args:        []ArgSpec{},
		Usage:       "dither",
		Description: "Floyd-Steinberg dither to black and white.",
	},
	{
		Name:        "ditherLevels",
		Args:        []ArgSpec{{"depth", "int", true, "", "number of gray levels (>= 2)"}},
		Usage:       "ditherLevels <depth>",
		Description: "Floyd-Steinberg dither to evenly spaced gray levels.",
	},
	{
		Name:        "sdither",
		Args:        []ArgSpec{{"seed", "int", false, "0", "random seed (0 = fixed default)"}},
		Usage:       "sdither [seed]",
		Description: "Stochastic dither: white with probability equal to brightness.",
	},
	{
		Name:        "downscale",
		Args:        []ArgSpec{},
		Usage:       "downscale",
		Description: "Halve both dimensions with a 2x2 box average.",
	},
	{
		Name:        "pixelsort",
		Args:        []ArgSpec{},
		Usage:       "pixelsort",
		Description: "Sort each row by brightness between the image's own Canny edges.",
	},
	{
		Name:        "jitter",
		Args:        []ArgSpec{{"radius", "int", true, "", "swap distance"}, {"seed", "int", false, "0", "random seed"}},
		Usage:       "jitter <radius> [seed]",
		Description: "Swap every pixel with a random nearby pixel.",
	},
	{
		Name:        "posterize",
		Args:        []ArgSpec{{"levels", "int", true, "", "levels per channel"}},
		Usage:       "posterize <levels>",
		Description: "Round every channel to a few evenly spaced levels.",
	},
	{
		Name:        "noise",
		Args:        []ArgSpec{{"type", "enum", true, "", "gaussian|uniform"}, {"amount", "float", true, "", "strength in [0,1]"}, {"seed", "int", false, "0", "random seed"}},
		Usage:       "noise <type> <amount> [seed]",
		Description: "Add random noise to every channel.",
	},
	{
		Name:        "grayscale",
		Args:        []ArgSpec{},
		Usage:       "grayscale",
		Description: "Convert to luma (BT.601).",
	},
	{
		Name:        "threshold",
		Args:        []ArgSpec{{"value", "float", true, "", "luma cutoff in [0,1]"}},
		Usage:       "threshold <value>",
		Description: "Pixels at or above the cutoff become white, the rest black.",
	},
	{
		Name:        "flip",
		Args:        []ArgSpec{},
		Usage:       "flip",
		Description: "Mirror top to bottom.",
	},
	{
		Name:        "flop",
		Args:        []ArgSpec{},
		Usage:       "flop",
		Description: "Mirror left to right.",
	},
	{
		Name:        "rotate",
		Args:        []ArgSpec{{"degrees", "enum", true, "", "90|180|270"}},
		Usage:       "rotate <degrees>",
		Description: "Rotate clockwise by a quarter-turn multiple.",
	},
	{
		Name: "label",
		Args: []ArgSpec{
			{"text", "string", true, "", "caption (one word)"},
			{"row", "int", false, "13", "baseline row"},
			{"col", "int", false, "1", "first column"},
		},
		Usage:       "label <text> [row] [col]",
		Description: "Draw a white caption in the built-in 7x13 font.",
	},
	{
		Name:        "ascii",
		Args:        []ArgSpec{{"cols", "int", false, "0", "output width (0 = terminal width)"}},
		Usage:       "ascii [cols]",
		Description: "Print the image as ASCII art.",
		Prints:      true,
	},
	{
		Name:        "braille",
		Args:        []ArgSpec{{"cols", "int", false, "0", "output width (0 = terminal width)"}},
		Usage:       "braille [cols]",
		Description: "Print the image as braille dots.",
		Prints:      true,
	},
	{
		Name:        "identify",
		Args:        []ArgSpec{},
		Usage:       "identify",
		Description: "Print dimensions, format and brightness statistics.",
		Prints:      true,
	},
}

// LookupCommand returns the command named name.
func LookupCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}

package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// SelectCommandWithFzf displays commands in fzf and returns the selected command name.
func SelectCommandWithFzf(commands []CommandSpec) (string, error) {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "%s: %s\n", c.Name, c.Description)
	}

	cmd := exec.Command("fzf", "--prompt=Commands> ")
	cmd.Stdin = strings.NewReader(b.String())

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running fzf: %w", err)
	}
	return parseFzfCommand(out.String())
}

// parseFzfCommand extracts the command name from a "name: description" line.
func parseFzfCommand(selection string) (string, error) {
	name, _, _ := strings.Cut(strings.TrimSpace(selection), ":")
	if name = strings.TrimSpace(name); name == "" {
		return "", fmt.Errorf("no command selected")
	}
	return name, nil
}

// imageExtensions are the file types offered by SelectFileWithFzf.
var imageExtensions = []string{
	"pbm", "pgm", "ppm", "pnm",
	"jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "webp",
}

// previewCommand builds the fzf --preview command for the detected
// terminal. Each image renderer falls back to this binary's own braille
// output, which needs nothing beyond the binary itself.
func previewCommand(self string) string {
	fallback := fmt.Sprintf("%s braille --cols 60 {} 2>/dev/null", strconv.Quote(self))
	switch {
	case isKitty():
		return "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || " + fallback
	case isInlineImageCapable():
		return "imgcat {} 2>/dev/null || " + fallback
	case isSixelCapable():
		return "img2sixel {} 2>/dev/null || " + fallback
	case hasChafa():
		return "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null || " + fallback
	}
	return fallback
}

// findExpr returns the find(1) predicate matching imageExtensions.
func findExpr() string {
	parts := make([]string, len(imageExtensions))
	for i, ext := range imageExtensions {
		parts[i] = "-iname '*." + ext + "'"
	}
	return "\\( " + strings.Join(parts, " -o ") + " \\)"
}

// SelectFileWithFzf launches fzf over the image files found under startDir
// and returns the selected path. It requires find and fzf in PATH.
func SelectFileWithFzf(startDir string) (string, error) {
	self, err := os.Executable()
	if err != nil {
		self = "edgeterm"
	}
	cmdStr := fmt.Sprintf(
		"find %s -type f %s | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		findExpr(),
		previewCommand(self),
	)
	cmd := exec.Command("bash", "-lc", cmdStr)

	var out bytes.Buffer
	cmd.Stdout = &out

	err = cmd.Run()
	// the previewer may leave kitty images behind either way
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it will ignore it.
func clearKittyImages() {
	if isKitty() {
		fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
	}
}

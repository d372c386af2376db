package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter reads whole lines of user input. One Prompter should own the
// input stream for the life of a session so buffered input is never lost.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	// SelectFile is called when the user answers a file prompt with "/".
	// It defaults to SelectFileWithFzf.
	SelectFile func(startDir string) (string, error)
}

// NewPrompter returns a Prompter reading from in and echoing prompts to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, SelectFile: SelectFileWithFzf}
}

// Line displays a prompt and reads a full line of input, trimmed of
// surrounding whitespace. A final line without a newline is returned with
// a nil error; io.EOF is returned only when nothing was read.
func (p *Prompter) Line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// LineOrFzf reads a line and treats a lone "/" as a request to pick a file
// with fzf. When fzf is unavailable or cancelled it prompts again.
func (p *Prompter) LineOrFzf(prompt string) (string, error) {
	input, err := p.Line(prompt)
	if err != nil || input != "/" {
		return input, err
	}
	if p.SelectFile != nil {
		if sel, selErr := p.SelectFile("."); selErr == nil && sel != "" {
			fmt.Fprintf(p.out, " [fzf] %s\n", sel)
			return sel, nil
		}
	}
	return p.Line(prompt)
}

// Confirm asks a yes/no question; only "y" and "yes" count as yes.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Line(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

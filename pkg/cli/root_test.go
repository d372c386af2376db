package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fepozopo/edgeterm/pkg/effects"
	"github.com/Fepozopo/edgeterm/pkg/ppm"
)

// runRoot executes the command tree with args and returns stdout and stderr.
func runRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	var out, errOut bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetArgs(append([]string{"--env-file", filepath.Join(t.TempDir(), "none.env")}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeStep(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "step.pgm")
	require.NoError(t, ppm.Save(path, stepImage(t)))
	return path
}

func TestRootVersion(t *testing.T) {
	out, _, err := runRoot(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "edgeterm "+Version+"\n", out)
}

func TestRootCommandsList(t *testing.T) {
	out, _, err := runRoot(t, "", "commands")
	require.NoError(t, err)
	for _, c := range Commands {
		assert.Contains(t, out, "usage: "+c.Usage)
	}
}

func TestRootCanny(t *testing.T) {
	in := writeStep(t)
	dir := t.TempDir()
	outPath := filepath.Join(dir, "edges.pbm")
	stages := filepath.Join(dir, "stages")

	_, logs, err := runRoot(t, "", "canny", in, "-o", outPath, "--stages", stages)
	require.NoError(t, err)
	assert.Contains(t, logs, `"msg":"edge detection complete"`)

	edges, err := ppm.Open(outPath)
	require.NoError(t, err)
	assert.Equal(t, "P1", edges.Format)
	var lit int
	for _, v := range edges.Lumas() {
		assert.True(t, v == 0 || v == 1)
		if v == 1 {
			lit++
		}
	}
	assert.Greater(t, lit, 0)

	entries, err := os.ReadDir(stages)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

func TestRootCannySheet(t *testing.T) {
	in := writeStep(t)
	sheet := filepath.Join(t.TempDir(), "sheet.png")
	out, _, err := runRoot(t, "", "canny", in, "--sheet", sheet, "-o", filepath.Join(t.TempDir(), "e.pgm"))
	require.NoError(t, err)
	assert.Empty(t, out)

	img, format, err := ppm.LoadAny(sheet)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 10+effects.LabelHeight, img.Rows())
	assert.Equal(t, 5*10+4*4, img.Cols())
}

func TestRootCannyToStdout(t *testing.T) {
	in := writeStep(t)
	out, _, err := runRoot(t, "", "--smoothing", "kernel159", "--weak-mode", "midpoint", "--log-level", "error", "canny", in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "P2\n10 10\n255\n"), "got %.20q", out)
}

func TestRootApply(t *testing.T) {
	in := writeGray(t, [][]float64{{0, 0.2, 0.4}, {0.6, 0.8, 1}})

	out, _, err := runRoot(t, "", "apply", in, "flop")
	require.NoError(t, err)
	assert.Equal(t, "P2\n3 2\n255\n102 51 0\n255 204 153\n", out)

	out, _, err = runRoot(t, "", "apply", in, "identify")
	require.NoError(t, err)
	assert.Contains(t, out, "Format: P2, Width: 3, Height: 2")

	saved := filepath.Join(t.TempDir(), "t.pbm")
	_, _, err = runRoot(t, "", "apply", in, "thresh", "0.5", "-o", saved)
	require.NoError(t, err)
	img, err := ppm.Open(saved)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, img.Lumas())

	_, _, err = runRoot(t, "", "apply", in, "rotate", "45")
	assert.Error(t, err)
	_, _, err = runRoot(t, "", "apply", in, "sharpen")
	assert.Error(t, err)
}

func TestRootRender(t *testing.T) {
	in := writeGray(t, [][]float64{{0, 1}, {1, 0}})
	out, _, err := runRoot(t, "", "ascii", in, "--cols", "80")
	require.NoError(t, err)
	assert.Equal(t, "  @@\n@@  \n", out)

	out, _, err = runRoot(t, "", "braille", in, "--cols", "80")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "\n"))

	_, _, err = runRoot(t, "", "ascii", in, "--cols", "-1")
	assert.Error(t, err)
}

func TestRootREPL(t *testing.T) {
	in := writeGray(t, [][]float64{{0, 1}, {1, 0}})
	out, _, err := runRoot(t, "/flop\nq\n", in)
	require.NoError(t, err)
	assert.Contains(t, out, "Applied flop")
	assert.Contains(t, out, "Exiting...")
}

func TestRootRejectsBadFlags(t *testing.T) {
	_, _, err := runRoot(t, "", "--smoothing", "box", "version")
	assert.Error(t, err)
	_, _, err = runRoot(t, "", "--ignore-floor", "-0.1", "version")
	assert.Error(t, err)
	_, _, err = runRoot(t, "", "--log-level", "chatty", "version")
	assert.Error(t, err)
	_, _, err = runRoot(t, "", "canny")
	assert.Error(t, err)
}

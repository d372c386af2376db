package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Terminal image preview. Backends, in default order:
//   - inline: iTerm2-style OSC 1337 (iTerm2, WezTerm, Warp, VSCode and friends)
//   - kitty: kitty graphics protocol, chunked base64 inside ESC _G ... ESC \
//   - sixel: piped to img2sixel
//   - chafa: piped to chafa for a block-character approximation
//
// PREVIEW_BACKEND names a backend to try first.

// Previewer writes images to a terminal.
type Previewer struct {
	Out io.Writer
	// Backend is tried before detection when set.
	Backend string
	Logger  logrus.FieldLogger
}

// NewPreviewer returns a Previewer for stdout configured from cfg. Preview
// debug output goes to logger at debug level when cfg.PreviewDebug is set.
func NewPreviewer(cfg Config, logger logrus.FieldLogger) *Previewer {
	p := &Previewer{Out: os.Stdout, Backend: cfg.PreviewBackend}
	if cfg.PreviewDebug && logger != nil {
		p.Logger = logger.WithField("component", "preview")
	}
	return p
}

func (p *Previewer) debugf(format string, args ...interface{}) {
	if p.Logger != nil {
		p.Logger.Debugf(format, args...)
	}
}

func (p *Previewer) out() io.Writer {
	if p.Out == nil {
		return os.Stdout
	}
	return p.Out
}

func isKitty() bool {
	// ghostty and Konsole implement enough of the kitty protocol
	if os.Getenv("KITTY_WINDOW_ID") != "" || os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "kitty") || strings.Contains(term, "ghostty")
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	if os.Getenv("ITERM_SESSION_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, s := range []string{"wezterm", "warp", "tabby", "vscode"} {
		if strings.Contains(term, s) {
			return true
		}
	}
	return false
}

// isSixelCapable is a heuristic; SIXEL_PREVIEW=1 forces it.
func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" || os.Getenv("WT_SESSION") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	return strings.Contains(term, "foot") || strings.Contains(term, "mlterm") || strings.Contains(term, "sixel")
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any image backend is likely to work.
func PreviewSupported() bool {
	return isKitty() || isInlineImageCapable() || isSixelCapable() || hasChafa()
}

// postImageNewlines returns how many lines to advance after an image that
// occupies about requestedRows cells, so the prompt lands below it.
func postImageNewlines(requestedRows int) int {
	switch {
	case requestedRows <= 0, requestedRows <= 2:
		return 1
	case requestedRows <= 6:
		return 2
	case requestedRows <= 20:
		return 3
	}
	return 4
}

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int // terminal character columns
	Rows        int // terminal character rows
	PixelWidth  int
	PixelHeight int
}

const (
	cellW          = 8
	cellH          = 16
	minPreviewCols = 6
	minPreviewRows = 3
	maxPreviewCols = 80
	maxPreviewRows = 40
)

// computePreviewSize fits w x h pixels into at most maxPreviewCols x
// maxPreviewRows cells, preserving aspect ratio and never scaling up.
func computePreviewSize(w, h int) PreviewSize {
	scale := math.Min(1, math.Min(
		float64(maxPreviewCols*cellW)/float64(w),
		float64(maxPreviewRows*cellH)/float64(h),
	))
	cols := clampCells(int(math.Round(float64(w)*scale/cellW)), minPreviewCols, maxPreviewCols)
	rows := clampCells(int(math.Round(float64(h)*scale/cellH)), minPreviewRows, maxPreviewRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * cellW, PixelHeight: rows * cellH}
}

func clampCells(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// upscaleSmall enlarges images narrower than a few cells with nearest
// neighbor sampling so single-pixel edges stay crisp in the terminal.
func upscaleSmall(src image.Image) image.Image {
	b := src.Bounds()
	factor := (minPreviewCols * cellW) / b.Dx()
	if f := (minPreviewRows * cellH) / b.Dy(); f > factor {
		factor = f
	}
	if factor < 2 {
		return src
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// Preview encodes img as format ("png" or "jpeg"; PNG otherwise) and
// sends it to the terminal. Kitty always receives PNG.
func (p *Previewer) Preview(img *raster.Image, format string) error {
	if img == nil || img.Rows() == 0 || img.Cols() == 0 {
		return fmt.Errorf("nil image")
	}
	src := upscaleSmall(img.ToNRGBA())

	f := strings.ToLower(format)
	backend := strings.ToLower(p.Backend)
	if backend == "kitty" || (backend == "" && isKitty()) {
		p.debugf("forcing png encoding for kitty")
		f = "png"
	}

	var buf bytes.Buffer
	if f == "jpeg" || f == "jpg" {
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 92}); err != nil {
			return fmt.Errorf("jpeg encode failed: %w", err)
		}
		f = "jpeg"
	} else {
		if err := png.Encode(&buf, src); err != nil {
			return fmt.Errorf("png encode failed: %w", err)
		}
		f = "png"
	}
	b := src.Bounds()
	return p.previewBytes(buf.Bytes(), f, computePreviewSize(b.Dx(), b.Dy()))
}

type previewBackend struct {
	name    string
	aliases []string
	detect  func() bool
	send    func(p *Previewer, data []byte, format string, size PreviewSize) error
}

var previewBackends = []previewBackend{
	{"inline", []string{"iterm", "wezterm"}, isInlineImageCapable, (*Previewer).sendInline},
	{"kitty", nil, isKitty, (*Previewer).sendKitty},
	{"sixel", nil, isSixelCapable, (*Previewer).sendSixel},
	{"chafa", nil, hasChafa, (*Previewer).sendChafa},
}

func (b previewBackend) matches(name string) bool {
	if b.name == name {
		return true
	}
	for _, a := range b.aliases {
		if a == name {
			return true
		}
	}
	return false
}

// previewBytes tries the override backend, then every detected backend in
// order, returning the first error when all of them fail.
func (p *Previewer) previewBytes(blob []byte, format string, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}
	if v := strings.ToLower(p.Backend); v != "" {
		known := false
		for _, b := range previewBackends {
			if !b.matches(v) {
				continue
			}
			known = true
			if err := b.send(p, blob, format, size); err == nil {
				return nil
			} else {
				p.debugf("override %s failed: %v", b.name, err)
			}
		}
		if !known {
			p.debugf("unknown PREVIEW_BACKEND value: %s", v)
		}
	}

	var firstErr error
	for _, b := range previewBackends {
		if !b.detect() {
			continue
		}
		p.debugf("attempting %s backend", b.name)
		err := b.send(p, blob, format, size)
		if err == nil {
			return nil
		}
		p.debugf("%s backend failed: %v", b.name, err)
		if firstErr == nil {
			firstErr = fmt.Errorf("%s preview failed: %w", b.name, err)
		}
	}
	if firstErr != nil {
		return firstErr
	}
	return fmt.Errorf("no preview protocol matched")
}

func (p *Previewer) newlines(n int) {
	fmt.Fprint(p.out(), strings.Repeat("\n", n))
}

// sendKitty chunks the base64 payload into 4096-byte pieces. The first
// chunk carries the placement (c,r); q=2 suppresses terminal replies.
func (p *Previewer) sendKitty(data []byte, _ string, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096
	w := p.out()
	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := 0
		if end < len(enc) {
			more = 1
		}
		var err error
		if pos == 0 {
			_, err = fmt.Fprintf(w, "\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%d;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			_, err = fmt.Fprintf(w, "\x1b_Gm=%d;%s\x1b\\", more, enc[pos:end])
		}
		if err != nil {
			return err
		}
	}
	p.newlines(postImageNewlines(size.Rows))
	return nil
}

func (p *Previewer) sendInline(data []byte, format string, size PreviewSize) error {
	name := "preview.png"
	if format == "jpeg" {
		name = "preview.jpg"
	}
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	_, err := fmt.Fprintf(p.out(), "\x1b]1337;File=name=%s;inline=1;%s:%s\a",
		name, meta, base64.StdEncoding.EncodeToString(data))
	if err != nil {
		return err
	}
	p.newlines(postImageNewlines(0))
	return nil
}

func (p *Previewer) sendSixel(data []byte, _ string, size PreviewSize) error {
	if _, err := exec.LookPath("img2sixel"); err != nil {
		return fmt.Errorf("img2sixel not found in PATH: %w", err)
	}
	if err := p.pipeTo("img2sixel", data, "-w", fmt.Sprint(size.PixelWidth), "-"); err != nil {
		return err
	}
	p.newlines(postImageNewlines(0))
	return nil
}

func (p *Previewer) sendChafa(data []byte, _ string, size PreviewSize) error {
	if _, err := exec.LookPath("chafa"); err != nil {
		return fmt.Errorf("chafa not found in PATH: %w", err)
	}
	fill, symbols := "block", "block"
	if f := os.Getenv("CHAFA_FILL"); f != "" {
		fill = f
	}
	if s := os.Getenv("CHAFA_SYMBOLS"); s != "" {
		symbols = s
	}
	err := p.pipeTo("chafa", data, "--fill="+fill, "--symbols="+symbols,
		"-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	if err != nil {
		return err
	}
	p.newlines(postImageNewlines(size.Rows))
	return nil
}

func (p *Previewer) pipeTo(name string, data []byte, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.out()
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

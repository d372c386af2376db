package canny

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Fepozopo/edgeterm/pkg/raster"
)

// Stages holds every intermediate of one pipeline run. All images share the
// input's dimensions.
type Stages struct {
	Smoothed   *raster.Image
	Magnitude  *raster.Image // remapped to [0,1]
	Directions *DirectionMap
	Suppressed *raster.Image
	Thresholds Thresholds
	Classified *raster.Image // values in {0, 0.5, 1}
	Seeds      []raster.Coord
	Edges      *raster.Image // values in {0, 1}
}

// Detector runs the Canny pipeline with fixed options.
type Detector struct {
	Options Options
	Logger  logrus.FieldLogger
}

// NewDetector returns a Detector. A nil logger discards output.
func NewDetector(opts Options, logger logrus.FieldLogger) *Detector {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &Detector{Options: opts, Logger: logger}
}

// DetectEdges runs the full pipeline with default options.
func DetectEdges(img *raster.Image) *raster.Image {
	return NewDetector(DefaultOptions(), nil).Detect(img)
}

// Detect returns the binary edge map of img.
func (d *Detector) Detect(img *raster.Image) *raster.Image {
	return d.Run(img).Edges
}

// Run executes every stage and returns all intermediates. Degenerate
// threshold statistics are logged and handled by the fallback cutoffs.
func (d *Detector) Run(img *raster.Image) *Stages {
	log := d.logger().WithFields(logrus.Fields{
		"rows": img.Rows(),
		"cols": img.Cols(),
	})
	start := time.Now()
	st := &Stages{}

	st.Smoothed = Smooth(img, d.Options.Smoothing)
	log.WithField("smoothing", d.Options.Smoothing).Debug("smoothed")

	st.Magnitude, st.Directions = GradientMagnitudeAndDirection(st.Smoothed)
	log.Debug("computed gradient magnitude and direction")

	t, err := ComputeThresholds(st.Magnitude, d.Options)
	if err != nil {
		log.WithError(err).Warn("using fallback thresholds")
	}
	st.Thresholds = t
	log.WithFields(logrus.Fields{
		"weak":   t.Weak,
		"strong": t.Strong,
		"mode":   d.Options.WeakMode,
	}).Debug("computed thresholds")

	// dimensions come from the same magnitude image
	st.Suppressed, _ = SuppressNonMaxima(st.Magnitude, st.Directions)
	log.Debug("suppressed non-maxima")

	st.Classified, st.Seeds = Classify(st.Suppressed, t)
	log.WithField("seeds", len(st.Seeds)).Debug("classified pixels")

	st.Edges = st.Classified.Clone()
	LinkHysteresis(st.Edges, st.Seeds)
	st.Edges.Format = "P2"
	log.WithFields(logrus.Fields{
		"edge_pixels": countAtLeast(st.Edges, ValueStrong),
		"elapsed":     time.Since(start).String(),
	}).Info("edge detection complete")
	return st
}

func (d *Detector) logger() logrus.FieldLogger {
	if d.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return d.Logger
}

func countAtLeast(img *raster.Image, v float64) int {
	n := 0
	for _, y := range img.Lumas() {
		if y >= v {
			n++
		}
	}
	return n
}

// Package plot renders the decay chart: the expected-value line and
// the observed data points, either as styled terminal text or as a
// PNG image.
package plot

import (
	"math"

	"github.com/fennor/taper/internal/tracker"
)

// Point is one x/y pair in chart space.
type Point struct {
	X float64
	Y float64
}

// Chart holds the renderable view of a tracker: the expected curve
// and every recorded observation, plus axis labels.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
	Line   []Point
	Points []Point
}

// FromTracker builds the chart for a tracker, sampling the expected
// curve at n points. Returns decay.ErrNotAnchored when no initial
// value is set yet.
func FromTracker(t *tracker.Tracker, samples int) (*Chart, error) {
	curve, err := t.Curve(samples)
	if err != nil {
		return nil, err
	}

	c := &Chart{
		Title:  "Decay Function and Data Points",
		XLabel: "Year",
		YLabel: "Value",
		Line:   make([]Point, 0, len(curve)),
	}
	for _, s := range curve {
		c.Line = append(c.Line, Point{X: s.Year, Y: s.Value})
	}
	for _, o := range t.Observations() {
		c.Points = append(c.Points, Point{X: float64(o.Year), Y: o.Value})
	}
	return c, nil
}

// bounds returns the data extent across line and points, padded so
// nothing sits exactly on the frame. Degenerate ranges are widened.
func (c *Chart) bounds() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	scan := func(pts []Point) {
		for _, p := range pts {
			xmin = math.Min(xmin, p.X)
			xmax = math.Max(xmax, p.X)
			ymin = math.Min(ymin, p.Y)
			ymax = math.Max(ymax, p.Y)
		}
	}
	scan(c.Line)
	scan(c.Points)

	if math.IsInf(xmin, 1) {
		return 0, 1, 0, 1
	}
	if xmax == xmin {
		xmin, xmax = xmin-1, xmax+1
	}
	if ymax == ymin {
		ymin, ymax = ymin-1, ymax+1
	}
	pad := (ymax - ymin) * 0.05
	return xmin, xmax, ymin - pad, ymax + pad
}

package decay

// Linear decay model:
//   - The first observed value anchors the line: InitialValue = that value
//   - Slope is derived so the line reaches zero at EndYear:
//     slope = -InitialValue / (EndYear - StartYear)
//   - Anchoring happens exactly once; later observations never move the line
//   - expected(year) = InitialValue + slope * (year - StartYear)

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotAnchored is returned when an expected value is requested before the
// first observation has anchored the model.
var ErrNotAnchored = errors.New("decay model not anchored")

// Model maps years to expected values along a straight line from the anchor
// value at StartYear down to zero at EndYear.
type Model struct {
	StartYear int
	EndYear   int

	initialValue float64
	slope        float64
	anchored     bool
}

// New creates an unanchored model over [startYear, endYear].
func New(startYear, endYear int) (*Model, error) {
	if startYear >= endYear {
		return nil, fmt.Errorf("start year %d must be before end year %d", startYear, endYear)
	}
	return &Model{StartYear: startYear, EndYear: endYear}, nil
}

// Anchor fixes the model to the given initial value and derives the slope.
// Only the first call has any effect. It reports whether this call anchored
// the model.
func (m *Model) Anchor(value float64) bool {
	if m.anchored {
		return false
	}
	m.initialValue = value
	m.slope = -value / float64(m.EndYear-m.StartYear)
	m.anchored = true
	return true
}

// Anchored reports whether the model has been anchored.
func (m *Model) Anchored() bool { return m.anchored }

// InitialValue returns the anchoring value, zero until anchored.
func (m *Model) InitialValue() float64 { return m.initialValue }

// Slope returns the derived per-year slope, zero until anchored.
func (m *Model) Slope() float64 { return m.slope }

// ExpectedAt returns the expected value for a year under linear decay.
func (m *Model) ExpectedAt(year int) (float64, error) {
	if !m.anchored {
		return 0, ErrNotAnchored
	}
	return m.initialValue + m.slope*float64(year-m.StartYear), nil
}

// Sample is one point on the expected decay curve.
type Sample struct {
	Year  float64
	Value float64
}

// Curve returns n evenly spaced samples of the expected curve across
// [StartYear, EndYear], both endpoints included.
func (m *Model) Curve(n int) ([]Sample, error) {
	if !m.anchored {
		return nil, ErrNotAnchored
	}
	if n < 2 {
		n = 2
	}

	step := float64(m.EndYear-m.StartYear) / float64(n-1)
	samples := make([]Sample, n)
	for i := range samples {
		offset := float64(i) * step
		samples[i] = Sample{
			Year:  float64(m.StartYear) + offset,
			Value: m.initialValue + m.slope*offset,
		}
	}
	return samples, nil
}

// Assessment classifies an observed value against the expected trend.
type Assessment int

const (
	// BelowTrend means the observed value is under the expected line.
	BelowTrend Assessment = iota
	// OnTrack means the observed value matches the expected line within tolerance.
	OnTrack
	// AboveTrend means the observed value is over the expected line.
	AboveTrend
)

func (a Assessment) String() string {
	switch a {
	case BelowTrend:
		return "below trend"
	case OnTrack:
		return "on track"
	case AboveTrend:
		return "above trend"
	}
	return "unknown"
}

// Recommendation returns the advisory text for an assessment.
func (a Assessment) Recommendation() string {
	switch a {
	case BelowTrend:
		return "Amortize decay."
	case AboveTrend:
		return "Speed up decay."
	}
	return "Decay is on track."
}

// Classify compares an observed value to an expected one. Values within
// tolerance of expected are on track; tolerance 0 demands exact equality.
func Classify(value, expected, tolerance float64) Assessment {
	switch {
	case math.Abs(value-expected) <= tolerance:
		return OnTrack
	case value < expected:
		return BelowTrend
	}
	return AboveTrend
}

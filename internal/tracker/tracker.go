package tracker

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/fennor/taper/internal/decay"
	"github.com/fennor/taper/internal/obslog"
)

// ErrYearOutOfRange is returned when an observation's year falls outside the
// tracker's [StartYear, EndYear] domain.
var ErrYearOutOfRange = errors.New("year out of range")

// Mode selects how the tracker treats the observation log at startup.
type Mode int

const (
	// ModeNew recreates the log with only its header, discarding prior content.
	ModeNew Mode = iota
	// ModeContinue replays an existing log into memory before tracking.
	ModeContinue
)

func (m Mode) String() string {
	if m == ModeContinue {
		return "CONTINUE"
	}
	return "NEW"
}

// ParseMode recognizes the startup mode answers "C"/"CONTINUE" and "N"/"NEW",
// case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CONTINUE":
		return ModeContinue, nil
	case "N", "NEW":
		return ModeNew, nil
	}
	return ModeNew, fmt.Errorf("unknown mode %q", s)
}

// Options configures a Tracker. All fields are explicit; documented defaults
// live in the config package.
type Options struct {
	StartYear int
	EndYear   int
	Mode      Mode
	LogPath   string
	Tolerance float64 // absolute on-track margin for classification; 0 compares exactly
}

// Load reports how a tracker's state was reconstructed at startup.
type Load struct {
	Replayed int   // observations replayed from an existing log
	Missing  bool  // CONTINUE mode found no log to replay
	Err      error // the log existed but could not be parsed; state started empty
}

// Observation is one recorded (year, value) data point. Observations keep
// insertion order; duplicate years are kept as-is, never merged.
type Observation struct {
	Year  int
	Value float64
}

// Tracker owns the decay model, the in-memory observation sequence, and the
// append-only log behind them. It assumes exclusive ownership of its log
// file for the life of the session and performs no locking.
type Tracker struct {
	model   *decay.Model
	obs     []Observation
	logPath string
	tol     float64
	load    Load
}

// New builds a tracker per opts. In CONTINUE mode a missing or unparseable
// log is not fatal: the tracker starts empty and Load reports what happened,
// and an unparseable file is left on disk as-is. In NEW mode the log is
// recreated with only its header.
func New(opts Options) (*Tracker, error) {
	model, err := decay.New(opts.StartYear, opts.EndYear)
	if err != nil {
		return nil, err
	}
	if opts.LogPath == "" {
		return nil, errors.New("log path required")
	}
	if opts.Tolerance < 0 {
		return nil, fmt.Errorf("tolerance %v must not be negative", opts.Tolerance)
	}

	t := &Tracker{model: model, logPath: opts.LogPath, tol: opts.Tolerance}

	switch opts.Mode {
	case ModeNew:
		if err := obslog.Create(opts.LogPath); err != nil {
			return nil, err
		}
	case ModeContinue:
		recs, err := obslog.Load(opts.LogPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			t.load.Missing = true
		case err != nil:
			t.load.Err = err
		default:
			t.obs = Replay(t.model, recs)
			t.load.Replayed = len(recs)
		}
	default:
		return nil, fmt.Errorf("unknown mode %d", opts.Mode)
	}

	return t, nil
}

// Replay rebuilds the observation sequence from log records, in file order,
// and anchors the model to the first record's value. It performs no I/O.
func Replay(m *decay.Model, recs []obslog.Record) []Observation {
	obs := make([]Observation, len(recs))
	for i, r := range recs {
		obs[i] = Observation{Year: r.Year, Value: r.Value}
	}
	if len(obs) > 0 {
		m.Anchor(obs[0].Value)
	}
	return obs
}

// Result describes one accepted observation: what was recorded, what the
// model expected for that year, and how the observed value compares.
type Result struct {
	Year       int
	Value      float64
	Expected   float64
	Assessment decay.Assessment
	Anchored   bool // this observation anchored the model
}

// AddObservation validates, records, and persists one data point, then
// classifies it against the expected trend. The first accepted observation
// anchors the model to its value, whatever its year. Rendering is left to
// the caller.
func (t *Tracker) AddObservation(year int, value float64) (Result, error) {
	if year < t.model.StartYear || year > t.model.EndYear {
		return Result{}, fmt.Errorf("year must be between %d and %d, got %d: %w",
			t.model.StartYear, t.model.EndYear, year, ErrYearOutOfRange)
	}

	anchored := t.model.Anchor(value)
	t.obs = append(t.obs, Observation{Year: year, Value: value})

	if err := t.appendLog(year, value); err != nil {
		return Result{}, err
	}

	expected, err := t.model.ExpectedAt(year)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Year:       year,
		Value:      value,
		Expected:   expected,
		Assessment: decay.Classify(value, expected, t.tol),
		Anchored:   anchored,
	}, nil
}

// appendLog writes one row to the persisted log: open, append, release.
func (t *Tracker) appendLog(year int, value float64) error {
	return obslog.Append(t.logPath, obslog.Record{Year: year, Value: value})
}

// ExpectedAt returns the model's expected value for a year, or
// decay.ErrNotAnchored before the first observation.
func (t *Tracker) ExpectedAt(year int) (float64, error) {
	return t.model.ExpectedAt(year)
}

// Curve samples the expected decay curve across the tracker's year range.
func (t *Tracker) Curve(samples int) ([]decay.Sample, error) {
	return t.model.Curve(samples)
}

// Observations returns a copy of the recorded sequence in insertion order.
func (t *Tracker) Observations() []Observation {
	out := make([]Observation, len(t.obs))
	copy(out, t.obs)
	return out
}

// Anchored reports whether the model has been anchored.
func (t *Tracker) Anchored() bool { return t.model.Anchored() }

// InitialValue returns the anchoring value, zero until anchored.
func (t *Tracker) InitialValue() float64 { return t.model.InitialValue() }

// Slope returns the model's per-year slope, zero until anchored.
func (t *Tracker) Slope() float64 { return t.model.Slope() }

// StartYear returns the domain lower bound.
func (t *Tracker) StartYear() int { return t.model.StartYear }

// EndYear returns the domain upper bound.
func (t *Tracker) EndYear() int { return t.model.EndYear }

// LogPath returns the location of the persisted log.
func (t *Tracker) LogPath() string { return t.logPath }

// Load reports how the tracker's state came up at construction.
func (t *Tracker) Load() Load { return t.load }

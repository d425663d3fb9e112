package obslog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the mandatory first row of every log file.
var Header = []string{"Year", "Value"}

// Record is one observation row: an integer year and a real value.
type Record struct {
	Year  int
	Value float64
}

// A LoadError reports a log that exists but could not be parsed. The file on
// disk is left untouched; callers typically fall back to an empty state.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load log %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Create writes a fresh log at path containing only the header, discarding
// any previous content.
func Create(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create log: %w", err)
	}
	if err := writeRow(f, Header); err != nil {
		f.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}

// Append adds one record to the log at path, creating the file with its
// header first if the log does not exist yet. The file handle is opened,
// written, and released within the call.
func Append(path string, rec Record) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return fmt.Errorf("stat log: %w", err)
	}
	if info.Size() == 0 {
		if err := writeRow(f, Header); err != nil {
			f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}

	row := []string{
		strconv.Itoa(rec.Year),
		strconv.FormatFloat(rec.Value, 'g', -1, 64),
	}
	if err := writeRow(f, row); err != nil {
		f.Close()
		return fmt.Errorf("append record: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close log: %w", err)
	}
	return nil
}

func writeRow(w io.Writer, fields []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// Load reads every record from the log at path in file order. A missing file
// surfaces as fs.ErrNotExist; malformed content surfaces as a *LoadError.
func Load(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := Parse(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return recs, nil
}

// Parse decodes log records from r: the header row followed by year,value
// rows. It performs no file I/O, so replay logic can be tested without a
// filesystem.
func Parse(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}
	if rows[0][0] != Header[0] || rows[0][1] != Header[1] {
		return nil, fmt.Errorf("unexpected header %v", rows[0])
	}

	recs := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		year, err := strconv.Atoi(row[0])
		if err != nil {
			return nil, fmt.Errorf("year %q: %w", row[0], err)
		}
		value, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", row[1], err)
		}
		recs = append(recs, Record{Year: year, Value: value})
	}
	return recs, nil
}

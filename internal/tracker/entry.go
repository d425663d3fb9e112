package tracker

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseEntry parses an interactive data-point entry of the form
// "<year>, <value>". A fractional year is accepted and truncated toward
// zero.
func ParseEntry(s string) (int, float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("want \"<year>, <value>\", got %q", s)
	}

	yf, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("year: %w", err)
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("value: %w", err)
	}

	return int(yf), value, nil
}

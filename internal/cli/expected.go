package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/tracker"
)

var expectedCmd = &cobra.Command{
	Use:   "expected <year>",
	Short: "Print the expected value for a year",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpected,
}

func runExpected(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parse year %q: %w", args[0], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tr, err := openTracker(cfg, tracker.ModeContinue)
	if err != nil {
		return err
	}

	expected, err := tr.ExpectedAt(year)
	if err != nil {
		return err
	}
	fmt.Printf("Year: %d, Expected Value: %.4f\n", year, expected)
	return nil
}

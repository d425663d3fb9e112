package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/tracker"
)

var addCmd = &cobra.Command{
	Use:   "add <year> <value>",
	Short: "Add one observation and report it against the trend",
	Args:  cobra.ExactArgs(2),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("parse year %q: %w", args[0], err)
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse value %q: %w", args[1], err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tr, err := openTracker(cfg, tracker.ModeContinue)
	if err != nil {
		return err
	}

	res, err := tr.AddObservation(year, value)
	if err != nil {
		return err
	}
	printResult(tr, res)

	recordRun(cfg, tracker.ModeContinue, 1)
	return nil
}

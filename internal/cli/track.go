package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/config"
	"github.com/fennor/taper/internal/store"
	"github.com/fennor/taper/internal/tracker"
	"github.com/fennor/taper/internal/tui"
)

var (
	trackPlain bool
	trackMode  string
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Interactively add observations",
	Long:  "Opens the tracker and repeatedly reads '<year>, <value>' entries, classifying each against the decay trend. Full-screen UI by default; --plain or --mode switches to a plain prompt loop.",
	RunE:  runTrack,
}

func init() {
	trackCmd.Flags().BoolVar(&trackPlain, "plain", false, "plain prompt loop instead of the full-screen UI")
	trackCmd.Flags().StringVar(&trackMode, "mode", "", "startup mode: C (continue) or N (new); prompted when unset")
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		db = nil
	}
	if db != nil {
		defer db.Close()
	}

	if !trackPlain && trackMode == "" {
		return tui.Run(cfg, db)
	}
	return runTrackPlain(cfg, db)
}

func runTrackPlain(cfg config.Config, db *store.DB) error {
	reader := bufio.NewReader(os.Stdin)

	var mode tracker.Mode
	if trackMode != "" {
		m, err := tracker.ParseMode(trackMode)
		if err != nil {
			return err
		}
		mode = m
	} else {
		fmt.Print("Do you want to CONTINUE previous calculations or start NEW? (C/N): ")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("read mode: %w", err)
		}
		if err == io.EOF {
			return nil
		}
		// Anything that is not a recognized CONTINUE answer starts new
		mode = tracker.ModeNew
		if m, perr := tracker.ParseMode(line); perr == nil {
			mode = m
		}
	}

	tr, err := openTracker(cfg, mode)
	if err != nil {
		return err
	}

	var runID string
	if db != nil {
		if run, err := db.BeginRun(mode.String(), cfg.Tracker.StartYear, cfg.Tracker.EndYear, cfg.Tracker.LogPath); err == nil {
			runID = run.RunID
			defer db.EndRun(runID)
		}
	}

	for {
		fmt.Print("Enter year and value (e.g., '1850, 0.8') or 'exit' to quit: ")
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read entry: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			return nil
		}

		year, value, err := tracker.ParseEntry(input)
		if err != nil {
			fmt.Printf("Invalid input: %v\n", err)
			continue
		}

		res, err := tr.AddObservation(year, value)
		if err != nil {
			fmt.Printf("Invalid input: %v\n", err)
			continue
		}
		printResult(tr, res)

		if db != nil && runID != "" {
			db.RecordAdded(runID)
		}
	}
}

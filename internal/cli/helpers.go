package cli

import (
	"fmt"
	"os"

	"github.com/fennor/taper/internal/config"
	"github.com/fennor/taper/internal/store"
	"github.com/fennor/taper/internal/tracker"
)

// loadConfig reads the file named by --config, or the default
// location when the flag is unset. A missing file yields defaults.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Default(), err
		}
	}
	return config.Load(path)
}

// openDB opens the run-history database. TAPER_DB overrides the
// configured path.
func openDB(cfg config.Config) (*store.DB, error) {
	path := os.Getenv("TAPER_DB")
	if path == "" {
		path = cfg.Database.Path
	}
	if path == "" {
		var err error
		path, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	return store.Open(path)
}

// openTracker opens the tracker per config in the given mode and
// reports the load outcome.
func openTracker(cfg config.Config, mode tracker.Mode) (*tracker.Tracker, error) {
	tr, err := tracker.New(tracker.Options{
		StartYear: cfg.Tracker.StartYear,
		EndYear:   cfg.Tracker.EndYear,
		Mode:      mode,
		LogPath:   cfg.Tracker.LogPath,
		Tolerance: cfg.Tracker.Tolerance,
	})
	if err != nil {
		return nil, err
	}
	reportLoad(tr)
	return tr, nil
}

func reportLoad(tr *tracker.Tracker) {
	ld := tr.Load()
	switch {
	case ld.Err != nil:
		fmt.Printf("Error loading file: %v. Starting fresh.\n", ld.Err)
	case ld.Missing:
		fmt.Println("No existing file found. Starting fresh.")
	case ld.Replayed > 0:
		fmt.Printf("Loaded %d data points from %s.\n", ld.Replayed, tr.LogPath())
	}
}

// printResult reports one accepted observation.
func printResult(tr *tracker.Tracker, res tracker.Result) {
	if res.Anchored {
		fmt.Printf("Initial value set to %g. Calculated slope is %.4f.\n",
			tr.InitialValue(), tr.Slope())
	}
	fmt.Printf("Year: %d, Provided Value: %g, Expected Value: %.4f\n",
		res.Year, res.Value, res.Expected)
	fmt.Printf("Recommendation: %s\n", res.Assessment.Recommendation())
}

// recordRun logs a completed one-shot run, best-effort. History never
// blocks the actual tracking work.
func recordRun(cfg config.Config, mode tracker.Mode, added int) {
	db, err := openDB(cfg)
	if err != nil {
		return
	}
	defer db.Close()

	run, err := db.BeginRun(mode.String(), cfg.Tracker.StartYear, cfg.Tracker.EndYear, cfg.Tracker.LogPath)
	if err != nil {
		return
	}
	for i := 0; i < added; i++ {
		db.RecordAdded(run.RunID)
	}
	db.EndRun(run.RunID)
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tracking runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "maximum runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	runs, err := db.RecentRuns(historyLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, r := range runs {
		started := time.UnixMilli(r.StartedAt).Format("2006-01-02 15:04")
		status := "open"
		if r.EndedAt != nil {
			status = "closed"
		}
		fmt.Printf("%s  %-8s  %d..%d  %3d added  %-6s  %s\n",
			started, r.Mode, r.StartYear, r.EndYear, r.Added, status, r.LogPath)
	}
	return nil
}

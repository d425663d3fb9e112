package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/server"
	"github.com/fennor/taper/internal/tracker"
)

var serveMode string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveMode, "mode", "C", "startup mode: C (continue) or N (new)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	mode, err := tracker.ParseMode(serveMode)
	if err != nil {
		return err
	}

	tr, err := openTracker(cfg, mode)
	if err != nil {
		return fmt.Errorf("open tracker: %w", err)
	}

	var runID string
	db, err := openDB(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: run history unavailable: %v\n", err)
		db = nil
	} else {
		defer db.Close()
		if run, err := db.BeginRun(mode.String(), cfg.Tracker.StartYear, cfg.Tracker.EndYear, cfg.Tracker.LogPath); err == nil {
			runID = run.RunID
			defer db.EndRun(runID)
		}
	}

	srv := server.New(tr, db, runID, VersionString(), cfg.Tracker.Samples)
	addr := cfg.ListenAddr()

	httpServer := &http.Server{
		Addr:    addr,
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "taper serving on %s\n", addr)
		fmt.Fprintf(os.Stderr, "  log: %s\n", cfg.Tracker.LogPath)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}

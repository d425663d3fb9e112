package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fennor/taper/internal/decay"
	"github.com/fennor/taper/internal/plot"
	"github.com/fennor/taper/internal/tracker"
)

var (
	plotPNG    string
	plotWidth  int
	plotHeight int
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Draw the decay chart from the current log",
	RunE:  runPlot,
}

func init() {
	plotCmd.Flags().StringVar(&plotPNG, "png", "", "write the chart to a PNG file instead of the terminal")
	plotCmd.Flags().IntVar(&plotWidth, "width", 800, "PNG width in pixels")
	plotCmd.Flags().IntVar(&plotHeight, "height", 500, "PNG height in pixels")
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	tr, err := openTracker(cfg, tracker.ModeContinue)
	if err != nil {
		return err
	}

	chart, err := plot.FromTracker(tr, cfg.Tracker.Samples)
	if err != nil {
		if errors.Is(err, decay.ErrNotAnchored) {
			fmt.Println("Cannot plot decay function until initial value is set.")
			return nil
		}
		return err
	}

	if plotPNG != "" {
		if err := plot.WritePNG(chart, plotPNG, plotWidth, plotHeight); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", plotPNG)
		return nil
	}

	fmt.Print(plot.RenderTerminal(chart, 72, 20))
	return nil
}

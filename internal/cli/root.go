package cli

import (
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "taper",
	Short: "Track observed values against a linear decay model",
	Long:  "Taper tracks year/value observations against a linear decay model anchored to the first observation, and computes fiscal debt targets. Single Go binary.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.taper/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(trackCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(expectedCmd)
	rootCmd.AddCommand(plotCmd)
	rootCmd.AddCommand(fiscalCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

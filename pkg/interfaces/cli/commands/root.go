// Package commands wires the mrp command-line interface.
package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sporadiq/mrp/pkg/logger"
)

var (
	logLevel  string
	logPretty bool
)

var rootCmd = &cobra.Command{
	Use:   "mrp",
	Short: "MRP planning engine for sporadic demand",
	Long: `mrp plans replenishment batches for event-driven demand: given initial
stock, a lead time and dated demand events it emits order/arrival/quantity
batches plus a full analytics bundle.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "pretty", false, "human-readable log output")

	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(serveCmd)
}

// Execute runs the CLI. Exit codes: 0 success, 2 invalid input, 1 anything
// else.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(file string) logger.Config {
	return logger.Config{Level: logLevel, Pretty: logPretty, File: file}
}

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"equipment-visualizer/config"
	"equipment-visualizer/storage"
	"equipment-visualizer/utils"
)

var (
	debug  bool
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "equipviz",
	Short: "Ingest and analyze industrial equipment sensor datasets",
	Long: `equipviz ingests CSV files of equipment sensor readings (flowrate,
pressure, temperature), validates and normalizes them, flags statistical
outliers, and keeps a bounded history of the most recent datasets with
on-demand analytics.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(setup)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug output")
}

func setup() {
	logger = utils.NewLogger()
	logger.SetVerbose(debug)
	cfg = config.Load()
}

// openStore connects to the configured PostgreSQL instance.
func openStore() (storage.DatasetStore, error) {
	return storage.NewPostgresStore(cfg.DSN(), logger)
}

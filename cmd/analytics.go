package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"equipment-visualizer/services"
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics <dataset-id>",
	Short: "Compute and print the analytics report for a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalytics,
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc := services.NewAnalyticsService(store, logger)
	report, err := svc.Analyze(args[0])
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("no dataset with id %s", args[0])
		}
		if errors.Is(err, services.ErrEmptyDataset) {
			return fmt.Errorf("dataset %s has no equipment data", args[0])
		}
		return err
	}

	svc.Print(report)
	return nil
}

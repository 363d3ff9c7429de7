package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"equipment-visualizer/services"
)

var (
	cleanupLimit  int
	cleanupDryRun bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete datasets beyond the retention window",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupLimit, "limit", 0, "number of datasets to keep (default: configured retention limit)")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "show what would be deleted without deleting")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	limit := cleanupLimit
	if limit < 1 {
		limit = cfg.RetentionLimit
	}

	retention := services.NewRetentionService(store, logger)

	if cleanupDryRun {
		victims, err := retention.Evictable(limit)
		if err != nil {
			return err
		}
		if len(victims) == 0 {
			fmt.Println("No datasets to delete.")
			return nil
		}
		fmt.Printf("Would delete %d dataset(s):\n", len(victims))
		for _, d := range victims {
			fmt.Printf("  - %s (%s, uploaded %s)\n",
				d.ID, d.Filename, d.UploadedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	}

	evicted, err := retention.Enforce(limit)
	if err != nil {
		return err
	}
	if evicted == 0 {
		fmt.Println("No datasets to delete.")
	} else {
		fmt.Printf("Deleted %d dataset(s).\n", evicted)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"

	"equipment-visualizer/services"
	"equipment-visualizer/utils"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Validate and commit one or more CSV files as datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	svc := services.NewIngestService(store, cfg.RetentionLimit, logger)
	pool := utils.NewWorkerPool(cfg.MaxConcurrency)
	seen := utils.NewPathSet()

	var mu sync.Mutex
	failed := 0

	for _, path := range args {
		if !seen.Add(path) {
			logger.Warn("[ingest] Skipping duplicate path: %s", path)
			continue
		}

		path := path
		pool.Submit(func() {
			raw, err := os.ReadFile(path)
			if err != nil {
				logger.Error("[ingest] Read %s: %v", path, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			dataset, err := svc.Ingest(raw, filepath.Base(path))
			if err != nil {
				logger.Error("[ingest] %s: %v", path, err)
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}

			logger.Info("[ingest] %s → dataset %s (%d equipment)",
				path, dataset.ID, dataset.TotalEquipment)
		})
	}
	pool.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to ingest", failed, seen.Size())
	}
	return nil
}

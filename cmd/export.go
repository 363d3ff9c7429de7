package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"equipment-visualizer/storage"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <dataset-id>",
	Short: "Export a dataset's equipment (with outlier flags) to a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default <export-dir>/dataset_<id>.csv)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	id := args[0]
	dataset, err := store.GetDataset(id)
	if err != nil {
		return err
	}
	if dataset == nil {
		return fmt.Errorf("no dataset with id %s", id)
	}

	equipment, err := store.EquipmentByDataset(id)
	if err != nil {
		return err
	}

	out := exportOut
	if out == "" {
		base := strings.TrimSuffix(dataset.Filename, filepath.Ext(dataset.Filename))
		out = filepath.Join(cfg.ExportDir, fmt.Sprintf("export_%s_%s.csv", base, id))
	}

	exporter, err := storage.NewCSVExporter(out)
	if err != nil {
		return err
	}
	defer exporter.Close()

	if err := exporter.WriteEquipment(equipment); err != nil {
		return err
	}

	logger.Info("[export] Wrote %d equipment row(s) from %s to %s",
		len(equipment), dataset.Filename, out)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	datasets, err := store.ListDatasets(0)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		fmt.Println("No datasets stored.")
		return nil
	}

	fmt.Printf("%-36s  %-24s  %-19s  %5s  %9s  %9s  %9s\n",
		"ID", "FILENAME", "UPLOADED", "COUNT", "AVG FLOW", "AVG PRESS", "AVG TEMP")
	for _, d := range datasets {
		fmt.Printf("%-36s  %-24s  %-19s  %5d  %9s  %9s  %9s\n",
			d.ID, d.Filename, d.UploadedAt.Format("2006-01-02 15:04:05"),
			d.TotalEquipment,
			fmtAvg(d.AvgFlowrate), fmtAvg(d.AvgPressure), fmtAvg(d.AvgTemperature))
	}
	return nil
}

func fmtAvg(v *float64) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.2f", *v)
}

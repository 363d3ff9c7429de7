package services

import (
	"fmt"
	"strings"

	"equipment-visualizer/models"
)

// Print renders the analytics report to stdout as an ANSI-formatted summary.
func (s *AnalyticsService) Print(r *models.AnalyticsReport) {
	sep := strings.Repeat("═", 58)
	thin := strings.Repeat("─", 58)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  📊 EQUIPMENT DATASET ANALYTICS\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	// Overview
	fmt.Printf("\033[1;33m  Overview\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Total equipment    : \033[1m%d\033[0m\n", r.TotalEquipment)
	fmt.Printf("  Avg flowrate       : \033[1;32m%.2f m³/h\033[0m\n", r.AvgFlowrate)
	fmt.Printf("  Avg pressure       : \033[1;32m%.2f bar\033[0m\n", r.AvgPressure)
	fmt.Printf("  Avg temperature    : \033[1;32m%.2f °C\033[0m\n", r.AvgTemperature)
	fmt.Printf("  P/T correlation    : \033[1m%.3f\033[0m\n", r.PTCorrelation)
	fmt.Println()

	// Distribution
	fmt.Printf("\033[1;33m  Distribution (min / Q1 / median / Q3 / max)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, field := range []string{"flowrate", "pressure", "temperature"} {
		q := r.DistributionStats[field]
		fmt.Printf("  %-12s %10.2f %10.2f %10.2f %10.2f %10.2f\n",
			field, q.Min, q.Q1, q.Median, q.Q3, q.Max)
	}
	fmt.Println()

	// Correlation matrix
	fmt.Printf("\033[1;33m  Correlation Matrix\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  %-12s %10s %10s %12s\n", "", "flowrate", "pressure", "temperature")
	for _, row := range r.CorrelationMatrix {
		fmt.Printf("  %-12s %10.2f %10.2f %12.2f\n",
			row.Variable, row.Flowrate, row.Pressure, row.Temperature)
	}
	fmt.Println()

	// Peer benchmarks
	fmt.Printf("\033[1;33m  Peer Benchmarks (mean by type)\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, t := range models.EquipmentTypes {
		b, ok := r.PeerBenchmarks[t]
		if !ok {
			continue
		}
		fmt.Printf("  %-14s flow %8.2f | press %8.2f | temp %8.2f\n",
			t, b.Flowrate.Mean, b.Pressure.Mean, b.Temperature.Mean)
	}
	fmt.Println()

	// Type distribution
	fmt.Printf("\033[1;33m  Equipment Types\033[0m\n")
	fmt.Printf("  %s\n", thin)
	for _, t := range models.EquipmentTypes {
		count, ok := r.TypeDistribution[t]
		if !ok {
			continue
		}
		bar := strings.Repeat("█", count)
		fmt.Printf("  %-14s %s (%d)\n", t, bar, count)
	}
	fmt.Println()

	// Outliers
	fmt.Printf("\033[1;33m  Outliers (%d)\033[0m\n", r.OutliersCount)
	fmt.Printf("  %s\n", thin)
	if len(r.OutlierEquipment) == 0 {
		fmt.Printf("  No outliers detected\n")
	} else {
		for _, o := range r.OutlierEquipment {
			var flags []string
			if o.PressureOutlier {
				flags = append(flags, "pressure")
			}
			if o.TemperatureOutlier {
				flags = append(flags, "temperature")
			}
			fmt.Printf("  \033[1;31m%-30s\033[0m %-14s %s\n",
				truncate(o.Name, 28), o.Type, strings.Join(flags, ", "))
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

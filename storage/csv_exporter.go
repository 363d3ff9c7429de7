package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"equipment-visualizer/models"
)

// CSVExporter writes a dataset's equipment rows to a CSV file, outlier flags
// included. It is safe for concurrent use.
type CSVExporter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVExporter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVExporter(path string) (*CSVExporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"equipment_name", "type", "flowrate", "pressure", "temperature",
		"is_pressure_outlier", "is_temperature_outlier",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVExporter{file: f, writer: w}, nil
}

// WriteEquipment appends one row per equipment record.
func (c *CSVExporter) WriteEquipment(equipment []*models.Equipment) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, eq := range equipment {
		row := []string{
			eq.Name,
			string(eq.Type),
			strconv.FormatFloat(eq.Flowrate, 'f', -1, 64),
			strconv.FormatFloat(eq.Pressure, 'f', -1, 64),
			strconv.FormatFloat(eq.Temperature, 'f', -1, 64),
			strconv.FormatBool(eq.PressureOutlier),
			strconv.FormatBool(eq.TemperatureOutlier),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVExporter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

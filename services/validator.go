package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"equipment-visualizer/models"
	"equipment-visualizer/utils"
)

// RequiredColumns are the CSV header names every upload must carry,
// matched case-sensitively. Extra columns are ignored.
var RequiredColumns = []string{"Equipment Name", "Type", "Flowrate", "Pressure", "Temperature"}

// Validator turns raw CSV bytes into clean, normalized equipment rows.
type Validator struct {
	logger *utils.Logger
}

// NewValidator creates a Validator with the given logger.
func NewValidator(logger *utils.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate parses and cleans raw CSV bytes. Rows with a value in any of the
// three numeric columns that fails coercion are dropped rather than
// zero-filled, so corrupt cells cannot bias the statistics. The Type column
// is normalized to the closed category set, unknown labels become Other.
func (v *Validator) Validate(raw []byte) ([]models.EquipmentRow, error) {
	if !utf8.Valid(raw) {
		return nil, ErrEncoding
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("validator: parse csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, ErrEmptyInput
	}

	header := records[0]
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}

	var missing []string
	for _, name := range RequiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	nameCol := columns["Equipment Name"]
	typeCol := columns["Type"]
	numericCols := []int{columns["Flowrate"], columns["Pressure"], columns["Temperature"]}

	rows := make([]models.EquipmentRow, 0, len(records)-1)
	dropped := 0

	for _, record := range records[1:] {
		values := make([]float64, len(numericCols))
		valid := true
		for i, col := range numericCols {
			val, ok := parseNumeric(record, col)
			if !ok {
				valid = false
				break
			}
			values[i] = val
		}
		if !valid {
			dropped++
			continue
		}

		rows = append(rows, models.EquipmentRow{
			Name:        normalizeText(cell(record, nameCol)),
			Type:        models.ParseEquipmentType(cell(record, typeCol)),
			Flowrate:    values[0],
			Pressure:    values[1],
			Temperature: values[2],
		})
	}

	if dropped > 0 {
		v.logger.Warn("[validator] Dropped %d row(s) with non-numeric measurements", dropped)
	}
	if len(rows) == 0 {
		return nil, ErrNoValidRows
	}

	v.logger.Info("[validator] Validated %d → %d rows (dropped %d)",
		len(records)-1, len(rows), dropped)
	return rows, nil
}

// parseNumeric coerces one cell to a finite float. Missing cells, empty
// strings, parse failures, NaN and Inf all count as missing.
func parseNumeric(record []string, col int) (float64, bool) {
	val := strings.TrimSpace(cell(record, col))
	if val == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func cell(record []string, col int) string {
	if col >= len(record) {
		return ""
	}
	return record[col]
}

// normalizeText strips leading/trailing whitespace and collapses internal whitespace.
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

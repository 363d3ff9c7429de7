package models

import (
	"strings"
	"time"
)

// EquipmentType is the closed set of recognized equipment categories.
// Anything outside the set is absorbed into TypeOther rather than rejected.
type EquipmentType string

const (
	TypePump          EquipmentType = "Pump"
	TypeCompressor    EquipmentType = "Compressor"
	TypeValve         EquipmentType = "Valve"
	TypeHeatExchanger EquipmentType = "HeatExchanger"
	TypeReactor       EquipmentType = "Reactor"
	TypeCondenser     EquipmentType = "Condenser"
	TypeTank          EquipmentType = "Tank"
	TypeOther         EquipmentType = "Other"
)

// EquipmentTypes lists every valid category in display order.
var EquipmentTypes = []EquipmentType{
	TypePump, TypeCompressor, TypeValve, TypeHeatExchanger,
	TypeReactor, TypeCondenser, TypeTank, TypeOther,
}

// ParseEquipmentType normalizes a free-text type label to a canonical category.
// Matching trims whitespace and ignores case; unrecognized labels map to TypeOther.
func ParseEquipmentType(raw string) EquipmentType {
	label := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range EquipmentTypes {
		if label == strings.ToLower(string(t)) {
			return t
		}
	}
	return TypeOther
}

// EquipmentRow is one validated, normalized CSV data row before persistence.
type EquipmentRow struct {
	Name        string
	Type        EquipmentType
	Flowrate    float64
	Pressure    float64
	Temperature float64
}

// Dataset is the metadata record for one committed CSV upload.
// The three averages are nil when the dataset has no equipment left.
type Dataset struct {
	ID             string
	Filename       string
	UploadedAt     time.Time
	TotalEquipment int
	AvgFlowrate    *float64
	AvgPressure    *float64
	AvgTemperature *float64
}

// Equipment is one sensor reading belonging to exactly one Dataset.
// The outlier flags are computed at ingestion relative to sibling rows
// in the same dataset, never globally.
type Equipment struct {
	ID                 string
	DatasetID          string
	Name               string
	Type               EquipmentType
	Flowrate           float64 // m³/h
	Pressure           float64 // bar
	Temperature        float64 // °C
	PressureOutlier    bool
	TemperatureOutlier bool
}

// IsOutlier reports whether either outlier flag fired.
func (e *Equipment) IsOutlier() bool {
	return e.PressureOutlier || e.TemperatureOutlier
}

package models

// QuartileStats is the five-number summary of one numeric field,
// computed with linear interpolation between order statistics
// (the inclusive method) and rounded to 2 decimals.
type QuartileStats struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// FieldStats holds per-field aggregates for one equipment category.
type FieldStats struct {
	Mean float64
	Min  float64
	Max  float64
}

// PeerBenchmark groups the three measurement aggregates for one category.
type PeerBenchmark struct {
	Flowrate    FieldStats
	Pressure    FieldStats
	Temperature FieldStats
}

// CorrelationRow is one row of the pairwise Pearson correlation matrix.
// Cells are rounded to 2 decimals; undefined correlations are 0.
type CorrelationRow struct {
	Variable    string
	Flowrate    float64
	Pressure    float64
	Temperature float64
}

// OutlierEntry identifies one equipment row with at least one outlier flag set.
type OutlierEntry struct {
	Name               string
	Type               EquipmentType
	PressureOutlier    bool
	TemperatureOutlier bool
}

// ScatterPoint is one visualization-ready point: pressure on x, temperature
// on y, radius scaled from flowrate for bubble charts.
type ScatterPoint struct {
	X    float64
	Y    float64
	R    float64
	Name string
	Type EquipmentType
}

// AnalyticsReport is the full analytics payload for one dataset.
// It is derived on demand from the live equipment rows and never stored.
// Field names and units (m³/h, bar, °C) are a contract with downstream
// renderers.
type AnalyticsReport struct {
	TotalEquipment int
	AvgFlowrate    float64
	AvgPressure    float64
	AvgTemperature float64

	// PTCorrelation is the scalar pressure/temperature Pearson coefficient,
	// rounded to 3 decimals, 0 when fewer than 2 rows exist.
	PTCorrelation     float64
	CorrelationMatrix []CorrelationRow
	DistributionStats map[string]QuartileStats
	PeerBenchmarks    map[EquipmentType]PeerBenchmark

	TypeDistribution map[EquipmentType]int
	OutliersCount    int
	OutlierEquipment []OutlierEntry
	ScatterData      []ScatterPoint
}

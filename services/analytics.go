package services

import (
	"fmt"
	"math"
	"sort"

	"equipment-visualizer/models"
	"equipment-visualizer/storage"
	"equipment-visualizer/utils"
)

// AnalyticsService computes the full analytics payload for a dataset on
// demand. It always reads the live equipment rows; the dataset's stored
// summary fields are a cached convenience and are never trusted here.
type AnalyticsService struct {
	store  storage.DatasetStore
	logger *utils.Logger
}

// NewAnalyticsService creates an AnalyticsService over the given store.
func NewAnalyticsService(store storage.DatasetStore, logger *utils.Logger) *AnalyticsService {
	return &AnalyticsService{store: store, logger: logger}
}

// Analyze builds the analytics report for one dataset. It fails with
// ErrNotFound for an unknown id and ErrEmptyDataset when the dataset has
// no equipment rows. Pure read, nothing is mutated or cached.
func (s *AnalyticsService) Analyze(datasetID string) (*models.AnalyticsReport, error) {
	dataset, err := s.store.GetDataset(datasetID)
	if err != nil {
		return nil, fmt.Errorf("analytics: get dataset: %w", err)
	}
	if dataset == nil {
		return nil, fmt.Errorf("analytics: dataset %s: %w", datasetID, ErrNotFound)
	}

	equipment, err := s.store.EquipmentByDataset(datasetID)
	if err != nil {
		return nil, fmt.Errorf("analytics: load equipment: %w", err)
	}
	if len(equipment) == 0 {
		return nil, fmt.Errorf("analytics: dataset %s: %w", datasetID, ErrEmptyDataset)
	}

	flowrates := make([]float64, len(equipment))
	pressures := make([]float64, len(equipment))
	temperatures := make([]float64, len(equipment))
	for i, eq := range equipment {
		flowrates[i] = eq.Flowrate
		pressures[i] = eq.Pressure
		temperatures[i] = eq.Temperature
	}

	report := &models.AnalyticsReport{
		TotalEquipment: len(equipment),
		AvgFlowrate:    round2(mean(flowrates)),
		AvgPressure:    round2(mean(pressures)),
		AvgTemperature: round2(mean(temperatures)),

		PTCorrelation:     round3(nanToZero(pearson(pressures, temperatures))),
		CorrelationMatrix: correlationMatrix(flowrates, pressures, temperatures),
		DistributionStats: map[string]models.QuartileStats{
			"flowrate":    quartiles(flowrates),
			"pressure":    quartiles(pressures),
			"temperature": quartiles(temperatures),
		},

		PeerBenchmarks:   peerBenchmarks(equipment),
		TypeDistribution: typeDistribution(equipment),
		ScatterData:      scatterData(equipment),
	}

	for _, eq := range equipment {
		if eq.IsOutlier() {
			report.OutlierEquipment = append(report.OutlierEquipment, models.OutlierEntry{
				Name:               eq.Name,
				Type:               eq.Type,
				PressureOutlier:    eq.PressureOutlier,
				TemperatureOutlier: eq.TemperatureOutlier,
			})
		}
	}
	report.OutliersCount = len(report.OutlierEquipment)

	s.logger.Debug("[analytics] Built report for dataset %s (%d equipment, %d outliers)",
		datasetID, report.TotalEquipment, report.OutliersCount)
	return report, nil
}

// pearson computes the Pearson correlation coefficient between x and y.
// Fewer than 2 points yield 0 (correlation is undefined there, and the
// engine substitutes a neutral value instead of failing). Zero variance in
// either column yields NaN, which callers map to 0.
func pearson(x, y []float64) float64 {
	n := len(x)
	if n < 2 || n != len(y) {
		return 0
	}

	mx := mean(x)
	my := mean(y)

	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx := x[i] - mx
		dy := y[i] - my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}

	denom := math.Sqrt(sxx * syy)
	if denom == 0 {
		return math.NaN()
	}
	return sxy / denom
}

func nanToZero(f float64) float64 {
	if math.IsNaN(f) {
		return 0
	}
	return f
}

// correlationMatrix builds the pairwise Pearson matrix over the three
// measurement columns, each cell rounded to 2 decimals, NaN cells as 0.
func correlationMatrix(flowrates, pressures, temperatures []float64) []models.CorrelationRow {
	names := []string{"flowrate", "pressure", "temperature"}
	columns := [][]float64{flowrates, pressures, temperatures}

	rows := make([]models.CorrelationRow, len(names))
	for i, name := range names {
		cells := make([]float64, len(columns))
		for j := range columns {
			cells[j] = round2(nanToZero(pearson(columns[i], columns[j])))
		}
		rows[i] = models.CorrelationRow{
			Variable:    name,
			Flowrate:    cells[0],
			Pressure:    cells[1],
			Temperature: cells[2],
		}
	}
	return rows
}

// quartiles computes the five-number summary using linear interpolation
// between order statistics (the inclusive method: the p-th quantile sits at
// position (n-1)*p of the sorted values).
func quartiles(values []float64) models.QuartileStats {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return models.QuartileStats{
		Min:    round2(sorted[0]),
		Q1:     round2(percentile(sorted, 0.25)),
		Median: round2(percentile(sorted, 0.5)),
		Q3:     round2(percentile(sorted, 0.75)),
		Max:    round2(sorted[len(sorted)-1]),
	}
}

// percentile expects sorted input and p in [0, 1].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	frac := pos - float64(lo)
	if frac == 0 {
		return sorted[lo]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// peerBenchmarks aggregates each measurement per equipment category.
func peerBenchmarks(equipment []*models.Equipment) map[models.EquipmentType]models.PeerBenchmark {
	groups := make(map[models.EquipmentType][]*models.Equipment)
	for _, eq := range equipment {
		groups[eq.Type] = append(groups[eq.Type], eq)
	}

	benchmarks := make(map[models.EquipmentType]models.PeerBenchmark, len(groups))
	for eqType, peers := range groups {
		flow := make([]float64, len(peers))
		press := make([]float64, len(peers))
		temp := make([]float64, len(peers))
		for i, eq := range peers {
			flow[i] = eq.Flowrate
			press[i] = eq.Pressure
			temp[i] = eq.Temperature
		}
		benchmarks[eqType] = models.PeerBenchmark{
			Flowrate:    fieldStats(flow),
			Pressure:    fieldStats(press),
			Temperature: fieldStats(temp),
		}
	}
	return benchmarks
}

func fieldStats(values []float64) models.FieldStats {
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return models.FieldStats{
		Mean: round2(mean(values)),
		Min:  round2(min),
		Max:  round2(max),
	}
}

func typeDistribution(equipment []*models.Equipment) map[models.EquipmentType]int {
	dist := make(map[models.EquipmentType]int)
	for _, eq := range equipment {
		dist[eq.Type]++
	}
	return dist
}

// scatterData maps each equipment row to a bubble-chart point: pressure on
// x, temperature on y, radius scaled from flowrate with a floor of 2.
func scatterData(equipment []*models.Equipment) []models.ScatterPoint {
	points := make([]models.ScatterPoint, len(equipment))
	for i, eq := range equipment {
		points[i] = models.ScatterPoint{
			X:    eq.Pressure,
			Y:    eq.Temperature,
			R:    math.Max(2, eq.Flowrate/15),
			Name: eq.Name,
			Type: eq.Type,
		}
	}
	return points
}

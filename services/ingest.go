package services

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"equipment-visualizer/models"
	"equipment-visualizer/storage"
	"equipment-visualizer/utils"
)

// IngestService orchestrates one CSV upload: validate, detect outliers,
// commit the dataset with its equipment atomically, then enforce retention.
type IngestService struct {
	store          storage.DatasetStore
	validator      *Validator
	retention      *RetentionService
	retentionLimit int
	logger         *utils.Logger
}

// NewIngestService creates an IngestService enforcing the given retention limit.
func NewIngestService(store storage.DatasetStore, retentionLimit int, logger *utils.Logger) *IngestService {
	return &IngestService{
		store:          store,
		validator:      NewValidator(logger),
		retention:      NewRetentionService(store, logger),
		retentionLimit: retentionLimit,
		logger:         logger,
	}
}

// Ingest validates raw CSV bytes and commits a new dataset. Validation
// errors propagate unchanged so callers can tell the exact failure apart.
// The dataset and all its equipment become visible together or not at all.
func (s *IngestService) Ingest(raw []byte, filename string) (*models.Dataset, error) {
	rows, err := s.validator.Validate(raw)
	if err != nil {
		return nil, err
	}

	flowrates := make([]float64, len(rows))
	pressures := make([]float64, len(rows))
	temperatures := make([]float64, len(rows))
	for i, row := range rows {
		flowrates[i] = row.Flowrate
		pressures[i] = row.Pressure
		temperatures[i] = row.Temperature
	}

	dataset := &models.Dataset{
		ID:             uuid.NewString(),
		Filename:       filename,
		UploadedAt:     time.Now().UTC(),
		TotalEquipment: len(rows),
		AvgFlowrate:    f64ptr(round2(mean(flowrates))),
		AvgPressure:    f64ptr(round2(mean(pressures))),
		AvgTemperature: f64ptr(round2(mean(temperatures))),
	}

	// Flowrate is never outlier-checked.
	pressureFlags := DetectOutliers(pressures, DefaultOutlierThreshold)
	temperatureFlags := DetectOutliers(temperatures, DefaultOutlierThreshold)

	equipment := make([]*models.Equipment, len(rows))
	for i, row := range rows {
		equipment[i] = &models.Equipment{
			ID:                 uuid.NewString(),
			DatasetID:          dataset.ID,
			Name:               row.Name,
			Type:               row.Type,
			Flowrate:           row.Flowrate,
			Pressure:           row.Pressure,
			Temperature:        row.Temperature,
			PressureOutlier:    pressureFlags[i],
			TemperatureOutlier: temperatureFlags[i],
		}
	}

	if err := s.store.CreateDatasetWithEquipment(dataset, equipment); err != nil {
		return nil, fmt.Errorf("ingest: commit %q: %w", filename, err)
	}

	s.logger.Info("[ingest] Committed dataset %s (%s, %d equipment)",
		dataset.ID, filename, len(equipment))

	// The commit stands even if eviction fails; retention catches up on the
	// next ingest or a cleanup run.
	if evicted, err := s.retention.Enforce(s.retentionLimit); err != nil {
		s.logger.Error("[ingest] Retention sweep failed: %v", err)
	} else if evicted > 0 {
		s.logger.Info("[ingest] Retention evicted %d old dataset(s)", evicted)
	}

	return dataset, nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func f64ptr(f float64) *float64 {
	return &f
}

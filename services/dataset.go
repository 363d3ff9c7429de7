package services

import (
	"fmt"

	"equipment-visualizer/storage"
	"equipment-visualizer/utils"
)

// DatasetService covers dataset maintenance that collaborators trigger after
// mutating equipment rows out-of-band (edits, deletions). The stored summary
// fields on a dataset are only a cached convenience; this keeps them in step
// with the live equipment set.
type DatasetService struct {
	store  storage.DatasetStore
	logger *utils.Logger
}

// NewDatasetService creates a DatasetService over the given store.
func NewDatasetService(store storage.DatasetStore, logger *utils.Logger) *DatasetService {
	return &DatasetService{store: store, logger: logger}
}

// RefreshStats recomputes the dataset's cached count and averages from the
// live equipment rows. A dataset left with no equipment gets count 0 and nil
// averages.
func (s *DatasetService) RefreshStats(datasetID string) error {
	dataset, err := s.store.GetDataset(datasetID)
	if err != nil {
		return fmt.Errorf("dataset: get %s: %w", datasetID, err)
	}
	if dataset == nil {
		return fmt.Errorf("dataset: %s: %w", datasetID, ErrNotFound)
	}

	equipment, err := s.store.EquipmentByDataset(datasetID)
	if err != nil {
		return fmt.Errorf("dataset: load equipment: %w", err)
	}

	if len(equipment) == 0 {
		dataset.TotalEquipment = 0
		dataset.AvgFlowrate = nil
		dataset.AvgPressure = nil
		dataset.AvgTemperature = nil
	} else {
		flow := make([]float64, len(equipment))
		press := make([]float64, len(equipment))
		temp := make([]float64, len(equipment))
		for i, eq := range equipment {
			flow[i] = eq.Flowrate
			press[i] = eq.Pressure
			temp[i] = eq.Temperature
		}
		dataset.TotalEquipment = len(equipment)
		dataset.AvgFlowrate = f64ptr(round2(mean(flow)))
		dataset.AvgPressure = f64ptr(round2(mean(press)))
		dataset.AvgTemperature = f64ptr(round2(mean(temp)))
	}

	if err := s.store.UpdateDatasetStats(dataset); err != nil {
		return fmt.Errorf("dataset: update stats: %w", err)
	}

	s.logger.Debug("[dataset] Refreshed stats for %s (%d equipment)",
		datasetID, dataset.TotalEquipment)
	return nil
}

package storage

import (
	"fmt"
	"sort"
	"sync"

	"equipment-visualizer/models"
)

// MemoryStore is an in-memory DatasetStore. It backs the service tests and
// is usable by embedders that do not need persistence. Safe for concurrent use.
type MemoryStore struct {
	mu        sync.RWMutex
	datasets  map[string]*models.Dataset
	equipment map[string][]*models.Equipment // keyed by dataset id
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		datasets:  make(map[string]*models.Dataset),
		equipment: make(map[string][]*models.Equipment),
	}
}

// CreateDatasetWithEquipment stores the dataset and its equipment under one lock,
// so readers see either all of it or none of it.
func (ms *MemoryStore) CreateDatasetWithEquipment(dataset *models.Dataset, equipment []*models.Equipment) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.datasets[dataset.ID]; exists {
		return fmt.Errorf("memstore: dataset %s already exists", dataset.ID)
	}

	d := *dataset
	ms.datasets[d.ID] = &d

	rows := make([]*models.Equipment, len(equipment))
	for i, eq := range equipment {
		e := *eq
		rows[i] = &e
	}
	ms.equipment[d.ID] = rows
	return nil
}

// GetDataset returns a copy of the dataset, or (nil, nil) when absent.
func (ms *MemoryStore) GetDataset(id string) (*models.Dataset, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	d, ok := ms.datasets[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

// ListDatasets returns copies, newest first (UploadedAt desc, ID desc).
func (ms *MemoryStore) ListDatasets(limit int) ([]*models.Dataset, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	datasets := make([]*models.Dataset, 0, len(ms.datasets))
	for _, d := range ms.datasets {
		cp := *d
		datasets = append(datasets, &cp)
	}

	sort.Slice(datasets, func(i, j int) bool {
		if !datasets[i].UploadedAt.Equal(datasets[j].UploadedAt) {
			return datasets[i].UploadedAt.After(datasets[j].UploadedAt)
		}
		return datasets[i].ID > datasets[j].ID
	})

	if limit > 0 && len(datasets) > limit {
		datasets = datasets[:limit]
	}
	return datasets, nil
}

// EquipmentByDataset returns copies of the dataset's equipment rows,
// ordered by name then id.
func (ms *MemoryStore) EquipmentByDataset(datasetID string) ([]*models.Equipment, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	rows := ms.equipment[datasetID]
	out := make([]*models.Equipment, 0, len(rows))
	for _, eq := range rows {
		cp := *eq
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateEquipment overwrites one equipment row in place.
func (ms *MemoryStore) UpdateEquipment(eq *models.Equipment) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	rows := ms.equipment[eq.DatasetID]
	for i, existing := range rows {
		if existing.ID == eq.ID {
			cp := *eq
			rows[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("memstore: equipment %s not found", eq.ID)
}

// DeleteEquipment removes one equipment row, wherever it lives.
func (ms *MemoryStore) DeleteEquipment(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	for datasetID, rows := range ms.equipment {
		for i, eq := range rows {
			if eq.ID == id {
				ms.equipment[datasetID] = append(rows[:i], rows[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// UpdateDatasetStats overwrites the dataset's cached summary fields.
func (ms *MemoryStore) UpdateDatasetStats(dataset *models.Dataset) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	existing, ok := ms.datasets[dataset.ID]
	if !ok {
		return fmt.Errorf("memstore: dataset %s not found", dataset.ID)
	}
	existing.TotalEquipment = dataset.TotalEquipment
	existing.AvgFlowrate = dataset.AvgFlowrate
	existing.AvgPressure = dataset.AvgPressure
	existing.AvgTemperature = dataset.AvgTemperature
	return nil
}

// DeleteDataset removes the dataset and all its equipment.
func (ms *MemoryStore) DeleteDataset(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.datasets, id)
	delete(ms.equipment, id)
	return nil
}

// CountDatasets returns the number of stored datasets.
func (ms *MemoryStore) CountDatasets() (int, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.datasets), nil
}

// Close is a no-op for the in-memory store.
func (ms *MemoryStore) Close() error {
	return nil
}

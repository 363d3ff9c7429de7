package storage

import "equipment-visualizer/models"

// DatasetStore is the interface any dataset storage backend must satisfy.
//
// CreateDatasetWithEquipment commits the dataset and all its equipment as
// one atomic unit: a concurrent reader never observes the dataset with a
// partial equipment set. GetDataset returns (nil, nil) when no dataset with
// that id exists. ListDatasets orders newest first by upload time, with id
// as a deterministic tiebreak; limit <= 0 returns everything. DeleteDataset
// cascades to the dataset's equipment.
type DatasetStore interface {
	CreateDatasetWithEquipment(dataset *models.Dataset, equipment []*models.Equipment) error
	GetDataset(id string) (*models.Dataset, error)
	ListDatasets(limit int) ([]*models.Dataset, error)
	EquipmentByDataset(datasetID string) ([]*models.Equipment, error)
	UpdateEquipment(eq *models.Equipment) error
	DeleteEquipment(id string) error
	UpdateDatasetStats(dataset *models.Dataset) error
	DeleteDataset(id string) error
	CountDatasets() (int, error)
	Close() error
}

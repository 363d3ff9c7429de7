package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"equipment-visualizer/models"
	"equipment-visualizer/storage"
)

func TestRefreshStatsRecomputesAverages(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDatasetService(store, newTestLogger())

	dataset := seedDataset(t, store, []*models.Equipment{
		eqRow("A", models.TypePump, 100, 8, 90),
		eqRow("B", models.TypePump, 200, 10, 110),
	})

	// Simulate a collaborator deleting one row out-of-band.
	equipment, _ := store.EquipmentByDataset(dataset.ID)
	if err := store.DeleteEquipment(equipment[1].ID); err != nil {
		t.Fatalf("DeleteEquipment: %v", err)
	}

	if err := svc.RefreshStats(dataset.ID); err != nil {
		t.Fatalf("RefreshStats: %v", err)
	}

	refreshed, _ := store.GetDataset(dataset.ID)
	if refreshed.TotalEquipment != 1 {
		t.Errorf("TotalEquipment = %d; want 1", refreshed.TotalEquipment)
	}
	if refreshed.AvgFlowrate == nil || *refreshed.AvgFlowrate != 100 {
		t.Errorf("AvgFlowrate = %v; want 100", refreshed.AvgFlowrate)
	}
}

func TestRefreshStatsEmptyDatasetNullsAverages(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewDatasetService(store, newTestLogger())

	dataset := seedDataset(t, store, []*models.Equipment{
		eqRow("A", models.TypePump, 100, 8, 90),
	})
	equipment, _ := store.EquipmentByDataset(dataset.ID)
	if err := store.DeleteEquipment(equipment[0].ID); err != nil {
		t.Fatalf("DeleteEquipment: %v", err)
	}

	if err := svc.RefreshStats(dataset.ID); err != nil {
		t.Fatalf("RefreshStats: %v", err)
	}

	refreshed, _ := store.GetDataset(dataset.ID)
	if refreshed.TotalEquipment != 0 {
		t.Errorf("TotalEquipment = %d; want 0", refreshed.TotalEquipment)
	}
	if refreshed.AvgFlowrate != nil || refreshed.AvgPressure != nil || refreshed.AvgTemperature != nil {
		t.Error("averages should be nil once the last equipment row is gone")
	}
}

func TestRefreshStatsUnknownDataset(t *testing.T) {
	svc := NewDatasetService(storage.NewMemoryStore(), newTestLogger())

	err := svc.RefreshStats(uuid.NewString())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

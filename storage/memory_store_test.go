package storage

import (
	"fmt"
	"testing"
	"time"

	"equipment-visualizer/models"
)

func newDataset(id string, at time.Time) *models.Dataset {
	return &models.Dataset{ID: id, Filename: id + ".csv", UploadedAt: at}
}

func TestMemoryStoreListOrdering(t *testing.T) {
	ms := NewMemoryStore()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of chronological order.
	for _, i := range []int{2, 0, 3, 1} {
		d := newDataset(fmt.Sprintf("ds-%d", i), base.Add(time.Duration(i)*time.Hour))
		if err := ms.CreateDatasetWithEquipment(d, nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	datasets, err := ms.ListDatasets(0)
	if err != nil {
		t.Fatalf("ListDatasets: %v", err)
	}
	want := []string{"ds-3", "ds-2", "ds-1", "ds-0"}
	for i, id := range want {
		if datasets[i].ID != id {
			t.Errorf("datasets[%d] = %s; want %s", i, datasets[i].ID, id)
		}
	}

	limited, _ := ms.ListDatasets(2)
	if len(limited) != 2 || limited[0].ID != "ds-3" {
		t.Errorf("ListDatasets(2) = %+v", limited)
	}
}

func TestMemoryStoreTimestampTieOrdering(t *testing.T) {
	ms := NewMemoryStore()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, id := range []string{"bbb", "aaa", "ccc"} {
		if err := ms.CreateDatasetWithEquipment(newDataset(id, at), nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	datasets, _ := ms.ListDatasets(0)
	want := []string{"ccc", "bbb", "aaa"}
	for i, id := range want {
		if datasets[i].ID != id {
			t.Errorf("datasets[%d] = %s; want %s (id desc on equal timestamps)", i, datasets[i].ID, id)
		}
	}
}

func TestMemoryStoreDeleteCascades(t *testing.T) {
	ms := NewMemoryStore()
	d := newDataset("ds-1", time.Now().UTC())
	equipment := []*models.Equipment{
		{ID: "eq-1", DatasetID: d.ID, Name: "Pump A", Type: models.TypePump},
		{ID: "eq-2", DatasetID: d.ID, Name: "Tank B", Type: models.TypeTank},
	}
	if err := ms.CreateDatasetWithEquipment(d, equipment); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := ms.DeleteDataset(d.ID); err != nil {
		t.Fatalf("DeleteDataset: %v", err)
	}

	if got, _ := ms.GetDataset(d.ID); got != nil {
		t.Error("dataset still present after delete")
	}
	rows, _ := ms.EquipmentByDataset(d.ID)
	if len(rows) != 0 {
		t.Errorf("equipment rows survived cascade: %d", len(rows))
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ms := NewMemoryStore()
	d := newDataset("ds-1", time.Now().UTC())
	if err := ms.CreateDatasetWithEquipment(d, []*models.Equipment{
		{ID: "eq-1", DatasetID: d.ID, Name: "Pump A", Type: models.TypePump, Pressure: 5},
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, _ := ms.GetDataset("ds-1")
	got.Filename = "mutated.csv"

	rows, _ := ms.EquipmentByDataset("ds-1")
	rows[0].Pressure = 999

	fresh, _ := ms.GetDataset("ds-1")
	if fresh.Filename != "ds-1.csv" {
		t.Error("mutating a returned dataset leaked into the store")
	}
	freshRows, _ := ms.EquipmentByDataset("ds-1")
	if freshRows[0].Pressure != 5 {
		t.Error("mutating a returned equipment row leaked into the store")
	}
}

func TestMemoryStoreDuplicateCreateFails(t *testing.T) {
	ms := NewMemoryStore()
	d := newDataset("ds-1", time.Now().UTC())
	if err := ms.CreateDatasetWithEquipment(d, nil); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := ms.CreateDatasetWithEquipment(d, nil); err == nil {
		t.Error("second create with the same id should fail")
	}
}

func TestMemoryStoreEquipmentOrdering(t *testing.T) {
	ms := NewMemoryStore()
	d := newDataset("ds-1", time.Now().UTC())
	equipment := []*models.Equipment{
		{ID: "eq-2", DatasetID: d.ID, Name: "Valve C", Type: models.TypeValve},
		{ID: "eq-1", DatasetID: d.ID, Name: "Pump A", Type: models.TypePump},
	}
	if err := ms.CreateDatasetWithEquipment(d, equipment); err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, _ := ms.EquipmentByDataset(d.ID)
	if rows[0].Name != "Pump A" || rows[1].Name != "Valve C" {
		t.Errorf("rows out of name order: %s, %s", rows[0].Name, rows[1].Name)
	}
}

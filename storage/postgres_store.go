package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"equipment-visualizer/models"
	"equipment-visualizer/utils"
)

// PostgresStore persists datasets and equipment to PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresStore.
func NewPostgresStore(dsn string, logger *utils.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{
		MaxAttempts: 5,
		BaseDelay:   time.Second,
		MaxDelay:    8 * time.Second,
		Logger:      logger,
	}
	if err := retry.Do("postgres ping", db.Ping); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	ps := &PostgresStore{db: db}
	if err := ps.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStore) migrate() error {
	_, err := ps.db.Exec(`
		CREATE TABLE IF NOT EXISTS datasets (
			id              UUID PRIMARY KEY,
			filename        VARCHAR(255) NOT NULL,
			uploaded_at     TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			total_equipment INTEGER      NOT NULL DEFAULT 0,
			avg_flowrate    DOUBLE PRECISION,
			avg_pressure    DOUBLE PRECISION,
			avg_temperature DOUBLE PRECISION
		);

		CREATE TABLE IF NOT EXISTS equipment (
			id                     UUID PRIMARY KEY,
			dataset_id             UUID NOT NULL REFERENCES datasets(id) ON DELETE CASCADE,
			equipment_name         VARCHAR(255)     NOT NULL,
			equipment_type         VARCHAR(50)      NOT NULL,
			flowrate               DOUBLE PRECISION NOT NULL,
			pressure               DOUBLE PRECISION NOT NULL,
			temperature            DOUBLE PRECISION NOT NULL,
			is_pressure_outlier    BOOLEAN NOT NULL DEFAULT FALSE,
			is_temperature_outlier BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE INDEX IF NOT EXISTS idx_datasets_uploaded_at ON datasets(uploaded_at DESC, id DESC);
		CREATE INDEX IF NOT EXISTS idx_datasets_filename    ON datasets(filename);
		CREATE INDEX IF NOT EXISTS idx_equipment_dataset    ON equipment(dataset_id, equipment_type);
		CREATE INDEX IF NOT EXISTS idx_equipment_outliers   ON equipment(dataset_id, is_pressure_outlier, is_temperature_outlier);
	`)
	return err
}

// CreateDatasetWithEquipment inserts the dataset and all its equipment rows
// inside a single transaction.
func (ps *PostgresStore) CreateDatasetWithEquipment(dataset *models.Dataset, equipment []*models.Equipment) error {
	tx, err := ps.db.Begin()
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO datasets (id, filename, uploaded_at, total_equipment, avg_flowrate, avg_pressure, avg_temperature)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, dataset.ID, dataset.Filename, dataset.UploadedAt, dataset.TotalEquipment,
		dataset.AvgFlowrate, dataset.AvgPressure, dataset.AvgTemperature)
	if err != nil {
		return fmt.Errorf("postgres: insert dataset: %w", err)
	}

	const batchSize = 500
	for i := 0; i < len(equipment); i += batchSize {
		end := i + batchSize
		if end > len(equipment) {
			end = len(equipment)
		}
		if err := insertEquipmentBatch(tx, equipment[i:end]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertEquipmentBatch(tx *sql.Tx, batch []*models.Equipment) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*9)

	for idx, eq := range batch {
		base := idx * 9
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			eq.ID, eq.DatasetID, eq.Name, string(eq.Type),
			eq.Flowrate, eq.Pressure, eq.Temperature,
			eq.PressureOutlier, eq.TemperatureOutlier)
	}

	query := fmt.Sprintf(`
		INSERT INTO equipment (id, dataset_id, equipment_name, equipment_type, flowrate, pressure, temperature, is_pressure_outlier, is_temperature_outlier)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	if _, err := tx.Exec(query, valueArgs...); err != nil {
		return fmt.Errorf("postgres: insert equipment batch: %w", err)
	}
	return nil
}

// GetDataset fetches one dataset by id, returning (nil, nil) when absent.
func (ps *PostgresStore) GetDataset(id string) (*models.Dataset, error) {
	row := ps.db.QueryRow(`
		SELECT id, filename, uploaded_at, total_equipment, avg_flowrate, avg_pressure, avg_temperature
		FROM datasets
		WHERE id = $1
	`, id)

	d, err := scanDataset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: get dataset: %w", err)
	}
	return d, nil
}

// ListDatasets returns datasets newest first (uploaded_at desc, id desc).
// limit <= 0 returns all of them.
func (ps *PostgresStore) ListDatasets(limit int) ([]*models.Dataset, error) {
	query := `
		SELECT id, filename, uploaded_at, total_equipment, avg_flowrate, avg_pressure, avg_temperature
		FROM datasets
		ORDER BY uploaded_at DESC, id DESC
	`
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = ps.db.Query(query+" LIMIT $1", limit)
	} else {
		rows, err = ps.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []*models.Dataset
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// EquipmentByDataset returns all equipment rows of one dataset, ordered by name.
func (ps *PostgresStore) EquipmentByDataset(datasetID string) ([]*models.Equipment, error) {
	rows, err := ps.db.Query(`
		SELECT id, dataset_id, equipment_name, equipment_type, flowrate, pressure, temperature, is_pressure_outlier, is_temperature_outlier
		FROM equipment
		WHERE dataset_id = $1
		ORDER BY equipment_name, id
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("postgres: equipment by dataset: %w", err)
	}
	defer rows.Close()

	var equipment []*models.Equipment
	for rows.Next() {
		eq := &models.Equipment{}
		var eqType string
		if err := rows.Scan(
			&eq.ID, &eq.DatasetID, &eq.Name, &eqType,
			&eq.Flowrate, &eq.Pressure, &eq.Temperature,
			&eq.PressureOutlier, &eq.TemperatureOutlier,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan equipment: %w", err)
		}
		eq.Type = models.EquipmentType(eqType)
		equipment = append(equipment, eq)
	}
	return equipment, rows.Err()
}

// UpdateEquipment overwrites one equipment row's mutable fields.
func (ps *PostgresStore) UpdateEquipment(eq *models.Equipment) error {
	res, err := ps.db.Exec(`
		UPDATE equipment
		SET equipment_name = $1, equipment_type = $2, flowrate = $3, pressure = $4, temperature = $5,
		    is_pressure_outlier = $6, is_temperature_outlier = $7
		WHERE id = $8
	`, eq.Name, string(eq.Type), eq.Flowrate, eq.Pressure, eq.Temperature,
		eq.PressureOutlier, eq.TemperatureOutlier, eq.ID)
	if err != nil {
		return fmt.Errorf("postgres: update equipment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("postgres: update equipment: no row with id %s", eq.ID)
	}
	return nil
}

// DeleteEquipment removes one equipment row.
func (ps *PostgresStore) DeleteEquipment(id string) error {
	if _, err := ps.db.Exec(`DELETE FROM equipment WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: delete equipment: %w", err)
	}
	return nil
}

// UpdateDatasetStats overwrites the dataset's cached summary fields.
func (ps *PostgresStore) UpdateDatasetStats(dataset *models.Dataset) error {
	_, err := ps.db.Exec(`
		UPDATE datasets
		SET total_equipment = $1, avg_flowrate = $2, avg_pressure = $3, avg_temperature = $4
		WHERE id = $5
	`, dataset.TotalEquipment, dataset.AvgFlowrate, dataset.AvgPressure, dataset.AvgTemperature, dataset.ID)
	if err != nil {
		return fmt.Errorf("postgres: update dataset stats: %w", err)
	}
	return nil
}

// DeleteDataset removes one dataset; the FK cascade removes its equipment.
func (ps *PostgresStore) DeleteDataset(id string) error {
	if _, err := ps.db.Exec(`DELETE FROM datasets WHERE id = $1`, id); err != nil {
		return fmt.Errorf("postgres: delete dataset: %w", err)
	}
	return nil
}

// CountDatasets returns the number of stored datasets.
func (ps *PostgresStore) CountDatasets() (int, error) {
	var count int
	if err := ps.db.QueryRow(`SELECT COUNT(*) FROM datasets`).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: count datasets: %w", err)
	}
	return count, nil
}

// Close closes the underlying connection pool.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDataset(row rowScanner) (*models.Dataset, error) {
	d := &models.Dataset{}
	var flow, press, temp sql.NullFloat64
	if err := row.Scan(&d.ID, &d.Filename, &d.UploadedAt, &d.TotalEquipment, &flow, &press, &temp); err != nil {
		return nil, err
	}
	if flow.Valid {
		d.AvgFlowrate = &flow.Float64
	}
	if press.Valid {
		d.AvgPressure = &press.Float64
	}
	if temp.Valid {
		d.AvgTemperature = &temp.Float64
	}
	return d, nil
}

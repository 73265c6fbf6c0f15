package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/model"
)

func CreateDataset(db *sql.DB, name, mode string) (*model.Dataset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("dataset name is required")
	}
	if mode == "" {
		mode = string(engine.ModeSeries)
	}
	if _, err := engine.ParseTrackingMode(mode); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if _, err := db.Exec(`
INSERT INTO datasets(id, name, mode)
VALUES(?, ?, ?)
`, id, name, mode); err != nil {
		return nil, fmt.Errorf("create dataset %q: %w", name, err)
	}
	return GetDataset(db, id)
}

func GetDataset(db *sql.DB, id string) (*model.Dataset, error) {
	var d model.Dataset
	err := db.QueryRow(`
SELECT id, name, mode, created_at FROM datasets WHERE id = ?
`, id).Scan(&d.ID, &d.Name, &d.Mode, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset %q: %w", id, err)
	}
	return &d, nil
}

func GetDatasetByName(db *sql.DB, name string) (*model.Dataset, error) {
	name = strings.TrimSpace(name)
	var d model.Dataset
	err := db.QueryRow(`
SELECT id, name, mode, created_at FROM datasets WHERE name = ?
`, name).Scan(&d.ID, &d.Name, &d.Mode, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("dataset %q not found (create it with: numcal dataset create %s)", name, name)
	}
	if err != nil {
		return nil, fmt.Errorf("get dataset %q: %w", name, err)
	}
	return &d, nil
}

func ListDatasets(db *sql.DB) ([]model.Dataset, error) {
	rows, err := db.Query(`SELECT id, name, mode, created_at FROM datasets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	datasets := make([]model.Dataset, 0)
	for rows.Next() {
		var d model.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.Mode, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}
	return datasets, nil
}

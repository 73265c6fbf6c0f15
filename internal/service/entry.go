package service

import (
	"database/sql"
	"fmt"

	"github.com/aaronbeall/number-calendar/internal/model"
)

// SaveDay replaces the full number list for one (dataset, day). An empty
// list removes the row entirely; a day entry is never persisted empty.
func SaveDay(db *sql.DB, datasetID, date string, numbers []float64) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	if err := validateNumbers(numbers); err != nil {
		return err
	}
	if len(numbers) == 0 {
		return DeleteDay(db, datasetID, date)
	}

	raw, err := encodeNumbers(numbers)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
INSERT INTO day_entries(dataset_id, date, numbers_json)
VALUES(?, ?, ?)
ON CONFLICT(dataset_id, date) DO UPDATE SET
  numbers_json=excluded.numbers_json,
  updated_at=CURRENT_TIMESTAMP
`, datasetID, date, raw); err != nil {
		return fmt.Errorf("save day %s: %w", date, err)
	}
	return nil
}

// LogNumbers appends numbers to a day's list, preserving entry order.
func LogNumbers(db *sql.DB, datasetID, date string, numbers []float64) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	if len(numbers) == 0 {
		return fmt.Errorf("at least one number is required")
	}
	existing, err := GetDay(db, datasetID, date)
	if err != nil {
		return err
	}
	if existing != nil {
		numbers = append(append([]float64{}, existing.Numbers...), numbers...)
	}
	return SaveDay(db, datasetID, date, numbers)
}

func DeleteDay(db *sql.DB, datasetID, date string) error {
	date, err := validateDate(date)
	if err != nil {
		return err
	}
	if _, err := db.Exec(`
DELETE FROM day_entries WHERE dataset_id = ? AND date = ?
`, datasetID, date); err != nil {
		return fmt.Errorf("delete day %s: %w", date, err)
	}
	return nil
}

// GetDay returns the entry for one day, or nil when the day has no numbers.
func GetDay(db *sql.DB, datasetID, date string) (*model.DayEntry, error) {
	date, err := validateDate(date)
	if err != nil {
		return nil, err
	}
	var e model.DayEntry
	var raw string
	err = db.QueryRow(`
SELECT id, dataset_id, date, numbers_json, created_at, updated_at
FROM day_entries
WHERE dataset_id = ? AND date = ?
`, datasetID, date).Scan(&e.ID, &e.DatasetID, &e.Date, &raw, &e.CreatedAt, &e.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get day %s: %w", date, err)
	}
	if e.Numbers, err = decodeNumbers(raw); err != nil {
		return nil, err
	}
	return &e, nil
}

func ListDayEntries(db *sql.DB, datasetID string) ([]model.DayEntry, error) {
	rows, err := db.Query(`
SELECT id, dataset_id, date, numbers_json, created_at, updated_at
FROM day_entries
WHERE dataset_id = ?
ORDER BY date ASC
`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("list day entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.DayEntry, 0)
	for rows.Next() {
		var e model.DayEntry
		var raw string
		if err := rows.Scan(&e.ID, &e.DatasetID, &e.Date, &raw, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan day entry: %w", err)
		}
		if e.Numbers, err = decodeNumbers(raw); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate day entries: %w", err)
	}
	return entries, nil
}

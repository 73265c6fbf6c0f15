package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/aaronbeall/number-calendar/internal/db"
	"github.com/aaronbeall/number-calendar/internal/model"
	"github.com/aaronbeall/number-calendar/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "numcal.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newTestDataset(t *testing.T, sqldb *sql.DB, mode string) *model.Dataset {
	t.Helper()
	dataset, err := service.CreateDataset(sqldb, "pushups", mode)
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	return dataset
}

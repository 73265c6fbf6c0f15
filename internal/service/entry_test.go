package service_test

import (
	"testing"

	"github.com/aaronbeall/number-calendar/internal/service"
)

func TestSaveDayReplacesNumbers(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	if err := service.SaveDay(sqldb, dataset.ID, "2026-01-05", []float64{10, 20}); err != nil {
		t.Fatalf("save day: %v", err)
	}
	if err := service.SaveDay(sqldb, dataset.ID, "2026-01-05", []float64{5}); err != nil {
		t.Fatalf("replace day: %v", err)
	}

	entry, err := service.GetDay(sqldb, dataset.ID, "2026-01-05")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if entry == nil || len(entry.Numbers) != 1 || entry.Numbers[0] != 5 {
		t.Fatalf("expected replaced numbers [5], got %+v", entry)
	}
}

func TestSaveDayEmptyListRemovesRow(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	if err := service.SaveDay(sqldb, dataset.ID, "2026-01-05", []float64{10}); err != nil {
		t.Fatalf("save day: %v", err)
	}
	if err := service.SaveDay(sqldb, dataset.ID, "2026-01-05", nil); err != nil {
		t.Fatalf("save empty day: %v", err)
	}

	entry, err := service.GetDay(sqldb, dataset.ID, "2026-01-05")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if entry != nil {
		t.Fatalf("expected day row removed, got %+v", entry)
	}
}

func TestLogNumbersAppendsInEntryOrder(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	if err := service.LogNumbers(sqldb, dataset.ID, "2026-01-05", []float64{10}); err != nil {
		t.Fatalf("log first: %v", err)
	}
	if err := service.LogNumbers(sqldb, dataset.ID, "2026-01-05", []float64{20, 30}); err != nil {
		t.Fatalf("log second: %v", err)
	}

	entry, err := service.GetDay(sqldb, dataset.ID, "2026-01-05")
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	want := []float64{10, 20, 30}
	if entry == nil || len(entry.Numbers) != len(want) {
		t.Fatalf("expected numbers %v, got %+v", want, entry)
	}
	for i, v := range want {
		if entry.Numbers[i] != v {
			t.Fatalf("expected numbers %v, got %v", want, entry.Numbers)
		}
	}
}

func TestSaveDayRejectsInvalidInput(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	if err := service.SaveDay(sqldb, dataset.ID, "01/05/2026", []float64{1}); err == nil {
		t.Fatalf("expected malformed date to fail")
	}
}

func TestListDayEntriesSortedByDate(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	for _, d := range []string{"2026-03-01", "2026-01-15", "2026-02-10"} {
		if err := service.SaveDay(sqldb, dataset.ID, d, []float64{1}); err != nil {
			t.Fatalf("save %s: %v", d, err)
		}
	}
	entries, err := service.ListDayEntries(sqldb, dataset.ID)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Date != "2026-01-15" || entries[2].Date != "2026-03-01" {
		t.Fatalf("expected date-sorted entries, got %+v", entries)
	}
}

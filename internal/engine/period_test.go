package engine_test

import (
	"testing"
	"time"

	"github.com/aaronbeall/number-calendar/internal/engine"
)

func TestPeriodKeys(t *testing.T) {
	t.Parallel()
	d, err := engine.ParseDayKey("2026-01-28")
	if err != nil {
		t.Fatalf("parse day key: %v", err)
	}
	cases := []struct {
		period engine.Period
		want   string
	}{
		{engine.PeriodDay, "2026-01-28"},
		{engine.PeriodWeek, "2026-W05"},
		{engine.PeriodMonth, "2026-01"},
		{engine.PeriodYear, "2026"},
		{engine.PeriodAllTime, "alltime"},
	}
	for _, c := range cases {
		if got := engine.PeriodKey(c.period, d); got != c.want {
			t.Fatalf("key for %s: expected %q, got %q", c.period, c.want, got)
		}
	}
}

func TestISOWeekKeyCrossesYearBoundary(t *testing.T) {
	t.Parallel()
	// 2021-01-01 is a Friday inside ISO week 2020-W53.
	d, _ := engine.ParseDayKey("2021-01-01")
	if got := engine.WeekKey(d); got != "2020-W53" {
		t.Fatalf("expected 2020-W53, got %q", got)
	}
}

func TestPeriodStartWeekIsMonday(t *testing.T) {
	t.Parallel()
	d, _ := engine.ParseDayKey("2026-01-28") // a Wednesday
	start := engine.PeriodStart(engine.PeriodWeek, d)
	if engine.DayKey(start) != "2026-01-26" {
		t.Fatalf("expected week start 2026-01-26, got %s", engine.DayKey(start))
	}
	if start.Weekday() != time.Monday {
		t.Fatalf("expected Monday, got %s", start.Weekday())
	}
}

func TestNextPeriodStart(t *testing.T) {
	t.Parallel()
	d, _ := engine.ParseDayKey("2026-01-31")
	monthStart := engine.PeriodStart(engine.PeriodMonth, d)
	next := engine.NextPeriodStart(engine.PeriodMonth, monthStart)
	if engine.DayKey(next) != "2026-02-01" {
		t.Fatalf("expected 2026-02-01, got %s", engine.DayKey(next))
	}
}

func TestPeriodClosed(t *testing.T) {
	t.Parallel()
	anchor, _ := engine.ParseDayKey("2026-01-28")
	inside := anchor.Add(6 * time.Hour)
	if engine.PeriodClosed(engine.PeriodDay, anchor, inside) {
		t.Fatalf("day should still be open at %s", inside)
	}
	after := anchor.AddDate(0, 0, 1)
	if !engine.PeriodClosed(engine.PeriodDay, anchor, after) {
		t.Fatalf("day should be closed at %s", after)
	}
	if engine.PeriodClosed(engine.PeriodAllTime, anchor, after.AddDate(10, 0, 0)) {
		t.Fatalf("all-time never closes")
	}
}

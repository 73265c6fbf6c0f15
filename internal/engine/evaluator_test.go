package engine_test

import (
	"testing"
	"time"

	"github.com/aaronbeall/number-calendar/internal/engine"
)

func mustTime(t *testing.T, key string) time.Time {
	t.Helper()
	parsed, err := engine.ParseDayKey(key)
	if err != nil {
		t.Fatalf("parse %q: %v", key, err)
	}
	return parsed
}

func dailyGoal(count int, consecutive bool) engine.Goal {
	return engine.Goal{
		ID:        "goal-1",
		DatasetID: "ds1",
		Type:      engine.GoalTypeGoal,
		Title:     "log above 5",
		Target: engine.GoalTarget{
			Metric:    engine.MetricTotal,
			Source:    engine.SourceStats,
			Condition: engine.ConditionAbove,
			Value:     5,
		},
		TimePeriod:  engine.PeriodDay,
		Count:       count,
		Consecutive: consecutive,
	}
}

func TestEvaluateRepeatableNonConsecutiveGoal(t *testing.T) {
	t.Parallel()
	// Four qualifying days, one miss in between; count=1 completes on
	// every qualifying period.
	set := buildSet(t, engine.ModeSeries,
		day("2026-01-05", 10),
		day("2026-01-06", 1),
		day("2026-01-07", 10),
		day("2026-01-09", 10),
		day("2026-01-12", 10),
	)
	result, err := engine.EvaluateGoal(dailyGoal(1, false), set, mustTime(t, "2026-02-01"))
	if err != nil {
		t.Fatalf("evaluate goal: %v", err)
	}
	if result.CompletedCount != 4 {
		t.Fatalf("expected 4 completions, got %d", result.CompletedCount)
	}
	if len(result.Achievements) != 4 {
		t.Fatalf("expected 4 achievements, got %d", len(result.Achievements))
	}
	if result.Achievements[0].CompletedAt != "2026-01-05" {
		t.Fatalf("expected first completion on 2026-01-05, got %q", result.Achievements[0].CompletedAt)
	}
}

func TestEvaluateEveryNthQualifyingPeriod(t *testing.T) {
	t.Parallel()
	set := buildSet(t, engine.ModeSeries,
		day("2026-01-05", 10),
		day("2026-01-07", 10),
		day("2026-01-20", 10),
		day("2026-02-02", 10),
		day("2026-02-09", 10),
	)
	result, err := engine.EvaluateGoal(dailyGoal(2, false), set, mustTime(t, "2026-03-01"))
	if err != nil {
		t.Fatalf("evaluate goal: %v", err)
	}
	if result.CompletedCount != 2 {
		t.Fatalf("expected every 2nd qualifying day to complete (2 total), got %d", result.CompletedCount)
	}
	if result.Achievements[0].PeriodKey != "2026-01-07" || result.Achievements[1].PeriodKey != "2026-02-02" {
		t.Fatalf("unexpected completion anchors: %+v", result.Achievements)
	}
}

func TestEvaluateStreakResetsOnBadPeriod(t *testing.T) {
	t.Parallel()
	// Two good days, one bad day, then three good days: exactly one
	// completion, on the third good day after the reset. The gap day with
	// no data counts as failing, not skipped.
	set := buildSet(t, engine.ModeSeries,
		day("2026-01-05", 10),
		day("2026-01-06", 10),
		day("2026-01-07", 1),
		day("2026-01-08", 10),
		day("2026-01-09", 10),
		day("2026-01-10", 10),
	)
	result, err := engine.EvaluateGoal(dailyGoal(3, true), set, mustTime(t, "2026-02-01"))
	if err != nil {
		t.Fatalf("evaluate goal: %v", err)
	}
	if result.CompletedCount != 1 {
		t.Fatalf("expected exactly one completion, got %d", result.CompletedCount)
	}
	if result.Achievements[0].PeriodKey != "2026-01-10" {
		t.Fatalf("expected completion on 2026-01-10, got %q", result.Achievements[0].PeriodKey)
	}
}

func TestEvaluateStreakBrokenByEmptyDay(t *testing.T) {
	t.Parallel()
	set := buildSet(t, engine.ModeSeries,
		day("2026-01-05", 10),
		day("2026-01-06", 10),
		// 2026-01-07 has no entry at all.
		day("2026-01-08", 10),
	)
	result, err := engine.EvaluateGoal(dailyGoal(3, true), set, mustTime(t, "2026-02-01"))
	if err != nil {
		t.Fatalf("evaluate goal: %v", err)
	}
	if result.CompletedCount != 0 {
		t.Fatalf("expected empty day to break the streak, got %d completions", result.CompletedCount)
	}
}

func TestEvaluateProvisionalCompletionOnOpenPeriod(t *testing.T) {
	t.Parallel()
	set := buildSet(t, engine.ModeSeries, day("2026-01-05", 10))

	// Evaluated during the qualifying day itself: provisional only.
	midDay := mustTime(t, "2026-01-05").Add(15 * time.Hour)
	result, err := engine.EvaluateGoal(dailyGoal(1, false), set, midDay)
	if err != nil {
		t.Fatalf("evaluate goal: %v", err)
	}
	if len(result.Achievements) != 1 {
		t.Fatalf("expected one achievement, got %d", len(result.Achievements))
	}
	provisional := result.Achievements[0]
	if !provisional.Provisional || provisional.CompletedAt != "" {
		t.Fatalf("expected a provisional completion, got %+v", provisional)
	}
	if result.CompletedCount != 0 {
		t.Fatalf("provisional completions must not count, got %d", result.CompletedCount)
	}

	// Re-evaluated after the day closed: the same occurrence finalizes
	// under the same id.
	later, err := engine.EvaluateGoal(dailyGoal(1, false), set, mustTime(t, "2026-01-06"))
	if err != nil {
		t.Fatalf("re-evaluate goal: %v", err)
	}
	final := later.Achievements[0]
	if final.ID != provisional.ID {
		t.Fatalf("expected the same occurrence id, got %q then %q", provisional.ID, final.ID)
	}
	if final.Provisional || final.CompletedAt != "2026-01-05" {
		t.Fatalf("expected finalized completion, got %+v", final)
	}
	if later.CompletedCount != 1 {
		t.Fatalf("expected one finalized completion, got %d", later.CompletedCount)
	}
}

func TestEvaluateAnytimeMilestoneFirstCrossing(t *testing.T) {
	t.Parallel()
	set := buildSet(t, engine.ModeSeries,
		day("2026-01-05", 40),
		day("2026-01-10", 40),
		day("2026-01-20", 40),
	)
	milestone := engine.Goal{
		ID:        "milestone-100",
		DatasetID: "ds1",
		Type:      engine.GoalTypeMilestone,
		Title:     "reach 100 total",
		Target: engine.GoalTarget{
			Metric:    engine.MetricTotal,
			Source:    engine.SourceStats,
			Condition: engine.ConditionAbove,
			Value:     99,
		},
		TimePeriod: engine.PeriodAnytime,
	}
	result, err := engine.EvaluateGoal(milestone, set, mustTime(t, "2026-02-01"))
	if err != nil {
		t.Fatalf("evaluate milestone: %v", err)
	}
	if len(result.Achievements) != 1 {
		t.Fatalf("expected a single milestone completion, got %d", len(result.Achievements))
	}
	if result.Achievements[0].PeriodKey != "2026-01-20" {
		t.Fatalf("expected first crossing on 2026-01-20, got %q", result.Achievements[0].PeriodKey)
	}
	if result.CompletedCount != 1 {
		t.Fatalf("expected milestone finalized, got %d", result.CompletedCount)
	}
}

func TestEvaluateFailsFastOnMissingGranularity(t *testing.T) {
	t.Parallel()
	// A caller handing over aggregates without the goal's granularity is a
	// contract violation, not a silent no-op.
	partial := &engine.AggregateSet{DatasetID: "ds1", Mode: engine.ModeSeries}
	goal := dailyGoal(1, false)
	goal.TimePeriod = engine.PeriodWeek
	if _, err := engine.EvaluateGoal(goal, partial, mustTime(t, "2026-02-01")); err == nil {
		t.Fatalf("expected missing week aggregates to fail")
	}
}

func TestEvaluateRejectsDatasetMismatch(t *testing.T) {
	t.Parallel()
	set := buildSet(t, engine.ModeSeries, day("2026-01-05", 10))
	goal := dailyGoal(1, false)
	goal.DatasetID = "other"
	if _, err := engine.EvaluateGoal(goal, set, mustTime(t, "2026-02-01")); err == nil {
		t.Fatalf("expected dataset mismatch to fail")
	}
}

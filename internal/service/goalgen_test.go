package service_test

import (
	"testing"

	"github.com/aaronbeall/number-calendar/internal/service"
)

func TestGenerateDefaultGoalsSeries(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	goals, err := service.GenerateDefaultGoals(sqldb, *dataset, 50, "above")
	if err != nil {
		t.Fatalf("generate goals: %v", err)
	}
	if len(goals) != 7 {
		t.Fatalf("expected 7 generated goals, got %d", len(goals))
	}

	milestones := 0
	streaks := 0
	for _, g := range goals {
		switch {
		case g.Type == "milestone":
			milestones++
			if g.TimePeriod != "anytime" {
				t.Fatalf("expected anytime milestone, got %+v", g)
			}
		case g.Consecutive:
			streaks++
		}
		if g.DatasetID != dataset.ID {
			t.Fatalf("expected goal bound to dataset, got %+v", g)
		}
	}
	if milestones != 3 {
		t.Fatalf("expected 3 milestones, got %d", milestones)
	}
	if streaks != 2 {
		t.Fatalf("expected 2 streak goals, got %d", streaks)
	}
}

func TestGenerateDefaultGoalsTrendSkipsMilestones(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()

	dataset, err := service.CreateDataset(sqldb, "weight", "trend")
	if err != nil {
		t.Fatalf("create dataset: %v", err)
	}
	goals, err := service.GenerateDefaultGoals(sqldb, *dataset, 80, "below")
	if err != nil {
		t.Fatalf("generate goals: %v", err)
	}
	for _, g := range goals {
		if g.Type == "milestone" {
			t.Fatalf("trend datasets must not get cumulative milestones: %+v", g)
		}
		if g.Metric != "last" {
			t.Fatalf("expected trend goals on the last reading, got %+v", g)
		}
		if g.Condition != "below" {
			t.Fatalf("expected below condition, got %+v", g)
		}
	}
}

func TestGenerateDefaultGoalsRejectsBadBaseline(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	if _, err := service.GenerateDefaultGoals(sqldb, *dataset, 0, "above"); err == nil {
		t.Fatalf("expected zero baseline to fail")
	}
}

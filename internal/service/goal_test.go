package service_test

import (
	"testing"

	"github.com/aaronbeall/number-calendar/internal/service"
)

func goalInput(datasetID string) service.CreateGoalInput {
	return service.CreateGoalInput{
		DatasetID:   datasetID,
		Type:        "goal",
		Title:       "log above 50",
		Metric:      "total",
		Source:      "stats",
		Condition:   "above",
		TargetValue: 50,
		TimePeriod:  "day",
		Count:       1,
	}
}

func TestCreateGoalRoundTrip(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	in := goalInput(dataset.ID)
	in.Count = 3
	in.Consecutive = true
	created, err := service.CreateGoal(sqldb, in)
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}

	goals, err := service.ListGoals(sqldb, dataset.ID)
	if err != nil {
		t.Fatalf("list goals: %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	g := goals[0]
	if g.ID != created.ID || g.Count != 3 || !g.Consecutive || g.TargetValue != 50 {
		t.Fatalf("unexpected goal round trip: %+v", g)
	}
}

func TestCreateGoalValidatesEnums(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	bad := goalInput(dataset.ID)
	bad.Metric = "average"
	if _, err := service.CreateGoal(sqldb, bad); err == nil {
		t.Fatalf("expected unknown metric to fail")
	}

	bad = goalInput(dataset.ID)
	bad.Condition = "at-least"
	if _, err := service.CreateGoal(sqldb, bad); err == nil {
		t.Fatalf("expected unknown condition to fail")
	}

	bad = goalInput(dataset.ID)
	bad.TimePeriod = "alltime"
	if _, err := service.CreateGoal(sqldb, bad); err == nil {
		t.Fatalf("expected alltime goal period to fail (goals use anytime)")
	}

	bad = goalInput(dataset.ID)
	bad.TimePeriod = "anytime"
	bad.Consecutive = true
	if _, err := service.CreateGoal(sqldb, bad); err == nil {
		t.Fatalf("expected consecutive anytime goal to fail")
	}
}

func TestDeleteGoalRemovesGoal(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	defer sqldb.Close()
	dataset := newTestDataset(t, sqldb, "series")

	created, err := service.CreateGoal(sqldb, goalInput(dataset.ID))
	if err != nil {
		t.Fatalf("create goal: %v", err)
	}
	if err := service.DeleteGoal(sqldb, created.ID); err != nil {
		t.Fatalf("delete goal: %v", err)
	}
	if err := service.DeleteGoal(sqldb, created.ID); err == nil {
		t.Fatalf("expected second delete to fail")
	}
}

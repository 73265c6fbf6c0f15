package service

import (
	"database/sql"
	"fmt"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/model"
)

// GenerateDefaultGoals manufactures the stock milestone/target/streak set
// for a dataset from a single baseline value. The generated content is
// deterministic for a given (mode, baseline, condition); only the goal ids
// are fresh.
//
// Series datasets get per-day targets, streaks, and cumulative milestones
// scaled from the baseline. Trend datasets get last-reading targets and
// streaks; cumulative milestones make no sense for point-in-time readings
// and are skipped.
func GenerateDefaultGoals(db *sql.DB, dataset model.Dataset, baseline float64, condition string) ([]model.Goal, error) {
	if baseline <= 0 {
		return nil, fmt.Errorf("baseline must be > 0")
	}
	if condition == "" {
		condition = string(engine.ConditionAbove)
	}
	if _, err := engine.ParseCondition(condition); err != nil {
		return nil, err
	}
	mode, err := engine.ParseTrackingMode(dataset.Mode)
	if err != nil {
		return nil, err
	}

	metric := string(engine.MetricTotal)
	if mode == engine.ModeTrend {
		metric = string(engine.MetricLast)
	}
	direction := "above"
	if condition == string(engine.ConditionBelow) {
		direction = "below"
	}

	inputs := []CreateGoalInput{
		{
			Type:        string(engine.GoalTypeTarget),
			Title:       fmt.Sprintf("Daily %s", direction),
			Description: fmt.Sprintf("Finish a day %s %g", direction, baseline),
			Badge:       "calendar-day",
			Metric:      metric,
			Source:      string(engine.SourceStats),
			Condition:   condition,
			TargetValue: baseline,
			TimePeriod:  string(engine.PeriodDay),
			Count:       1,
		},
		{
			Type:        string(engine.GoalTypeGoal),
			Title:       "3-day streak",
			Description: fmt.Sprintf("Three days in a row %s %g", direction, baseline),
			Badge:       "flame",
			Metric:      metric,
			Source:      string(engine.SourceStats),
			Condition:   condition,
			TargetValue: baseline,
			TimePeriod:  string(engine.PeriodDay),
			Count:       3,
			Consecutive: true,
		},
		{
			Type:        string(engine.GoalTypeGoal),
			Title:       "7-day streak",
			Description: fmt.Sprintf("A full week, every day %s %g", direction, baseline),
			Badge:       "flame",
			Metric:      metric,
			Source:      string(engine.SourceStats),
			Condition:   condition,
			TargetValue: baseline,
			TimePeriod:  string(engine.PeriodDay),
			Count:       7,
			Consecutive: true,
		},
		{
			Type:        string(engine.GoalTypeGoal),
			Title:       "Solid month",
			Description: fmt.Sprintf("Twenty days in one calendar run %s %g", direction, baseline),
			Badge:       "trophy",
			Metric:      metric,
			Source:      string(engine.SourceStats),
			Condition:   condition,
			TargetValue: baseline,
			TimePeriod:  string(engine.PeriodDay),
			Count:       20,
		},
	}

	if mode == engine.ModeSeries {
		for _, mult := range []float64{10, 100, 1000} {
			inputs = append(inputs, CreateGoalInput{
				Type:        string(engine.GoalTypeMilestone),
				Title:       fmt.Sprintf("Lifetime %g", baseline*mult),
				Description: fmt.Sprintf("Accumulate %g all time", baseline*mult),
				Badge:       "medal",
				Metric:      string(engine.MetricTotal),
				Source:      string(engine.SourceStats),
				Condition:   string(engine.ConditionAbove),
				TargetValue: baseline * mult,
				TimePeriod:  string(engine.PeriodAnytime),
				Count:       1,
			})
		}
	}

	goals := make([]model.Goal, 0, len(inputs))
	for _, in := range inputs {
		in.DatasetID = dataset.ID
		g, err := CreateGoal(db, in)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *g)
	}
	return goals, nil
}

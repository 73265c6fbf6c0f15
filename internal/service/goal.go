package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/model"
)

type CreateGoalInput struct {
	DatasetID   string
	Type        string
	Title       string
	Description string
	Badge       string
	Metric      string
	Source      string
	Condition   string
	TargetValue float64
	TimePeriod  string
	Count       int
	Consecutive bool
}

func CreateGoal(db *sql.DB, in CreateGoalInput) (*model.Goal, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("goal title is required")
	}
	if _, err := engine.ParseGoalType(in.Type); err != nil {
		return nil, err
	}
	if _, err := engine.ParseMetric(in.Metric); err != nil {
		return nil, err
	}
	if _, err := engine.ParseSource(in.Source); err != nil {
		return nil, err
	}
	if _, err := engine.ParseCondition(in.Condition); err != nil {
		return nil, err
	}
	period, err := engine.ParseGoalPeriod(in.TimePeriod)
	if err != nil {
		return nil, err
	}
	if in.Count == 0 {
		in.Count = 1
	}
	if in.Count < 1 {
		return nil, fmt.Errorf("goal count must be >= 1")
	}
	if period == engine.PeriodAnytime && in.Consecutive {
		return nil, fmt.Errorf("anytime goals cannot be consecutive")
	}

	id := uuid.NewString()
	if _, err := db.Exec(`
INSERT INTO goals(id, dataset_id, type, title, description, badge, metric, source, condition, target_value, time_period, count, consecutive)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, id, in.DatasetID, in.Type, in.Title, in.Description, in.Badge, in.Metric, in.Source, in.Condition, in.TargetValue, in.TimePeriod, in.Count, boolToInt(in.Consecutive)); err != nil {
		return nil, fmt.Errorf("create goal %q: %w", in.Title, err)
	}
	return GetGoal(db, id)
}

func GetGoal(db *sql.DB, id string) (*model.Goal, error) {
	var g model.Goal
	var consecutive int
	err := db.QueryRow(`
SELECT id, dataset_id, type, title, description, badge, metric, source, condition, target_value, time_period, count, consecutive, created_at
FROM goals
WHERE id = ?
`, id).Scan(&g.ID, &g.DatasetID, &g.Type, &g.Title, &g.Description, &g.Badge, &g.Metric, &g.Source, &g.Condition, &g.TargetValue, &g.TimePeriod, &g.Count, &consecutive, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("goal %q not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %q: %w", id, err)
	}
	g.Consecutive = consecutive != 0
	return &g, nil
}

func ListGoals(db *sql.DB, datasetID string) ([]model.Goal, error) {
	rows, err := db.Query(`
SELECT id, dataset_id, type, title, description, badge, metric, source, condition, target_value, time_period, count, consecutive, created_at
FROM goals
WHERE dataset_id = ?
ORDER BY created_at ASC, id ASC
`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		var g model.Goal
		var consecutive int
		if err := rows.Scan(&g.ID, &g.DatasetID, &g.Type, &g.Title, &g.Description, &g.Badge, &g.Metric, &g.Source, &g.Condition, &g.TargetValue, &g.TimePeriod, &g.Count, &consecutive, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		g.Consecutive = consecutive != 0
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func DeleteGoal(db *sql.DB, id string) error {
	if _, err := db.Exec(`DELETE FROM achievements WHERE goal_id = ?`, id); err != nil {
		return fmt.Errorf("delete goal achievements: %w", err)
	}
	res, err := db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete goal %q: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("goal %q not found", id)
	}
	return nil
}

// EngineGoal converts a stored goal row into the engine's closed-enum form.
func EngineGoal(g model.Goal) engine.Goal {
	return engine.Goal{
		ID:          g.ID,
		DatasetID:   g.DatasetID,
		CreatedAt:   g.CreatedAt,
		Type:        engine.GoalType(g.Type),
		Title:       g.Title,
		Description: g.Description,
		Badge:       g.Badge,
		Target: engine.GoalTarget{
			Metric:    engine.Metric(g.Metric),
			Source:    engine.Source(g.Source),
			Condition: engine.Condition(g.Condition),
			Value:     g.TargetValue,
		},
		TimePeriod:  engine.Period(g.TimePeriod),
		Count:       g.Count,
		Consecutive: g.Consecutive,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/aaronbeall/number-calendar/internal/engine"
	"github.com/aaronbeall/number-calendar/internal/model"
)

// BuildDatasetAggregates loads a dataset's day entries and rolls them up.
// Aggregates are derived and ephemeral; nothing here is persisted.
func BuildDatasetAggregates(db *sql.DB, dataset model.Dataset) (*engine.AggregateSet, error) {
	mode, err := engine.ParseTrackingMode(dataset.Mode)
	if err != nil {
		return nil, err
	}
	entries, err := ListDayEntries(db, dataset.ID)
	if err != nil {
		return nil, err
	}
	return engine.BuildAggregates(dataset.ID, mode, engineEntries(entries))
}

// EvaluateDataset evaluates every goal of a dataset against its current
// history.
func EvaluateDataset(db *sql.DB, dataset model.Dataset, now time.Time) ([]engine.GoalResult, error) {
	aggs, err := BuildDatasetAggregates(db, dataset)
	if err != nil {
		return nil, err
	}
	goals, err := ListGoals(db, dataset.ID)
	if err != nil {
		return nil, err
	}
	engineGoals := make([]engine.Goal, 0, len(goals))
	for _, g := range goals {
		engineGoals = append(engineGoals, EngineGoal(g))
	}
	return engine.EvaluateGoals(engineGoals, aggs, now)
}

// CheckNewAchievements evaluates a dataset, diffs the outcome against the
// recorded completions of earlier checks, records everything newly
// finalized, and returns the new completions. Provisional completions are
// neither recorded nor returned; they surface once their period closes.
func CheckNewAchievements(db *sql.DB, dataset model.Dataset, now time.Time) ([]engine.NewCompletion, error) {
	cur, err := EvaluateDataset(db, dataset, now)
	if err != nil {
		return nil, err
	}
	prev, err := recordedRun(db, dataset.ID, cur)
	if err != nil {
		return nil, err
	}
	news := engine.DiffRuns(prev, cur)
	for _, n := range news {
		if err := recordAchievement(db, dataset.ID, n.Achievement); err != nil {
			return nil, err
		}
	}
	return news, nil
}

// recordedRun reconstructs the previous run's results from the achievement
// log, shaped so the differ can compare it against the current run.
func recordedRun(db *sql.DB, datasetID string, cur []engine.GoalResult) ([]engine.GoalResult, error) {
	rows, err := db.Query(`
SELECT id, goal_id, period_key, occurrence, completed_at
FROM achievements
WHERE dataset_id = ?
`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("load recorded achievements: %w", err)
	}
	defer rows.Close()

	byGoal := make(map[string][]engine.AchievementResult)
	for rows.Next() {
		var a engine.AchievementResult
		if err := rows.Scan(&a.ID, &a.GoalID, &a.PeriodKey, &a.Occurrence, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan recorded achievement: %w", err)
		}
		byGoal[a.GoalID] = append(byGoal[a.GoalID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recorded achievements: %w", err)
	}

	prev := make([]engine.GoalResult, 0, len(cur))
	for _, r := range cur {
		achievements := byGoal[r.Goal.ID]
		if achievements == nil {
			achievements = []engine.AchievementResult{}
		}
		prev = append(prev, engine.GoalResult{
			Goal:           r.Goal,
			Achievements:   achievements,
			CompletedCount: len(achievements),
		})
	}
	return prev, nil
}

func recordAchievement(db *sql.DB, datasetID string, a engine.AchievementResult) error {
	if _, err := db.Exec(`
INSERT OR IGNORE INTO achievements(id, goal_id, dataset_id, period_key, occurrence, completed_at)
VALUES(?, ?, ?, ?, ?, ?)
`, a.ID, a.GoalID, datasetID, a.PeriodKey, a.Occurrence, a.CompletedAt); err != nil {
		return fmt.Errorf("record achievement %s: %w", a.ID, err)
	}
	return nil
}

func engineEntries(entries []model.DayEntry) []engine.DayEntry {
	out := make([]engine.DayEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, engine.DayEntry{
			Date:      e.Date,
			DatasetID: e.DatasetID,
			Numbers:   e.Numbers,
		})
	}
	return out
}

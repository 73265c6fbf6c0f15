package model

import "time"

type Dataset struct {
	ID        string
	Name      string
	Mode      string
	CreatedAt time.Time
}

type DayEntry struct {
	ID        int64
	DatasetID string
	Date      string
	Numbers   []float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Goal struct {
	ID          string
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
	CreatedAt   time.Time
}

// AchievementRecord is one finalized goal completion, persisted so a later
// evaluation pass can tell which completions are new.
type AchievementRecord struct {
	ID          string
	GoalID      string
	DatasetID   string
	PeriodKey   string
	Occurrence  int
	CompletedAt string
	RecordedAt  time.Time
}

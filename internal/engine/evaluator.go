package engine

import (
	"fmt"
	"time"
)

// AchievementResult is one recorded or in-progress goal completion.
type AchievementResult struct {
	ID          string `json:"id"`
	GoalID      string `json:"goal_id"`
	PeriodKey   string `json:"period_key"`
	Occurrence  int    `json:"occurrence"`
	CompletedAt string `json:"completed_at,omitempty"`
	Provisional bool   `json:"provisional,omitempty"`
}

// GoalResult is the full evaluation of one goal against one dataset's
// history. CompletedCount counts only finalized, non-provisional
// achievements.
type GoalResult struct {
	Goal           Goal                `json:"goal"`
	Achievements   []AchievementResult `json:"achievements"`
	CompletedCount int                 `json:"completed_count"`
}

// AchievementID builds the deterministic identity of one completion
// occurrence, stable across evaluation runs so the differ can recognize the
// same occurrence again.
func AchievementID(goalID, anchorKey string, occurrence int) string {
	return fmt.Sprintf("%s:%s:%d", goalID, anchorKey, occurrence)
}

// EvaluateGoals evaluates every goal against the dataset's aggregates.
// Results keep the input goal order.
func EvaluateGoals(goals []Goal, aggs *AggregateSet, now time.Time) ([]GoalResult, error) {
	results := make([]GoalResult, 0, len(goals))
	for _, goal := range goals {
		r, err := EvaluateGoal(goal, aggs, now)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// EvaluateGoal walks the goal's granularity in chronological order and emits
// every completion, final and provisional. It is a pure function of the goal,
// the aggregates, and the evaluation time; no state survives across calls.
func EvaluateGoal(goal Goal, aggs *AggregateSet, now time.Time) (*GoalResult, error) {
	if aggs == nil {
		return nil, fmt.Errorf("evaluate goal %q: no aggregates", goal.ID)
	}
	if goal.DatasetID != aggs.DatasetID {
		return nil, fmt.Errorf("evaluate goal %q: goal dataset %q does not match aggregates dataset %q", goal.ID, goal.DatasetID, aggs.DatasetID)
	}
	if goal.TimePeriod == PeriodAnytime {
		return evaluateAnytime(goal, aggs, now)
	}
	switch goal.TimePeriod {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
	default:
		return nil, fmt.Errorf("evaluate goal %q: invalid time period %q", goal.ID, goal.TimePeriod)
	}
	if goal.Count < 1 {
		return nil, fmt.Errorf("evaluate goal %q: count must be >= 1", goal.ID)
	}
	gset := aggs.Granularity(goal.TimePeriod)
	if gset == nil {
		return nil, fmt.Errorf("evaluate goal %q: no %s aggregates available", goal.ID, goal.TimePeriod)
	}

	result := &GoalResult{Goal: goal, Achievements: []AchievementResult{}}
	if len(gset.Keys) == 0 {
		return result, nil
	}

	// Walk every period from the first logged one through the period
	// containing now, empty periods included: a gap fails a streak rather
	// than pausing it.
	p := goal.TimePeriod
	start := gset.ByKey[gset.Keys[0]].Start
	endStart := PeriodStart(p, now)
	if last := gset.ByKey[gset.Keys[len(gset.Keys)-1]].Start; last.After(endStart) {
		endStart = last
	}

	good := 0
	run := 0
	for cur := start; !cur.After(endStart); cur = NextPeriodStart(p, cur) {
		agg := gset.ByKey[PeriodKey(p, cur)]
		matched := MatchesTarget(goal.Target, agg)

		complete := false
		if goal.Consecutive {
			if matched {
				run++
				complete = run == goal.Count
			} else {
				run = 0
			}
		} else if matched {
			good++
			complete = good%goal.Count == 0
		}
		if complete {
			result.Achievements = append(result.Achievements, newAchievement(goal, p, cur, len(result.Achievements)+1, now))
		}
	}
	result.CompletedCount = countFinal(result.Achievements)
	return result, nil
}

// evaluateAnytime finds the first day whose cumulative history crosses the
// goal's threshold. Milestones complete at most once.
func evaluateAnytime(goal Goal, aggs *AggregateSet, now time.Time) (*GoalResult, error) {
	if aggs.Days == nil {
		return nil, fmt.Errorf("evaluate goal %q: no day aggregates available", goal.ID)
	}
	result := &GoalResult{Goal: goal, Achievements: []AchievementResult{}}
	for _, key := range aggs.Days.Keys {
		agg := aggs.Days.ByKey[key]
		if !matchesCumulativeTarget(goal.Target, agg, agg.Numbers) {
			continue
		}
		result.Achievements = append(result.Achievements, newAchievement(goal, PeriodDay, agg.Start, 1, now))
		break
	}
	result.CompletedCount = countFinal(result.Achievements)
	return result, nil
}

func newAchievement(goal Goal, p Period, periodStart time.Time, occurrence int, now time.Time) AchievementResult {
	key := PeriodKey(p, periodStart)
	a := AchievementResult{
		ID:         AchievementID(goal.ID, key, occurrence),
		GoalID:     goal.ID,
		PeriodKey:  key,
		Occurrence: occurrence,
	}
	if PeriodClosed(p, periodStart, now) {
		a.CompletedAt = DayKey(NextPeriodStart(p, periodStart).AddDate(0, 0, -1))
	} else {
		// The completing period has not ended yet; the completion stays
		// provisional and is re-derived (and may disappear) on the next
		// run.
		a.Provisional = true
	}
	return a
}

func countFinal(achievements []AchievementResult) int {
	n := 0
	for _, a := range achievements {
		if !a.Provisional {
			n++
		}
	}
	return n
}

// ResultsByType groups results for rendering, keyed milestone/target/goal.
func ResultsByType(results []GoalResult) map[GoalType][]GoalResult {
	out := make(map[GoalType][]GoalResult)
	for _, r := range results {
		out[r.Goal.Type] = append(out[r.Goal.Type], r)
	}
	return out
}

package engine

// NewCompletion is one achievement that transitioned into the finalized
// state between two evaluation runs. FirstForGoal marks the goal's
// first-ever completion, which downstream presentation promotes to the
// prominent channel; later completions go to the lightweight one.
type NewCompletion struct {
	Goal         Goal              `json:"goal"`
	Achievement  AchievementResult `json:"achievement"`
	FirstForGoal bool              `json:"first_for_goal"`
}

// DiffRuns compares the previous run's results against the current run's and
// returns every achievement whose completion finalized since. Provisional
// completions are never reported; they surface only once their period closes
// and they survive re-evaluation. A nil previous run treats every finalized
// completion as new.
func DiffRuns(prev, cur []GoalResult) []NewCompletion {
	prevFinal := make(map[string]map[string]bool, len(prev))
	for _, r := range prev {
		ids := make(map[string]bool, len(r.Achievements))
		for _, a := range r.Achievements {
			if a.CompletedAt != "" {
				ids[a.ID] = true
			}
		}
		prevFinal[r.Goal.ID] = ids
	}

	out := make([]NewCompletion, 0)
	for _, r := range cur {
		known := prevFinal[r.Goal.ID]
		seenBefore := len(known) > 0
		for _, a := range r.Achievements {
			if a.CompletedAt == "" || known[a.ID] {
				continue
			}
			out = append(out, NewCompletion{
				Goal:         r.Goal,
				Achievement:  a,
				FirstForGoal: !seenBefore,
			})
			seenBefore = true
		}
	}
	return out
}

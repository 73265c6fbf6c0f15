package engine

// RebuildAggregates recomputes a dataset's aggregates after its day entries
// changed, reusing prior aggregate objects wherever the change cannot have
// reached them. The caller supplies the previous aggregate set and the
// snapshot of entries it was built from; both cross-call inputs are
// explicit, the engine holds no state between calls.
//
// Reuse rule: once the earliest changed day is known, every period of every
// granularity that ends before that day is untouched (its numbers, stats,
// deltas, and cumulatives all derive from unchanged history) and keeps its
// previous object. Every period at or after that day is rebuilt, even when
// its own numbers are unchanged, because its cumulatives are prefix sums
// over everything before it. The all-time bucket is always rebuilt.
//
// Extremes propagate differently: a granularity with any rebuilt aggregate
// gets a fresh extremes object, and every sibling of that granularity is
// pointed at it, reused aggregates included.
func RebuildAggregates(prev *AggregateSet, prevEntries, entries []DayEntry, datasetID string, mode TrackingMode) (*AggregateSet, error) {
	if prev == nil || prev.DatasetID != datasetID || prev.Mode != mode {
		return BuildAggregates(datasetID, mode, entries)
	}

	firstChanged, changed := firstChangedDay(prevEntries, entries)
	if !changed {
		return prev, nil
	}

	next, err := BuildAggregates(datasetID, mode, entries)
	if err != nil {
		return nil, err
	}

	changedDate, err := ParseDayKey(firstChanged)
	if err != nil {
		return nil, err
	}

	for _, p := range []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear} {
		gset := next.Granularity(p)
		prevSet := prev.Granularity(p)
		cut := PeriodKey(p, changedDate)
		for _, key := range gset.Keys {
			if key >= cut {
				break
			}
			if kept, ok := prevSet.ByKey[key]; ok {
				kept.Extremes = gset.Extremes
				gset.ByKey[key] = kept
			}
		}
	}
	return next, nil
}

// firstChangedDay diffs two day-entry snapshots and returns the earliest day
// key whose numbers differ (added, removed, or edited).
func firstChangedDay(prevEntries, entries []DayEntry) (string, bool) {
	prev := snapshotByDay(prevEntries)
	next := snapshotByDay(entries)

	first := ""
	for date, numbers := range next {
		if sameNumbers(prev[date], numbers) {
			continue
		}
		if first == "" || date < first {
			first = date
		}
	}
	for date, numbers := range prev {
		if _, ok := next[date]; ok {
			continue
		}
		if len(numbers) == 0 {
			continue
		}
		if first == "" || date < first {
			first = date
		}
	}
	return first, first != ""
}

func snapshotByDay(entries []DayEntry) map[string][]float64 {
	out := make(map[string][]float64, len(entries))
	for _, e := range entries {
		if len(e.Numbers) == 0 {
			continue
		}
		out[e.Date] = e.Numbers
	}
	return out
}

func sameNumbers(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package engine

import (
	"fmt"
	"sort"
	"time"
)

// TrackingMode controls how a dataset's numbers are interpreted.
type TrackingMode string

const (
	// ModeSeries treats numbers as independent contributions that sum.
	ModeSeries TrackingMode = "series"
	// ModeTrend treats numbers as point-in-time readings of one quantity;
	// the last reading and the delta between last readings are the
	// meaningful metrics.
	ModeTrend TrackingMode = "trend"
)

func ParseTrackingMode(s string) (TrackingMode, error) {
	switch TrackingMode(s) {
	case ModeSeries, ModeTrend:
		return TrackingMode(s), nil
	default:
		return "", fmt.Errorf("invalid tracking mode %q (use series|trend)", s)
	}
}

// DayEntry is the engine-side view of one day's logged numbers. Numbers are
// ordered by entry time and never empty for a persisted entry; empty lists
// are tolerated and simply produce no day aggregate.
type DayEntry struct {
	Date      string
	DatasetID string
	Numbers   []float64
}

// MetricValues holds one optional value per metric. A nil field means the
// value is not defined for this aggregate (no prior period, zero prior for a
// percent, series-mode deltas).
type MetricValues struct {
	Count  *float64 `json:"count,omitempty"`
	Total  *float64 `json:"total,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Last   *float64 `json:"last,omitempty"`
}

// PeriodAggregate is the rolled-up view of one period bucket. Aggregates
// exist only for periods with at least one number, so Stats is always
// non-nil and Stats.Count > 0.
type PeriodAggregate struct {
	Key      string        `json:"key"`
	Period   Period        `json:"period"`
	Start    time.Time     `json:"start"`
	Numbers  []float64     `json:"numbers"`
	Stats    *NumberStats  `json:"stats"`
	Deltas   *MetricValues `json:"deltas,omitempty"`
	Percents *MetricValues `json:"percents,omitempty"`

	// Cumulative summarizes every number from the beginning of history
	// through this period, within this granularity.
	Cumulative         *NumberStats  `json:"cumulative"`
	CumulativeDeltas   *MetricValues `json:"cumulative_deltas,omitempty"`
	CumulativePercents *MetricValues `json:"cumulative_percents,omitempty"`

	// Extremes is shared by every sibling aggregate of the same
	// granularity; the pointer changes whenever any sibling is rebuilt.
	Extremes *StatsExtremes `json:"-"`
}

// Last returns the final raw number of the period, ordered by entry time.
func (a *PeriodAggregate) Last() float64 {
	return a.Numbers[len(a.Numbers)-1]
}

// GranularitySet holds every aggregate of one granularity in chronological
// order plus the shared extremes for that granularity.
type GranularitySet struct {
	Period   Period
	Keys     []string
	ByKey    map[string]*PeriodAggregate
	Extremes *StatsExtremes
}

func (g *GranularitySet) ordered() []*PeriodAggregate {
	out := make([]*PeriodAggregate, 0, len(g.Keys))
	for _, k := range g.Keys {
		out = append(out, g.ByKey[k])
	}
	return out
}

// AggregateSet is the full rolled-up state of one dataset.
type AggregateSet struct {
	DatasetID string
	Mode      TrackingMode
	Days      *GranularitySet
	Weeks     *GranularitySet
	Months    *GranularitySet
	Years     *GranularitySet
	AllTime   *GranularitySet
}

// Granularity returns the set for p, or nil when p is not a rollup
// granularity.
func (s *AggregateSet) Granularity(p Period) *GranularitySet {
	switch p {
	case PeriodDay:
		return s.Days
	case PeriodWeek:
		return s.Weeks
	case PeriodMonth:
		return s.Months
	case PeriodYear:
		return s.Years
	case PeriodAllTime:
		return s.AllTime
	default:
		return nil
	}
}

// BuildAggregates rolls a dataset's day entries into day, week, month, year,
// and all-time aggregates. Entries may arrive in any order and may be
// sparse; duplicate dates keep the last entry seen.
func BuildAggregates(datasetID string, mode TrackingMode, entries []DayEntry) (*AggregateSet, error) {
	days := make([]DayEntry, 0, len(entries))
	byDate := make(map[string]int)
	for _, e := range entries {
		if len(e.Numbers) == 0 {
			continue
		}
		if _, err := ParseDayKey(e.Date); err != nil {
			return nil, err
		}
		if i, ok := byDate[e.Date]; ok {
			days[i] = e
			continue
		}
		byDate[e.Date] = len(days)
		days = append(days, e)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	set := &AggregateSet{DatasetID: datasetID, Mode: mode}
	set.Days = buildGranularity(PeriodDay, days, mode)
	set.Weeks = buildGranularity(PeriodWeek, days, mode)
	set.Months = buildGranularity(PeriodMonth, days, mode)
	set.Years = buildGranularity(PeriodYear, days, mode)
	set.AllTime = buildGranularity(PeriodAllTime, days, mode)
	return set, nil
}

// buildGranularity folds chronologically sorted day entries into one
// granularity: bucket by period key, concatenate child numbers in day order,
// then attach stats, cumulatives, deltas, and percents down the chain.
func buildGranularity(p Period, days []DayEntry, mode TrackingMode) *GranularitySet {
	set := &GranularitySet{Period: p, ByKey: make(map[string]*PeriodAggregate)}
	for _, d := range days {
		date, _ := ParseDayKey(d.Date)
		key := PeriodKey(p, date)
		agg, ok := set.ByKey[key]
		if !ok {
			agg = &PeriodAggregate{Key: key, Period: p, Start: PeriodStart(p, date)}
			if p == PeriodAllTime {
				agg.Start = date
			}
			set.ByKey[key] = agg
			set.Keys = append(set.Keys, key)
		}
		agg.Numbers = append(agg.Numbers, d.Numbers...)
	}

	running := make([]float64, 0)
	var prev *PeriodAggregate
	for _, key := range set.Keys {
		agg := set.ByKey[key]
		agg.Stats = ComputeStats(agg.Numbers)
		running = append(running, agg.Numbers...)
		agg.Cumulative = ComputeStats(running)
		if prev != nil {
			if mode == ModeTrend {
				agg.Deltas = deltaValues(agg, prev)
				agg.Percents = percentValues(agg.Deltas, prev)
			}
			agg.CumulativeDeltas = cumulativeDeltaValues(agg, prev)
			agg.CumulativePercents = cumulativePercentValues(agg.CumulativeDeltas, prev)
		}
		prev = agg
	}

	set.Extremes = computeExtremes(set.ordered())
	for _, key := range set.Keys {
		set.ByKey[key].Extremes = set.Extremes
	}
	return set
}

func fptr(v float64) *float64 { return &v }

// deltaValues compares each metric of this period against the immediately
// preceding non-empty period of the same granularity. Gaps are skipped, not
// zero-filled: prev is always the previous aggregate that actually exists.
func deltaValues(cur, prev *PeriodAggregate) *MetricValues {
	return &MetricValues{
		Count:  fptr(float64(cur.Stats.Count - prev.Stats.Count)),
		Total:  fptr(cur.Stats.Total - prev.Stats.Total),
		Mean:   fptr(cur.Stats.Mean - prev.Stats.Mean),
		Median: fptr(cur.Stats.Median - prev.Stats.Median),
		Min:    fptr(cur.Stats.Min - prev.Stats.Min),
		Max:    fptr(cur.Stats.Max - prev.Stats.Max),
		Last:   fptr(cur.Last() - prev.Last()),
	}
}

// percentValues divides each delta by the absolute prior value. A zero or
// absent prior omits the percent entirely; the engine never emits Inf or NaN.
func percentValues(deltas *MetricValues, prev *PeriodAggregate) *MetricValues {
	return &MetricValues{
		Count:  pct(deltas.Count, float64(prev.Stats.Count)),
		Total:  pct(deltas.Total, prev.Stats.Total),
		Mean:   pct(deltas.Mean, prev.Stats.Mean),
		Median: pct(deltas.Median, prev.Stats.Median),
		Min:    pct(deltas.Min, prev.Stats.Min),
		Max:    pct(deltas.Max, prev.Stats.Max),
		Last:   pct(deltas.Last, prev.Last()),
	}
}

func cumulativeDeltaValues(cur, prev *PeriodAggregate) *MetricValues {
	return &MetricValues{
		Count:  fptr(float64(cur.Cumulative.Count - prev.Cumulative.Count)),
		Total:  fptr(cur.Cumulative.Total - prev.Cumulative.Total),
		Mean:   fptr(cur.Cumulative.Mean - prev.Cumulative.Mean),
		Median: fptr(cur.Cumulative.Median - prev.Cumulative.Median),
		Min:    fptr(cur.Cumulative.Min - prev.Cumulative.Min),
		Max:    fptr(cur.Cumulative.Max - prev.Cumulative.Max),
		Last:   fptr(cur.Last() - prev.Last()),
	}
}

func cumulativePercentValues(deltas *MetricValues, prev *PeriodAggregate) *MetricValues {
	return &MetricValues{
		Count:  pct(deltas.Count, float64(prev.Cumulative.Count)),
		Total:  pct(deltas.Total, prev.Cumulative.Total),
		Mean:   pct(deltas.Mean, prev.Cumulative.Mean),
		Median: pct(deltas.Median, prev.Cumulative.Median),
		Min:    pct(deltas.Min, prev.Cumulative.Min),
		Max:    pct(deltas.Max, prev.Cumulative.Max),
		Last:   pct(deltas.Last, prev.Last()),
	}
}

func pct(delta *float64, prior float64) *float64 {
	if delta == nil || prior == 0 {
		return nil
	}
	if prior < 0 {
		prior = -prior
	}
	return fptr(*delta / prior * 100)
}

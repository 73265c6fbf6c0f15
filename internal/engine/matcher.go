package engine

import (
	"fmt"
	"math"
	"time"
)

// Metric names one statistic of a period. The set is closed; every
// metric/source combination resolves through explicit branching below.
type Metric string

const (
	MetricCount  Metric = "count"
	MetricTotal  Metric = "total"
	MetricMean   Metric = "mean"
	MetricMedian Metric = "median"
	MetricMin    Metric = "min"
	MetricMax    Metric = "max"
	MetricLast   Metric = "last"
)

// Source names which computed series of a period the metric is read from.
type Source string

const (
	SourceStats    Source = "stats"
	SourceDeltas   Source = "deltas"
	SourcePercents Source = "percents"
)

// Condition compares the resolved value against the target value. Both
// comparisons are strict: landing exactly on the target does not satisfy it.
type Condition string

const (
	ConditionAbove Condition = "above"
	ConditionBelow Condition = "below"
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricCount, MetricTotal, MetricMean, MetricMedian, MetricMin, MetricMax, MetricLast:
		return Metric(s), nil
	default:
		return "", fmt.Errorf("invalid metric %q (use count|total|mean|median|min|max|last)", s)
	}
}

func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceStats, SourceDeltas, SourcePercents:
		return Source(s), nil
	default:
		return "", fmt.Errorf("invalid source %q (use stats|deltas|percents)", s)
	}
}

func ParseCondition(s string) (Condition, error) {
	switch Condition(s) {
	case ConditionAbove, ConditionBelow:
		return Condition(s), nil
	default:
		return "", fmt.Errorf("invalid condition %q (use above|below)", s)
	}
}

// GoalTarget is one goal's condition over one period metric.
type GoalTarget struct {
	Metric    Metric    `json:"metric"`
	Source    Source    `json:"source"`
	Condition Condition `json:"condition"`
	Value     float64   `json:"value"`
}

// GoalType classifies how a goal is presented; milestones are evaluated
// anytime against cumulative history, targets and goals against calendar
// periods.
type GoalType string

const (
	GoalTypeMilestone GoalType = "milestone"
	GoalTypeTarget    GoalType = "target"
	GoalTypeGoal      GoalType = "goal"
)

func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalTypeMilestone, GoalTypeTarget, GoalTypeGoal:
		return GoalType(s), nil
	default:
		return "", fmt.Errorf("invalid goal type %q (use milestone|target|goal)", s)
	}
}

// Goal is a user- or generator-created achievement definition. Identity is
// immutable once created.
type Goal struct {
	ID          string     `json:"id"`
	DatasetID   string     `json:"dataset_id"`
	CreatedAt   time.Time  `json:"created_at"`
	Type        GoalType   `json:"type"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Badge       string     `json:"badge"`
	Target      GoalTarget `json:"target"`
	TimePeriod  Period     `json:"time_period"`
	Count       int        `json:"count"`
	Consecutive bool       `json:"consecutive"`
}

// MatchesTarget reports whether one period satisfies a goal target. A period
// with no resolvable value for the metric/source combination never
// satisfies; that is not an error.
func MatchesTarget(target GoalTarget, agg *PeriodAggregate) bool {
	if agg == nil {
		return false
	}
	value, ok := resolveMetric(target, agg.Stats, agg.Deltas, agg.Percents, agg.Numbers)
	if !ok {
		return false
	}
	return compare(target.Condition, value, target.Value)
}

// matchesCumulativeTarget applies the target to the period's cumulative
// series instead of its raw one. Milestone (anytime) goals use this to find
// the first period whose running history crosses the threshold.
func matchesCumulativeTarget(target GoalTarget, agg *PeriodAggregate, running []float64) bool {
	if agg == nil {
		return false
	}
	value, ok := resolveMetric(target, agg.Cumulative, agg.CumulativeDeltas, agg.CumulativePercents, running)
	if !ok {
		return false
	}
	return compare(target.Condition, value, target.Value)
}

func resolveMetric(target GoalTarget, stats *NumberStats, deltas, percents *MetricValues, numbers []float64) (float64, bool) {
	switch target.Source {
	case SourceStats:
		if stats == nil {
			return 0, false
		}
		switch target.Metric {
		case MetricCount:
			return float64(stats.Count), true
		case MetricTotal:
			return stats.Total, true
		case MetricMean:
			return checked(stats.Mean)
		case MetricMedian:
			return checked(stats.Median)
		case MetricMin:
			return checked(stats.Min)
		case MetricMax:
			return checked(stats.Max)
		case MetricLast:
			if len(numbers) == 0 {
				return 0, false
			}
			return checked(numbers[len(numbers)-1])
		}
	case SourceDeltas:
		return metricValue(target.Metric, deltas)
	case SourcePercents:
		return metricValue(target.Metric, percents)
	}
	return 0, false
}

func metricValue(m Metric, values *MetricValues) (float64, bool) {
	if values == nil {
		return 0, false
	}
	var v *float64
	switch m {
	case MetricCount:
		v = values.Count
	case MetricTotal:
		v = values.Total
	case MetricMean:
		v = values.Mean
	case MetricMedian:
		v = values.Median
	case MetricMin:
		v = values.Min
	case MetricMax:
		v = values.Max
	case MetricLast:
		v = values.Last
	}
	if v == nil {
		return 0, false
	}
	return checked(*v)
}

func checked(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func compare(c Condition, value, target float64) bool {
	switch c {
	case ConditionAbove:
		return value > target
	case ConditionBelow:
		return value < target
	default:
		return false
	}
}

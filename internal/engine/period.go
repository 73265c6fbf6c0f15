package engine

import (
	"fmt"
	"time"
)

// Period is a bucket size over which logged numbers are aggregated.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodYear    Period = "year"
	PeriodAllTime Period = "alltime"

	// PeriodAnytime is only valid as a goal time period; it means the goal
	// is evaluated against the cumulative all-time history rather than any
	// calendar bucket.
	PeriodAnytime Period = "anytime"
)

// AllTimeKey is the single key of the all-time granularity.
const AllTimeKey = "alltime"

const dayKeyLayout = "2006-01-02"

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAllTime:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid period %q (use day|week|month|year|alltime)", s)
	}
}

func ParseGoalPeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear, PeriodAnytime:
		return Period(s), nil
	default:
		return "", fmt.Errorf("invalid goal time period %q (use day|week|month|year|anytime)", s)
	}
}

// ParseDayKey parses a YYYY-MM-DD day key. All engine date math happens in
// UTC; day keys are calendar dates, not instants.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dayKeyLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day key %q (expected YYYY-MM-DD)", key)
	}
	return t, nil
}

func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

func YearKey(t time.Time) string {
	return t.Format("2006")
}

// PeriodKey returns the canonical key of the period bucket containing t.
func PeriodKey(p Period, t time.Time) string {
	switch p {
	case PeriodDay:
		return DayKey(t)
	case PeriodWeek:
		return WeekKey(t)
	case PeriodMonth:
		return MonthKey(t)
	case PeriodYear:
		return YearKey(t)
	default:
		return AllTimeKey
	}
}

// PeriodStart returns the first day of the period bucket containing t.
func PeriodStart(p Period, t time.Time) time.Time {
	switch p {
	case PeriodDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodWeek:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := t.AddDate(0, 0, -(weekday - 1))
		return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	case PeriodMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case PeriodYear:
		return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}
	}
}

// NextPeriodStart returns the start of the period after the one starting at
// start. It is also the exclusive end of that period: a period is closed once
// evaluation time reaches its NextPeriodStart.
func NextPeriodStart(p Period, start time.Time) time.Time {
	switch p {
	case PeriodDay:
		return start.AddDate(0, 0, 1)
	case PeriodWeek:
		return start.AddDate(0, 0, 7)
	case PeriodMonth:
		return start.AddDate(0, 1, 0)
	case PeriodYear:
		return start.AddDate(1, 0, 0)
	default:
		return start
	}
}

// PeriodClosed reports whether the period containing anchor has fully ended
// as of now. The all-time bucket never closes.
func PeriodClosed(p Period, anchor, now time.Time) bool {
	if p == PeriodAllTime || p == PeriodAnytime {
		return false
	}
	end := NextPeriodStart(p, PeriodStart(p, anchor))
	return !now.Before(end)
}

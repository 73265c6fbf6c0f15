package engine

// StatsExtremes holds the observed bounds of every metric across all sibling
// aggregates of one granularity. Downstream display logic uses it to scale
// intensity; the evaluator reads it for relative targets. Every sibling
// shares one StatsExtremes pointer, so a consumer can tell the bounds moved
// by comparing pointers instead of fields.
type StatsExtremes struct {
	HighestCount  int     `json:"highest_count"`
	LowestCount   int     `json:"lowest_count"`
	HighestTotal  float64 `json:"highest_total"`
	LowestTotal   float64 `json:"lowest_total"`
	HighestMean   float64 `json:"highest_mean"`
	LowestMean    float64 `json:"lowest_mean"`
	HighestMedian float64 `json:"highest_median"`
	LowestMedian  float64 `json:"lowest_median"`
	HighestMin    float64 `json:"highest_min"`
	LowestMin     float64 `json:"lowest_min"`
	HighestMax    float64 `json:"highest_max"`
	LowestMax     float64 `json:"lowest_max"`
}

// computeExtremes scans same-granularity aggregates in any order. Returns
// nil when there are no aggregates.
func computeExtremes(aggs []*PeriodAggregate) *StatsExtremes {
	if len(aggs) == 0 {
		return nil
	}
	first := aggs[0].Stats
	ex := &StatsExtremes{
		HighestCount: first.Count, LowestCount: first.Count,
		HighestTotal: first.Total, LowestTotal: first.Total,
		HighestMean: first.Mean, LowestMean: first.Mean,
		HighestMedian: first.Median, LowestMedian: first.Median,
		HighestMin: first.Min, LowestMin: first.Min,
		HighestMax: first.Max, LowestMax: first.Max,
	}
	for _, a := range aggs[1:] {
		s := a.Stats
		if s.Count > ex.HighestCount {
			ex.HighestCount = s.Count
		}
		if s.Count < ex.LowestCount {
			ex.LowestCount = s.Count
		}
		ex.HighestTotal, ex.LowestTotal = bound(ex.HighestTotal, ex.LowestTotal, s.Total)
		ex.HighestMean, ex.LowestMean = bound(ex.HighestMean, ex.LowestMean, s.Mean)
		ex.HighestMedian, ex.LowestMedian = bound(ex.HighestMedian, ex.LowestMedian, s.Median)
		ex.HighestMin, ex.LowestMin = bound(ex.HighestMin, ex.LowestMin, s.Min)
		ex.HighestMax, ex.LowestMax = bound(ex.HighestMax, ex.LowestMax, s.Max)
	}
	return ex
}

func bound(high, low, v float64) (float64, float64) {
	if v > high {
		high = v
	}
	if v < low {
		low = v
	}
	return high, low
}

package embednet

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultPercentiles are the quantiles reported by Summary.Stats when
// Summary.Percentiles is nil.
var DefaultPercentiles = []float64{0.01, 0.05, 0.25, 0.5, 0.75, 0.95, 0.99}

// AllPercentiles returns the quantiles 0.01, 0.02, ..., 0.99.
func AllPercentiles() []float64 {
	ps := make([]float64, 99)
	for i := range ps {
		ps[i] = float64(i+1) / 100
	}
	return ps
}

// Summary collects distances for descriptive statistics. A nil *Summary
// discards all values. Summary is not safe for concurrent use.
type Summary struct {
	// Percentiles are the quantiles to report, DefaultPercentiles if nil.
	Percentiles []float64

	values []float64
}

func (s *Summary) Add(dist float64) {
	if s == nil {
		return
	}

	s.values = append(s.values, dist)
}

func (s *Summary) Len() int {
	if s == nil {
		return 0
	}

	return len(s.values)
}

type Percentile struct {
	P     float64
	Value float64
}

type SummaryStats struct {
	Count       int
	Min         float64
	Max         float64
	Mean        float64
	StdDev      float64
	Percentiles []Percentile
}

// Stats computes statistics over the collected distances. ok is false if
// no distances were collected.
func (s *Summary) Stats() (stats SummaryStats, ok bool) {
	if s.Len() == 0 {
		return SummaryStats{}, false
	}

	sorted := make([]float64, len(s.values))
	copy(sorted, s.values)
	sort.Float64s(sorted)

	stats = SummaryStats{
		Count: len(sorted),
		Min:   floats.Min(sorted),
		Max:   floats.Max(sorted),
		Mean:  stat.Mean(sorted, nil),
	}

	if len(sorted) > 1 {
		stats.StdDev = stat.StdDev(sorted, nil)
	}

	ps := s.Percentiles
	if ps == nil {
		ps = DefaultPercentiles
	}

	for _, p := range ps {
		stats.Percentiles = append(stats.Percentiles, Percentile{
			P:     p,
			Value: stat.Quantile(p, stat.Empirical, sorted, nil),
		})
	}

	return stats, true
}

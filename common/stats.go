package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats is a growable, sortable sample of float64 observations. It plays
// the same role the teacher's common.Stats does (a slice with Update/Mean
// built on gonum/stat), generalized with an exact-percentile method: the
// harness's invariants (spec §8) require percentiles computed by indexing
// a sorted sample directly, never gonum's interpolated stat.Quantile.
type Stats []float64

// Update appends one observation.
func (s *Stats) Update(v float64) { *s = append(*s, v) }

// Count returns the sample size.
func (s Stats) Count() int { return len(s) }

// Sorted returns a sorted copy, leaving the receiver untouched.
func (s Stats) Sorted() Stats {
	c := make(Stats, len(s))
	copy(c, s)
	sort.Float64s(c)
	return c
}

// Percentile implements the fixed, testable percentile formula from
// spec §4.G: given a sample already sorted ascending, P_p =
// s[clamp(ceil(p*n/100)-1, 0, n-1)]. For n == 0, returns 0. The caller is
// responsible for sorting (via Sorted) exactly once per distribution
// rather than once per percentile.
func (sorted Stats) Percentile(p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	idx := int(math.Ceil(p*float64(n)/100)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

// Mean delegates to gonum/stat, matching the teacher's common.Stats.Mean.
func (s Stats) Mean() float64 {
	if len(s) == 0 {
		return 0
	}
	return stat.Mean(s, nil)
}

// MeanStdDev returns the sample mean and the unbiased (n-1) sample standard
// deviation via gonum/stat.MeanStdDev, grounded verbatim on the teacher's
// common.Stats.Summary, which calls the same function.
func (s Stats) MeanStdDev() (mean, stddev float64) {
	if len(s) == 0 {
		return 0, 0
	}
	return stat.MeanStdDev(s, nil)
}

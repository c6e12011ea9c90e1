package analysis

import (
	"math"
	"sort"
)

// describe computes the distribution summary of a sample set. An empty set
// yields all zeros; no statistic here is ever undefined.
func describe(samples []float64) Distribution {
	if len(samples) == 0 {
		return Distribution{}
	}

	sorted := make([]float64, len(samples))
	copy(sorted, samples)
	sort.Float64s(sorted)

	var sum float64
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(len(sorted))

	// Population standard deviation.
	var sq float64
	for _, s := range sorted {
		d := s - mean
		sq += d * d
	}
	std := math.Sqrt(sq / float64(len(sorted)))

	return Distribution{
		Mean:   mean,
		Median: median(sorted),
		Std:    std,
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

// median of an already-sorted sample set; the mean of the two middle values
// for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

package analysis

import (
	"sort"

	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

// SilenceSummary describes the pause structure of a recording: the spans in
// which neither speaker has a detected speech interval.
type SilenceSummary struct {
	Total   float64
	Count   int
	Avg     float64
	Longest float64
}

// ComputeSilence merges all intervals from both speakers into a single
// overlap-free timeline and measures the gaps: between consecutive merged
// intervals, before the first, and after the last relative to the total
// duration. A recording with no detected speech is one pause spanning the
// whole duration (count 1 when duration > 0, else 0).
func ComputeSilence(a, b []vad.Interval, duration float64) SilenceSummary {
	all := make([]vad.Interval, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	sort.Slice(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End < all[j].End
	})

	if len(all) == 0 {
		count := 0
		if duration > 0 {
			count = 1
		}
		return SilenceSummary{Total: duration, Count: count, Avg: duration, Longest: duration}
	}

	// Merge touching or overlapping intervals regardless of speaker.
	merged := []vad.Interval{all[0]}
	for _, iv := range all[1:] {
		prev := &merged[len(merged)-1]
		if iv.Start <= prev.End {
			if iv.End > prev.End {
				prev.End = iv.End
			}
		} else {
			merged = append(merged, iv)
		}
	}

	var pauses []float64
	if merged[0].Start > 0 {
		pauses = append(pauses, merged[0].Start)
	}
	for i := 1; i < len(merged); i++ {
		gap := merged[i].Start - merged[i-1].End
		if gap > 0 {
			pauses = append(pauses, gap)
		}
	}
	if tail := duration - merged[len(merged)-1].End; tail > 0 {
		pauses = append(pauses, tail)
	}

	var sum SilenceSummary
	sum.Count = len(pauses)
	for _, p := range pauses {
		sum.Total += p
		if p > sum.Longest {
			sum.Longest = p
		}
	}
	if len(pauses) > 0 {
		sum.Avg = sum.Total / float64(len(pauses))
	}
	return sum
}

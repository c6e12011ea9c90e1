package analysis

import (
	"sort"

	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

// DetectInterruptions finds every point where one speaker starts speaking
// strictly inside the other speaker's still-open interval. The test runs in
// both directions so mutual interruptions are all captured, and each
// interrupting interval produces at most one record: the first interval of
// the other speaker (in interval order) that it starts inside.
//
// The result is sorted ascending by start time.
func DetectInterruptions(a, b []vad.Interval, labelA, labelB string) []Interruption {
	var interruptions []Interruption
	interruptions = append(interruptions, interruptionsBy(b, a, labelB, labelA)...)
	interruptions = append(interruptions, interruptionsBy(a, b, labelA, labelB)...)

	sort.Slice(interruptions, func(i, j int) bool {
		return interruptions[i].StartTime < interruptions[j].StartTime
	})
	return interruptions
}

// interruptionsBy reports intervals of the interrupter that start strictly
// inside an interval of the interrupted speaker.
func interruptionsBy(interrupter, interrupted []vad.Interval, byLabel, ofLabel string) []Interruption {
	var out []Interruption
	for _, x := range interrupter {
		for _, y := range interrupted {
			if x.Start > y.Start && x.Start < y.End {
				out = append(out, Interruption{
					Interrupter:         byLabel,
					Interrupted:         ofLabel,
					StartTime:           x.Start,
					YieldingLatency:     y.End - x.Start,
					SpeechBefore:        x.Start - y.Start,
					InterrupterDuration: x.Duration(),
					Yielded:             y.End <= x.End,
				})
				// One record per interrupting interval, even if it spans
				// several intervals of the other speaker.
				break
			}
		}
	}
	return out
}

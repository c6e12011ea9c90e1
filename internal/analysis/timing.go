package analysis

import "github.com/rhbsesame/conversation-analyzer/pkg/vad"

// ResponseSample is one clean speaker handoff: the responding speaker
// started Gap seconds after the previous speaker's turn ended.
type ResponseSample struct {
	// At is when the previous turn ended.
	At float64

	// PrevSpeaker finished a turn; Responder opened the next one.
	PrevSpeaker string
	Responder   string

	// Gap is the handoff latency in seconds. Always > 0.
	Gap float64
}

// ResponseTimes extracts the response-time samples from a turn sequence.
// Only adjacent turn pairs with different speakers and a strictly positive
// gap count: an overlapping or exactly-touching transition is an
// interruption boundary, covered by [DetectInterruptions], never a response.
func ResponseTimes(turns []Turn) []ResponseSample {
	var samples []ResponseSample
	for i := 1; i < len(turns); i++ {
		prev := turns[i-1]
		curr := turns[i]
		if prev.Speaker == curr.Speaker {
			continue
		}
		gap := curr.Start - prev.End
		if gap <= 0 {
			continue
		}
		samples = append(samples, ResponseSample{
			At:          prev.End,
			PrevSpeaker: prev.Speaker,
			Responder:   curr.Speaker,
			Gap:         gap,
		})
	}
	return samples
}

// Overlap sums the simultaneous-speech time across every pair of intervals
// from the two speakers. Quadratic over the interval counts, which stay
// small relative to recording length.
func Overlap(a, b []vad.Interval) float64 {
	var total float64
	for _, ia := range a {
		for _, ib := range b {
			start := ia.Start
			if ib.Start > start {
				start = ib.Start
			}
			end := ia.End
			if ib.End < end {
				end = ib.End
			}
			if end > start {
				total += end - start
			}
		}
	}
	return total
}

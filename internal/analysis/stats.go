package analysis

import (
	"fmt"

	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

// Compute derives the full conversation statistics from both speakers'
// detected intervals. The interval lists must satisfy the detector
// contract (sorted, non-overlapping); duration is the total recording
// length in seconds. A negative duration is a caller contract violation.
// Zero detected speech is a normal outcome, not an error.
func Compute(a, b []vad.Interval, duration float64, labelA, labelB string) (*ConversationStats, error) {
	if duration < 0 {
		return nil, fmt.Errorf("analysis: recording duration must not be negative, got %g", duration)
	}

	speakerA := SpeakerStats{Label: labelA}
	speakerB := SpeakerStats{Label: labelB}

	for _, iv := range a {
		speakerA.TotalTalkTime += iv.Duration()
	}
	for _, iv := range b {
		speakerB.TotalTalkTime += iv.Duration()
	}
	if duration > 0 {
		speakerA.TalkTimePct = speakerA.TotalTalkTime / duration * 100
		speakerB.TalkTimePct = speakerB.TotalTalkTime / duration * 100
	}

	turns := BuildTurns(a, b, labelA, labelB)
	for _, t := range turns {
		if t.Speaker == labelA {
			speakerA.NumTurns++
			speakerA.TurnDurations = append(speakerA.TurnDurations, t.Duration())
		} else {
			speakerB.NumTurns++
			speakerB.TurnDurations = append(speakerB.TurnDurations, t.Duration())
		}
	}

	for _, rs := range ResponseTimes(turns) {
		if rs.Responder == labelA {
			speakerA.ResponseTimes = append(speakerA.ResponseTimes, rs.Gap)
		} else {
			speakerB.ResponseTimes = append(speakerB.ResponseTimes, rs.Gap)
		}
	}

	interruptions := DetectInterruptions(a, b, labelA, labelB)
	for _, intr := range interruptions {
		if intr.Interrupter == labelA {
			speakerA.InterruptionsMade++
			speakerB.TimesInterrupted++
			speakerB.YieldingLatencies = append(speakerB.YieldingLatencies, intr.YieldingLatency)
		} else {
			speakerB.InterruptionsMade++
			speakerA.TimesInterrupted++
			speakerA.YieldingLatencies = append(speakerA.YieldingLatencies, intr.YieldingLatency)
		}
	}

	speakerA.TurnDuration = describe(speakerA.TurnDurations)
	speakerB.TurnDuration = describe(speakerB.TurnDurations)
	speakerA.ResponseTime = describe(speakerA.ResponseTimes)
	speakerB.ResponseTime = describe(speakerB.ResponseTimes)
	speakerA.YieldingLatency = describe(speakerA.YieldingLatencies)
	speakerB.YieldingLatency = describe(speakerB.YieldingLatencies)

	overlap := Overlap(a, b)
	silence := ComputeSilence(a, b, duration)

	stats := &ConversationStats{
		DurationSec:      duration,
		SpeakerA:         speakerA,
		SpeakerB:         speakerB,
		Turns:            turns,
		Interruptions:    interruptions,
		TotalOverlapSec:  overlap,
		TotalSilenceSec:  silence.Total,
		NumPauses:        silence.Count,
		AvgPauseDuration: silence.Avg,
		LongestPause:     silence.Longest,
	}
	if duration > 0 {
		stats.OverlapPct = overlap / duration * 100
		stats.SilencePct = silence.Total / duration * 100
	}
	return stats, nil
}

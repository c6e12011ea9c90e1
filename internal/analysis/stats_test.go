package analysis_test

import (
	"math"
	"testing"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s = %g, want %g", name, got, want)
	}
}

func TestCompute_CleanConversation(t *testing.T) {
	a := []vad.Interval{iv(0, 2), iv(6, 8)}
	b := []vad.Interval{iv(3, 5)}

	stats, err := analysis.Compute(a, b, 10, "A", "B")
	if err != nil {
		t.Fatal(err)
	}

	approx(t, "A talk time", stats.SpeakerA.TotalTalkTime, 4)
	approx(t, "A talk pct", stats.SpeakerA.TalkTimePct, 40)
	approx(t, "B talk time", stats.SpeakerB.TotalTalkTime, 2)
	if stats.SpeakerA.NumTurns != 2 || stats.SpeakerB.NumTurns != 1 {
		t.Errorf("turn counts = %d/%d, want 2/1", stats.SpeakerA.NumTurns, stats.SpeakerB.NumTurns)
	}

	// B waited 1s after A's first turn; A waited 1s after B's.
	if len(stats.SpeakerB.ResponseTimes) != 1 || len(stats.SpeakerA.ResponseTimes) != 1 {
		t.Fatalf("response counts = %d/%d, want 1/1",
			len(stats.SpeakerA.ResponseTimes), len(stats.SpeakerB.ResponseTimes))
	}
	approx(t, "B response", stats.SpeakerB.ResponseTimes[0], 1)
	approx(t, "A response", stats.SpeakerA.ResponseTimes[0], 1)

	if len(stats.Interruptions) != 0 {
		t.Errorf("interruptions = %v, want none", stats.Interruptions)
	}
	approx(t, "overlap", stats.TotalOverlapSec, 0)
	// Gaps: [2,3], [5,6], [8,10].
	approx(t, "silence", stats.TotalSilenceSec, 4)
	if stats.NumPauses != 3 {
		t.Errorf("NumPauses = %d, want 3", stats.NumPauses)
	}
	approx(t, "longest pause", stats.LongestPause, 2)
}

func TestCompute_InterruptionScenario(t *testing.T) {
	a := []vad.Interval{iv(0, 4)}
	b := []vad.Interval{iv(3, 6)}

	stats, err := analysis.Compute(a, b, 6, "A", "B")
	if err != nil {
		t.Fatal(err)
	}

	approx(t, "overlap", stats.TotalOverlapSec, 1)
	approx(t, "overlap pct", stats.OverlapPct, 100.0/6)

	if len(stats.Interruptions) != 1 {
		t.Fatalf("interruptions = %v, want 1", stats.Interruptions)
	}
	intr := stats.Interruptions[0]
	if intr.Interrupter != "B" || intr.Interrupted != "A" {
		t.Errorf("interruption roles = %s over %s, want B over A", intr.Interrupter, intr.Interrupted)
	}
	approx(t, "yielding latency", intr.YieldingLatency, 1)
	if stats.SpeakerB.InterruptionsMade != 1 || stats.SpeakerA.TimesInterrupted != 1 {
		t.Errorf("counters = made %d / interrupted %d, want 1/1",
			stats.SpeakerB.InterruptionsMade, stats.SpeakerA.TimesInterrupted)
	}
	if len(stats.SpeakerA.YieldingLatencies) != 1 {
		t.Fatalf("A yielding latencies = %v, want 1", stats.SpeakerA.YieldingLatencies)
	}
	approx(t, "A yielding latency", stats.SpeakerA.YieldingLatencies[0], 1)

	// Overlapping handoff produces no response-time samples.
	if len(stats.SpeakerA.ResponseTimes)+len(stats.SpeakerB.ResponseTimes) != 0 {
		t.Errorf("response samples present: %v / %v",
			stats.SpeakerA.ResponseTimes, stats.SpeakerB.ResponseTimes)
	}
}

func TestCompute_NoSpeech(t *testing.T) {
	stats, err := analysis.Compute(nil, nil, 10, "A", "B")
	if err != nil {
		t.Fatal(err)
	}

	approx(t, "silence", stats.TotalSilenceSec, 10)
	approx(t, "silence pct", stats.SilencePct, 100)
	if stats.NumPauses != 1 {
		t.Errorf("NumPauses = %d, want 1", stats.NumPauses)
	}
	if stats.SpeakerA.TotalTalkTime != 0 || stats.SpeakerB.NumTurns != 0 {
		t.Errorf("expected zeroed speaker stats, got %+v / %+v", stats.SpeakerA, stats.SpeakerB)
	}
	if (stats.SpeakerA.TurnDuration != analysis.Distribution{}) {
		t.Errorf("TurnDuration = %+v, want zero distribution", stats.SpeakerA.TurnDuration)
	}
	if len(stats.Turns) != 0 || len(stats.Interruptions) != 0 {
		t.Errorf("expected empty turns/interruptions, got %v / %v", stats.Turns, stats.Interruptions)
	}
}

func TestCompute_NegativeDuration(t *testing.T) {
	if _, err := analysis.Compute(nil, nil, -1, "A", "B"); err == nil {
		t.Fatal("expected error for negative duration")
	}
}

func TestCompute_ZeroDurationNoPercentages(t *testing.T) {
	stats, err := analysis.Compute(nil, nil, 0, "A", "B")
	if err != nil {
		t.Fatal(err)
	}
	if stats.SpeakerA.TalkTimePct != 0 || stats.OverlapPct != 0 || stats.SilencePct != 0 {
		t.Errorf("percentages not zeroed: %+v", stats)
	}
}

// Silence plus talk minus overlap can never exceed the recording length.
func TestCompute_TimeBudgetBound(t *testing.T) {
	cases := []struct {
		name     string
		a, b     []vad.Interval
		duration float64
	}{
		{"clean", []vad.Interval{iv(0, 2), iv(6, 8)}, []vad.Interval{iv(3, 5)}, 10},
		{"overlapping", []vad.Interval{iv(0, 4)}, []vad.Interval{iv(3, 6)}, 6},
		{"dense", []vad.Interval{iv(0, 5), iv(5.5, 9)}, []vad.Interval{iv(1, 6), iv(8, 10)}, 10},
		{"empty", nil, nil, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stats, err := analysis.Compute(tc.a, tc.b, tc.duration, "A", "B")
			if err != nil {
				t.Fatal(err)
			}
			talk := stats.SpeakerA.TotalTalkTime + stats.SpeakerB.TotalTalkTime
			budget := stats.TotalSilenceSec + talk - stats.TotalOverlapSec
			if budget > tc.duration+1e-9 {
				t.Errorf("silence+talk-overlap = %g exceeds duration %g", budget, tc.duration)
			}
		})
	}
}

func TestCompute_TurnDurationDistribution(t *testing.T) {
	a := []vad.Interval{iv(0, 1), iv(2, 5), iv(6, 8)}

	stats, err := analysis.Compute(a, nil, 10, "A", "B")
	if err != nil {
		t.Fatal(err)
	}
	d := stats.SpeakerA.TurnDuration
	approx(t, "mean", d.Mean, 2)
	approx(t, "median", d.Median, 2)
	approx(t, "min", d.Min, 1)
	approx(t, "max", d.Max, 3)
}

package analysis_test

import (
	"math"
	"testing"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

func TestDetectInterruptions_BasicOverlap(t *testing.T) {
	a := []vad.Interval{iv(0, 4)}
	b := []vad.Interval{iv(3, 6)}

	got := analysis.DetectInterruptions(a, b, "A", "B")
	if len(got) != 1 {
		t.Fatalf("got %d interruptions, want 1: %v", len(got), got)
	}
	intr := got[0]
	if intr.Interrupter != "B" || intr.Interrupted != "A" {
		t.Errorf("roles = %s interrupting %s, want B interrupting A", intr.Interrupter, intr.Interrupted)
	}
	if intr.StartTime != 3.0 {
		t.Errorf("StartTime = %g, want 3", intr.StartTime)
	}
	if math.Abs(intr.YieldingLatency-1.0) > 1e-9 {
		t.Errorf("YieldingLatency = %g, want 1", intr.YieldingLatency)
	}
	if math.Abs(intr.SpeechBefore-3.0) > 1e-9 {
		t.Errorf("SpeechBefore = %g, want 3", intr.SpeechBefore)
	}
	if math.Abs(intr.InterrupterDuration-3.0) > 1e-9 {
		t.Errorf("InterrupterDuration = %g, want 3", intr.InterrupterDuration)
	}
	if !intr.Yielded {
		t.Error("Yielded = false, want true (A stopped while B kept speaking)")
	}
}

func TestDetectInterruptions_BoundariesAreExclusive(t *testing.T) {
	a := []vad.Interval{iv(0, 4)}

	// Starting exactly at A's start or end is not an interruption.
	for _, start := range []float64{0, 4} {
		b := []vad.Interval{iv(start, start + 2)}
		if got := analysis.DetectInterruptions(a, b, "A", "B"); len(got) != 0 {
			t.Errorf("start %g: got %v, want none", start, got)
		}
	}
}

func TestDetectInterruptions_OnePerInterrupterInterval(t *testing.T) {
	// B's single interval starts inside A's first interval and also spans
	// A's second; only one interruption may be recorded.
	a := []vad.Interval{iv(0, 2), iv(3, 5)}
	b := []vad.Interval{iv(1, 6)}

	got := analysis.DetectInterruptions(a, b, "A", "B")
	if len(got) != 1 {
		t.Fatalf("got %d interruptions, want 1: %v", len(got), got)
	}
	if got[0].StartTime != 1.0 {
		t.Errorf("StartTime = %g, want 1", got[0].StartTime)
	}
}

func TestDetectInterruptions_BothDirections(t *testing.T) {
	// A interrupts B at 4.5 and B interrupts A at 1.0.
	a := []vad.Interval{iv(0, 2), iv(4.5, 6)}
	b := []vad.Interval{iv(1, 5)}

	got := analysis.DetectInterruptions(a, b, "A", "B")
	if len(got) != 2 {
		t.Fatalf("got %d interruptions, want 2: %v", len(got), got)
	}
	// Sorted by start time.
	if got[0].StartTime != 1.0 || got[0].Interrupter != "B" {
		t.Errorf("first = %+v, want B at 1.0", got[0])
	}
	if got[1].StartTime != 4.5 || got[1].Interrupter != "A" {
		t.Errorf("second = %+v, want A at 4.5", got[1])
	}
}

func TestDetectInterruptions_RoleSymmetry(t *testing.T) {
	a := []vad.Interval{iv(0, 4), iv(6, 9)}
	b := []vad.Interval{iv(3, 7)}

	forward := analysis.DetectInterruptions(a, b, "A", "B")
	swapped := analysis.DetectInterruptions(b, a, "B", "A")

	if len(forward) != len(swapped) {
		t.Fatalf("lengths differ: %d vs %d", len(forward), len(swapped))
	}
	for i := range forward {
		if forward[i].Interrupter != swapped[i].Interrupter {
			t.Errorf("event %d: interrupter %q vs %q", i, forward[i].Interrupter, swapped[i].Interrupter)
		}
		if forward[i].YieldingLatency != swapped[i].YieldingLatency {
			t.Errorf("event %d: yielding latency %g vs %g", i, forward[i].YieldingLatency, swapped[i].YieldingLatency)
		}
	}
}

func TestDetectInterruptions_NotYieldedWhenInterruptedOutlasts(t *testing.T) {
	// B breaks in briefly and stops; A keeps going past B's end.
	a := []vad.Interval{iv(0, 10)}
	b := []vad.Interval{iv(2, 3)}

	got := analysis.DetectInterruptions(a, b, "A", "B")
	if len(got) != 1 {
		t.Fatalf("got %d interruptions, want 1", len(got))
	}
	if got[0].Yielded {
		t.Error("Yielded = true, want false (A outlasted B)")
	}
}

func TestDetectInterruptions_NoOverlap(t *testing.T) {
	a := []vad.Interval{iv(0, 2)}
	b := []vad.Interval{iv(3, 5)}
	if got := analysis.DetectInterruptions(a, b, "A", "B"); len(got) != 0 {
		t.Errorf("got %v, want none", got)
	}
}

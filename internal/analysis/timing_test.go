package analysis_test

import (
	"math"
	"testing"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

func TestResponseTimes_CleanHandoffs(t *testing.T) {
	turns := []analysis.Turn{
		{Speaker: "A", Start: 0, End: 2},
		{Speaker: "B", Start: 3, End: 5},
		{Speaker: "A", Start: 6, End: 8},
	}

	samples := analysis.ResponseTimes(turns)
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2: %v", len(samples), samples)
	}
	if samples[0].Responder != "B" || math.Abs(samples[0].Gap-1.0) > 1e-9 {
		t.Errorf("first sample = %+v, want B responding after 1s", samples[0])
	}
	if samples[1].Responder != "A" || math.Abs(samples[1].Gap-1.0) > 1e-9 {
		t.Errorf("second sample = %+v, want A responding after 1s", samples[1])
	}
}

func TestResponseTimes_ExcludesOverlapAndTouching(t *testing.T) {
	turns := []analysis.Turn{
		{Speaker: "A", Start: 0, End: 4},
		{Speaker: "B", Start: 3, End: 6}, // overlap
		{Speaker: "A", Start: 6, End: 8}, // exactly touching
	}
	if samples := analysis.ResponseTimes(turns); len(samples) != 0 {
		t.Errorf("got %v, want none", samples)
	}
}

// Every adjacent differing-speaker pair lands in exactly one bucket:
// response-time sample or excluded-as-overlap, never both.
func TestResponseTimes_TransitionsPartition(t *testing.T) {
	turns := []analysis.Turn{
		{Speaker: "A", Start: 0, End: 2},
		{Speaker: "B", Start: 1.5, End: 4}, // overlap transition
		{Speaker: "A", Start: 5, End: 6},   // clean transition
		{Speaker: "B", Start: 6.5, End: 7}, // clean transition
	}

	samples := analysis.ResponseTimes(turns)
	transitions := 0
	for i := 1; i < len(turns); i++ {
		if turns[i].Speaker != turns[i-1].Speaker {
			transitions++
		}
	}
	excluded := transitions - len(samples)
	if len(samples) != 2 || excluded != 1 {
		t.Errorf("samples = %d, excluded = %d; want 2 and 1", len(samples), excluded)
	}
}

// Reversing the label mapping must flip attribution, not keep it.
func TestResponseTimes_ReversedLabelsComplementAttribution(t *testing.T) {
	a := []vad.Interval{iv(0, 2)}
	b := []vad.Interval{iv(3, 5)}

	forward := analysis.ResponseTimes(analysis.BuildTurns(a, b, "A", "B"))
	reversed := analysis.ResponseTimes(analysis.BuildTurns(b, a, "B", "A"))

	if len(forward) != 1 || len(reversed) != 1 {
		t.Fatalf("sample counts = %d/%d, want 1/1", len(forward), len(reversed))
	}
	if forward[0].Responder != reversed[0].Responder {
		t.Errorf("responder flipped: %q vs %q", forward[0].Responder, reversed[0].Responder)
	}
	if forward[0].Gap != reversed[0].Gap {
		t.Errorf("gap changed: %g vs %g", forward[0].Gap, reversed[0].Gap)
	}
}

func TestOverlap_PairwiseSum(t *testing.T) {
	a := []vad.Interval{iv(0, 4), iv(10, 12)}
	b := []vad.Interval{iv(3, 6), iv(11, 11.5)}

	got := analysis.Overlap(a, b)
	if math.Abs(got-1.5) > 1e-9 {
		t.Errorf("Overlap = %g, want 1.5", got)
	}
}

func TestOverlap_Symmetric(t *testing.T) {
	a := []vad.Interval{iv(0, 4)}
	b := []vad.Interval{iv(3, 6)}
	if analysis.Overlap(a, b) != analysis.Overlap(b, a) {
		t.Error("overlap is not symmetric")
	}
}

func TestOverlap_NoneForDisjoint(t *testing.T) {
	a := []vad.Interval{iv(0, 2)}
	b := []vad.Interval{iv(2, 4)}
	if got := analysis.Overlap(a, b); got != 0 {
		t.Errorf("Overlap = %g, want 0", got)
	}
}

func TestOverlap_Empty(t *testing.T) {
	if got := analysis.Overlap(nil, nil); got != 0 {
		t.Errorf("Overlap = %g, want 0", got)
	}
}

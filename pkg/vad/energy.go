package vad

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// EnergyDetector classifies fixed-size frames by RMS energy. It needs no
// model files and no resampling, which makes it the default backend.
//
// Pipeline: frame the signal, compute per-frame RMS, classify against the
// threshold (auto-derived from the energy distribution when unset),
// run-length encode the classification, bridge silence gaps shorter than
// MinSilenceMs, then drop runs shorter than MinSpeechMs. Frame indices are
// converted back to seconds via FrameMs.
type EnergyDetector struct {
	Config Config
}

var _ Detector = (*EnergyDetector)(nil)

// NewEnergyDetector returns an EnergyDetector with the given configuration.
func NewEnergyDetector(cfg Config) *EnergyDetector {
	return &EnergyDetector{Config: cfg}
}

// DetectSpeech implements [Detector].
func (d *EnergyDetector) DetectSpeech(_ context.Context, signal []float64, sampleRate int) ([]Interval, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("vad: sample rate must be positive, got %d", sampleRate)
	}
	if err := d.Config.validate(); err != nil {
		return nil, err
	}

	frameSamples := sampleRate * d.Config.FrameMs / 1000
	if frameSamples == 0 {
		return nil, nil
	}
	numFrames := len(signal) / frameSamples
	if numFrames == 0 {
		return nil, nil
	}

	rms := make([]float64, numFrames)
	for i := 0; i < numFrames; i++ {
		frame := signal[i*frameSamples : (i+1)*frameSamples]
		var sum float64
		for _, s := range frame {
			sum += s * s
		}
		rms[i] = math.Sqrt(sum / float64(len(frame)))
	}

	threshold := autoThreshold(rms)
	if d.Config.Threshold != nil {
		threshold = *d.Config.Threshold
	}

	isSpeech := make([]bool, numFrames)
	for i, e := range rms {
		isSpeech[i] = e > threshold
	}

	minSilenceFrames := d.Config.MinSilenceMs / d.Config.FrameMs
	minSpeechFrames := d.Config.MinSpeechMs / d.Config.FrameMs
	runs := framesToRuns(isSpeech, minSilenceFrames, minSpeechFrames)

	intervals := make([]Interval, 0, len(runs))
	for _, r := range runs {
		intervals = append(intervals, Interval{
			Start: float64(r.start) * float64(d.Config.FrameMs) / 1000.0,
			End:   float64(r.end) * float64(d.Config.FrameMs) / 1000.0,
		})
	}
	return intervals, nil
}

// autoThreshold derives an RMS threshold from the frame energy distribution:
// the 30th percentile serves as the noise floor, the 95th as the speech
// peak, and the threshold sits 40% of the way up the range between them.
// A near-silent signal where the peak does not rise above the floor gets
// the floor itself, classifying everything as silence.
func autoThreshold(rms []float64) float64 {
	if len(rms) == 0 {
		return 0
	}
	noiseFloor := percentile(rms, 30)
	peak := percentile(rms, 95)
	if peak <= noiseFloor {
		return noiseFloor
	}
	return noiseFloor + 0.4*(peak-noiseFloor)
}

// percentile computes the p-th percentile with linear interpolation between
// the two nearest ranks, matching numpy's default method.
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(rank)
	hi := lo + 1
	if hi >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// run is a half-open [start, end) range of frame indices.
type run struct {
	start int
	end   int
}

// framesToRuns converts the boolean frame classification into merged,
// filtered runs: encode contiguous speech frames, bridge silent gaps
// strictly shorter than minSilenceFrames, then keep only runs at least
// minSpeechFrames long. The merge happens before the length filter so that
// a cluster of short bursts separated by tiny gaps survives as one run.
func framesToRuns(isSpeech []bool, minSilenceFrames, minSpeechFrames int) []run {
	if len(isSpeech) == 0 {
		return nil
	}

	var raw []run
	inRun := false
	start := 0
	for i, speech := range isSpeech {
		if speech && !inRun {
			start = i
			inRun = true
		} else if !speech && inRun {
			raw = append(raw, run{start, i})
			inRun = false
		}
	}
	if inRun {
		raw = append(raw, run{start, len(isSpeech)})
	}
	if len(raw) == 0 {
		return nil
	}

	merged := []run{raw[0]}
	for _, r := range raw[1:] {
		prev := &merged[len(merged)-1]
		if r.start-prev.end < minSilenceFrames {
			prev.end = r.end
		} else {
			merged = append(merged, r)
		}
	}

	kept := merged[:0]
	for _, r := range merged {
		if r.end-r.start >= minSpeechFrames {
			kept = append(kept, r)
		}
	}
	return kept
}

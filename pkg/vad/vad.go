// Package vad provides voice activity detection over a complete, finite
// mono signal: it converts a normalized float signal into an ordered list
// of non-overlapping speech intervals.
//
// Two interchangeable detector backends exist with an identical output
// contract: [EnergyDetector], a frame-level RMS classifier needing no model
// files, and [WhisperDetector], which consults a whisper.cpp model for
// timestamped speech spans. Callers depend only on the [Detector] interface
// and may swap backends without affecting downstream turn-taking analysis.
//
// Detection is pure and synchronous; the only process-wide state is the
// whisper model handle, which is loaded once and read-only afterwards.
// Detectors are safe for concurrent use across independent signals.
package vad

import (
	"context"
	"fmt"
)

// Interval is a contiguous span of detected speech, in seconds from the
// start of the recording. Intervals are immutable once returned.
type Interval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (iv Interval) Duration() float64 {
	return iv.End - iv.Start
}

// Config holds the parameters shared by all detector backends.
type Config struct {
	// FrameMs is the analysis frame size in milliseconds. Only the energy
	// backend frames the signal; the whisper backend ignores it.
	FrameMs int

	// Threshold is the RMS energy level above which a frame counts as
	// speech. Nil means auto-detect from the signal's energy distribution.
	// Ignored by the whisper backend.
	Threshold *float64

	// MinSpeechMs is the minimum duration a speech interval must reach to
	// be kept.
	MinSpeechMs int

	// MinSilenceMs is the minimum silence gap that splits two intervals.
	// Shorter gaps are bridged and the surrounding speech merged.
	MinSilenceMs int
}

// DefaultConfig returns the detection parameters that work well for
// conversational speech: 30 ms frames, auto threshold, 200 ms minimum
// speech, 300 ms minimum silence.
func DefaultConfig() Config {
	return Config{
		FrameMs:      30,
		Threshold:    nil,
		MinSpeechMs:  200,
		MinSilenceMs: 300,
	}
}

// validate checks the caller-contract parts of the configuration.
func (c Config) validate() error {
	if c.FrameMs <= 0 {
		return fmt.Errorf("vad: frame size must be positive, got %dms", c.FrameMs)
	}
	if c.MinSpeechMs < 0 {
		return fmt.Errorf("vad: min speech duration must not be negative, got %dms", c.MinSpeechMs)
	}
	if c.MinSilenceMs < 0 {
		return fmt.Errorf("vad: min silence gap must not be negative, got %dms", c.MinSilenceMs)
	}
	return nil
}

// Detector converts one channel's signal into speech intervals.
//
// The returned intervals are sorted ascending by start, pairwise
// non-overlapping, and each at least the configured minimum speech duration
// long. Degenerate inputs (empty signal, signal shorter than one analysis
// frame or model window, all silence) yield an empty slice and a nil error;
// a non-positive sample rate is a contract violation and returns an error.
//
// Implementations must be safe for concurrent use on independent signals.
type Detector interface {
	DetectSpeech(ctx context.Context, signal []float64, sampleRate int) ([]Interval, error)
}

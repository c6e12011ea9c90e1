package vad

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	whisperlib "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/rhbsesame/conversation-analyzer/pkg/audio"
)

const (
	// whisperSampleRate is the fixed input rate of whisper.cpp models.
	whisperSampleRate = 16000

	// whisperMinWindowMs is the shortest signal whisper.cpp will accept.
	// Anything shorter yields an empty result rather than an error, since a
	// channel legitimately may contain almost no audio.
	whisperMinWindowMs = 1000
)

// WhisperDetector detects speech with a whisper.cpp model: the signal is
// resampled to 16 kHz, run through the model, and the resulting timestamped
// segments are post-processed into intervals.
//
// Post-processing runs on second-denominated spans in this order: first
// bridge gaps shorter than MinSilenceMs, then drop spans shorter than
// MinSpeechMs. This matches the energy backend's merge-before-filter policy
// applied to the model's spans instead of frame runs.
//
// The model is loaded lazily on first use and reused across all subsequent
// calls; after initialization it is only read. Each detection creates its
// own whisper context, so concurrent calls on independent signals are safe.
type WhisperDetector struct {
	Config    Config
	ModelPath string

	loadOnce sync.Once
	model    whisperlib.Model
	loadErr  error
}

var _ Detector = (*WhisperDetector)(nil)

// NewWhisperDetector returns a WhisperDetector that will load the model at
// modelPath on first detection. The caller should call Close when done.
func NewWhisperDetector(modelPath string, cfg Config) *WhisperDetector {
	return &WhisperDetector{Config: cfg, ModelPath: modelPath}
}

// DetectSpeech implements [Detector].
func (d *WhisperDetector) DetectSpeech(ctx context.Context, signal []float64, sampleRate int) ([]Interval, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("vad: sample rate must be positive, got %d", sampleRate)
	}
	if d.Config.MinSpeechMs < 0 || d.Config.MinSilenceMs < 0 {
		return nil, fmt.Errorf("vad: negative duration parameter (min_speech %dms, min_silence %dms)",
			d.Config.MinSpeechMs, d.Config.MinSilenceMs)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resampled := audio.Resample(signal, sampleRate, whisperSampleRate)
	if len(resampled) < whisperSampleRate*whisperMinWindowMs/1000 {
		return nil, nil
	}

	if err := d.load(); err != nil {
		return nil, err
	}

	samples := make([]float32, len(resampled))
	for i, s := range resampled {
		samples[i] = float32(s)
	}

	// Each whisper context is single-use and not thread-safe; the model
	// itself may be shared.
	wctx, err := d.model.NewContext()
	if err != nil {
		return nil, fmt.Errorf("vad: create whisper context: %w", err)
	}
	if err := wctx.Process(samples, nil, nil, nil); err != nil {
		return nil, fmt.Errorf("vad: whisper process: %w", err)
	}

	var spans []Interval
	for {
		segment, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("vad: read whisper segment: %w", err)
		}
		spans = append(spans, Interval{
			Start: segment.Start.Seconds(),
			End:   segment.End.Seconds(),
		})
	}

	minSilence := float64(d.Config.MinSilenceMs) / 1000.0
	minSpeech := float64(d.Config.MinSpeechMs) / 1000.0
	return mergeAndFilter(spans, minSilence, minSpeech), nil
}

// load initializes the shared model handle exactly once.
func (d *WhisperDetector) load() error {
	d.loadOnce.Do(func() {
		if d.ModelPath == "" {
			d.loadErr = errors.New("vad: whisper model path not set")
			return
		}
		model, err := whisperlib.New(d.ModelPath)
		if err != nil {
			d.loadErr = fmt.Errorf("vad: load whisper model %q: %w", d.ModelPath, err)
			return
		}
		d.model = model
	})
	return d.loadErr
}

// Close releases the model if it was loaded. Safe to call multiple times.
func (d *WhisperDetector) Close() error {
	if d.model == nil {
		return nil
	}
	err := d.model.Close()
	d.model = nil
	return err
}

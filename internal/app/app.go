// Package app wires the analysis pipeline into a runnable whole: it loads a
// recording, segments both channels, computes the turn-taking statistics,
// and optionally persists the result.
//
// For testing, inject a detector and store via functional options; when an
// option is not provided, New creates real implementations from the config.
package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
	"github.com/rhbsesame/conversation-analyzer/internal/config"
	"github.com/rhbsesame/conversation-analyzer/internal/observe"
	"github.com/rhbsesame/conversation-analyzer/internal/store"
	"github.com/rhbsesame/conversation-analyzer/pkg/audio"
	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

// Analyzer runs the full analysis pipeline for one recording at a time.
// It holds no per-call state, so concurrent calls on independent
// recordings are safe.
type Analyzer struct {
	cfg      *config.Config
	detector vad.Detector
	metrics  *observe.Metrics
	store    store.Store

	// closers are called in order during Close.
	closers []func() error
}

// Option is a functional option for New. Use these to inject test doubles.
type Option func(*Analyzer)

// WithDetector injects a detector instead of creating one from config.
func WithDetector(d vad.Detector) Option {
	return func(a *Analyzer) { a.detector = d }
}

// WithStore injects a run store. Without one, results are not persisted.
func WithStore(s store.Store) Option {
	return func(a *Analyzer) { a.store = s }
}

// WithMetrics injects a metrics instance instead of the process default.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

// New creates an Analyzer from cfg. Call Close when done to release the
// detector's model resources, if any.
func New(cfg *config.Config, opts ...Option) (*Analyzer, error) {
	a := &Analyzer{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.metrics == nil {
		a.metrics = observe.DefaultMetrics()
	}
	if a.detector == nil {
		d, closer, err := buildDetector(cfg)
		if err != nil {
			return nil, err
		}
		a.detector = d
		if closer != nil {
			a.closers = append(a.closers, closer)
		}
	}
	return a, nil
}

// buildDetector constructs the configured segmentation backend.
func buildDetector(cfg *config.Config) (vad.Detector, func() error, error) {
	vadCfg := vad.Config{
		FrameMs:      cfg.VAD.FrameMs,
		Threshold:    cfg.VAD.Threshold,
		MinSpeechMs:  cfg.VAD.MinSpeechMs,
		MinSilenceMs: cfg.VAD.MinSilenceMs,
	}
	switch cfg.VAD.Engine {
	case config.EngineWhisper:
		d := vad.NewWhisperDetector(cfg.VAD.Whisper.ModelPath, vadCfg)
		return d, d.Close, nil
	case config.EngineEnergy, "":
		return vad.NewEnergyDetector(vadCfg), nil, nil
	default:
		return nil, nil, fmt.Errorf("app: unknown vad engine %q", cfg.VAD.Engine)
	}
}

// Close releases resources held by the pipeline.
func (a *Analyzer) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// AnalyzeRecording segments both channels concurrently and computes the
// conversation statistics. Degenerate recordings (no speech on either
// channel) produce a complete all-zero statistics record, not an error.
func (a *Analyzer) AnalyzeRecording(ctx context.Context, rec *audio.Recording) (*analysis.ConversationStats, error) {
	ctx, span := observe.StartSpan(ctx, "analyze_recording")
	defer span.End()

	labelA := a.cfg.Speakers.Left
	labelB := a.cfg.Speakers.Right
	engine := string(a.cfg.VAD.Engine)

	detect := func(ctx context.Context, channel string, signal []float64) ([]vad.Interval, error) {
		start := time.Now()
		ivs, err := a.detector.DetectSpeech(ctx, signal, rec.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("app: %s channel: %w", channel, err)
		}
		a.metrics.VADDuration.Record(ctx, time.Since(start).Seconds(),
			metric.WithAttributes(observe.Attr("channel", channel), observe.Attr("engine", engine)))
		return ivs, nil
	}

	var left, right []vad.Interval
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ivs, err := detect(gctx, "left", rec.Left)
		left = ivs
		return err
	})
	g.Go(func() error {
		ivs, err := detect(gctx, "right", rec.Right)
		right = ivs
		return err
	})
	if err := g.Wait(); err != nil {
		a.metrics.RecordRecording(ctx, engine, "error")
		return nil, err
	}
	a.metrics.RecordIntervals(ctx, labelA, len(left))
	a.metrics.RecordIntervals(ctx, labelB, len(right))

	observe.Logger(ctx).Info("speech detection complete",
		"engine", engine,
		"left_intervals", len(left),
		"right_intervals", len(right),
	)

	statsStart := time.Now()
	stats, err := analysis.Compute(left, right, rec.Duration(), labelA, labelB)
	if err != nil {
		a.metrics.RecordRecording(ctx, engine, "error")
		return nil, err
	}
	a.metrics.StatsDuration.Record(ctx, time.Since(statsStart).Seconds())
	a.metrics.Interruptions.Add(ctx, int64(len(stats.Interruptions)))
	a.metrics.RecordRecording(ctx, engine, "ok")

	return stats, nil
}

// AnalyzeFile loads the stereo WAV at path, runs the analysis, and
// persists the result when a store is configured.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path string) (*analysis.ConversationStats, error) {
	loadStart := time.Now()
	rec, err := audio.LoadWAVFile(path)
	if err != nil {
		return nil, err
	}
	a.metrics.LoadDuration.Record(ctx, time.Since(loadStart).Seconds())

	observe.Logger(ctx).Info("recording loaded",
		"path", path,
		"sample_rate", rec.SampleRate,
		"duration_sec", rec.Duration(),
	)

	stats, err := a.AnalyzeRecording(ctx, rec)
	if err != nil {
		return nil, err
	}

	if a.store != nil {
		run := &store.Run{
			Source:      path,
			DurationSec: stats.DurationSec,
			LabelA:      stats.SpeakerA.Label,
			LabelB:      stats.SpeakerB.Label,
			Stats:       stats,
		}
		if err := a.store.SaveRun(ctx, run); err != nil {
			return nil, err
		}
		observe.Logger(ctx).Info("analysis run persisted", "run_id", run.ID)
	}

	return stats, nil
}

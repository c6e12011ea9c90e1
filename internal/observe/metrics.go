// Package observe provides observability primitives for the conversation
// analyzer: OpenTelemetry metrics, tracing helpers, and a Prometheus
// exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint while a long analysis runs. A
// package-level default [Metrics] instance ([DefaultMetrics]) is provided
// for convenience; tests should use [NewMetrics] with a custom
// [metric.MeterProvider] to avoid cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name for all analyzer metrics.
const meterName = "github.com/rhbsesame/conversation-analyzer"

// Metrics holds all OpenTelemetry metric instruments for the analyzer.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms per pipeline stage ---

	// LoadDuration tracks WAV decoding time.
	LoadDuration metric.Float64Histogram

	// VADDuration tracks per-channel speech detection time. Use with
	// attributes: attribute.String("channel", ...), attribute.String("engine", ...)
	VADDuration metric.Float64Histogram

	// StatsDuration tracks turn-taking statistics computation time.
	StatsDuration metric.Float64Histogram

	// ReportDuration tracks HTML report rendering time.
	ReportDuration metric.Float64Histogram

	// --- Counters ---

	// RecordingsAnalyzed counts completed analysis runs. Use with attributes:
	//   attribute.String("engine", ...), attribute.String("status", ...)
	RecordingsAnalyzed metric.Int64Counter

	// SpeechIntervals counts detected speech intervals. Use with attribute:
	//   attribute.String("speaker", ...)
	SpeechIntervals metric.Int64Counter

	// Interruptions counts detected interruption events per run.
	Interruptions metric.Int64Counter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// batch pipeline stages, from sub-second VAD passes on short clips to
// multi-minute whisper inference.
var latencyBuckets = []float64{
	0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60, 300, 900,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.LoadDuration, err = m.Float64Histogram("convanalyze.load.duration",
		metric.WithDescription("WAV decoding and normalization time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.VADDuration, err = m.Float64Histogram("convanalyze.vad.duration",
		metric.WithDescription("Per-channel speech detection time by channel and engine."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.StatsDuration, err = m.Float64Histogram("convanalyze.stats.duration",
		metric.WithDescription("Turn-taking statistics computation time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ReportDuration, err = m.Float64Histogram("convanalyze.report.duration",
		metric.WithDescription("HTML report rendering time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.RecordingsAnalyzed, err = m.Int64Counter("convanalyze.recordings.analyzed",
		metric.WithDescription("Completed analysis runs by engine and status."),
	); err != nil {
		return nil, err
	}
	if met.SpeechIntervals, err = m.Int64Counter("convanalyze.speech.intervals",
		metric.WithDescription("Detected speech intervals by speaker."),
	); err != nil {
		return nil, err
	}
	if met.Interruptions, err = m.Int64Counter("convanalyze.interruptions",
		metric.WithDescription("Detected interruption events."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordRecording records a completed (or failed) analysis run with the
// standard attribute set.
func (m *Metrics) RecordRecording(ctx context.Context, engine, status string) {
	m.RecordingsAnalyzed.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("engine", engine),
			attribute.String("status", status),
		),
	)
}

// RecordIntervals records the number of speech intervals detected for one
// speaker's channel.
func (m *Metrics) RecordIntervals(ctx context.Context, speaker string, count int) {
	m.SpeechIntervals.Add(ctx, int64(count),
		metric.WithAttributes(attribute.String("speaker", speaker)),
	)
}

// Command convanalyze analyzes a stereo WAV recording of a two-person
// conversation and writes an HTML report of its turn-taking dynamics: who
// spoke when, response latencies, interruptions, overlap, and silence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhbsesame/conversation-analyzer/internal/app"
	"github.com/rhbsesame/conversation-analyzer/internal/config"
	"github.com/rhbsesame/conversation-analyzer/internal/health"
	"github.com/rhbsesame/conversation-analyzer/internal/observe"
	"github.com/rhbsesame/conversation-analyzer/internal/report"
	"github.com/rhbsesame/conversation-analyzer/internal/store"
)

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	output := flag.String("o", "", "output HTML report path (default: <input>_report.html)")
	threshold := flag.Float64("t", -1, "RMS energy threshold (negative: auto-detect)")
	speakerA := flag.String("a", "", "label for the left-channel speaker")
	speakerB := flag.String("b", "", "label for the right-channel speaker")
	frameSize := flag.Int("frame-size", 0, "VAD frame size in ms")
	minSpeech := flag.Int("min-speech", -1, "min speech segment duration in ms")
	minSilence := flag.Int("min-silence", -1, "min silence duration to split segments in ms")
	engine := flag.String("engine", "", "segmentation engine: energy or whisper")
	modelPath := flag.String("model", "", "whisper model path (whisper engine only)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: convanalyze [flags] <recording.wav>")
		flag.PrintDefaults()
		return 2
	}
	wavPath := flag.Arg(0)

	// ── Load configuration ────────────────────────────────────────────────────
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "convanalyze: %v\n", err)
			return 1
		}
		cfg = loaded
	}
	applyFlagOverrides(cfg, *output, *threshold, *speakerA, *speakerB,
		*frameSize, *minSpeech, *minSilence, *engine, *modelPath)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "convanalyze: %v\n", err)
		return 1
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	outputPath := cfg.Report.Output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(wavPath, ".wav") + "_report.html"
	}

	slog.Info("convanalyze starting",
		"input", wavPath,
		"output", outputPath,
		"engine", cfg.VAD.Engine,
	)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Storage (optional) ────────────────────────────────────────────────────
	var (
		opts   []app.Option
		checks []health.Check
	)
	if dsn := cfg.Storage.PostgresDSN; dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			slog.Error("failed to connect to postgres", "err", err)
			return 1
		}
		defer pool.Close()

		pgStore := store.NewPostgresStore(pool)
		if err := pgStore.Migrate(ctx); err != nil {
			slog.Error("failed to migrate analysis_runs schema", "err", err)
			return 1
		}
		opts = append(opts, app.WithStore(pgStore))
		checks = append(checks, health.Check{Name: "database", Probe: pool.Ping})
	}

	// ── Metrics and health endpoints (optional) ───────────────────────────────
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("GET /metrics", promhttp.Handler())
		health.New(checks...).Register(mux)
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Warn("metrics endpoint error", "err", err)
			}
		}()
		slog.Info("metrics endpoint listening", "addr", addr)
	}

	// ── Analysis pipeline ─────────────────────────────────────────────────────
	analyzer, err := app.New(cfg, opts...)
	if err != nil {
		slog.Error("failed to initialise analyzer", "err", err)
		return 1
	}
	defer func() {
		if err := analyzer.Close(); err != nil {
			slog.Warn("analyzer close error", "err", err)
		}
	}()

	stats, err := analyzer.AnalyzeFile(ctx, wavPath)
	if err != nil {
		slog.Error("analysis failed", "err", err)
		return 1
	}

	slog.Info("analysis complete",
		"turns", len(stats.Turns),
		"interruptions", len(stats.Interruptions),
		"overlap_sec", stats.TotalOverlapSec,
		"silence_sec", stats.TotalSilenceSec,
	)

	if err := report.WriteFile(stats, outputPath); err != nil {
		slog.Error("report generation failed", "err", err)
		return 1
	}
	slog.Info("report written", "path", outputPath)
	return 0
}

// applyFlagOverrides copies explicitly-set CLI flags over the file config.
// Zero values chosen as flag defaults mean "not set" and leave the config
// untouched.
func applyFlagOverrides(cfg *config.Config, output string, threshold float64,
	speakerA, speakerB string, frameSize, minSpeech, minSilence int,
	engine, modelPath string) {

	if output != "" {
		cfg.Report.Output = output
	}
	if threshold >= 0 {
		cfg.VAD.Threshold = &threshold
	}
	if speakerA != "" {
		cfg.Speakers.Left = speakerA
	}
	if speakerB != "" {
		cfg.Speakers.Right = speakerB
	}
	if frameSize > 0 {
		cfg.VAD.FrameMs = frameSize
	}
	if minSpeech >= 0 {
		cfg.VAD.MinSpeechMs = minSpeech
	}
	if minSilence >= 0 {
		cfg.VAD.MinSilenceMs = minSilence
	}
	if engine != "" {
		cfg.VAD.Engine = config.Engine(engine)
	}
	if modelPath != "" {
		cfg.VAD.Whisper.ModelPath = modelPath
	}
}

// newLogger builds the process logger at the configured level.
func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

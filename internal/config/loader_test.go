package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rhbsesame/conversation-analyzer/internal/config"
)

func TestLoadFromReader_Defaults(t *testing.T) {
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.VAD.Engine != config.EngineEnergy {
		t.Errorf("Engine = %q, want energy", cfg.VAD.Engine)
	}
	if cfg.VAD.FrameMs != 30 || cfg.VAD.MinSpeechMs != 200 || cfg.VAD.MinSilenceMs != 300 {
		t.Errorf("timing defaults = %d/%d/%d, want 30/200/300",
			cfg.VAD.FrameMs, cfg.VAD.MinSpeechMs, cfg.VAD.MinSilenceMs)
	}
	if cfg.VAD.Threshold != nil {
		t.Errorf("Threshold = %v, want nil (auto)", *cfg.VAD.Threshold)
	}
	if cfg.Speakers.Left != "Human" || cfg.Speakers.Right != "Maya" {
		t.Errorf("speaker labels = %q/%q", cfg.Speakers.Left, cfg.Speakers.Right)
	}
	if cfg.LogLevel != config.LogInfo {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromReader_PartialOverride(t *testing.T) {
	doc := `
log_level: debug
speakers:
  left: Alice
vad:
  threshold: 0.05
  min_speech_ms: 150
`
	cfg, err := config.LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speakers.Left != "Alice" || cfg.Speakers.Right != "Maya" {
		t.Errorf("speaker labels = %q/%q, want Alice/Maya", cfg.Speakers.Left, cfg.Speakers.Right)
	}
	if cfg.VAD.Threshold == nil || *cfg.VAD.Threshold != 0.05 {
		t.Errorf("Threshold = %v, want 0.05", cfg.VAD.Threshold)
	}
	if cfg.VAD.MinSpeechMs != 150 {
		t.Errorf("MinSpeechMs = %d, want 150", cfg.VAD.MinSpeechMs)
	}
	// Untouched values keep their defaults.
	if cfg.VAD.FrameMs != 30 {
		t.Errorf("FrameMs = %d, want default 30", cfg.VAD.FrameMs)
	}
}

func TestLoadFromReader_RejectsUnknownKeys(t *testing.T) {
	if _, err := config.LoadFromReader(strings.NewReader("frame_sizes: 30\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadFromReader_WhisperRequiresModelPath(t *testing.T) {
	doc := `
vad:
  engine: whisper
`
	if _, err := config.LoadFromReader(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for whisper engine without model path")
	}

	doc = `
vad:
  engine: whisper
  whisper:
    model_path: /models/ggml-base.bin
`
	if _, err := config.LoadFromReader(strings.NewReader(doc)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllFailures(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "verbose"
	cfg.Speakers.Left = "Same"
	cfg.Speakers.Right = "Same"
	cfg.VAD.Engine = "ml"
	cfg.VAD.FrameMs = 0
	cfg.VAD.MinSpeechMs = -1

	err := config.Validate(cfg)
	if err == nil {
		t.Fatal("expected validation failure")
	}
	for _, want := range []string{"log_level", "labels must differ", "vad.engine", "frame_ms", "min_speech_ms"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q misses %q", err, want)
		}
	}
}

func TestValidate_NegativeThreshold(t *testing.T) {
	cfg := config.Default()
	thr := -0.1
	cfg.VAD.Threshold = &thr
	if err := config.Validate(cfg); err == nil {
		t.Fatal("expected error for negative threshold")
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("speakers:\n  left: L\n  right: R\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Speakers.Left != "L" || cfg.Speakers.Right != "R" {
		t.Errorf("speaker labels = %q/%q, want L/R", cfg.Speakers.Left, cfg.Speakers.Right)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. Values absent from the file keep their [Default] values.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of the defaults and
// validates the result. Unknown keys are rejected. Useful in tests where
// configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			// Empty file: defaults apply.
			return cfg, nil
		}
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}

	if cfg.Speakers.Left == "" {
		errs = append(errs, errors.New("speakers.left must not be empty"))
	}
	if cfg.Speakers.Right == "" {
		errs = append(errs, errors.New("speakers.right must not be empty"))
	}
	if cfg.Speakers.Left != "" && cfg.Speakers.Left == cfg.Speakers.Right {
		errs = append(errs, fmt.Errorf("speakers.left and speakers.right are both %q; labels must differ", cfg.Speakers.Left))
	}

	if cfg.VAD.Engine != "" && !cfg.VAD.Engine.IsValid() {
		errs = append(errs, fmt.Errorf("vad.engine %q is invalid; valid values: energy, whisper", cfg.VAD.Engine))
	}
	if cfg.VAD.Engine == EngineWhisper && cfg.VAD.Whisper.ModelPath == "" {
		errs = append(errs, errors.New("vad.whisper.model_path is required when vad.engine is whisper"))
	}
	if cfg.VAD.FrameMs <= 0 {
		errs = append(errs, fmt.Errorf("vad.frame_ms must be positive, got %d", cfg.VAD.FrameMs))
	}
	if cfg.VAD.MinSpeechMs < 0 {
		errs = append(errs, fmt.Errorf("vad.min_speech_ms must not be negative, got %d", cfg.VAD.MinSpeechMs))
	}
	if cfg.VAD.MinSilenceMs < 0 {
		errs = append(errs, fmt.Errorf("vad.min_silence_ms must not be negative, got %d", cfg.VAD.MinSilenceMs))
	}
	if cfg.VAD.Threshold != nil && *cfg.VAD.Threshold < 0 {
		errs = append(errs, fmt.Errorf("vad.threshold must not be negative, got %g", *cfg.VAD.Threshold))
	}

	return errors.Join(errs...)
}

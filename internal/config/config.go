// Package config provides the configuration schema and loader for the
// conversation analyzer.
package config

// LogLevel controls log verbosity for the analyzer.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Engine selects the speech segmentation backend.
type Engine string

const (
	// EngineEnergy uses the frame-level RMS energy classifier.
	EngineEnergy Engine = "energy"

	// EngineWhisper uses a whisper.cpp model for speech detection.
	EngineWhisper Engine = "whisper"
)

// IsValid reports whether e is a recognised segmentation engine.
func (e Engine) IsValid() bool {
	return e == EngineEnergy || e == EngineWhisper
}

// Config is the root configuration document.
type Config struct {
	LogLevel LogLevel       `yaml:"log_level"`
	Speakers SpeakersConfig `yaml:"speakers"`
	VAD      VADConfig      `yaml:"vad"`
	Report   ReportConfig   `yaml:"report"`
	Storage  StorageConfig  `yaml:"storage"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// SpeakersConfig maps the two recording channels to speaker labels.
type SpeakersConfig struct {
	// Left labels the left-channel speaker. Default: "Human".
	Left string `yaml:"left"`

	// Right labels the right-channel speaker. Default: "Maya".
	Right string `yaml:"right"`
}

// VADConfig holds the speech-detection parameters.
type VADConfig struct {
	// Engine selects the backend: "energy" (default) or "whisper".
	Engine Engine `yaml:"engine"`

	// FrameMs is the energy backend's analysis frame size in milliseconds.
	FrameMs int `yaml:"frame_ms"`

	// Threshold is the RMS energy cutoff for the energy backend. Absent
	// means auto-detect from the signal.
	Threshold *float64 `yaml:"threshold"`

	// MinSpeechMs is the minimum speech interval duration to keep.
	MinSpeechMs int `yaml:"min_speech_ms"`

	// MinSilenceMs is the minimum silence gap that splits two intervals.
	MinSilenceMs int `yaml:"min_silence_ms"`

	// Whisper configures the whisper backend.
	Whisper WhisperConfig `yaml:"whisper"`
}

// WhisperConfig holds whisper.cpp backend settings.
type WhisperConfig struct {
	// ModelPath is the path to the ggml model file.
	ModelPath string `yaml:"model_path"`
}

// ReportConfig holds report generation settings.
type ReportConfig struct {
	// Output is the HTML report path. Empty derives "<input>_report.html"
	// from the input file name.
	Output string `yaml:"output"`
}

// StorageConfig holds optional persistence settings.
type StorageConfig struct {
	// PostgresDSN enables storing analysis runs when non-empty.
	PostgresDSN string `yaml:"postgres_dsn"`
}

// MetricsConfig holds optional observability settings.
type MetricsConfig struct {
	// ListenAddr enables a Prometheus /metrics endpoint when non-empty,
	// e.g. ":9090".
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration used when no file or flag overrides a
// value: energy backend with 30 ms frames, auto threshold, 200 ms minimum
// speech, 300 ms minimum silence, and the "Human"/"Maya" speaker labels.
func Default() *Config {
	return &Config{
		LogLevel: LogInfo,
		Speakers: SpeakersConfig{Left: "Human", Right: "Maya"},
		VAD: VADConfig{
			Engine:       EngineEnergy,
			FrameMs:      30,
			MinSpeechMs:  200,
			MinSilenceMs: 300,
		},
	}
}

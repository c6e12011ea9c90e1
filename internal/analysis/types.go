// Package analysis derives turn-taking structure and statistics from two
// speakers' detected speech intervals: speaking turns, interruptions,
// response latencies, overlap, and silence/pause structure, aggregated
// into an immutable [ConversationStats] record.
//
// Everything here is a deterministic, side-effect-free transformation of
// the interval data it receives. All derived records are value objects
// constructed once and read thereafter.
package analysis

// Turn is a maximal chronological span during which one speaker is
// continuously or near-continuously active. Adjacent same-speaker activity
// is always merged into one turn; turns of different speakers may overlap
// in time, which is exactly what signals an interruption.
type Turn struct {
	Speaker string  `json:"speaker"`
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
}

// Duration returns the turn length in seconds.
func (t Turn) Duration() float64 {
	return t.End - t.Start
}

// Interruption records one speaker starting strictly inside the other
// speaker's still-open speech interval.
type Interruption struct {
	Interrupter string `json:"interrupter"`
	Interrupted string `json:"interrupted"`

	// StartTime is when the interrupter began speaking.
	StartTime float64 `json:"start_time"`

	// YieldingLatency is the time from the interrupter's start until the
	// interrupted party's interval ends. Non-negative by construction.
	YieldingLatency float64 `json:"yielding_latency"`

	// SpeechBefore is how long the interrupted party had already been
	// speaking in this interval when the interruption started.
	SpeechBefore float64 `json:"speech_before"`

	// InterrupterDuration is the length of the interrupting interval.
	InterrupterDuration float64 `json:"interrupter_duration"`

	// Yielded reports whether the interrupted party actually stopped while
	// the interrupter kept speaking (their interval ends no later than the
	// interrupter's).
	Yielded bool `json:"yielded"`
}

// Distribution summarizes a sample set. All fields are zero for an empty
// sample set; no statistic here can fail.
type Distribution struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// SpeakerStats holds the per-speaker aggregates.
type SpeakerStats struct {
	Label string `json:"label"`

	TotalTalkTime float64 `json:"total_talk_time"`
	TalkTimePct   float64 `json:"talk_time_pct"`

	NumTurns      int          `json:"num_turns"`
	TurnDurations []float64    `json:"turn_durations"`
	TurnDuration  Distribution `json:"turn_duration"`

	// ResponseTimes are the positive gaps this speaker took before
	// answering a clean (non-overlapping) handoff from the other speaker.
	ResponseTimes []float64    `json:"response_times"`
	ResponseTime  Distribution `json:"response_time"`

	InterruptionsMade int `json:"interruptions_made"`
	TimesInterrupted  int `json:"times_interrupted"`

	// YieldingLatencies are the latencies this speaker experienced when
	// interrupted by the other speaker.
	YieldingLatencies []float64    `json:"yielding_latencies"`
	YieldingLatency   Distribution `json:"yielding_latency"`
}

// ConversationStats is the top-level result of an analysis run.
type ConversationStats struct {
	DurationSec float64 `json:"duration_sec"`

	SpeakerA SpeakerStats `json:"speaker_a"`
	SpeakerB SpeakerStats `json:"speaker_b"`

	Turns         []Turn         `json:"turns"`
	Interruptions []Interruption `json:"interruptions"`

	TotalOverlapSec float64 `json:"total_overlap_sec"`
	OverlapPct      float64 `json:"overlap_pct"`

	TotalSilenceSec  float64 `json:"total_silence_sec"`
	SilencePct       float64 `json:"silence_pct"`
	NumPauses        int     `json:"num_pauses"`
	AvgPauseDuration float64 `json:"avg_pause_duration"`
	LongestPause     float64 `json:"longest_pause"`
}

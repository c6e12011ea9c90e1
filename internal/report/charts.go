package report

import (
	"fmt"
	"sort"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
)

// Speaker and silence colors shared by all charts and the summary table.
const (
	colorA       = "#3b82f6" // blue
	colorB       = "#f97316" // orange
	colorSilence = "#d1d5db" // gray
)

// figure is a Plotly figure: a list of traces plus layout options, both
// marshaled to JSON and handed to Plotly.newPlot in the report template.
type figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// buildTimeline renders speech activity as stacked horizontal bars, one bar
// per turn, one row per speaker.
func buildTimeline(stats *analysis.ConversationStats) figure {
	labelA := stats.SpeakerA.Label
	labelB := stats.SpeakerB.Label

	var traces []map[string]any
	for _, turn := range stats.Turns {
		color := colorA
		if turn.Speaker == labelB {
			color = colorB
		}
		traces = append(traces, map[string]any{
			"type":          "bar",
			"x":             []float64{turn.Duration()},
			"y":             []string{turn.Speaker},
			"base":          []float64{turn.Start},
			"orientation":   "h",
			"marker":        map[string]any{"color": color},
			"name":          turn.Speaker,
			"showlegend":    false,
			"hovertemplate": fmt.Sprintf("%s<br>Start: %%{base:.2f}s<br>Duration: %%{x:.2f}s<extra></extra>", turn.Speaker),
		})
	}

	return figure{
		Data: traces,
		Layout: map[string]any{
			"title":   map[string]any{"text": "Speech Timeline"},
			"xaxis":   map[string]any{"title": map[string]any{"text": "Time (seconds)"}},
			"barmode": "stack",
			"height":  250,
			"margin":  map[string]any{"l": 100, "r": 20, "t": 50, "b": 40},
			"yaxis": map[string]any{
				"categoryorder": "array",
				"categoryarray": []string{labelB, labelA},
			},
		},
	}
}

// buildTalkTimePie shows the split of talk time between both speakers and
// silence.
func buildTalkTimePie(stats *analysis.ConversationStats) figure {
	return figure{
		Data: []map[string]any{{
			"type":   "pie",
			"labels": []string{stats.SpeakerA.Label, stats.SpeakerB.Label, "Silence"},
			"values": []float64{
				stats.SpeakerA.TotalTalkTime,
				stats.SpeakerB.TotalTalkTime,
				stats.TotalSilenceSec,
			},
			"marker":        map[string]any{"colors": []string{colorA, colorB, colorSilence}},
			"textinfo":      "label+percent",
			"hovertemplate": "%{label}: %{value:.1f}s (%{percent})<extra></extra>",
		}},
		Layout: map[string]any{
			"title":  map[string]any{"text": "Talk Time Distribution"},
			"height": 400,
		},
	}
}

// buildTurnDurationHistogram overlays both speakers' turn-length
// distributions with 0.25 s bins.
func buildTurnDurationHistogram(stats *analysis.ConversationStats) figure {
	return figure{
		Data: []map[string]any{
			histogramTrace(stats.SpeakerA.TurnDurations, stats.SpeakerA.Label, colorA),
			histogramTrace(stats.SpeakerB.TurnDurations, stats.SpeakerB.Label, colorB),
		},
		Layout: map[string]any{
			"title":   map[string]any{"text": "Turn Duration Distribution"},
			"xaxis":   map[string]any{"title": map[string]any{"text": "Duration (seconds)"}},
			"yaxis":   map[string]any{"title": map[string]any{"text": "Count"}},
			"barmode": "overlay",
			"height":  400,
		},
	}
}

// buildCumulativeTalkTime plots accumulated speaking time over the
// recording, per speaker.
func buildCumulativeTalkTime(stats *analysis.ConversationStats) figure {
	labelA := stats.SpeakerA.Label
	labelB := stats.SpeakerB.Label

	timesA, cumA := cumulativeSeries(turnSpans(stats.Turns, labelA))
	timesB, cumB := cumulativeSeries(turnSpans(stats.Turns, labelB))

	line := func(times, cum []float64, label, color string) map[string]any {
		return map[string]any{
			"type": "scatter",
			"mode": "lines",
			"x":    times,
			"y":    cum,
			"name": label,
			"line": map[string]any{"color": color, "width": 2},
		}
	}

	return figure{
		Data: []map[string]any{
			line(timesA, cumA, labelA, colorA),
			line(timesB, cumB, labelB, colorB),
		},
		Layout: map[string]any{
			"title":  map[string]any{"text": "Cumulative Talk Time"},
			"xaxis":  map[string]any{"title": map[string]any{"text": "Time (seconds)"}},
			"yaxis":  map[string]any{"title": map[string]any{"text": "Cumulative Talk Time (seconds)"}},
			"height": 400,
		},
	}
}

// buildResponseTimeHistogram shows turn-taking latencies split by
// direction. The samples are rebuilt from the turn sequence with the same
// logic as the response-time table so chart and table always agree.
func buildResponseTimeHistogram(stats *analysis.ConversationStats) figure {
	labelA := stats.SpeakerA.Label
	labelB := stats.SpeakerB.Label

	var aToB, bToA []float64
	for _, rs := range analysis.ResponseTimes(stats.Turns) {
		if rs.PrevSpeaker == labelA {
			aToB = append(aToB, rs.Gap)
		} else {
			bToA = append(bToA, rs.Gap)
		}
	}

	return figure{
		Data: []map[string]any{
			histogramTrace(aToB, labelA+" → "+labelB, colorA),
			histogramTrace(bToA, labelB+" → "+labelA, colorB),
		},
		Layout: map[string]any{
			"title":   map[string]any{"text": "Turn-Taking Latency (Response Time)"},
			"xaxis":   map[string]any{"title": map[string]any{"text": "Latency (seconds)"}},
			"yaxis":   map[string]any{"title": map[string]any{"text": "Count"}},
			"barmode": "overlay",
			"height":  400,
		},
	}
}

// buildYieldingLatencyHistogram shows how quickly speaker B stops talking
// when speaker A interrupts. Only substantial interruptions count: B had
// been speaking for at least 4 s and A went on for at least 3 s.
func buildYieldingLatencyHistogram(stats *analysis.ConversationStats) figure {
	labelA := stats.SpeakerA.Label
	labelB := stats.SpeakerB.Label

	var latencies []float64
	for _, intr := range stats.Interruptions {
		if intr.Interrupter == labelA && intr.SpeechBefore >= 4.0 && intr.InterrupterDuration >= 3.0 {
			latencies = append(latencies, intr.YieldingLatency)
		}
	}

	fig := figure{
		Layout: map[string]any{
			"title":  map[string]any{"text": fmt.Sprintf("%s Yielding Latency (when %s interrupts)", labelB, labelA)},
			"xaxis":  map[string]any{"title": map[string]any{"text": "Yielding Latency (seconds)"}},
			"yaxis":  map[string]any{"title": map[string]any{"text": "Count"}},
			"height": 400,
		},
	}
	if len(latencies) > 0 {
		fig.Data = append(fig.Data, histogramTrace(latencies, labelB+" yielding", colorB))
	}
	return fig
}

// histogramTrace builds one overlay histogram trace with 0.25 s bins.
func histogramTrace(samples []float64, name, color string) map[string]any {
	return map[string]any{
		"type":    "histogram",
		"x":       samples,
		"name":    name,
		"marker":  map[string]any{"color": color},
		"opacity": 0.7,
		"xbins":   map[string]any{"size": 0.25},
	}
}

// span is one (start, duration) pair feeding the cumulative series.
type span struct {
	start    float64
	duration float64
}

// turnSpans extracts the spans of one speaker's turns.
func turnSpans(turns []analysis.Turn, label string) []span {
	var spans []span
	for _, t := range turns {
		if t.Speaker == label {
			spans = append(spans, span{t.Start, t.Duration()})
		}
	}
	return spans
}

// cumulativeSeries builds a step series of accumulated talk time: flat
// before each turn starts, rising by the turn's duration across it.
func cumulativeSeries(spans []span) (times, cumulative []float64) {
	if len(spans) == 0 {
		return []float64{0}, []float64{0}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	times = []float64{0}
	cumulative = []float64{0}
	var total float64
	for _, sp := range spans {
		times = append(times, sp.start)
		cumulative = append(cumulative, total)
		total += sp.duration
		times = append(times, sp.start+sp.duration)
		cumulative = append(cumulative, total)
	}
	return times, cumulative
}

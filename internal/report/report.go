// Package report renders an analysis result as a self-contained HTML page:
// a summary table of all per-speaker metrics plus interactive Plotly
// charts of the turn-taking structure. The package only consumes the
// read-only statistics record; it knows nothing about how it was computed.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"math"
	"os"

	"github.com/rhbsesame/conversation-analyzer/internal/analysis"
)

// turnRow is one line of the expandable all-turns table.
type turnRow struct {
	Speaker  string
	Start    string
	End      string
	Duration string
}

// responseRow is one line of the response-time table, with the latency in
// the column of whichever direction the handoff went.
type responseRow struct {
	At   string
	AToB string
	BToA string
}

// yieldRow is one line of the speaker-B yields table.
type yieldRow struct {
	At              string
	SpeechBefore    string
	YieldingLatency string
}

// pageData is the full view model for the report template.
type pageData struct {
	Duration float64
	LabelA   string
	LabelB   string

	SpeakerA analysis.SpeakerStats
	SpeakerB analysis.SpeakerStats
	Stats    *analysis.ConversationStats

	TimelineJSON   template.JS
	PieJSON        template.JS
	TurnHistJSON   template.JS
	CumulativeJSON template.JS
	ResponseJSON   template.JS
	YieldingJSON   template.JS

	TurnRows     []turnRow
	ResponseRows []responseRow
	YieldRows    []yieldRow
}

// Generate renders the full HTML report for stats.
func Generate(stats *analysis.ConversationStats) ([]byte, error) {
	data, err := buildPageData(stats)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("report: render: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the report and writes it to path.
func WriteFile(stats *analysis.ConversationStats, path string) error {
	html, err := Generate(stats)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return fmt.Errorf("report: write %q: %w", path, err)
	}
	return nil
}

func buildPageData(stats *analysis.ConversationStats) (*pageData, error) {
	data := &pageData{
		Duration: stats.DurationSec,
		LabelA:   stats.SpeakerA.Label,
		LabelB:   stats.SpeakerB.Label,
		SpeakerA: stats.SpeakerA,
		SpeakerB: stats.SpeakerB,
		Stats:    stats,
	}

	figures := []struct {
		fig  figure
		dest *template.JS
	}{
		{buildTimeline(stats), &data.TimelineJSON},
		{buildTalkTimePie(stats), &data.PieJSON},
		{buildTurnDurationHistogram(stats), &data.TurnHistJSON},
		{buildCumulativeTalkTime(stats), &data.CumulativeJSON},
		{buildResponseTimeHistogram(stats), &data.ResponseJSON},
		{buildYieldingLatencyHistogram(stats), &data.YieldingJSON},
	}
	for _, f := range figures {
		b, err := json.Marshal(f.fig)
		if err != nil {
			return nil, fmt.Errorf("report: marshal chart: %w", err)
		}
		*f.dest = template.JS(b)
	}

	for _, turn := range stats.Turns {
		data.TurnRows = append(data.TurnRows, turnRow{
			Speaker:  turn.Speaker,
			Start:    clock(turn.Start),
			End:      clock(turn.End),
			Duration: fmt.Sprintf("%.2fs", turn.Duration()),
		})
	}

	for _, rs := range analysis.ResponseTimes(stats.Turns) {
		row := responseRow{At: clock(rs.At)}
		if rs.PrevSpeaker == data.LabelA {
			row.AToB = fmt.Sprintf("%.3fs", rs.Gap)
		} else {
			row.BToA = fmt.Sprintf("%.3fs", rs.Gap)
		}
		data.ResponseRows = append(data.ResponseRows, row)
	}

	// Substantial yields only: B spoke for at least 4 s before A broke in,
	// A kept going for at least 2 s, and B actually stopped.
	for _, intr := range stats.Interruptions {
		if intr.Interrupter != data.LabelA || intr.SpeechBefore < 4.0 ||
			intr.InterrupterDuration < 2.0 || !intr.Yielded {
			continue
		}
		data.YieldRows = append(data.YieldRows, yieldRow{
			At:              clock(intr.StartTime),
			SpeechBefore:    fmt.Sprintf("%.1fs", intr.SpeechBefore),
			YieldingLatency: fmt.Sprintf("%.3fs", intr.YieldingLatency),
		})
	}

	return data, nil
}

// clock formats seconds as m:ss.ss.
func clock(t float64) string {
	m := int(t) / 60
	s := math.Mod(t, 60)
	return fmt.Sprintf("%d:%05.2f", m, s)
}

// templateFuncs are the formatting helpers available in the page template.
var templateFuncs = template.FuncMap{
	"sec":  func(v float64) string { return fmt.Sprintf("%.2f", v) },
	"sec1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}

var pageTemplate = template.Must(template.New("report").Funcs(templateFuncs).Parse(pageHTML))

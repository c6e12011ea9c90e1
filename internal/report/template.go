package report

// pageHTML is the report page template. Styling and structure follow a
// single-column card layout; plotly.js is pulled from the CDN so the
// generated file stays small and needs no assets next to it.
const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Conversation Analysis Report</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
         background: #f8fafc; color: #1e293b; padding: 2rem; max-width: 1200px; margin: 0 auto; }
  h1 { font-size: 1.8rem; margin-bottom: 0.5rem; }
  .subtitle { color: #64748b; margin-bottom: 2rem; }
  h2 { font-size: 1.3rem; margin: 2rem 0 1rem; color: #334155; }
  table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; background: white;
          border-radius: 8px; overflow: hidden; box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
  th, td { padding: 0.6rem 1rem; text-align: left; border-bottom: 1px solid #e2e8f0; }
  th { background: #f1f5f9; font-weight: 600; font-size: 0.85rem; text-transform: uppercase;
       letter-spacing: 0.03em; color: #475569; }
  td { font-size: 0.95rem; }
  .metric-label { color: #64748b; }
  .chart { margin-bottom: 1.5rem; background: white; border-radius: 8px; padding: 1rem;
           box-shadow: 0 1px 3px rgba(0,0,0,0.1); }
  .speaker-a { color: #3b82f6; font-weight: 600; }
  .speaker-b { color: #f97316; font-weight: 600; }
  details { margin-top: 0.5rem; }
  summary { cursor: pointer; color: #64748b; font-size: 0.85rem; padding: 0.4rem 0;
            user-select: none; }
  summary:hover { color: #334155; }
  .data-table { max-height: 400px; overflow-y: auto; margin-top: 0.5rem; }
  .data-table table { font-size: 0.85rem; margin-bottom: 0; }
  .data-table td, .data-table th { padding: 0.35rem 0.75rem; }
</style>
</head>
<body>
<h1>Conversation Analysis Report</h1>
<p class="subtitle">Recording duration: {{sec1 .Duration}} seconds</p>

<h2>Summary Statistics</h2>
<table>
<thead>
<tr><th>Metric</th><th class="speaker-a">{{.LabelA}}</th><th class="speaker-b">{{.LabelB}}</th></tr>
</thead>
<tbody>
<tr><td class="metric-label">Total talk time</td>
    <td>{{sec .SpeakerA.TotalTalkTime}}s ({{sec1 .SpeakerA.TalkTimePct}}%)</td>
    <td>{{sec .SpeakerB.TotalTalkTime}}s ({{sec1 .SpeakerB.TalkTimePct}}%)</td></tr>
<tr><td class="metric-label">Number of turns</td>
    <td>{{.SpeakerA.NumTurns}}</td><td>{{.SpeakerB.NumTurns}}</td></tr>
<tr><td class="metric-label">Avg turn duration</td>
    <td>{{sec .SpeakerA.TurnDuration.Mean}}s</td><td>{{sec .SpeakerB.TurnDuration.Mean}}s</td></tr>
<tr><td class="metric-label">Median turn duration</td>
    <td>{{sec .SpeakerA.TurnDuration.Median}}s</td><td>{{sec .SpeakerB.TurnDuration.Median}}s</td></tr>
<tr><td class="metric-label">Min / Max turn</td>
    <td>{{sec .SpeakerA.TurnDuration.Min}}s / {{sec .SpeakerA.TurnDuration.Max}}s</td>
    <td>{{sec .SpeakerB.TurnDuration.Min}}s / {{sec .SpeakerB.TurnDuration.Max}}s</td></tr>
<tr><td class="metric-label">Avg response time</td>
    <td>{{sec .SpeakerA.ResponseTime.Mean}}s</td><td>{{sec .SpeakerB.ResponseTime.Mean}}s</td></tr>
<tr><td class="metric-label">Median response time</td>
    <td>{{sec .SpeakerA.ResponseTime.Median}}s</td><td>{{sec .SpeakerB.ResponseTime.Median}}s</td></tr>
<tr><td class="metric-label">Std response time</td>
    <td>{{sec .SpeakerA.ResponseTime.Std}}s</td><td>{{sec .SpeakerB.ResponseTime.Std}}s</td></tr>
<tr><td class="metric-label">Min / Max response time</td>
    <td>{{sec .SpeakerA.ResponseTime.Min}}s / {{sec .SpeakerA.ResponseTime.Max}}s</td>
    <td>{{sec .SpeakerB.ResponseTime.Min}}s / {{sec .SpeakerB.ResponseTime.Max}}s</td></tr>
<tr><td class="metric-label">Interruptions made</td>
    <td>{{.SpeakerA.InterruptionsMade}}</td><td>{{.SpeakerB.InterruptionsMade}}</td></tr>
<tr><td class="metric-label">Times interrupted</td>
    <td>{{.SpeakerA.TimesInterrupted}}</td><td>{{.SpeakerB.TimesInterrupted}}</td></tr>
<tr><td class="metric-label">Avg yielding latency</td>
    <td>{{sec .SpeakerA.YieldingLatency.Mean}}s</td><td>{{sec .SpeakerB.YieldingLatency.Mean}}s</td></tr>
<tr><td class="metric-label">Median yielding latency</td>
    <td>{{sec .SpeakerA.YieldingLatency.Median}}s</td><td>{{sec .SpeakerB.YieldingLatency.Median}}s</td></tr>
<tr><td class="metric-label">Total overlap</td>
    <td colspan="2">{{sec .Stats.TotalOverlapSec}}s ({{sec1 .Stats.OverlapPct}}%)</td></tr>
<tr><td class="metric-label">Total silence</td>
    <td colspan="2">{{sec .Stats.TotalSilenceSec}}s ({{sec1 .Stats.SilencePct}}%)</td></tr>
<tr><td class="metric-label">Pauses</td>
    <td colspan="2">{{.Stats.NumPauses}} pauses, avg {{sec .Stats.AvgPauseDuration}}s, longest {{sec .Stats.LongestPause}}s</td></tr>
</tbody>
</table>

<h2>Charts</h2>

<div class="chart"><div id="chart-timeline"></div></div>

<div class="chart"><div id="chart-pie"></div></div>

<div class="chart"><div id="chart-turn-duration"></div>
{{if .TurnRows}}
<details><summary>View all turns ({{len .TurnRows}})</summary>
<div class="data-table"><table>
<thead><tr><th>Speaker</th><th>Start</th><th>End</th><th>Duration</th></tr></thead>
<tbody>
{{range .TurnRows}}<tr><td>{{.Speaker}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Duration}}</td></tr>
{{end}}</tbody></table></div></details>
{{end}}
</div>

<div class="chart"><div id="chart-cumulative"></div></div>

<div class="chart"><div id="chart-response"></div>
{{if .ResponseRows}}
<details><summary>View all response times ({{len .ResponseRows}})</summary>
<div class="data-table"><table>
<thead><tr><th>At</th>
<th class="speaker-a">{{.LabelA}} &rarr; {{.LabelB}}</th>
<th class="speaker-b">{{.LabelB}} &rarr; {{.LabelA}}</th></tr></thead>
<tbody>
{{range .ResponseRows}}<tr><td>{{.At}}</td><td>{{.AToB}}</td><td>{{.BToA}}</td></tr>
{{end}}</tbody></table></div></details>
{{end}}
</div>

<div class="chart"><div id="chart-yielding"></div>
{{if .YieldRows}}
<details><summary>View all {{.LabelB}} yields ({{len .YieldRows}})</summary>
<div class="data-table"><table>
<thead><tr><th>At</th><th>Speaking Before</th><th>Yielding Latency</th></tr></thead>
<tbody>
{{range .YieldRows}}<tr><td>{{.At}}</td><td>{{.SpeechBefore}}</td><td>{{.YieldingLatency}}</td></tr>
{{end}}</tbody></table></div></details>
{{end}}
</div>

<script>
(function () {
  var figs = {
    "chart-timeline": {{.TimelineJSON}},
    "chart-pie": {{.PieJSON}},
    "chart-turn-duration": {{.TurnHistJSON}},
    "chart-cumulative": {{.CumulativeJSON}},
    "chart-response": {{.ResponseJSON}},
    "chart-yielding": {{.YieldingJSON}}
  };
  for (var id in figs) {
    Plotly.newPlot(id, figs[id].data || [], figs[id].layout || {}, {responsive: true});
  }
})();
</script>
</body>
</html>
`

package analysis

import (
	"sort"

	"github.com/rhbsesame/conversation-analyzer/pkg/vad"
)

// BuildTurns merges both speakers' intervals into one chronological turn
// sequence. Intervals are pooled and stably sorted by start time, then
// folded left to right: a same-speaker interval extends the open turn's end
// to the later of the two ends, a different speaker closes it and opens a
// new turn. Consecutive turns therefore never share a speaker, but a turn
// may still overlap its neighbor in time when the speakers talked over
// each other.
func BuildTurns(a, b []vad.Interval, labelA, labelB string) []Turn {
	type tagged struct {
		iv      vad.Interval
		speaker string
	}

	events := make([]tagged, 0, len(a)+len(b))
	for _, iv := range a {
		events = append(events, tagged{iv, labelA})
	}
	for _, iv := range b {
		events = append(events, tagged{iv, labelB})
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].iv.Start < events[j].iv.Start
	})

	var turns []Turn
	for _, ev := range events {
		if len(turns) > 0 && turns[len(turns)-1].Speaker == ev.speaker {
			last := &turns[len(turns)-1]
			if ev.iv.End > last.End {
				last.End = ev.iv.End
			}
		} else {
			turns = append(turns, Turn{Speaker: ev.speaker, Start: ev.iv.Start, End: ev.iv.End})
		}
	}
	return turns
}

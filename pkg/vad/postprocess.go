package vad

// mergeAndFilter post-processes raw model spans in second space: spans
// separated by a gap strictly shorter than minSilence are merged, then
// merged spans shorter than minSpeech are dropped. The order matters —
// merging first lets clusters of short bursts survive the length filter as
// a single interval. Input spans must already be sorted by start.
func mergeAndFilter(spans []Interval, minSilence, minSpeech float64) []Interval {
	if len(spans) == 0 {
		return nil
	}

	merged := []Interval{spans[0]}
	for _, sp := range spans[1:] {
		prev := &merged[len(merged)-1]
		if sp.Start-prev.End < minSilence {
			if sp.End > prev.End {
				prev.End = sp.End
			}
		} else {
			merged = append(merged, sp)
		}
	}

	kept := merged[:0]
	for _, sp := range merged {
		if sp.Duration() >= minSpeech {
			kept = append(kept, sp)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

package venue

import (
	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/timeofday"
)

// Overlap is the shared sub-range between a span and a window, in minutes
// since midnight. End may exceed 1440 after overnight normalization.
type Overlap struct {
	Start timeofday.TimeOfDay
	End   timeofday.TimeOfDay
}

// SpanOverlapsWindow reports whether the span covers any part of the
// window, comparing time-of-day components only.
//
// Weekday matching is literal: an overnight Friday span never matches a
// Saturday-morning window even though the two overlap in real time. The
// stored weekday must equal the window's weekday exactly.
//
// A single shared instant does not count as overlap.
func SpanOverlapsWindow(span OpenSpan, w availability.Window) (Overlap, bool) {
	if span.Day != int(w.Weekday) {
		return Overlap{}, false
	}

	spanStart, _ := timeofday.Parse(span.Start)
	spanEnd, _ := timeofday.Parse(span.End)
	if span.Overnight || spanEnd <= spanStart {
		spanEnd += timeofday.MinutesPerDay
	}

	winStart := timeofday.FromTime(w.Start)
	winEnd := timeofday.FromTime(w.End)
	winStart, winEnd = timeofday.NormalizePair(winStart, winEnd)

	latestStart := spanStart
	if winStart > latestStart {
		latestStart = winStart
	}
	earliestEnd := spanEnd
	if winEnd < earliestEnd {
		earliestEnd = winEnd
	}
	if latestStart >= earliestEnd {
		return Overlap{}, false
	}
	return Overlap{Start: latestStart, End: earliestEnd}, true
}

// IsOpenDuring reports whether any of the venue's open spans overlaps the
// window.
func IsOpenDuring(v Venue, w availability.Window) bool {
	for _, span := range v.OpenSpans {
		if _, ok := SpanOverlapsWindow(span, w); ok {
			return true
		}
	}
	return false
}

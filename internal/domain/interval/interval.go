// Package interval provides half-open [start, end) interval math over
// absolute instants.
package interval

import (
	"sort"
	"time"
)

type Interval struct {
	Start time.Time
	End   time.Time
}

// New builds an interval, applying the overnight-wrap convention: an end at
// or before the start is pushed forward by 24 hours.
func New(start, end time.Time) Interval {
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return Interval{Start: start, End: end}
}

func (iv Interval) Duration() time.Duration { return iv.End.Sub(iv.Start) }

// Contains reports whether t lies in [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Overlaps is strict: intervals that merely touch at an endpoint do not
// overlap.
func (iv Interval) Overlaps(o Interval) bool {
	_, ok := iv.Intersect(o)
	return ok
}

// Intersect returns the common sub-interval, if any.
func (iv Interval) Intersect(o Interval) (Interval, bool) {
	start := iv.Start
	if o.Start.After(start) {
		start = o.Start
	}
	end := iv.End
	if o.End.Before(end) {
		end = o.End
	}
	if !start.Before(end) {
		return Interval{}, false
	}
	return Interval{Start: start, End: end}, true
}

// SortByStart orders intervals by ascending start in place.
func SortByStart(ivs []Interval) {
	sort.Slice(ivs, func(i, j int) bool { return ivs[i].Start.Before(ivs[j].Start) })
}

// Package availability turns busy calendar time into free windows over the
// coming week.
package availability

import (
	"time"

	"github.com/example/outing-planner/internal/domain/interval"
	"github.com/example/outing-planner/internal/domain/timeofday"
)

// Horizon is how far ahead windows are generated.
const Horizon = 7

// Config is a person's availability settings: which weekdays they want to
// go out, and the daily window they consider. The daily window may wrap
// past midnight (e.g. 17:00-00:00).
type Config struct {
	Weekdays map[time.Weekday]bool
	DayStart timeofday.TimeOfDay
	DayEnd   timeofday.TimeOfDay
}

// Window is one contiguous free interval on one calendar day. Windows are
// produced fresh on every recompute and never mutated.
type Window struct {
	Date    time.Time // midnight of the anchor day
	Weekday time.Weekday
	Start   time.Time
	End     time.Time
}

func (w Window) Interval() interval.Interval {
	return interval.Interval{Start: w.Start, End: w.End}
}

// Generate sweeps the next Horizon days from the date of `from` and emits,
// per preferred weekday, the free windows left between busy intervals
// inside the configured daily range. Output windows for one day are
// disjoint, ordered by start, and independent of the input order of busy
// intervals.
func Generate(from time.Time, busy []interval.Interval, cfg Config) []Window {
	day0 := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())

	var out []Window
	for i := 0; i < Horizon; i++ {
		day := day0.AddDate(0, 0, i)
		if !cfg.Weekdays[day.Weekday()] {
			continue
		}

		dayStart := cfg.DayStart.AtDate(day)
		dayEnd := cfg.DayEnd.AtDate(day)
		if !dayEnd.After(dayStart) {
			dayEnd = dayEnd.Add(24 * time.Hour)
		}
		dayRange := interval.Interval{Start: dayStart, End: dayEnd}

		var relevant []interval.Interval
		for _, b := range busy {
			if b.Overlaps(dayRange) {
				relevant = append(relevant, b)
			}
		}
		interval.SortByStart(relevant)

		cursor := dayStart
		for _, b := range relevant {
			if b.Start.After(cursor) {
				out = append(out, Window{Date: day, Weekday: day.Weekday(), Start: cursor, End: b.Start})
			}
			if b.End.After(cursor) {
				cursor = b.End
			}
		}
		if cursor.Before(dayEnd) {
			out = append(out, Window{Date: day, Weekday: day.Weekday(), Start: cursor, End: dayEnd})
		}
	}
	return out
}

// OnDate filters windows anchored to the given calendar day.
func OnDate(ws []Window, date time.Time) []Window {
	var out []Window
	for _, w := range ws {
		if sameDate(w.Date, date) {
			out = append(out, w)
		}
	}
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

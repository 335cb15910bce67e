// Package timeofday is the single place where clock strings are parsed and
// overnight ranges are normalized. Venue hours arrive as "HHMM" strings,
// user settings as "HH:MM"; both funnel through Parse.
package timeofday

import (
	"fmt"
	"time"
)

// MinutesPerDay is the wrap offset for overnight ranges.
const MinutesPerDay = 1440

// TimeOfDay is minutes since midnight. Values >= MinutesPerDay denote a
// time on the following day after overnight normalization.
type TimeOfDay int

func FromClock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// FromTime extracts the time-of-day component, discarding the date.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay(t.Hour()*60 + t.Minute())
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 % 24 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60%24, int(t)%60)
}

// AtDate anchors the time-of-day to a calendar day. Normalized overnight
// values (>= MinutesPerDay) land on the following day.
func (t TimeOfDay) AtDate(date time.Time) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return day.Add(time.Duration(t) * time.Minute)
}

// Parse accepts "HHMM", "HH:MM" and "HH:MM:SS" clock strings. Malformed
// input yields (0, false): callers treat unparseable venue hours as
// midnight rather than rejecting the venue.
func Parse(s string) (TimeOfDay, bool) {
	var hh, mm int
	switch len(s) {
	case 4:
		if !digits(s) {
			return 0, false
		}
		hh = int(s[0]-'0')*10 + int(s[1]-'0')
		mm = int(s[2]-'0')*10 + int(s[3]-'0')
	case 5, 8:
		if s[2] != ':' || !digits(s[:2]) || !digits(s[3:5]) {
			return 0, false
		}
		if len(s) == 8 && (s[5] != ':' || !digits(s[6:8])) {
			return 0, false
		}
		hh = int(s[0]-'0')*10 + int(s[1]-'0')
		mm = int(s[3]-'0')*10 + int(s[4]-'0')
	default:
		return 0, false
	}
	if hh > 23 || mm > 59 {
		return 0, false
	}
	return FromClock(hh, mm), true
}

// NormalizePair applies the overnight-wrap convention: an end at or before
// its start means the range crosses midnight, so the end gains a day.
func NormalizePair(start, end TimeOfDay) (TimeOfDay, TimeOfDay) {
	if end <= start {
		end += MinutesPerDay
	}
	return start, end
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

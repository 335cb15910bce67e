package outing

import (
	"sort"
	"time"

	"github.com/example/outing-planner/internal/domain/availability"
)

// Policy selects the slot-finding algorithm. Both remain selectable:
// direct person-to-person invites use the exact intersection fast path,
// broad discovery uses the discretized threshold search.
type Policy int

const (
	// PolicyExact intersects windows pairwise and takes the first fully
	// qualifying interval. Reports no-slot when the group has no common
	// interval of the minimum duration.
	PolicyExact Policy = iota
	// PolicyDiscretized samples the day on a fixed grid, scores each
	// instant by how many participants are free, and accepts the first
	// (shortest) duration whose mean score clears the participation
	// threshold. Falls back to the best single grid point, so a non-empty
	// group always gets a slot.
	PolicyDiscretized
)

// Rounding controls how an accepted slot start is snapped.
type Rounding int

const (
	// RoundHalfHour snaps the minute to the nearest of {:00, :30},
	// carrying into the next hour from :45 upward. Default.
	RoundHalfHour Rounding = iota
	// RoundFloorFive floors to the 5-minute mark (legacy mode).
	RoundFloorFive
)

// DefaultStep is the grid granularity of the discretized search.
const DefaultStep = 5 * time.Minute

// FinderOptions parameterizes FindSlot. Threshold is the fraction of the
// group that must be free for a slot to be accepted outright; callers use
// 0.75 for small pairwise invites and 0.5 for broad discovery.
type FinderOptions struct {
	Policy      Policy
	MinDuration time.Duration
	MaxDuration time.Duration // inclusive; defaults to MinDuration
	Step        time.Duration // defaults to DefaultStep
	Threshold   float64
	Rounding    Rounding
}

func (o FinderOptions) normalized() FinderOptions {
	if o.Step <= 0 {
		o.Step = DefaultStep
	}
	if o.MinDuration <= 0 {
		o.MinDuration = 60 * time.Minute
	}
	if o.MaxDuration < o.MinDuration {
		o.MaxDuration = o.MinDuration
	}
	return o
}

// FindSlot searches for the best shared interval across the participants
// on the target date. The second return is false only when no slot exists
// under the chosen policy: for PolicyDiscretized that means an empty
// participant set or no windows on the date; PolicyExact additionally
// reports no-slot when the windows simply do not intersect long enough.
// Identical inputs always yield identical output.
func FindSlot(participants []Participant, date time.Time, opts FinderOptions) (Slot, bool) {
	opts = opts.normalized()
	if len(participants) == 0 {
		return Slot{}, false
	}
	switch opts.Policy {
	case PolicyExact:
		return findExact(participants, date, opts)
	default:
		return findDiscretized(participants, date, opts)
	}
}

// findExact walks the first participant's windows in order and intersects
// each with a matching-date window of every other participant, requiring
// every pairwise intersection to keep the minimum duration. Single pass,
// no discretization, no scoring.
func findExact(participants []Participant, date time.Time, opts FinderOptions) (Slot, bool) {
	initiator := windowsOn(participants[0], date)
	for _, w := range initiator {
		cur := w.Interval()
		if cur.Duration() < opts.MinDuration {
			continue
		}
		ok := true
		for _, other := range participants[1:] {
			matched := false
			for _, ow := range windowsOn(other, date) {
				inter, is := cur.Intersect(ow.Interval())
				if is && inter.Duration() >= opts.MinDuration {
					cur = inter
					matched = true
					break
				}
			}
			if !matched {
				ok = false
				break
			}
		}
		if ok {
			return Slot{Start: cur.Start, End: cur.End}, true
		}
	}
	return Slot{}, false
}

type gridPoint struct {
	t     time.Time
	score int
}

func findDiscretized(participants []Participant, date time.Time, opts FinderOptions) (Slot, bool) {
	dayStart, dayEnd, any := gridBounds(participants, date)
	if !any {
		return Slot{}, false
	}

	score := func(t time.Time) int {
		n := 0
		for _, p := range participants {
			for _, w := range windowsOn(p, date) {
				if w.Interval().Contains(t) {
					n++
					break
				}
			}
		}
		return n
	}

	var points []gridPoint
	for t := dayStart; t.Before(dayEnd); t = t.Add(opts.Step) {
		points = append(points, gridPoint{t: t, score: score(t)})
	}
	if len(points) == 0 {
		return Slot{}, false
	}
	// Deterministic rank: best coverage first, ties favor the earlier time.
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].score != points[j].score {
			return points[i].score > points[j].score
		}
		return points[i].t.Before(points[j].t)
	})

	need := opts.Threshold * float64(len(participants))
	// Shortest qualifying duration wins: durations ascend, and within one
	// duration candidate starts are tried in score-rank order.
	for dur := opts.MinDuration; dur <= opts.MaxDuration; dur += opts.Step {
		for _, p := range points {
			if p.t.Add(dur).After(dayEnd) {
				continue
			}
			if meanScore(score, p.t, dur, opts.Step) >= need {
				return Slot{Start: roundStart(p.t, opts.Rounding), End: p.t.Add(dur)}, true
			}
		}
	}

	// No interval clears the threshold: anchor a minimum-length slot at the
	// best single grid point rather than reporting no-slot.
	best := points[0]
	return Slot{Start: roundStart(best.t, opts.Rounding), End: best.t.Add(opts.MinDuration)}, true
}

func meanScore(score func(time.Time) int, start time.Time, dur, step time.Duration) float64 {
	end := start.Add(dur)
	sum, n := 0, 0
	for t := start; t.Before(end); t = t.Add(step) {
		sum += score(t)
		n++
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// gridBounds is the tightest span covering every participant window on the
// date.
func gridBounds(participants []Participant, date time.Time) (time.Time, time.Time, bool) {
	var start, end time.Time
	any := false
	for _, p := range participants {
		for _, w := range windowsOn(p, date) {
			if !any || w.Start.Before(start) {
				start = w.Start
			}
			if !any || w.End.After(end) {
				end = w.End
			}
			any = true
		}
	}
	return start, end, any
}

func windowsOn(p Participant, date time.Time) []availability.Window {
	return availability.OnDate(p.Windows, date)
}

func roundStart(t time.Time, mode Rounding) time.Time {
	if mode == RoundFloorFive {
		return t.Truncate(5 * time.Minute)
	}
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	switch m := t.Minute(); {
	case m < 15:
		return hour
	case m < 45:
		return hour.Add(30 * time.Minute)
	default:
		return hour.Add(time.Hour)
	}
}

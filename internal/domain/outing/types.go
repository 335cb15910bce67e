// Package outing holds the recommendation core: single-user venue
// filtering, shared-slot search across a group, and composite candidate
// scoring. Everything here is a pure function of its inputs.
package outing

import (
	"strings"
	"time"

	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/venue"
)

// Preferences is one person's declared cuisine interests.
type Preferences struct {
	Loved     []string
	WantToTry []string
}

// Union returns loved ∪ want-to-try, deduplicated case-insensitively and
// in first-seen order.
func (p Preferences) Union() []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range append(append([]string{}, p.Loved...), p.WantToTry...) {
		k := strings.ToLower(c)
		if c == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, c)
	}
	return out
}

// Recommendation pairs a qualifying venue with the date of the window it
// qualified on.
type Recommendation struct {
	Venue venue.Venue
	Date  time.Time
}

// Participant is one group member's availability for slot finding.
type Participant struct {
	ID      string
	Windows []availability.Window
}

// Slot is a concrete shared meeting interval.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Candidate is a scored group outing proposal. Candidates are recomputed
// wholesale each run and carry no identity across runs.
type Candidate struct {
	Venue        venue.Venue
	Participants []string
	Slot         Slot
	Score        float64 // 0.0..1.0
}

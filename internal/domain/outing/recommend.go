package outing

import (
	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/venue"
)

// RecommendSingle filters venues for one person. A venue qualifies for a
// window when at least one of its open spans overlaps the window and it
// serves at least one preferred cuisine. One recommendation is emitted per
// qualifying (window, venue) pair, so a venue may appear on several days.
// Order is window order, then venue input order; no secondary ranking.
func RecommendSingle(windows []availability.Window, venues []venue.Venue, prefs Preferences) []Recommendation {
	wanted := prefs.Union()
	var out []Recommendation
	for _, w := range windows {
		for _, v := range venues {
			if !v.HasAnyCategory(wanted) {
				continue
			}
			if !venue.IsOpenDuring(v, w) {
				continue
			}
			out = append(out, Recommendation{Venue: v, Date: w.Date})
		}
	}
	return out
}

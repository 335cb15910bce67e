package outing

import (
	"sort"
	"strings"

	"github.com/example/outing-planner/internal/domain/venue"
)

// Composite score weights. Availability dominates, cuisine fit next;
// cheaper venues score higher on the price component.
const (
	weightAvailability = 0.35
	weightPreference   = 0.30
	weightRating       = 0.20
	weightPrice        = 0.15
)

// MaxCandidates caps the ranked group candidate list.
const MaxCandidates = 20

// ScoreCandidate computes the composite desirability of holding the slot
// at the venue for this group:
//
//   - availability: fraction of members with a window fully containing the
//     slot
//   - preference: fraction of the group's combined cuisine interests the
//     venue serves (0 when nobody declared any)
//   - rating: venue rating scaled to 0..1
//   - price: tier 1..4 → 1.0/0.75/0.5/0.25, unknown → 0.5
func ScoreCandidate(v venue.Venue, group []Participant, prefs []Preferences, slot Slot) float64 {
	avail := availabilityScore(group, slot)
	pref := preferenceScore(v, prefs)
	rating := v.Rating / 5.0
	price := priceScore(v.PriceTier)
	return weightAvailability*avail + weightPreference*pref + weightRating*rating + weightPrice*price
}

func availabilityScore(group []Participant, slot Slot) float64 {
	if len(group) == 0 {
		return 0
	}
	covered := 0
	for _, p := range group {
		for _, w := range windowsOn(p, slot.Start) {
			if !w.Start.After(slot.Start) && !w.End.Before(slot.End) {
				covered++
				break
			}
		}
	}
	return float64(covered) / float64(len(group))
}

func preferenceScore(v venue.Venue, prefs []Preferences) float64 {
	union := make(map[string]bool)
	for _, p := range prefs {
		for _, c := range p.Union() {
			union[strings.ToLower(c)] = true
		}
	}
	if len(union) == 0 {
		return 0
	}
	matched := 0
	for c := range union {
		for _, vc := range v.Categories {
			if strings.EqualFold(vc, c) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(union))
}

func priceScore(tier int) float64 {
	switch tier {
	case 1:
		return 1.0
	case 2:
		return 0.75
	case 3:
		return 0.5
	case 4:
		return 0.25
	default:
		return 0.5
	}
}

// RankCandidates scores every venue against the group's best slot (as
// returned by FindSlot for the target date) and returns the top
// MaxCandidates by score. The sort is stable: ties keep venue input order.
func RankCandidates(venues []venue.Venue, group []Participant, prefs []Preferences, slot Slot) []Candidate {
	ids := make([]string, len(group))
	for i, p := range group {
		ids[i] = p.ID
	}

	out := make([]Candidate, 0, len(venues))
	for _, v := range venues {
		out = append(out, Candidate{
			Venue:        v,
			Participants: ids,
			Slot:         slot,
			Score:        ScoreCandidate(v, group, prefs, slot),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}

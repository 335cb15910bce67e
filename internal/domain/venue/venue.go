// Package venue models dining venues as decoded from the catalog provider,
// and matches their weekly opening hours against availability windows.
package venue

import "strings"

// OpenSpan is one weekday's opening-hours entry. Day uses 0=Sunday. Start
// and End are provider clock strings ("HHMM").
type OpenSpan struct {
	Day       int
	Start     string
	End       string
	Overnight bool
}

// Venue is immutable once decoded. A venue with no OpenSpans can never
// match an availability window but remains listable.
type Venue struct {
	ID          string
	Name        string
	Rating      float64 // 0.0..5.0
	PriceTier   int     // 0 = unknown, 1..4 otherwise
	Categories  []string
	OpenSpans   []OpenSpan
	IsClosed    bool
	Address     []string
	City        string
	ImageURL    string
	ReviewCount int
	Phone       string
	URL         string
}

// HasAnyCategory reports whether the venue serves at least one of the
// given cuisines. Comparison is case-insensitive.
func (v Venue) HasAnyCategory(cuisines []string) bool {
	for _, c := range v.Categories {
		for _, want := range cuisines {
			if strings.EqualFold(c, want) {
				return true
			}
		}
	}
	return false
}

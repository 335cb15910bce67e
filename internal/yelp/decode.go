package yelp

import (
	"github.com/example/outing-planner/internal/domain/timeofday"
	"github.com/example/outing-planner/internal/domain/venue"
)

type searchResponse struct {
	Businesses []business `json:"businesses"`
}

type business struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Rating   float64 `json:"rating"`
	Location struct {
		Address1       string   `json:"address1"`
		City           string   `json:"city"`
		DisplayAddress []string `json:"display_address"`
	} `json:"location"`
	ImageURL    string  `json:"image_url"`
	ReviewCount int     `json:"review_count"`
	Price       *string `json:"price"`
	Categories  []struct {
		Title string `json:"title"`
	} `json:"categories"`
	Phone         string `json:"phone"`
	URL           string `json:"url"`
	IsClosed      bool   `json:"is_closed"`
	BusinessHours []struct {
		Open []struct {
			Start       string `json:"start"`
			End         string `json:"end"`
			Day         int    `json:"day"`
			IsOvernight bool   `json:"is_overnight"`
		} `json:"open"`
		HoursType string `json:"hours_type"`
		IsOpenNow bool   `json:"is_open_now"`
	} `json:"business_hours"`
}

func (c *Client) toVenue(b business) venue.Venue {
	v := venue.Venue{
		ID:          b.ID,
		Name:        b.Name,
		Rating:      b.Rating,
		IsClosed:    b.IsClosed,
		Address:     b.Location.DisplayAddress,
		City:        b.Location.City,
		ImageURL:    b.ImageURL,
		ReviewCount: b.ReviewCount,
		Phone:       b.Phone,
		URL:         b.URL,
	}
	if b.Price != nil {
		tier := len(*b.Price) // "$".."$$$$"
		if tier > 4 {
			tier = 4
		}
		v.PriceTier = tier
	}
	for _, cat := range b.Categories {
		v.Categories = append(v.Categories, cat.Title)
	}
	// Only the primary hours set feeds the engine.
	if len(b.BusinessHours) > 0 {
		for _, o := range b.BusinessHours[0].Open {
			if _, ok := timeofday.Parse(o.Start); !ok {
				c.logger.Warn("unparseable venue open time, treating as midnight",
					"venue", b.ID, "value", o.Start)
			}
			if _, ok := timeofday.Parse(o.End); !ok {
				c.logger.Warn("unparseable venue close time, treating as midnight",
					"venue", b.ID, "value", o.End)
			}
			v.OpenSpans = append(v.OpenSpans, venue.OpenSpan{
				Day:       engineWeekday(o.Day),
				Start:     o.Start,
				End:       o.End,
				Overnight: o.IsOvernight,
			})
		}
	}
	return v
}

// engineWeekday maps the provider's 0=Monday numbering to the engine's
// 0=Sunday convention.
func engineWeekday(providerDay int) int {
	return (providerDay + 1) % 7
}

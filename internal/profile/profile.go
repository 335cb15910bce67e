// Package profile stores per-user settings: cuisine preferences, the
// weekly availability configuration, and the encrypted venue-provider key.
package profile

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/example/outing-planner/internal/crypto"
	"github.com/example/outing-planner/internal/db"
	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/outing"
	"github.com/example/outing-planner/internal/domain/timeofday"
)

type Profile struct {
	UserID string

	LovedCuisines     []string
	WantToTryCuisines []string

	Weekdays []time.Weekday
	DayStart timeofday.TimeOfDay
	DayEnd   timeofday.TimeOfDay

	SearchLocation string
	YelpAPIKey     string // decrypted; empty when unset

	UpdatedAt time.Time
}

// AvailabilityConfig converts the stored settings into the engine's form.
func (p Profile) AvailabilityConfig() availability.Config {
	days := make(map[time.Weekday]bool, len(p.Weekdays))
	for _, d := range p.Weekdays {
		days[d] = true
	}
	return availability.Config{Weekdays: days, DayStart: p.DayStart, DayEnd: p.DayEnd}
}

func (p Profile) Preferences() outing.Preferences {
	return outing.Preferences{Loved: p.LovedCuisines, WantToTry: p.WantToTryCuisines}
}

type Repo struct {
	db   *db.DB
	aead *crypto.AEAD
}

func NewRepo(d *db.DB, aead *crypto.AEAD) *Repo { return &Repo{db: d, aead: aead} }

func (r *Repo) Get(ctx context.Context, userID string) (Profile, error) {
	var p Profile
	var loved, wantToTry, weekdays, dayStart, dayEnd, keyEnc string
	err := r.db.QueryRow(ctx, `
SELECT user_id, loved_cuisines, want_to_try_cuisines, preferred_weekdays, daily_start, daily_end, search_location, yelp_api_key_enc, updated_at
FROM profiles WHERE user_id=$1`, userID).
		Scan(&p.UserID, &loved, &wantToTry, &weekdays, &dayStart, &dayEnd, &p.SearchLocation, &keyEnc, &p.UpdatedAt)
	if err != nil {
		return Profile{}, db.WrapNotFound(err)
	}
	p.LovedCuisines = SplitCSV(loved)
	p.WantToTryCuisines = SplitCSV(wantToTry)
	p.Weekdays = parseWeekdays(weekdays)
	p.DayStart, _ = timeofday.Parse(dayStart)
	p.DayEnd, _ = timeofday.Parse(dayEnd)
	if keyEnc != "" {
		key, derr := r.aead.DecryptString(keyEnc)
		if derr != nil {
			return Profile{}, derr
		}
		p.YelpAPIKey = key
	}
	return p, nil
}

func (r *Repo) Save(ctx context.Context, p Profile) error {
	keyEnc := ""
	if p.YelpAPIKey != "" {
		var err error
		keyEnc, err = r.aead.EncryptToString(p.YelpAPIKey)
		if err != nil {
			return err
		}
	}
	return r.db.Exec(ctx, `
INSERT INTO profiles(user_id, loved_cuisines, want_to_try_cuisines, preferred_weekdays, daily_start, daily_end, search_location, yelp_api_key_enc, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,now())
ON CONFLICT (user_id) DO UPDATE SET
  loved_cuisines=EXCLUDED.loved_cuisines,
  want_to_try_cuisines=EXCLUDED.want_to_try_cuisines,
  preferred_weekdays=EXCLUDED.preferred_weekdays,
  daily_start=EXCLUDED.daily_start,
  daily_end=EXCLUDED.daily_end,
  search_location=EXCLUDED.search_location,
  yelp_api_key_enc=EXCLUDED.yelp_api_key_enc,
  updated_at=now()`,
		p.UserID, JoinCSV(p.LovedCuisines), JoinCSV(p.WantToTryCuisines), formatWeekdays(p.Weekdays),
		p.DayStart.String(), p.DayEnd.String(), p.SearchLocation, keyEnc)
}

func SplitCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func JoinCSV(items []string) string {
	var cleaned []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		cleaned = append(cleaned, it)
	}
	return strings.Join(cleaned, ",")
}

// Weekdays persist as "0,5,6" with 0=Sunday.
func parseWeekdays(s string) []time.Weekday {
	var out []time.Weekday
	for _, p := range SplitCSV(s) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			continue
		}
		out = append(out, time.Weekday(n))
	}
	return out
}

func formatWeekdays(days []time.Weekday) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(int(d)))
	}
	return strings.Join(parts, ",")
}

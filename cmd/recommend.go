package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/example/outing-planner/internal/calendar"
	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/outing"
	"github.com/example/outing-planner/internal/domain/timeofday"
	"github.com/example/outing-planner/internal/planner"
	"github.com/example/outing-planner/internal/yelp"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRecommendCmd() *cobra.Command {
	var (
		apiKey    string
		location  string
		term      string
		busyFile  string
		loved     string
		wantToTry string
		weekdays  string
		dayStart  string
		dayEnd    string
	)

	c := &cobra.Command{
		Use:   "recommend",
		Short: "Print single-user outing recommendations for the next 7 days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiKey == "" {
				apiKey = strings.TrimSpace(os.Getenv("YELP_API_KEY"))
			}
			if apiKey == "" {
				return fmt.Errorf("--api-key or YELP_API_KEY is required")
			}

			start, ok := timeofday.Parse(dayStart)
			if !ok {
				return fmt.Errorf("invalid --day-start (want HH:MM)")
			}
			end, ok := timeofday.Parse(dayEnd)
			if !ok {
				return fmt.Errorf("invalid --day-end (want HH:MM)")
			}
			days, err := parseWeekdayCSV(weekdays)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			var cal calendar.Provider = calendar.Static(nil)
			if busyFile != "" {
				cal = calendar.FileProvider{Path: busyFile}
			}

			now := time.Now()
			busy, err := cal.BusyIntervals(ctx, now, now.AddDate(0, 0, availability.Horizon))
			if err != nil {
				return err
			}

			client := yelp.New(apiKey, 15*time.Minute, logger)
			venues, err := client.Search(ctx, location, term)
			if err != nil {
				return err
			}

			res := planner.Compute(busy, venues, planner.Request{
				From:   now,
				Config: availability.Config{Weekdays: days, DayStart: start, DayEnd: end},
				Prefs: outing.Preferences{
					Loved:     splitCSV(loved),
					WantToTry: splitCSV(wantToTry),
				},
			})

			if len(res.Outings) == 0 {
				fmt.Println("no venue matches your free time and preferences this week")
				return nil
			}

			name := color.New(color.FgGreen, color.Bold)
			muted := color.New(color.Faint)
			for _, o := range res.Outings {
				name.Print(o.Venue.Name)
				fmt.Printf("  %s  %.1f★", o.Date.Format("Mon Jan 2"), o.Venue.Rating)
				if len(o.Venue.Categories) > 0 {
					muted.Printf("  %s", strings.Join(o.Venue.Categories, ", "))
				}
				fmt.Println()
			}
			return nil
		},
	}

	c.Flags().StringVar(&apiKey, "api-key", "", "venue provider API key (defaults to YELP_API_KEY)")
	c.Flags().StringVar(&location, "location", "New York", "search location")
	c.Flags().StringVar(&term, "term", "restaurants", "search term")
	c.Flags().StringVar(&busyFile, "busy-file", "", "JSON file of busy intervals [{start,end}] (RFC3339)")
	c.Flags().StringVar(&loved, "loved", "", "comma-separated loved cuisines")
	c.Flags().StringVar(&wantToTry, "want-to-try", "", "comma-separated cuisines to try")
	c.Flags().StringVar(&weekdays, "weekdays", "5,6", "comma-separated weekdays, 0=Sunday")
	c.Flags().StringVar(&dayStart, "day-start", "17:00", "daily availability start HH:MM")
	c.Flags().StringVar(&dayEnd, "day-end", "22:00", "daily availability end HH:MM (end <= start wraps past midnight)")
	return c
}

func parseWeekdayCSV(s string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	for _, p := range splitCSV(s) {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q (want 0..6, 0=Sunday)", p)
		}
		out[time.Weekday(n)] = true
	}
	return out, nil
}

func splitCSV(s string) []string {
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

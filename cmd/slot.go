package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/outing"
	"github.com/example/outing-planner/internal/yelp"
	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// participantsFile is the JSON shape consumed by the slot command:
// [{"id": "...", "preferences": {"loved": [...], "want_to_try": [...]},
//   "windows": [{"start": RFC3339, "end": RFC3339}, ...]}, ...]
type participantsFile []struct {
	ID          string `json:"id"`
	Preferences struct {
		Loved     []string `json:"loved"`
		WantToTry []string `json:"want_to_try"`
	} `json:"preferences"`
	Windows []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	} `json:"windows"`
}

func newSlotCmd() *cobra.Command {
	var (
		file       string
		dateStr    string
		minMinutes int
		maxMinutes int
		threshold  float64
		policy     string
		round      string
		rank       bool
		apiKey     string
		location   string
		term       string
	)

	c := &cobra.Command{
		Use:   "slot",
		Short: "Find the best shared time slot for a group, optionally ranking venues for it",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.Parse("2006-01-02", dateStr)
			if err != nil {
				return fmt.Errorf("invalid --date (want YYYY-MM-DD)")
			}

			group, prefs, err := loadParticipants(file)
			if err != nil {
				return err
			}

			opts := outing.FinderOptions{
				MinDuration: time.Duration(minMinutes) * time.Minute,
				MaxDuration: time.Duration(maxMinutes) * time.Minute,
				Threshold:   threshold,
			}
			switch policy {
			case "exact":
				opts.Policy = outing.PolicyExact
			case "grid":
				opts.Policy = outing.PolicyDiscretized
			default:
				return fmt.Errorf("invalid --policy (want exact or grid)")
			}
			switch round {
			case "half":
				opts.Rounding = outing.RoundHalfHour
			case "five":
				opts.Rounding = outing.RoundFloorFive
			default:
				return fmt.Errorf("invalid --round (want half or five)")
			}

			slot, ok := outing.FindSlot(group, date, opts)
			if !ok {
				fmt.Println("no common slot found")
				return nil
			}
			color.New(color.Bold).Printf("best slot: %s – %s\n",
				slot.Start.Format("Mon Jan 2 15:04"), slot.End.Format("15:04"))

			if !rank {
				return nil
			}
			if apiKey == "" {
				apiKey = strings.TrimSpace(os.Getenv("YELP_API_KEY"))
			}
			if apiKey == "" {
				return fmt.Errorf("--api-key or YELP_API_KEY is required with --rank")
			}

			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			client := yelp.New(apiKey, 15*time.Minute, logger)
			venues, err := client.Search(cmd.Context(), location, term)
			if err != nil {
				return err
			}

			for i, cand := range outing.RankCandidates(venues, group, prefs, slot) {
				fmt.Printf("%2d. %-40s %.2f\n", i+1, cand.Venue.Name, cand.Score)
			}
			return nil
		},
	}

	c.Flags().StringVar(&file, "participants-file", "", "JSON file of participants with windows and preferences")
	c.Flags().StringVar(&dateStr, "date", "", "target date YYYY-MM-DD")
	c.Flags().IntVar(&minMinutes, "min-minutes", 60, "minimum slot duration")
	c.Flags().IntVar(&maxMinutes, "max-minutes", 120, "maximum slot duration (inclusive)")
	c.Flags().Float64Var(&threshold, "threshold", 0.75, "participation threshold (fraction of the group)")
	c.Flags().StringVar(&policy, "policy", "grid", "slot policy: grid (discretized) or exact (pairwise intersection)")
	c.Flags().StringVar(&round, "round", "half", "start rounding: half (nearest half hour) or five (floor to 5 min)")
	c.Flags().BoolVar(&rank, "rank", false, "also rank venues for the found slot")
	c.Flags().StringVar(&apiKey, "api-key", "", "venue provider API key (defaults to YELP_API_KEY)")
	c.Flags().StringVar(&location, "location", "New York", "search location")
	c.Flags().StringVar(&term, "term", "restaurants", "search term")
	_ = c.MarkFlagRequired("participants-file")
	_ = c.MarkFlagRequired("date")
	return c
}

func loadParticipants(path string) ([]outing.Participant, []outing.Preferences, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var raw participantsFile
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("participants file %s: %w", path, err)
	}

	var group []outing.Participant
	var prefs []outing.Preferences
	for _, p := range raw {
		part := outing.Participant{ID: p.ID}
		for _, w := range p.Windows {
			day := time.Date(w.Start.Year(), w.Start.Month(), w.Start.Day(), 0, 0, 0, 0, w.Start.Location())
			part.Windows = append(part.Windows, availability.Window{
				Date:    day,
				Weekday: day.Weekday(),
				Start:   w.Start,
				End:     w.End,
			})
		}
		group = append(group, part)
		prefs = append(prefs, outing.Preferences{Loved: p.Preferences.Loved, WantToTry: p.Preferences.WantToTry})
	}
	return group, prefs, nil
}

// Package calendar defines the busy-interval collaborator consumed by the
// engine, plus offline-friendly implementations.
package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/example/outing-planner/internal/domain/interval"
	"github.com/goccy/go-json"
)

// Provider supplies a person's busy intervals for a date range. The engine
// only reads the returned slice within the call.
type Provider interface {
	BusyIntervals(ctx context.Context, start, end time.Time) ([]interval.Interval, error)
}

// Static serves a fixed set of busy intervals, filtered to the requested
// range. An empty Static is a valid "always free" calendar.
type Static []interval.Interval

func (s Static) BusyIntervals(_ context.Context, start, end time.Time) ([]interval.Interval, error) {
	rng := interval.Interval{Start: start, End: end}
	var out []interval.Interval
	for _, iv := range s {
		if iv.Overlaps(rng) {
			out = append(out, iv)
		}
	}
	return out, nil
}

// FileProvider reads busy intervals from a JSON file of
// [{"start": RFC3339, "end": RFC3339}, ...]. The file is re-read on every
// call so edits take effect on the next recompute.
type FileProvider struct {
	Path string
}

func (f FileProvider) BusyIntervals(ctx context.Context, start, end time.Time) ([]interval.Interval, error) {
	b, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("busy file: %w", err)
	}
	var raw []struct {
		Start time.Time `json:"start"`
		End   time.Time `json:"end"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("busy file %s: %w", f.Path, err)
	}
	ivs := make(Static, 0, len(raw))
	for _, r := range raw {
		ivs = append(ivs, interval.New(r.Start, r.End))
	}
	return ivs.BusyIntervals(ctx, start, end)
}

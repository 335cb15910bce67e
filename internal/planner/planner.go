// Package planner coordinates recomputation of recommendation results.
//
// The engine itself is pure and synchronous; this package is the caller-side
// coordinator that serializes triggers. Every trigger bumps a generation,
// cancels the superseded in-flight computation, and installs only results
// whose generation is still current, so a slow stale recompute can never
// overwrite a newer one. A failed venue or calendar fetch keeps the
// previous still-valid result in place.
package planner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/example/outing-planner/internal/calendar"
	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/example/outing-planner/internal/domain/interval"
	"github.com/example/outing-planner/internal/domain/outing"
	"github.com/example/outing-planner/internal/domain/venue"
)

// Catalog is the venue search collaborator.
type Catalog interface {
	Search(ctx context.Context, location, term string) ([]venue.Venue, error)
}

// Request carries everything one recompute needs.
type Request struct {
	From     time.Time
	Config   availability.Config
	Prefs    outing.Preferences
	Location string
	Term     string

	// Optional group search on a target date.
	Group      []outing.Participant
	GroupPrefs []outing.Preferences
	GroupDate  time.Time
	Finder     outing.FinderOptions
}

// Result is a fresh, fully replacing snapshot. It is never patched in
// place.
type Result struct {
	Generation uint64
	ComputedAt time.Time
	Windows    []availability.Window
	Venues     []venue.Venue
	Outings    []outing.Recommendation
	Candidates []outing.Candidate
	GroupSlot  outing.Slot
	HasSlot    bool
}

type Planner struct {
	Calendar calendar.Provider
	Catalog  Catalog
	Logger   *slog.Logger

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	result *Result
}

func New(cal calendar.Provider, cat Catalog, logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{Calendar: cal, Catalog: cat, Logger: logger}
}

// Latest returns the most recent installed result, if any. Stale-but-valid
// results persist across failed refreshes.
func (p *Planner) Latest() (Result, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.result == nil {
		return Result{}, false
	}
	return *p.result, true
}

// Trigger starts a recompute for the request and returns a channel closed
// when it completes (installed or discarded). Any in-flight recompute is
// cancelled: last-triggered wins, regardless of completion order.
func (p *Planner) Trigger(ctx context.Context, req Request) <-chan struct{} {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	if p.cancel != nil {
		p.cancel()
	}
	cctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		p.run(cctx, gen, req)
	}()
	return done
}

func (p *Planner) run(ctx context.Context, gen uint64, req Request) {
	busy, err := p.Calendar.BusyIntervals(ctx, req.From, req.From.AddDate(0, 0, availability.Horizon))
	if err != nil {
		p.Logger.Warn("calendar fetch failed, keeping previous results", "generation", gen, "error", err)
		return
	}
	venues, err := p.Catalog.Search(ctx, req.Location, req.Term)
	if err != nil {
		p.Logger.Warn("venue fetch failed, keeping previous results", "generation", gen, "error", err)
		return
	}

	res := Compute(busy, venues, req)
	res.Generation = gen
	res.ComputedAt = time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		p.Logger.Debug("discarding superseded result", "generation", gen, "current", p.gen)
		return
	}
	p.result = &res
	p.Logger.Info("recommendations recomputed",
		"generation", gen, "windows", len(res.Windows), "outings", len(res.Outings), "candidates", len(res.Candidates))
}

// Compute is the pure engine pass: busy time and a venue catalog in, a
// complete result snapshot out. Safe to call directly (the CLI does).
func Compute(busy []interval.Interval, venues []venue.Venue, req Request) Result {
	res := Result{Venues: venues}
	res.Windows = availability.Generate(req.From, busy, req.Config)
	res.Outings = outing.RecommendSingle(res.Windows, venues, req.Prefs)

	if len(req.Group) > 0 {
		slot, ok := outing.FindSlot(req.Group, req.GroupDate, req.Finder)
		res.GroupSlot, res.HasSlot = slot, ok
		if ok {
			res.Candidates = outing.RankCandidates(venues, req.Group, req.GroupPrefs, slot)
		}
	}
	return res
}

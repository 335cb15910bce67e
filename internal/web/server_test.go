package web

import (
	"context"
	"log/slog"
	"testing"

	"github.com/example/outing-planner/internal/calendar"
	"github.com/example/outing-planner/internal/domain/venue"
	"github.com/example/outing-planner/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyedCatalog struct{ apiKey string }

func (c keyedCatalog) Search(context.Context, string, string) ([]venue.Venue, error) {
	return nil, nil
}

func testServer() (*Server, *[]string) {
	var built []string
	s := &Server{
		Calendar: calendar.Static(nil),
		Catalog: func(apiKey string) planner.Catalog {
			built = append(built, apiKey)
			return keyedCatalog{apiKey: apiKey}
		},
		Logger: slog.New(slog.DiscardHandler),
	}
	return s, &built
}

func TestPlannerForCachesPerUser(t *testing.T) {
	s, built := testServer()

	p1 := s.plannerFor("u1", "key-a")
	p2 := s.plannerFor("u1", "key-a")
	assert.Same(t, p1, p2)
	assert.Equal(t, []string{"key-a"}, *built)

	// Different users never share a planner.
	p3 := s.plannerFor("u2", "key-a")
	assert.NotSame(t, p1, p3)
}

func TestPlannerForRebindsOnKeyChange(t *testing.T) {
	s, built := testServer()

	p1 := s.plannerFor("u1", "old-key")
	p2 := s.plannerFor("u1", "new-key")
	require.NotSame(t, p1, p2)
	assert.Equal(t, []string{"old-key", "new-key"}, *built)

	// The new catalog is bound to the new key and stays cached.
	assert.Equal(t, "new-key", p2.Catalog.(keyedCatalog).apiKey)
	assert.Same(t, p2, s.plannerFor("u1", "new-key"))
}

func TestNextAPIKey(t *testing.T) {
	// Empty submission keeps the stored key.
	assert.Equal(t, "stored", nextAPIKey("stored", "", false))
	// A new value replaces it.
	assert.Equal(t, "fresh", nextAPIKey("stored", "fresh", false))
	// An explicit clear drops it even when a value was typed.
	assert.Equal(t, "", nextAPIKey("stored", "", true))
	assert.Equal(t, "", nextAPIKey("stored", "fresh", true))
}

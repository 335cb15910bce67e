package calendar

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/example/outing-planner/internal/domain/interval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFiltersToRange(t *testing.T) {
	busy := Static{
		interval.New(time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC), time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC)),
		interval.New(time.Date(2026, 9, 20, 18, 0, 0, 0, time.UTC), time.Date(2026, 9, 20, 19, 0, 0, 0, time.UTC)),
	}
	got, err := busy.BusyIntervals(context.Background(),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, busy[0], got[0])
}

func TestStaticEmptyIsAlwaysFree(t *testing.T) {
	got, err := Static(nil).BusyIntervals(context.Background(), time.Now(), time.Now().AddDate(0, 0, 7))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "busy.json")
	body := `[
  {"start": "2026-09-04T18:00:00Z", "end": "2026-09-04T19:00:00Z"},
  {"start": "2026-09-20T18:00:00Z", "end": "2026-09-20T19:00:00Z"}
]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	got, err := FileProvider{Path: path}.BusyIntervals(context.Background(),
		time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC), got[0].Start)
}

func TestFileProviderErrors(t *testing.T) {
	_, err := FileProvider{Path: "/does/not/exist.json"}.BusyIntervals(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))
	_, err = FileProvider{Path: path}.BusyIntervals(context.Background(), time.Now(), time.Now())
	assert.Error(t, err)
}

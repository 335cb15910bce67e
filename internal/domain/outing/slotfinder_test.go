package outing

import (
	"testing"
	"time"

	"github.com/example/outing-planner/internal/domain/availability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)

func participant(id string, windows ...availability.Window) Participant {
	return Participant{ID: id, Windows: windows}
}

func win(startH, startM, endH, endM int) availability.Window {
	return availability.Window{
		Date:    testDate,
		Weekday: testDate.Weekday(),
		Start:   time.Date(2026, 9, 4, startH, startM, 0, 0, time.UTC),
		End:     time.Date(2026, 9, 4, endH, endM, 0, 0, time.UTC),
	}
}

func TestDiscretizedOverlappingPair(t *testing.T) {
	// 18:00-20:00 and 19:00-21:00 with a 60-minute minimum and τ=0.75:
	// the hour of full overlap wins.
	group := []Participant{
		participant("a", win(18, 0, 20, 0)),
		participant("b", win(19, 0, 21, 0)),
	}
	opts := FinderOptions{
		Policy:      PolicyDiscretized,
		MinDuration: 60 * time.Minute,
		MaxDuration: 120 * time.Minute,
		Threshold:   0.75,
	}
	slot, ok := FindSlot(group, testDate, opts)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC), slot.Start)
	assert.Equal(t, time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC), slot.End)
}

func TestDiscretizedFallbackNeverNoSlot(t *testing.T) {
	// Disjoint windows cannot clear the threshold; the finder still
	// anchors a minimum-length slot at the best-scoring grid point.
	group := []Participant{
		participant("a", win(10, 0, 11, 0)),
		participant("b", win(14, 0, 15, 0)),
	}
	opts := FinderOptions{
		Policy:      PolicyDiscretized,
		MinDuration: 60 * time.Minute,
		Threshold:   0.75,
	}
	slot, ok := FindSlot(group, testDate, opts)
	require.True(t, ok)
	// Ties between equally scored points favor the earlier time.
	assert.Equal(t, time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC), slot.Start)
	assert.Equal(t, 60*time.Minute, slot.End.Sub(slot.Start))
}

func TestExactReportsNoSlotOnDisjointWindows(t *testing.T) {
	// Same scenario under the exact policy diverges: no common interval,
	// explicit no-slot.
	group := []Participant{
		participant("a", win(10, 0, 11, 0)),
		participant("b", win(14, 0, 15, 0)),
	}
	opts := FinderOptions{Policy: PolicyExact, MinDuration: 60 * time.Minute}
	_, ok := FindSlot(group, testDate, opts)
	assert.False(t, ok)
}

func TestExactFindsFirstQualifyingIntersection(t *testing.T) {
	group := []Participant{
		participant("a", win(12, 0, 13, 0), win(18, 0, 20, 0)),
		participant("b", win(19, 0, 21, 0)),
		participant("c", win(18, 30, 20, 30)),
	}
	opts := FinderOptions{Policy: PolicyExact, MinDuration: 60 * time.Minute}
	slot, ok := FindSlot(group, testDate, opts)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 4, 19, 0, 0, 0, time.UTC), slot.Start)
	assert.Equal(t, time.Date(2026, 9, 4, 20, 0, 0, 0, time.UTC), slot.End)
}

func TestFindSlotDeterministic(t *testing.T) {
	group := []Participant{
		participant("a", win(18, 0, 20, 0)),
		participant("b", win(18, 30, 21, 0)),
		participant("c", win(19, 0, 20, 30)),
	}
	opts := FinderOptions{
		Policy:      PolicyDiscretized,
		MinDuration: 45 * time.Minute,
		MaxDuration: 90 * time.Minute,
		Threshold:   0.5,
	}
	first, ok1 := FindSlot(group, testDate, opts)
	second, ok2 := FindSlot(group, testDate, opts)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestFindSlotEmptyGroup(t *testing.T) {
	_, ok := FindSlot(nil, testDate, FinderOptions{Policy: PolicyDiscretized, Threshold: 0.5})
	assert.False(t, ok)

	// Participants with no windows on the date have no grid points.
	group := []Participant{participant("a")}
	_, ok = FindSlot(group, testDate, FinderOptions{Policy: PolicyDiscretized, Threshold: 0.5})
	assert.False(t, ok)
}

func TestLowerThresholdAcceptsPartialCoverage(t *testing.T) {
	// With τ=0.5 one of two participants is enough, so the earliest grid
	// point qualifies immediately.
	group := []Participant{
		participant("a", win(10, 0, 12, 0)),
		participant("b", win(14, 0, 16, 0)),
	}
	opts := FinderOptions{
		Policy:      PolicyDiscretized,
		MinDuration: 60 * time.Minute,
		Threshold:   0.5,
	}
	slot, ok := FindSlot(group, testDate, opts)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 4, 10, 0, 0, 0, time.UTC), slot.Start)
}

func TestRoundStart(t *testing.T) {
	base := func(h, m int) time.Time { return time.Date(2026, 9, 4, h, m, 0, 0, time.UTC) }

	// Nearest half hour, carrying past :45.
	assert.Equal(t, base(19, 0), roundStart(base(19, 10), RoundHalfHour))
	assert.Equal(t, base(19, 30), roundStart(base(19, 15), RoundHalfHour))
	assert.Equal(t, base(19, 30), roundStart(base(19, 40), RoundHalfHour))
	assert.Equal(t, base(20, 0), roundStart(base(19, 45), RoundHalfHour))
	assert.Equal(t, base(20, 0), roundStart(base(19, 55), RoundHalfHour))

	// Legacy mode floors to the 5-minute mark.
	assert.Equal(t, base(19, 40), roundStart(base(19, 43), RoundFloorFive))
	assert.Equal(t, base(19, 55), roundStart(base(19, 55), RoundFloorFive))
}

package timeofday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
		ok   bool
	}{
		{"2200", FromClock(22, 0), true},
		{"0000", FromClock(0, 0), true},
		{"0930", FromClock(9, 30), true},
		{"17:00", FromClock(17, 0), true},
		{"19:15:00", FromClock(19, 15), true},
		{"2460", 0, false},
		{"9:30", 0, false},
		{"abcd", 0, false},
		{"", 0, false},
		{"22:0x", 0, false},
	}
	for _, tc := range tests {
		got, ok := Parse(tc.in)
		assert.Equal(t, tc.ok, ok, "Parse(%q) ok", tc.in)
		assert.Equal(t, tc.want, got, "Parse(%q)", tc.in)
	}
}

func TestParseMalformedFallsBackToMidnight(t *testing.T) {
	got, ok := Parse("garbage")
	require.False(t, ok)
	assert.Equal(t, TimeOfDay(0), got)
}

func TestNormalizePair(t *testing.T) {
	// 17:00-22:00 stays put.
	s, e := NormalizePair(FromClock(17, 0), FromClock(22, 0))
	assert.Equal(t, FromClock(17, 0), s)
	assert.Equal(t, FromClock(22, 0), e)

	// 17:00-00:00 wraps.
	s, e = NormalizePair(FromClock(17, 0), FromClock(0, 0))
	assert.Equal(t, FromClock(17, 0), s)
	assert.Equal(t, TimeOfDay(MinutesPerDay), e)

	// 22:00-02:00 wraps.
	s, e = NormalizePair(FromClock(22, 0), FromClock(2, 0))
	assert.Equal(t, TimeOfDay(MinutesPerDay+120), e)
	_ = s
}

func TestAtDate(t *testing.T) {
	day := time.Date(2026, 9, 4, 13, 45, 0, 0, time.UTC) // time component ignored
	got := FromClock(17, 30).AtDate(day)
	assert.Equal(t, time.Date(2026, 9, 4, 17, 30, 0, 0, time.UTC), got)

	// Normalized overnight end lands on the next day.
	_, e := NormalizePair(FromClock(17, 0), FromClock(0, 0))
	assert.Equal(t, time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC), e.AtDate(day))
}

func TestString(t *testing.T) {
	assert.Equal(t, "09:05", FromClock(9, 5).String())
	// Overnight values print as next-day clock time.
	_, e := NormalizePair(FromClock(22, 0), FromClock(2, 0))
	assert.Equal(t, "02:00", e.String())
}

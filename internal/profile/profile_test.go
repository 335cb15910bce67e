package profile

import (
	"testing"
	"time"

	"github.com/example/outing-planner/internal/domain/timeofday"
	"github.com/stretchr/testify/assert"
)

func TestSplitJoinCSV(t *testing.T) {
	assert.Equal(t, []string{"Italian", "Thai"}, SplitCSV(" Italian , Thai ,"))
	assert.Nil(t, SplitCSV(""))
	assert.Nil(t, SplitCSV(" , ,"))

	assert.Equal(t, "Italian,Thai", JoinCSV([]string{" Italian ", "", "Thai"}))
	assert.Equal(t, "", JoinCSV(nil))
}

func TestWeekdayRoundTrip(t *testing.T) {
	days := []time.Weekday{time.Sunday, time.Friday, time.Saturday}
	assert.Equal(t, "0,5,6", formatWeekdays(days))
	assert.Equal(t, days, parseWeekdays("0,5,6"))

	// Out-of-range and junk entries are skipped.
	assert.Equal(t, []time.Weekday{time.Monday}, parseWeekdays("7,-1,x,1"))
	assert.Nil(t, parseWeekdays(""))
}

func TestAvailabilityConfig(t *testing.T) {
	p := Profile{
		Weekdays: []time.Weekday{time.Friday, time.Saturday},
		DayStart: timeofday.FromClock(17, 0),
		DayEnd:   timeofday.FromClock(22, 0),
	}
	cfg := p.AvailabilityConfig()
	assert.True(t, cfg.Weekdays[time.Friday])
	assert.True(t, cfg.Weekdays[time.Saturday])
	assert.False(t, cfg.Weekdays[time.Monday])
	assert.Equal(t, timeofday.FromClock(17, 0), cfg.DayStart)
}

func TestPreferences(t *testing.T) {
	p := Profile{LovedCuisines: []string{"Italian"}, WantToTryCuisines: []string{"Thai"}}
	prefs := p.Preferences()
	assert.Equal(t, []string{"Italian"}, prefs.Loved)
	assert.Equal(t, []string{"Thai"}, prefs.WantToTry)
}

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchClockFirstHalf(t *testing.T) {
	starts := map[int]int{1: 100, 2: 30000}
	assert.Equal(t, "00:00", MatchClock(100, 1, starts, 10))
	assert.Equal(t, "00:30", MatchClock(400, 1, starts, 10))
	assert.Equal(t, "44:59", MatchClock(100+26990, 1, starts, 10))
}

func TestMatchClockSecondHalfContinues(t *testing.T) {
	starts := map[int]int{1: 100, 2: 30000}
	assert.Equal(t, "45:00", MatchClock(30000, 2, starts, 10))
	assert.Equal(t, "46:00", MatchClock(30600, 2, starts, 10))
	assert.Equal(t, "90:00", MatchClock(30000+27000, 2, starts, 10))
}

func TestMatchClockFlooredBeforePeriodStart(t *testing.T) {
	starts := map[int]int{1: 100, 2: 30000}
	// Frames before the period start never show a negative clock.
	assert.Equal(t, "00:00", MatchClock(50, 1, starts, 10))
	assert.Equal(t, "45:00", MatchClock(29000, 2, starts, 10))
}

func TestMatchClockMissingPeriodFallsBack(t *testing.T) {
	// Unknown periods use start frame 0 rather than failing.
	assert.Equal(t, "00:10", MatchClock(100, 3, map[int]int{}, 10))
	assert.InDelta(t, 10, MatchClockSeconds(100, 3, nil, 10), 1e-9)
}

func TestMatchClockSeriesSeconds(t *testing.T) {
	starts := map[int]int{1: 0, 2: 30000}
	got := MatchClockSeriesSeconds(
		[]int{0, 600, 30000},
		[]int{1, 1, 2},
		starts, 10)
	assert.Equal(t, []float64{0, 60, 2700}, got)
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "00:59", FormatClock(59.9))
	assert.Equal(t, "01:00", FormatClock(60))
	assert.Equal(t, "90:00", FormatClock(5400))
	assert.Equal(t, "102:14", FormatClock(6134))
}

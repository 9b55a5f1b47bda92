package pipeline

import "fmt"

// Base offset in minutes for each period: the second half clock starts at
// 45:00 regardless of first-half stoppage. Unknown periods fall back to
// period 1 with start frame 0 — upstream metadata is sometimes incomplete
// and that is not an error.
func periodBaseMinutes(period int) float64 {
	if period == 2 {
		return 45
	}
	return 0
}

// MatchClockSeconds converts a frame number and period into elapsed match
// seconds given the period→start-frame mapping and effective frame rate.
// Floored at zero for frames before the period start.
func MatchClockSeconds(frame, period int, periodStarts map[int]int, fps float64) float64 {
	start := periodStarts[period] // zero value is the documented fallback
	elapsed := float64(frame-start) / fps
	if elapsed < 0 {
		elapsed = 0
	}
	return periodBaseMinutes(period)*60 + elapsed
}

// MatchClockSeriesSeconds is the vectorized form of MatchClockSeconds with
// identical per-element semantics.
func MatchClockSeriesSeconds(frames, periods []int, periodStarts map[int]int, fps float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = MatchClockSeconds(f, periods[i], periodStarts, fps)
	}
	return out
}

// FormatClock renders elapsed seconds as a zero-padded MM:SS display clock.
func FormatClock(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// MatchClock formats the match clock for one frame directly.
func MatchClock(frame, period int, periodStarts map[int]int, fps float64) string {
	return FormatClock(MatchClockSeconds(frame, period, periodStarts, fps))
}

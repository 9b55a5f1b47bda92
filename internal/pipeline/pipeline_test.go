package pipeline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// makeTrack builds n detected samples at 10 Hz moving at speedMs along x,
// already in pitch meters.
func makeTrack(n int, speedMs float64) model.Track {
	track := make(model.Track, n)
	for i := range track {
		ts := float64(i) * 0.1
		track[i] = model.TrackSample{
			Frame:      i,
			Timestamp:  ts,
			Period:     1,
			X:          -50 + speedMs*ts,
			Y:          0,
			IsDetected: true,
		}
	}
	return track
}

func TestPrepareTrackSortsAndDedupes(t *testing.T) {
	track := model.Track{
		{Frame: 2, Timestamp: 0.2, X: 2, IsDetected: true},
		{Frame: 0, Timestamp: 0.0, X: 0, IsDetected: true},
		{Frame: 1, Timestamp: 0.1, X: 1, IsDetected: true},
		{Frame: 1, Timestamp: 0.1, X: 99, IsDetected: true}, // duplicate, dropped
	}
	got := PrepareTrack(track)
	require.Len(t, got, 3)
	assert.Equal(t, []float64{0, 1, 2}, []float64{got[0].X, got[1].X, got[2].X})

	// Input order untouched.
	assert.Equal(t, 2, track[0].Frame)
}

func TestPrepareTrackInfersDetection(t *testing.T) {
	track := model.Track{
		{Timestamp: 0, X: 1, Y: 1},
		{Timestamp: 0.1, X: math.NaN(), Y: math.NaN()},
	}
	got := PrepareTrack(track)
	assert.True(t, got[0].IsDetected)
	assert.False(t, got[1].IsDetected)
}

func TestDeriveTrackSeriesAligned(t *testing.T) {
	res, err := DeriveTrack(makeTrack(100, 3), DefaultConfig())
	require.NoError(t, err)

	n := len(res.Track)
	assert.Equal(t, n, len(res.Series.XSmooth))
	assert.Equal(t, n, len(res.Series.YSmooth))
	assert.Equal(t, n, len(res.Series.Speed))
	assert.Equal(t, n, len(res.Series.SpeedKmh))
	assert.Equal(t, n, len(res.Series.Accel))
	assert.Equal(t, n, len(res.Series.Degraded))
	assert.InDelta(t, 1.0, res.DetectionRate, 1e-9)
}

func TestDeriveTrackDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	a, err := DeriveTrack(makeTrack(80, 4), cfg)
	require.NoError(t, err)
	b, err := DeriveTrack(makeTrack(80, 4), cfg)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(a, b))
}

func TestDeriveTrackClampsTeleport(t *testing.T) {
	cfg := DefaultConfig()
	track := makeTrack(100, 2)
	// 20 m teleport mid-track, no time gap: 200 m/s before clamping.
	for i := 50; i < 100; i++ {
		track[i].X += 20
	}

	res, err := DeriveTrack(track, cfg)
	require.NoError(t, err)
	assert.Greater(t, res.AnomalyCount, 0)
	for i, kmh := range res.Series.SpeedKmh {
		assert.LessOrEqual(t, kmh, cfg.MaxSpeedKmh+1e-6, "index %d", i)
	}
}

func TestDeriveTrackFiltersLowDetection(t *testing.T) {
	track := makeTrack(100, 2)
	// 10 of 100 samples undetected: rate 0.90 < 0.95 triggers the filter.
	for i := 40; i < 50; i++ {
		track[i].X = math.NaN()
		track[i].Y = math.NaN()
		track[i].IsDetected = false
	}

	res, err := DeriveTrack(track, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.90, res.DetectionRate, 1e-9)
	assert.Len(t, res.Track, 90)
	assert.Equal(t, 90, res.Series.Len())

	var found bool
	for _, d := range res.Diagnostics {
		if d.Code == model.DiagLowDetection {
			found = true
			assert.Equal(t, 10, d.Count)
		}
	}
	assert.True(t, found, "expected a low-detection diagnostic")
}

func TestDeriveTrackKeepsHighDetection(t *testing.T) {
	track := makeTrack(100, 2)
	// 3 undetected samples: rate 0.97 stays above the minimum, nothing drops.
	for i := 10; i < 13; i++ {
		track[i].X = math.NaN()
		track[i].Y = math.NaN()
		track[i].IsDetected = false
	}

	res, err := DeriveTrack(track, DefaultConfig())
	require.NoError(t, err)
	assert.InDelta(t, 0.97, res.DetectionRate, 1e-9)
	assert.Len(t, res.Track, 100)
}

func TestDeriveTrackRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmoothingWindow = 4
	_, err := DeriveTrack(makeTrack(10, 2), cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestDeriveTrackTinyInput(t *testing.T) {
	res, err := DeriveTrack(makeTrack(1, 2), DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Series.Len())
	assert.Nil(t, res.Series.Speed)

	res, err = DeriveTrack(model.Track{}, DefaultConfig())
	require.NoError(t, err)
	assert.Zero(t, res.Series.Len())
}

func TestDeriveTrackNormalizesUnitSquare(t *testing.T) {
	track := make(model.Track, 50)
	for i := range track {
		ts := float64(i) * 0.1
		track[i] = model.TrackSample{
			Frame: i, Timestamp: ts, Period: 1,
			X: 0.3 + 0.002*float64(i), Y: 0.5,
			IsDetected: true,
		}
	}

	res, err := DeriveTrack(track, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, model.SystemUnitSquare, res.System)
	for i := range res.Series.XSmooth {
		assert.LessOrEqual(t, math.Abs(res.Series.XSmooth[i]), model.HalfPitchLength+1e-6)
		assert.LessOrEqual(t, math.Abs(res.Series.YSmooth[i]), model.HalfPitchWidth+1e-6)
	}
}

func TestTrackResultMetrics(t *testing.T) {
	cfg := DefaultConfig()
	res, err := DeriveTrack(makeTrack(100, 5), cfg)
	require.NoError(t, err)

	m := res.Metrics(cfg)
	// 99 steps of 0.5 m, smoothing preserves linear motion.
	assert.InDelta(t, 49.5, m.TotalDistance, 0.1)
	assert.InDelta(t, 18, m.MaxSpeed, 0.1)
	assert.Zero(t, m.SprintDistance)

	zones := res.ZoneDistances(cfg)
	assert.InDelta(t, m.TotalDistance, zones[ZoneRunning], 0.1) // 18 km/h
}

func TestDeriveRoster(t *testing.T) {
	players := []model.Player{
		{ID: 1, Name: "A"},
		{ID: 2, Name: "B"},
		{ID: 3, Name: "C"}, // no track
	}
	tracks := map[int]model.Track{
		1: makeTrack(60, 3),
		2: makeTrack(60, 6),
	}

	results := DeriveRoster(tracks, players, DefaultConfig())
	require.Len(t, results, 2)
	for _, pr := range results {
		assert.NoError(t, pr.Err)
		assert.NotNil(t, pr.Result)
		assert.Greater(t, pr.Metrics.TotalDistance, 0.0)
	}
	assert.Greater(t, results[1].Metrics.TotalDistance, results[0].Metrics.TotalDistance)
}

func TestDeriveRosterContainsFailures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SmoothingWindow = 4 // invalid, every derivation fails

	results := DeriveRoster(map[int]model.Track{1: makeTrack(10, 2)},
		[]model.Player{{ID: 1, Name: "A"}}, cfg)
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
	assert.Nil(t, results[0].Result)
}

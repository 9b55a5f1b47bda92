package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDistanceMetricsConstantJog(t *testing.T) {
	// 20 samples at 10 Hz moving 0.5 m per step along x: 5 m/s (18 km/h).
	cfg := DefaultConfig()
	n := 20
	ts := uniformTS(n, 0, 0.1)
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = 0.5 * float64(i)
	}

	m := ComputeDistanceMetrics(x, y, ts, cfg)
	assert.InDelta(t, 9.5, m.TotalDistance, 1e-6) // 19 steps x 0.5 m
	assert.InDelta(t, 18, m.MaxSpeed, 1e-6)
	assert.InDelta(t, 18, m.AvgSpeed, 1e-6)
	assert.Zero(t, m.SprintDistance) // 18 km/h is below both thresholds
	assert.Zero(t, m.HSRDistance)
}

func TestComputeDistanceMetricsRejectsGlitchStep(t *testing.T) {
	cfg := DefaultConfig()
	ts := uniformTS(4, 0, 0.1)
	// Steps: 0.5 m, 10 m glitch, 0.5 m.
	x := []float64{0, 0.5, 10.5, 11}
	y := make([]float64, 4)

	m := ComputeDistanceMetrics(x, y, ts, cfg)
	assert.InDelta(t, 1.0, m.TotalDistance, 1e-6, "glitch step must contribute zero distance")
}

func TestHSRDistanceIncludesSprint(t *testing.T) {
	cfg := DefaultConfig()
	// Three steps at 18, 22 and 26 km/h. HSR (>20) covers the 22 and 26
	// steps; sprint (>25) only the 26 step.
	ts := uniformTS(4, 0, 0.1)
	step := func(kmh float64) float64 { return kmh / msToKmh * 0.1 }
	x := []float64{0}
	for _, kmh := range []float64{18, 22, 26} {
		x = append(x, x[len(x)-1]+step(kmh))
	}
	y := make([]float64, 4)

	m := ComputeDistanceMetrics(x, y, ts, cfg)
	assert.InDelta(t, step(22)+step(26), m.HSRDistance, 1e-6)
	assert.InDelta(t, step(26), m.SprintDistance, 1e-6)
	assert.InDelta(t, step(18)+step(22)+step(26), m.TotalDistance, 1e-6)
}

func TestMaxSpeedScreenDropsResidualSpikes(t *testing.T) {
	cfg := DefaultConfig()
	// A 50 km/h step survives the step-distance screen (1.4 m in 0.1 s) but
	// must not become the reported max.
	ts := uniformTS(4, 0, 0.1)
	step := func(kmh float64) float64 { return kmh / msToKmh * 0.1 }
	x := []float64{0}
	for _, kmh := range []float64{10, 50, 10} {
		x = append(x, x[len(x)-1]+step(kmh))
	}
	y := make([]float64, 4)

	m := ComputeDistanceMetrics(x, y, ts, cfg)
	assert.InDelta(t, 10, m.MaxSpeed, 1e-6)
	assert.InDelta(t, 10, m.AvgSpeed, 1e-6)
}

func TestComputeDistanceMetricsDegenerate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ComputeDistanceMetrics(nil, nil, nil, cfg), ComputeDistanceMetrics([]float64{1}, []float64{1}, []float64{0}, cfg))
}

func TestZoneDistanceBreakdown(t *testing.T) {
	cfg := DefaultConfig()
	ts := uniformTS(7, 0, 0.1)
	step := func(kmh float64) float64 { return kmh / msToKmh * 0.1 }
	speeds := []float64{0.5, 8, 12, 18, 22, 30} // one step per zone
	x := []float64{0}
	for _, kmh := range speeds {
		x = append(x, x[len(x)-1]+step(kmh))
	}
	y := make([]float64, 7)

	zones := ZoneDistanceBreakdown(x, y, ts, cfg)
	for i, kmh := range speeds {
		assert.InDelta(t, step(kmh), zones[i], 1e-6, "zone %d", i)
	}

	// Zone totals and full distance agree.
	var zoneSum float64
	for _, d := range zones {
		zoneSum += d
	}
	m := ComputeDistanceMetrics(x, y, ts, cfg)
	assert.InDelta(t, m.TotalDistance, zoneSum, 1e-9)
}

func TestClassifySpeed(t *testing.T) {
	tests := []struct {
		kmh  float64
		want SpeedZone
	}{
		{0, ZoneStanding},
		{0.99, ZoneStanding},
		{1, ZoneWalking}, // boundaries are upper-exclusive
		{10.9, ZoneWalking},
		{11, ZoneJogging},
		{13.9, ZoneJogging},
		{14, ZoneRunning},
		{19.9, ZoneRunning},
		{20, ZoneHSR},
		{24.9, ZoneHSR},
		{25, ZoneSprint},
		{40, ZoneSprint},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySpeed(tt.kmh), "%.1f km/h", tt.kmh)
	}
}

package pipeline

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformTS returns n timestamps spaced dt seconds apart starting at start.
func uniformTS(n int, start, dt float64) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = start + float64(i)*dt
	}
	return ts
}

func TestGapAwareSmoothPreservesLine(t *testing.T) {
	// An order-2 fit reproduces linear motion exactly, boundaries included.
	n := 30
	ts := uniformTS(n, 0, 0.1)
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = 3.5*ts[i] - 1.2
	}

	smoothed, degraded, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)
	require.Len(t, smoothed, n)
	for i := range smoothed {
		assert.InDelta(t, vals[i], smoothed[i], 1e-9, "index %d", i)
		assert.False(t, degraded[i])
	}
}

func TestGapAwareSmoothReducesNoise(t *testing.T) {
	n := 50
	ts := uniformTS(n, 0, 0.1)
	vals := make([]float64, n)
	for i := range vals {
		// Deterministic zig-zag around a line.
		noise := 0.3
		if i%2 == 0 {
			noise = -0.3
		}
		vals[i] = float64(i)*0.5 + noise
	}

	smoothed, _, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)

	var rawDev, smoothDev float64
	for i := range vals {
		line := float64(i) * 0.5
		rawDev += math.Abs(vals[i] - line)
		smoothDev += math.Abs(smoothed[i] - line)
	}
	assert.Less(t, smoothDev, rawDev)
}

func TestGapSegmentsSmoothedIndependently(t *testing.T) {
	// Two 15-sample segments separated by a 2.0s hole. Each side must come
	// out exactly as it would if smoothed on its own.
	ts := append(uniformTS(15, 0, 0.1), uniformTS(15, 3.5, 0.1)...)
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = math.Sin(float64(i) * 0.4)
	}

	whole, degraded, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)
	assert.Zero(t, countTrue(degraded))

	first, _, err := GapAwareSmooth(vals[:15], ts[:15], 0.2, 7, 2)
	require.NoError(t, err)
	second, _, err := GapAwareSmooth(vals[15:], ts[15:], 0.2, 7, 2)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(first, whole[:15]))
	assert.Empty(t, cmp.Diff(second, whole[15:]))
}

func TestPerturbationDoesNotCrossGap(t *testing.T) {
	ts := append(uniformTS(15, 0, 0.1), uniformTS(15, 3.5, 0.1)...)
	vals := make([]float64, 30)
	for i := range vals {
		vals[i] = float64(i)
	}

	base, _, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)

	perturbed := make([]float64, len(vals))
	copy(perturbed, vals)
	perturbed[20] += 100

	out, _, err := GapAwareSmooth(perturbed, ts, 0.2, 7, 2)
	require.NoError(t, err)

	// First segment byte-identical; second segment changed.
	assert.Empty(t, cmp.Diff(base[:15], out[:15]))
	assert.NotEqual(t, base[15:], out[15:])
}

func TestShortSegmentWindowShrinks(t *testing.T) {
	// Length 5 with window 7, order 2: shrinks to window 5, still smoothed.
	ts := uniformTS(5, 0, 0.1)
	vals := []float64{0, 1, 2, 3, 4}

	smoothed, degraded, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)
	assert.Zero(t, countTrue(degraded))
	for i := range vals {
		assert.InDelta(t, vals[i], smoothed[i], 1e-9)
	}
}

func TestTinySegmentCopiedThrough(t *testing.T) {
	// Length 3 <= order+2: values pass through untouched, flagged degraded.
	ts := uniformTS(3, 0, 0.1)
	vals := []float64{1.5, 9.9, 2.5}

	smoothed, degraded, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, vals, smoothed)
	assert.Equal(t, 3, countTrue(degraded))
}

func TestGapAwareSmoothLengthInvariant(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 7, 8, 40} {
		ts := uniformTS(n, 0, 0.1)
		vals := make([]float64, n)
		smoothed, degraded, err := GapAwareSmooth(vals, ts, 0.2, 7, 2)
		require.NoError(t, err)
		assert.Len(t, smoothed, n)
		assert.Len(t, degraded, n)
	}
}

func TestGapAwareSmoothLengthMismatch(t *testing.T) {
	_, _, err := GapAwareSmooth([]float64{1, 2, 3}, []float64{0, 0.1}, 0.2, 7, 2)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInterpolateNaN(t *testing.T) {
	got := interpolateNaN([]float64{1, math.NaN(), 3})
	assert.InDelta(t, 2, got[1], 1e-9)

	// Leading and trailing runs take the nearest valid value.
	got = interpolateNaN([]float64{math.NaN(), math.NaN(), 5, math.NaN()})
	assert.Equal(t, []float64{5, 5, 5, 5}, got)

	// Longer interior run interpolates linearly.
	got = interpolateNaN([]float64{0, math.NaN(), math.NaN(), 3})
	assert.InDelta(t, 1, got[1], 1e-9)
	assert.InDelta(t, 2, got[2], 1e-9)

	// All-NaN passes through.
	got = interpolateNaN([]float64{math.NaN(), math.NaN()})
	assert.True(t, math.IsNaN(got[0]) && math.IsNaN(got[1]))
}

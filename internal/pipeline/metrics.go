package pipeline

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// stepKinematics holds per-step displacement and speed derived from
// consecutive position samples; both slices are one shorter than the input
// series.
type stepKinematics struct {
	distance []float64 // meters
	speedKmh []float64
}

// stepsFromPositions computes per-step displacement and speed. When
// timestamps are supplied the true delta is used (non-positive deltas are
// guarded with a tiny epsilon); otherwise the nominal sampling rate applies.
func stepsFromPositions(x, y, ts []float64, fps float64) stepKinematics {
	n := len(x) - 1
	if n < 1 {
		return stepKinematics{}
	}
	sk := stepKinematics{
		distance: make([]float64, n),
		speedKmh: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		d := math.Hypot(x[i+1]-x[i], y[i+1]-y[i])
		sk.distance[i] = d

		dt := 1.0 / fps
		if ts != nil {
			dt = ts[i+1] - ts[i]
			if dt <= 0 {
				dt = 1e-6
			}
		}
		sk.speedKmh[i] = d / dt * msToKmh
	}
	return sk
}

// ComputeDistanceMetrics derives the physical summary for one track from its
// (smoothed) position series.
//
// Any step longer than MaxStepDistance is a tracking glitch, not movement,
// and contributes zero distance — a 5 m single-frame jump at 10 Hz would be
// 50 m/s. The max/avg speed stats go through the second, looser outlier
// screen (MaxSpeedScreenKmh) so the reported peak cannot come from a
// residual spike. Degenerate input yields all-zero metrics, never an error.
func ComputeDistanceMetrics(x, y, ts []float64, cfg Config) model.DistanceMetrics {
	sk := stepsFromPositions(x, y, ts, cfg.FPS)
	if len(sk.distance) == 0 {
		return model.DistanceMetrics{}
	}

	var m model.DistanceMetrics
	for i, d := range sk.distance {
		if d > cfg.MaxStepDistance {
			continue
		}
		m.TotalDistance += d
		if sk.speedKmh[i] > cfg.HSRThresholdKmh {
			m.HSRDistance += d
		}
		if sk.speedKmh[i] > cfg.SprintThresholdKmh {
			m.SprintDistance += d
		}
	}

	screened := make([]float64, 0, len(sk.speedKmh))
	for _, v := range sk.speedKmh {
		if v <= cfg.MaxSpeedScreenKmh {
			screened = append(screened, v)
		}
	}
	if len(screened) > 0 {
		m.MaxSpeed = floats.Max(screened)
		m.AvgSpeed = stat.Mean(screened, nil)
	}
	return m
}

// ZoneDistanceBreakdown splits covered distance into movement-category
// buckets using the same step validity screen as ComputeDistanceMetrics.
func ZoneDistanceBreakdown(x, y, ts []float64, cfg Config) [6]float64 {
	sk := stepsFromPositions(x, y, ts, cfg.FPS)
	var zones [6]float64
	for i, d := range sk.distance {
		if d > cfg.MaxStepDistance {
			continue
		}
		zones[ClassifySpeed(sk.speedKmh[i])] += d
	}
	return zones
}

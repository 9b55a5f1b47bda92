package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

const (
	msToKmh = 3.6
	// minTimeDelta guards the per-sample dt signal against duplicate or
	// near-duplicate timestamps; anything smaller is replaced by the series
	// median.
	minTimeDelta = 1e-4
)

// Gradient computes d(vals)/d(ts) with a second-order centered difference
// that does not assume uniform spacing, falling back to one-sided
// differences at both boundaries. len(vals) must equal len(ts) and be >= 2.
func Gradient(vals, ts []float64) []float64 {
	n := len(vals)
	out := make([]float64, n)
	if n < 2 {
		return out
	}

	out[0] = (vals[1] - vals[0]) / (ts[1] - ts[0])
	out[n-1] = (vals[n-1] - vals[n-2]) / (ts[n-1] - ts[n-2])
	for i := 1; i < n-1; i++ {
		hs := ts[i] - ts[i-1]
		hd := ts[i+1] - ts[i]
		out[i] = (hs*hs*vals[i+1] + (hd*hd-hs*hs)*vals[i] - hd*hd*vals[i-1]) /
			(hs * hd * (hd + hs))
	}
	return out
}

// timeDeltas computes the instantaneous sampling interval per sample
// (centered, one-sided at the ends). Deltas below minTimeDelta are replaced
// by the median of the remaining deltas.
func timeDeltas(ts []float64) []float64 {
	dt := Gradient(ts, indexAxis(len(ts)))
	valid := make([]float64, 0, len(dt))
	for _, v := range dt {
		if v >= minTimeDelta {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return dt
	}
	sort.Float64s(valid)
	med := valid[len(valid)/2]
	if len(valid)%2 == 0 {
		med = (valid[len(valid)/2-1] + valid[len(valid)/2]) / 2
	}
	for i, v := range dt {
		if v < minTimeDelta {
			dt[i] = med
		}
	}
	return dt
}

func indexAxis(n int) []float64 {
	axis := make([]float64, n)
	for i := range axis {
		axis[i] = float64(i)
	}
	return axis
}

// deriveKinematics differentiates smoothed positions into speed and
// acceleration with respect to true elapsed time, clamps physically
// implausible speeds, and re-smooths the derived signals with the tighter
// speed window. A track with fewer than two samples yields empty output.
func deriveKinematics(series *model.KinematicSeries, ts []float64, cfg Config) ([]model.Diagnostic, error) {
	n := len(ts)
	if n < 2 {
		return nil, nil
	}
	var diags []model.Diagnostic

	series.TimeDelta = timeDeltas(ts)

	vx := Gradient(series.XSmooth, ts)
	vy := Gradient(series.YSmooth, ts)

	maxMs := cfg.MaxSpeedKmh / msToKmh
	anomalyMs := cfg.AnomalyThresholdKmh / msToKmh

	speed := make([]float64, n)
	anomalies := 0
	for i := range speed {
		s := math.Hypot(vx[i], vy[i])
		if s > anomalyMs {
			anomalies++
		}
		// Hard clamp: unclamped spikes are detection artifacts, not sprints.
		if s > maxMs {
			s = maxMs
		}
		speed[i] = s
	}
	if anomalies > 0 {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Code:     model.DiagSpeedAnomaly,
			Message:  fmt.Sprintf("%d velocity anomalies above %.0f km/h, clamped to %.0f km/h", anomalies, cfg.AnomalyThresholdKmh, cfg.MaxSpeedKmh),
			Count:    anomalies,
		})
	}
	series.SpeedRaw = speed

	smoothSpeed, _, err := GapAwareSmooth(speed, ts, cfg.MaxGapSeconds, cfg.SpeedSmoothingWindow, cfg.PolyOrder)
	if err != nil {
		return diags, err
	}
	// The polynomial fit can overshoot at segment edges; keep the clamp
	// guarantee on the reported series.
	for i, s := range smoothSpeed {
		if s < 0 {
			smoothSpeed[i] = 0
		} else if s > maxMs {
			smoothSpeed[i] = maxMs
		}
	}
	series.Speed = smoothSpeed
	series.SpeedKmh = make([]float64, n)
	for i, s := range smoothSpeed {
		series.SpeedKmh[i] = s * msToKmh
	}

	if n > 2 {
		accel := Gradient(smoothSpeed, ts)
		accel, _, err = GapAwareSmooth(accel, ts, cfg.MaxGapSeconds, cfg.SpeedSmoothingWindow, cfg.PolyOrder)
		if err != nil {
			return diags, err
		}
		series.Accel = accel
	} else {
		series.Accel = make([]float64, n)
	}
	return diags, nil
}

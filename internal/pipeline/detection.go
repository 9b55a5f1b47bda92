package pipeline

import (
	"fmt"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// DetectionRate returns the fraction of samples in which the entity was
// successfully localized. An empty track has rate 0.
func DetectionRate(track model.Track) float64 {
	if len(track) == 0 {
		return 0
	}
	detected := 0
	for _, s := range track {
		if s.IsDetected {
			detected++
		}
	}
	return float64(detected) / float64(len(track))
}

// filterDetection drops undetected samples from both the track and its
// kinematic series together when the detection rate falls below the
// configured minimum, keeping the two index-aligned. The filter is advisory:
// it flags quality loss but never aborts, and a track shrunk below half its
// original length is reported as possibly unreliable.
func filterDetection(track model.Track, series *model.KinematicSeries, cfg Config) (model.Track, float64, []model.Diagnostic) {
	rate := DetectionRate(track)
	if len(track) == 0 || cfg.MinDetectionRate <= 0 || rate >= cfg.MinDetectionRate {
		return track, rate, nil
	}

	original := len(track)
	kept := make([]int, 0, original)
	for i, s := range track {
		if s.IsDetected {
			kept = append(kept, i)
		}
	}

	filtered := make(model.Track, 0, len(kept))
	for _, i := range kept {
		filtered = append(filtered, track[i])
	}
	series.XSmooth = selectIdx(series.XSmooth, kept)
	series.YSmooth = selectIdx(series.YSmooth, kept)
	series.TimeDelta = selectIdx(series.TimeDelta, kept)
	series.SpeedRaw = selectIdx(series.SpeedRaw, kept)
	series.Speed = selectIdx(series.Speed, kept)
	series.SpeedKmh = selectIdx(series.SpeedKmh, kept)
	series.Accel = selectIdx(series.Accel, kept)
	series.Degraded = selectBoolIdx(series.Degraded, kept)

	dropped := original - len(filtered)
	diags := []model.Diagnostic{{
		Severity: model.SeverityWarning,
		Code:     model.DiagLowDetection,
		Message:  fmt.Sprintf("detection rate %.1f%% below minimum %.1f%%, dropped %d of %d samples", rate*100, cfg.MinDetectionRate*100, dropped, original),
		Count:    dropped,
	}}
	if len(filtered) < original/2 {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Code:     model.DiagUnreliableTrack,
			Message:  fmt.Sprintf("fewer than half the samples survived detection filtering (%d of %d); track may be unreliable", len(filtered), original),
		})
	}
	return filtered, rate, diags
}

func selectIdx(vals []float64, idx []int) []float64 {
	if vals == nil {
		return nil
	}
	out := make([]float64, 0, len(idx))
	for _, i := range idx {
		if i < len(vals) {
			out = append(out, vals[i])
		}
	}
	return out
}

func selectBoolIdx(vals []bool, idx []int) []bool {
	if vals == nil {
		return nil
	}
	out := make([]bool, 0, len(idx))
	for _, i := range idx {
		if i < len(vals) {
			out = append(out, vals[i])
		}
	}
	return out
}

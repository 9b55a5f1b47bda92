package pipeline

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// AggregateByPhase buckets one player's cleaned kinematics into
// phase-of-play windows by frame range and averages speed and position per
// window. Phases with no overlapping samples are skipped.
func AggregateByPhase(track model.Track, series *model.KinematicSeries, phases []model.PhaseWindow) []model.PhasePhysical {
	if len(track) == 0 || series.Len() != len(track) {
		return nil
	}

	out := make([]model.PhasePhysical, 0, len(phases))
	for _, ph := range phases {
		var speeds, xs, ys []float64
		for i, s := range track {
			if s.Frame < ph.StartFrame || s.Frame > ph.EndFrame {
				continue
			}
			if i < len(series.Speed) {
				speeds = append(speeds, series.Speed[i])
			}
			xs = append(xs, series.XSmooth[i])
			ys = append(ys, series.YSmooth[i])
		}
		if len(xs) == 0 {
			continue
		}
		pp := model.PhasePhysical{
			PhaseIndex:      ph.Index,
			PossessionPhase: ph.PossessionPhase,
			StartFrame:      ph.StartFrame,
			EndFrame:        ph.EndFrame,
			AvgX:            stat.Mean(xs, nil),
			AvgY:            stat.Mean(ys, nil),
		}
		if len(speeds) > 0 {
			pp.AvgSpeedMs = stat.Mean(speeds, nil)
			pp.AvgSpeedKmh = pp.AvgSpeedMs * msToKmh
		}
		out = append(out, pp)
	}
	return out
}

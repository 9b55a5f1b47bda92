package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// TrackResult is the full output for one track: the prepared (sorted,
// deduplicated, possibly detection-filtered) track, its aligned kinematic
// series, and every data-quality diagnostic raised along the way.
type TrackResult struct {
	Track         model.Track
	Series        *model.KinematicSeries
	System        model.CoordinateSystem
	DetectionRate float64
	AnomalyCount  int
	Diagnostics   []model.Diagnostic
}

// PrepareTrack sorts samples by timestamp and collapses duplicates, keeping
// the first occurrence. When no sample carries a detection flag the flag is
// inferred from position validity. The input is never mutated.
func PrepareTrack(track model.Track) model.Track {
	out := make(model.Track, len(track))
	copy(out, track)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})

	dedup := out[:0]
	for i, s := range out {
		if i > 0 && s.Timestamp == dedup[len(dedup)-1].Timestamp {
			continue
		}
		dedup = append(dedup, s)
	}
	out = dedup

	anyDetected := false
	for _, s := range out {
		if s.IsDetected {
			anyDetected = true
			break
		}
	}
	if !anyDetected {
		for i := range out {
			out[i].IsDetected = !math.IsNaN(out[i].X) && !math.IsNaN(out[i].Y)
		}
	}
	return out
}

// DeriveTrack runs the whole pipeline for one track: prepare → coordinate
// normalization → gap-aware position smoothing → kinematic derivation →
// detection-quality filtering. The caller owns the input track and receives
// freshly allocated output; identical inputs produce bit-identical outputs.
//
// A track with one sample or none yields an empty kinematic series (aligned
// positions only), not an error. The only error conditions are configuration
// mistakes.
func DeriveTrack(track model.Track, cfg Config) (*TrackResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prepared := PrepareTrack(track)
	res := &TrackResult{Track: prepared, Series: &model.KinematicSeries{}}

	n := len(prepared)
	x := make([]float64, n)
	y := make([]float64, n)
	ts := make([]float64, n)
	for i, s := range prepared {
		x[i], y[i], ts[i] = s.X, s.Y, s.Timestamp
	}

	xm, ym, system, diags := NormalizeCoordinates(x, y)
	res.System = system
	res.Diagnostics = append(res.Diagnostics, diags...)

	if n <= 1 {
		res.Series.XSmooth = xm
		res.Series.YSmooth = ym
		res.DetectionRate = DetectionRate(prepared)
		return res, nil
	}

	var err error
	res.Series.XSmooth, res.Series.Degraded, err = GapAwareSmooth(xm, ts, cfg.MaxGapSeconds, cfg.SmoothingWindow, cfg.PolyOrder)
	if err != nil {
		return nil, err
	}
	res.Series.YSmooth, _, err = GapAwareSmooth(ym, ts, cfg.MaxGapSeconds, cfg.SmoothingWindow, cfg.PolyOrder)
	if err != nil {
		return nil, err
	}
	if degradedCount := countTrue(res.Series.Degraded); degradedCount > 0 {
		res.Diagnostics = append(res.Diagnostics, model.Diagnostic{
			Severity: model.SeverityInfo,
			Code:     model.DiagDegradedSegment,
			Message:  fmt.Sprintf("%d samples passed through unsmoothed (segments too short for any valid window)", degradedCount),
			Count:    degradedCount,
		})
	}

	kinDiags, err := deriveKinematics(res.Series, ts, cfg)
	if err != nil {
		return nil, err
	}
	res.Diagnostics = append(res.Diagnostics, kinDiags...)
	for _, d := range kinDiags {
		if d.Code == model.DiagSpeedAnomaly {
			res.AnomalyCount = d.Count
		}
	}

	filtered, rate, detDiags := filterDetection(prepared, res.Series, cfg)
	res.Track = filtered
	res.DetectionRate = rate
	res.Diagnostics = append(res.Diagnostics, detDiags...)

	return res, nil
}

// Metrics computes the distance summary from the cleaned series, using true
// timestamps from the (possibly filtered) track.
func (r *TrackResult) Metrics(cfg Config) model.DistanceMetrics {
	return ComputeDistanceMetrics(r.Series.XSmooth, r.Series.YSmooth, r.timestamps(), cfg)
}

// ZoneDistances buckets covered distance by movement category.
func (r *TrackResult) ZoneDistances(cfg Config) [6]float64 {
	return ZoneDistanceBreakdown(r.Series.XSmooth, r.Series.YSmooth, r.timestamps(), cfg)
}

func (r *TrackResult) timestamps() []float64 {
	ts := make([]float64, len(r.Track))
	for i, s := range r.Track {
		ts[i] = s.Timestamp
	}
	return ts
}

// PlayerResult pairs one roster entry with its pipeline output. Err is set
// when that player's derivation failed; the rest of the roster is unaffected.
type PlayerResult struct {
	Player  model.Player
	Result  *TrackResult
	Metrics model.DistanceMetrics
	Zones   [6]float64
	Err     error
}

// DeriveRoster runs the pipeline for every player with a track. One corrupt
// player's data never blanks the whole match: failures are collected on the
// result, not propagated.
func DeriveRoster(tracks map[int]model.Track, players []model.Player, cfg Config) []PlayerResult {
	results := make([]PlayerResult, 0, len(players))
	for _, p := range players {
		track, ok := tracks[p.ID]
		if !ok || len(track) == 0 {
			continue
		}
		pr := PlayerResult{Player: p}
		res, err := DeriveTrack(track, cfg)
		if err != nil {
			pr.Err = fmt.Errorf("player %d: %w", p.ID, err)
			results = append(results, pr)
			continue
		}
		pr.Result = res
		pr.Metrics = res.Metrics(cfg)
		pr.Zones = res.ZoneDistances(cfg)
		results = append(results, pr)
	}
	return results
}

func countTrue(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}

package pipeline

import (
	"fmt"
	"math"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
)

// boundsTolerance is the extra runoff (meters) allowed past the touchlines
// before coordinates are flagged. Broadcast/extrapolated tracking legitimately
// extends a little past the pitch.
const boundsTolerance = 5.0

// InferCoordinateSystem classifies which convention a raw (x, y) stream uses,
// looking only at non-missing values.
//
// Precedence, deterministic:
//  1. max(|x|) <= 1.5, max(|y|) <= 1.5, min >= 0 on both axes → unit square
//  2. max(|x|) <= 110, max(|y|) <= 110, min >= -1 on both axes → percentage
//  3. otherwise → pitch meters (already canonical)
func InferCoordinateSystem(x, y []float64) model.CoordinateSystem {
	minX, maxX, anyX := validRange(x)
	minY, maxY, anyY := validRange(y)
	if !anyX || !anyY {
		return model.SystemEmpty
	}

	absMaxX := math.Max(math.Abs(minX), math.Abs(maxX))
	absMaxY := math.Max(math.Abs(minY), math.Abs(maxY))

	switch {
	case absMaxX <= 1.5 && absMaxY <= 1.5 && minX >= 0 && minY >= 0:
		return model.SystemUnitSquare
	case absMaxX <= 110 && absMaxY <= 110 && minX >= -1 && minY >= -1:
		return model.SystemPercentage
	default:
		return model.SystemPitchMeters
	}
}

// ToPitchMeters rescales raw coordinates of a known system to the canonical
// centered-meters frame. Pitch meters and empty inputs pass through
// unchanged. Fresh slices are always returned; the input is never mutated.
func ToPitchMeters(x, y []float64, system model.CoordinateSystem) (xm, ym []float64) {
	xm = make([]float64, len(x))
	ym = make([]float64, len(y))
	copy(xm, x)
	copy(ym, y)

	switch system {
	case model.SystemUnitSquare:
		for i := range xm {
			xm[i] = xm[i]*model.PitchLength - model.HalfPitchLength
			ym[i] = ym[i]*model.PitchWidth - model.HalfPitchWidth
		}
	case model.SystemPercentage:
		for i := range xm {
			xm[i] = xm[i]/100*model.PitchLength - model.HalfPitchLength
			ym[i] = ym[i]/100*model.PitchWidth - model.HalfPitchWidth
		}
	}
	return xm, ym
}

// NormalizeCoordinates infers the coordinate system, rescales to pitch
// meters, and validates the result against pitch bounds plus runoff
// tolerance. Out-of-bounds data is flagged, never rejected.
func NormalizeCoordinates(x, y []float64) (xm, ym []float64, system model.CoordinateSystem, diags []model.Diagnostic) {
	system = InferCoordinateSystem(x, y)
	if system == model.SystemEmpty {
		return x, y, system, nil
	}
	xm, ym = ToPitchMeters(x, y, system)

	limX := model.HalfPitchLength + boundsTolerance
	limY := model.HalfPitchWidth + boundsTolerance
	maxAbsX := maxAbsValid(xm)
	maxAbsY := maxAbsValid(ym)
	if maxAbsX > limX || maxAbsY > limY {
		diags = append(diags, model.Diagnostic{
			Severity: model.SeverityWarning,
			Code:     model.DiagOutOfBounds,
			Message: fmt.Sprintf("coordinates exceed pitch bounds after scaling: max |x|=%.1f (limit %.1f), max |y|=%.1f (limit %.1f)",
				maxAbsX, limX, maxAbsY, limY),
		})
	}
	return xm, ym, system, diags
}

// Direction of attack along the pitch x axis.
type Direction int

const (
	LeftToRight Direction = 0
	RightToLeft Direction = 1
)

// StandardizeDirection flips coordinates so the home team always attacks
// left to right in the output frame. Sides swap at half time, so the flip
// depends on the period. Returns fresh slices.
func StandardizeDirection(x, y []float64, period int, homeAttackP1 Direction) (xs, ys []float64) {
	xs = make([]float64, len(x))
	ys = make([]float64, len(y))
	copy(xs, x)
	copy(ys, y)

	attack := homeAttackP1
	if period == 2 {
		if attack == LeftToRight {
			attack = RightToLeft
		} else {
			attack = LeftToRight
		}
	}
	if attack == RightToLeft {
		for i := range xs {
			xs[i] = -xs[i]
			ys[i] = -ys[i]
		}
	}
	return xs, ys
}

// validRange returns min/max over non-NaN values and whether any exist.
func validRange(vals []float64) (lo, hi float64, any bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		any = true
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, any
}

// maxAbsValid returns the largest |v| over non-NaN values, 0 when none.
func maxAbsValid(vals []float64) float64 {
	maxAbs := 0.0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
		}
	}
	return maxAbs
}

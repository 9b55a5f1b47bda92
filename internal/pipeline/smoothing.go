package pipeline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// savGol is a Savitzky-Golay filter: a local least-squares polynomial fit
// evaluated at every offset of the window. The projection matrix is built
// once per (window, order) pair; applying the filter is then a dot product
// per sample.
type savGol struct {
	window int
	half   int
	// proj is the window x window smoothing projection A (AᵀA)⁻¹ Aᵀ for the
	// polynomial design matrix A. Row h smooths an interior point; the other
	// rows evaluate the boundary fits at their in-window offsets.
	proj *mat.Dense
}

func newSavGol(window, order int) (*savGol, error) {
	if window%2 == 0 {
		window++
	}
	if order >= window {
		return nil, fmt.Errorf("%w: savgol order %d >= window %d", ErrInvalidConfig, order, window)
	}
	half := (window - 1) / 2

	a := mat.NewDense(window, order+1, nil)
	for i := 0; i < window; i++ {
		m := float64(i - half)
		p := 1.0
		for j := 0; j <= order; j++ {
			a.Set(i, j, p)
			p *= m
		}
	}

	// proj = A (AᵀA)⁻¹ Aᵀ via the normal equations.
	var ata mat.Dense
	ata.Mul(a.T(), a)
	var x mat.Dense
	if err := x.Solve(&ata, a.T()); err != nil {
		return nil, fmt.Errorf("savgol normal equations: %w", err)
	}
	var proj mat.Dense
	proj.Mul(a, &x)
	return &savGol{window: window, half: half, proj: &proj}, nil
}

// apply smooths vals, which must be at least window long. Interior points
// use the centered fit; the first and last half-window points evaluate the
// polynomial fitted to the first/last full window at their own offsets, so
// output length equals input length with no boundary shrinkage.
func (s *savGol) apply(vals []float64) []float64 {
	n := len(vals)
	out := make([]float64, n)

	for i := s.half; i < n-s.half; i++ {
		out[i] = s.dot(s.half, vals[i-s.half:i+s.half+1])
	}
	head := vals[:s.window]
	tail := vals[n-s.window:]
	for i := 0; i < s.half; i++ {
		out[i] = s.dot(i, head)
		out[n-1-i] = s.dot(s.window-1-i, tail)
	}
	return out
}

func (s *savGol) dot(row int, window []float64) float64 {
	sum := 0.0
	for k := 0; k < s.window; k++ {
		sum += s.proj.At(row, k) * window[k]
	}
	return sum
}

// GapAwareSmooth applies Savitzky-Golay smoothing to vals against its true
// timestamps, cutting the series into independent segments wherever the time
// delta exceeds maxGap so that no window ever spans a detection gap.
//
// Per segment:
//   - length > window: filter at the configured window
//   - order+2 < length <= window: shrink to the largest odd window <= length
//     that still exceeds order
//   - otherwise: copy values through unsmoothed and flag them degraded
//
// Interior NaNs of a filtered segment are linearly interpolated (both
// directions) first; the filter itself never sees NaN. Output length always
// equals input length. This is a batch operation: segment boundaries depend
// on the whole series.
func GapAwareSmooth(vals, ts []float64, maxGap float64, window, order int) (smoothed []float64, degraded []bool, err error) {
	if len(vals) != len(ts) {
		return nil, nil, fmt.Errorf("%w: series length %d != timestamps length %d", ErrInvalidConfig, len(vals), len(ts))
	}
	n := len(vals)
	smoothed = make([]float64, n)
	degraded = make([]bool, n)
	copy(smoothed, vals)
	if n == 0 {
		return smoothed, degraded, nil
	}

	filters := map[int]*savGol{}
	filterFor := func(w int) (*savGol, error) {
		if f, ok := filters[w]; ok {
			return f, nil
		}
		f, ferr := newSavGol(w, order)
		if ferr != nil {
			return nil, ferr
		}
		filters[w] = f
		return f, nil
	}

	start := 0
	flush := func(end int) error {
		seg := vals[start:end]
		segLen := len(seg)
		switch {
		case segLen > window:
			f, ferr := filterFor(window)
			if ferr != nil {
				return ferr
			}
			copy(smoothed[start:end], f.apply(interpolateNaN(seg)))
		case segLen > order+2:
			w := segLen | 1 // largest odd <= segLen
			if w == segLen+1 {
				w -= 2
			}
			if w > order {
				f, ferr := filterFor(w)
				if ferr != nil {
					return ferr
				}
				copy(smoothed[start:end], f.apply(interpolateNaN(seg)))
			} else {
				markDegraded(degraded[start:end])
			}
		default:
			markDegraded(degraded[start:end])
		}
		start = end
		return nil
	}

	for i := 1; i < n; i++ {
		if ts[i]-ts[i-1] > maxGap {
			if err := flush(i); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := flush(n); err != nil {
		return nil, nil, err
	}
	return smoothed, degraded, nil
}

func markDegraded(flags []bool) {
	for i := range flags {
		flags[i] = true
	}
}

// interpolateNaN returns a copy of vals with NaNs filled by linear
// interpolation between the nearest valid neighbors; leading and trailing
// runs take the nearest valid value. An all-NaN input is returned as is.
func interpolateNaN(vals []float64) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)

	hasNaN := false
	for _, v := range out {
		if math.IsNaN(v) {
			hasNaN = true
			break
		}
	}
	if !hasNaN {
		return out
	}

	prev := -1 // index of last valid value seen
	for i := 0; i < len(out); i++ {
		if !math.IsNaN(out[i]) {
			if prev == -1 && i > 0 {
				// leading run
				for j := 0; j < i; j++ {
					out[j] = out[i]
				}
			} else if prev >= 0 && i-prev > 1 {
				step := (out[i] - out[prev]) / float64(i-prev)
				for j := prev + 1; j < i; j++ {
					out[j] = out[prev] + step*float64(j-prev)
				}
			}
			prev = i
		}
	}
	if prev == -1 {
		return out // nothing valid to interpolate from
	}
	for j := prev + 1; j < len(out); j++ {
		out[j] = out[prev]
	}
	return out
}

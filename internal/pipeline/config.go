// Package pipeline implements the trajectory signal-processing core: raw,
// gap-ridden position samples in; physically plausible position, velocity and
// acceleration series plus distance/speed-zone summaries out.
//
// Every entry point is a pure batch transformation. No package state, no
// logging side channel: data-quality findings come back as model.Diagnostic
// values next to the primary result.
package pipeline

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps all configuration validation failures. Unlike
// data-quality diagnostics these indicate a caller bug and are fatal.
var ErrInvalidConfig = errors.New("invalid pipeline config")

// Config holds every tunable of the pipeline. It is passed by value into
// entry points; there are no process-wide mutable knobs.
type Config struct {
	// SmoothingWindow is the Savitzky-Golay window for position smoothing.
	// Must be odd and greater than PolyOrder.
	SmoothingWindow int

	// PolyOrder is the polynomial order of the smoothing fit.
	PolyOrder int

	// SpeedSmoothingWindow is the tighter window used when re-smoothing the
	// derived speed and acceleration signals.
	SpeedSmoothingWindow int

	// MaxGapSeconds is the time delta above which consecutive samples are
	// treated as separate motion segments; no smoothing window spans a gap.
	MaxGapSeconds float64

	// MaxSpeedKmh is the hard clamp applied to derived speeds. Human sprint
	// speed tops out near this bound; anything above is a tracking artifact.
	MaxSpeedKmh float64

	// AnomalyThresholdKmh is the reporting threshold for velocity anomalies.
	// Speeds above it are counted in a diagnostic before clamping.
	AnomalyThresholdKmh float64

	// MinDetectionRate is the fraction of detected samples below which a
	// track is filtered down to detected samples only.
	MinDetectionRate float64

	// MaxStepDistance is the largest single-frame displacement (meters)
	// credited as movement; larger steps are tracking glitches and count
	// zero distance.
	MaxStepDistance float64

	// SprintThresholdKmh and HSRThresholdKmh bound the speed zones for
	// sprint and high-speed-running distance. HSR is inclusive of sprint.
	SprintThresholdKmh float64
	HSRThresholdKmh    float64

	// MaxSpeedScreenKmh is a second, looser outlier screen applied only when
	// computing the reported max/avg speed. Kept separate from MaxSpeedKmh
	// on purpose; see DESIGN.md.
	MaxSpeedScreenKmh float64

	// FPS is the nominal sampling rate, used for match-clock mapping and
	// minutes-played estimates. True per-sample deltas always come from
	// timestamps.
	FPS float64
}

// DefaultConfig returns the standard configuration for 10 Hz broadcast
// tracking data.
func DefaultConfig() Config {
	return Config{
		SmoothingWindow:      7,
		PolyOrder:            2,
		SpeedSmoothingWindow: 5,
		MaxGapSeconds:        0.2,
		MaxSpeedKmh:          42.0,
		AnomalyThresholdKmh:  45.0,
		MinDetectionRate:     0.95,
		MaxStepDistance:      5.0,
		SprintThresholdKmh:   25.0,
		HSRThresholdKmh:      20.0,
		MaxSpeedScreenKmh:    38.0,
		FPS:                  10.0,
	}
}

// Validate reports the first configuration error found. A non-nil result
// means the caller misconfigured the pipeline; it is not a data problem.
func (c Config) Validate() error {
	if c.SmoothingWindow < 3 || c.SmoothingWindow%2 == 0 {
		return fmt.Errorf("%w: smoothing window %d must be odd and >= 3", ErrInvalidConfig, c.SmoothingWindow)
	}
	if c.SpeedSmoothingWindow < 3 || c.SpeedSmoothingWindow%2 == 0 {
		return fmt.Errorf("%w: speed smoothing window %d must be odd and >= 3", ErrInvalidConfig, c.SpeedSmoothingWindow)
	}
	if c.PolyOrder < 1 {
		return fmt.Errorf("%w: poly order %d must be >= 1", ErrInvalidConfig, c.PolyOrder)
	}
	if c.PolyOrder >= c.SmoothingWindow {
		return fmt.Errorf("%w: poly order %d must be < smoothing window %d", ErrInvalidConfig, c.PolyOrder, c.SmoothingWindow)
	}
	if c.PolyOrder >= c.SpeedSmoothingWindow {
		return fmt.Errorf("%w: poly order %d must be < speed smoothing window %d", ErrInvalidConfig, c.PolyOrder, c.SpeedSmoothingWindow)
	}
	if c.MaxGapSeconds <= 0 {
		return fmt.Errorf("%w: max gap seconds %g must be positive", ErrInvalidConfig, c.MaxGapSeconds)
	}
	if c.MaxSpeedKmh <= 0 {
		return fmt.Errorf("%w: max speed %g must be positive", ErrInvalidConfig, c.MaxSpeedKmh)
	}
	if c.AnomalyThresholdKmh < c.MaxSpeedKmh {
		return fmt.Errorf("%w: anomaly threshold %g must be >= max speed %g", ErrInvalidConfig, c.AnomalyThresholdKmh, c.MaxSpeedKmh)
	}
	if c.MinDetectionRate < 0 || c.MinDetectionRate > 1 {
		return fmt.Errorf("%w: min detection rate %g must be in [0,1]", ErrInvalidConfig, c.MinDetectionRate)
	}
	if c.MaxStepDistance <= 0 {
		return fmt.Errorf("%w: max step distance %g must be positive", ErrInvalidConfig, c.MaxStepDistance)
	}
	if c.HSRThresholdKmh <= 0 || c.SprintThresholdKmh <= c.HSRThresholdKmh {
		return fmt.Errorf("%w: sprint threshold %g must exceed HSR threshold %g", ErrInvalidConfig, c.SprintThresholdKmh, c.HSRThresholdKmh)
	}
	if c.MaxSpeedScreenKmh <= 0 {
		return fmt.Errorf("%w: max speed screen %g must be positive", ErrInvalidConfig, c.MaxSpeedScreenKmh)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps %g must be positive", ErrInvalidConfig, c.FPS)
	}
	return nil
}

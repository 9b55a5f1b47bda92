package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfigValid(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"even smoothing window", func(c *Config) { c.SmoothingWindow = 6 }},
		{"window too small", func(c *Config) { c.SmoothingWindow = 1 }},
		{"even speed window", func(c *Config) { c.SpeedSmoothingWindow = 4 }},
		{"zero poly order", func(c *Config) { c.PolyOrder = 0 }},
		{"order exceeds window", func(c *Config) { c.PolyOrder = 7 }},
		{"order exceeds speed window", func(c *Config) { c.PolyOrder = 5; c.SmoothingWindow = 7 }},
		{"non-positive gap", func(c *Config) { c.MaxGapSeconds = 0 }},
		{"non-positive max speed", func(c *Config) { c.MaxSpeedKmh = -1 }},
		{"anomaly below clamp", func(c *Config) { c.AnomalyThresholdKmh = 40 }},
		{"detection rate above one", func(c *Config) { c.MinDetectionRate = 1.5 }},
		{"negative detection rate", func(c *Config) { c.MinDetectionRate = -0.1 }},
		{"non-positive step distance", func(c *Config) { c.MaxStepDistance = 0 }},
		{"sprint below hsr", func(c *Config) { c.SprintThresholdKmh = 15 }},
		{"non-positive speed screen", func(c *Config) { c.MaxSpeedScreenKmh = 0 }},
		{"non-positive fps", func(c *Config) { c.FPS = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

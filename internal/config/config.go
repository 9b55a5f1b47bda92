// Package config loads the optional application config file. Everything has a
// working default; the file and environment only override.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

const envPrefix = "PITCHMETRICS"

// Config is the application-level configuration: pipeline tunables plus
// logging knobs for the CLI.
type Config struct {
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Log      LogConfig      `mapstructure:"log"`
}

// PipelineConfig mirrors pipeline.Config with file-friendly keys.
type PipelineConfig struct {
	SmoothingWindow      int     `mapstructure:"smoothingWindow"`
	PolyOrder            int     `mapstructure:"polyOrder"`
	SpeedSmoothingWindow int     `mapstructure:"speedSmoothingWindow"`
	MaxGapSeconds        float64 `mapstructure:"maxGapSeconds"`
	MaxSpeedKmh          float64 `mapstructure:"maxSpeedKmh"`
	AnomalyThresholdKmh  float64 `mapstructure:"anomalyThresholdKmh"`
	MinDetectionRate     float64 `mapstructure:"minDetectionRate"`
	MaxStepDistance      float64 `mapstructure:"maxStepDistance"`
	SprintThresholdKmh   float64 `mapstructure:"sprintThresholdKmh"`
	HSRThresholdKmh      float64 `mapstructure:"hsrThresholdKmh"`
	MaxSpeedScreenKmh    float64 `mapstructure:"maxSpeedScreenKmh"`
	FPS                  float64 `mapstructure:"fps"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the config file at path (optional; empty path means defaults
// only), layers environment variables on top, and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	setDefaults(v)

	if path != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config %q: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.PipelineConfig().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PipelineConfig converts the file shape into the pipeline's own Config.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		SmoothingWindow:      c.Pipeline.SmoothingWindow,
		PolyOrder:            c.Pipeline.PolyOrder,
		SpeedSmoothingWindow: c.Pipeline.SpeedSmoothingWindow,
		MaxGapSeconds:        c.Pipeline.MaxGapSeconds,
		MaxSpeedKmh:          c.Pipeline.MaxSpeedKmh,
		AnomalyThresholdKmh:  c.Pipeline.AnomalyThresholdKmh,
		MinDetectionRate:     c.Pipeline.MinDetectionRate,
		MaxStepDistance:      c.Pipeline.MaxStepDistance,
		SprintThresholdKmh:   c.Pipeline.SprintThresholdKmh,
		HSRThresholdKmh:      c.Pipeline.HSRThresholdKmh,
		MaxSpeedScreenKmh:    c.Pipeline.MaxSpeedScreenKmh,
		FPS:                  c.Pipeline.FPS,
	}
}

func setDefaults(v *viper.Viper) {
	def := pipeline.DefaultConfig()
	v.SetDefault("pipeline.smoothingWindow", def.SmoothingWindow)
	v.SetDefault("pipeline.polyOrder", def.PolyOrder)
	v.SetDefault("pipeline.speedSmoothingWindow", def.SpeedSmoothingWindow)
	v.SetDefault("pipeline.maxGapSeconds", def.MaxGapSeconds)
	v.SetDefault("pipeline.maxSpeedKmh", def.MaxSpeedKmh)
	v.SetDefault("pipeline.anomalyThresholdKmh", def.AnomalyThresholdKmh)
	v.SetDefault("pipeline.minDetectionRate", def.MinDetectionRate)
	v.SetDefault("pipeline.maxStepDistance", def.MaxStepDistance)
	v.SetDefault("pipeline.sprintThresholdKmh", def.SprintThresholdKmh)
	v.SetDefault("pipeline.hsrThresholdKmh", def.HSRThresholdKmh)
	v.SetDefault("pipeline.maxSpeedScreenKmh", def.MaxSpeedScreenKmh)
	v.SetDefault("pipeline.fps", def.FPS)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

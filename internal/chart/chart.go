// Package chart renders HTML charts of the cleaned kinematic series using
// go-echarts, for quick visual inspection outside the CLI tables.
package chart

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

// speedChart builds the smoothed-speed timeline for one player, with the HSR
// and sprint zone thresholds drawn as horizontal reference lines.
func speedChart(name string, track model.Track, series *model.KinematicSeries, periodStarts map[int]int, cfg pipeline.Config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: name + " — kinematics", Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s — speed", name),
			Subtitle: fmt.Sprintf("smoothed, clamped at %.0f km/h", cfg.MaxSpeedKmh),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "match clock"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "km/h"}),
	)

	clocks := make([]string, 0, len(track))
	speeds := make([]opts.LineData, 0, len(track))
	for i, s := range track {
		if i >= len(series.SpeedKmh) {
			break
		}
		clocks = append(clocks, pipeline.MatchClock(s.Frame, s.Period, periodStarts, cfg.FPS))
		speeds = append(speeds, opts.LineData{Value: series.SpeedKmh[i]})
	}

	line.SetXAxis(clocks).
		AddSeries("speed", speeds, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)})).
		SetSeriesOptions(charts.WithMarkLineNameYAxisItemOpts(
			opts.MarkLineNameYAxisItem{Name: "HSR", YAxis: cfg.HSRThresholdKmh},
			opts.MarkLineNameYAxisItem{Name: "sprint", YAxis: cfg.SprintThresholdKmh},
		))
	return line
}

// accelChart builds the acceleration timeline for one player.
func accelChart(name string, track model.Track, series *model.KinematicSeries, periodStarts map[int]int, cfg pipeline.Config) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "400px"}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s — acceleration", name)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "match clock"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m/s²"}),
	)

	clocks := make([]string, 0, len(track))
	accels := make([]opts.LineData, 0, len(track))
	for i, s := range track {
		if i >= len(series.Accel) {
			break
		}
		clocks = append(clocks, pipeline.MatchClock(s.Frame, s.Period, periodStarts, cfg.FPS))
		accels = append(accels, opts.LineData{Value: series.Accel[i]})
	}

	line.SetXAxis(clocks).
		AddSeries("acceleration", accels, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line
}

// distanceBar builds the per-player distance comparison across a match.
func distanceBar(rows []model.PlayerPhysical) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Match physical summary", Width: "1200px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Distance covered"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "m"}),
	)

	names := make([]string, 0, len(rows))
	total := make([]opts.BarData, 0, len(rows))
	hsr := make([]opts.BarData, 0, len(rows))
	sprint := make([]opts.BarData, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.Name)
		total = append(total, opts.BarData{Value: r.TotalDistance})
		hsr = append(hsr, opts.BarData{Value: r.HSRDistance})
		sprint = append(sprint, opts.BarData{Value: r.SprintDistance})
	}

	bar.SetXAxis(names).
		AddSeries("total", total).
		AddSeries("hsr", hsr).
		AddSeries("sprint", sprint)
	return bar
}

// WritePlayerCharts renders one player's speed and acceleration timelines to
// an HTML file.
func WritePlayerCharts(path, name string, track model.Track, series *model.KinematicSeries, periodStarts map[int]int, cfg pipeline.Config) error {
	page := components.NewPage()
	page.AddCharts(
		speedChart(name, track, series, periodStarts, cfg),
		accelChart(name, track, series, periodStarts, cfg),
	)
	return writePage(path, page)
}

// WriteMatchCharts renders the per-player distance comparison to an HTML file.
func WriteMatchCharts(path string, rows []model.PlayerPhysical) error {
	page := components.NewPage()
	page.AddCharts(distanceBar(rows))
	return writePage(path, page)
}

func writePage(path string, page *components.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()
	if err := page.Render(f); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	return nil
}

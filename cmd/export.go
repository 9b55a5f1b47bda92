package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchlab/go-pitch-metrics/internal/loader"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

var (
	exportPlayerID int
	exportOut      string
)

var exportCmd = &cobra.Command{
	Use:   "export <data-dir> <match-id>",
	Short: "Export cleaned kinematic series as CSV",
	Long: `Runs the pipeline from the raw match files and writes the cleaned
per-sample series (position, speed, acceleration, match clock) as CSV.
Use --player to restrict the export to one trackable ID.`,
	Args: cobra.ExactArgs(2),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportPlayerID, "player", 0, "export only this trackable ID (default: all players)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file path (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	matchID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[1])
	}

	match, err := loader.LoadMatch(dataDir, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}

	cfg := pipelineConfig()
	if match.Meta.FPS > 0 {
		cfg.FPS = match.Meta.FPS
	}
	periodStarts := match.Meta.PeriodStarts()

	out := os.Stdout
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		defer f.Close()
		out = f
	}

	w := csv.NewWriter(out)
	header := []string{"player_id", "name", "frame", "period", "clock", "timestamp_s",
		"x_m", "y_m", "speed_ms", "speed_kmh", "accel_ms2", "degraded"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, p := range match.Meta.Players {
		if exportPlayerID != 0 && p.ID != exportPlayerID {
			continue
		}
		track, ok := match.Tracks[p.ID]
		if !ok || len(track) == 0 {
			continue
		}
		res, err := pipeline.DeriveTrack(track, cfg)
		if err != nil {
			logger.Warn("player skipped", zap.String("name", p.Name), zap.Error(err))
			continue
		}
		if err := writeSeries(w, p.ID, p.Name, res, periodStarts, cfg); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	if exportOut != "" {
		fmt.Fprintf(os.Stderr, "Wrote %s\n", exportOut)
	}
	return nil
}

func writeSeries(w *csv.Writer, playerID int, name string, res *pipeline.TrackResult, periodStarts map[int]int, cfg pipeline.Config) error {
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }
	for i, s := range res.Track {
		if i >= res.Series.Len() {
			break
		}
		row := []string{
			strconv.Itoa(playerID),
			name,
			strconv.Itoa(s.Frame),
			strconv.Itoa(s.Period),
			pipeline.MatchClock(s.Frame, s.Period, periodStarts, cfg.FPS),
			ff(s.Timestamp),
			ff(res.Series.XSmooth[i]),
			ff(res.Series.YSmooth[i]),
			floatOrEmpty(res.Series.Speed, i, ff),
			floatOrEmpty(res.Series.SpeedKmh, i, ff),
			floatOrEmpty(res.Series.Accel, i, ff),
			boolOrEmpty(res.Series.Degraded, i),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	return nil
}

func floatOrEmpty(vals []float64, i int, ff func(float64) string) string {
	if i >= len(vals) {
		return ""
	}
	return ff(vals[i])
}

func boolOrEmpty(vals []bool, i int) string {
	if i >= len(vals) {
		return ""
	}
	return strconv.FormatBool(vals[i])
}

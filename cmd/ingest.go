package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchlab/go-pitch-metrics/internal/loader"
	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
	"github.com/pitchlab/go-pitch-metrics/internal/report"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var (
	ingestFocusPlayer int
	ingestForce       bool
	ingestDiagnostics bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <data-dir> <match-id>",
	Short: "Process a tracking match and store physical metrics",
	Long: `Reads <data-dir>/<match-id>/ (tracking JSONL, match JSON, optional
events and phases CSV), runs the kinematic pipeline for every player, and
stores per-player physical metrics.`,
	Args: cobra.ExactArgs(2),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().IntVar(&ingestFocusPlayer, "player", 0, "focus player trackable ID")
	ingestCmd.Flags().BoolVar(&ingestForce, "force", false, "reprocess even if the match is already stored")
	ingestCmd.Flags().BoolVar(&ingestDiagnostics, "diagnostics", false, "print per-player data-quality diagnostics")
}

func runIngest(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	matchID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[1])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	exists, err := db.MatchExists(matchID)
	if err != nil {
		return fmt.Errorf("check match: %w", err)
	}
	if exists && !ingestForce {
		fmt.Fprintf(os.Stdout, "Match %d already stored; showing cached results.\n", matchID)
		return showMatch(db, matchID, ingestFocusPlayer)
	}

	logger.Info("loading match", zap.String("dir", dataDir), zap.Int("match_id", matchID))
	match, err := loader.LoadMatch(dataDir, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}

	cfg := pipelineConfig()
	if match.Meta.FPS > 0 {
		cfg.FPS = match.Meta.FPS
	}

	logger.Info("running pipeline",
		zap.Int("players", len(match.Meta.Players)),
		zap.Int("tracks", len(match.Tracks)),
		zap.Int("frames", match.Frames))
	results := pipeline.DeriveRoster(match.Tracks, match.Meta.Players, cfg)

	playerRows := make([]model.PlayerPhysical, 0, len(results))
	var phaseRows []model.PhasePhysical
	for _, pr := range results {
		if pr.Err != nil {
			logger.Warn("player skipped", zap.String("name", pr.Player.Name), zap.Error(pr.Err))
			continue
		}
		playerRows = append(playerRows, physicalRow(matchID, match.Meta, pr))
		for _, pp := range pipeline.AggregateByPhase(pr.Result.Track, pr.Result.Series, match.Phases) {
			pp.MatchID = matchID
			pp.PlayerID = pr.Player.ID
			phaseRows = append(phaseRows, pp)
		}
	}

	summary := model.MatchSummary{
		MatchID:   matchID,
		HomeTeam:  match.Meta.HomeTeam,
		AwayTeam:  match.Meta.AwayTeam,
		MatchDate: match.Meta.MatchDate,
		FPS:       cfg.FPS,
		Players:   len(playerRows),
		Frames:    match.Frames,
	}

	if err := db.InsertMatch(summary); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	if err := db.InsertPlayerPhysical(playerRows); err != nil {
		return fmt.Errorf("insert player physical: %w", err)
	}
	if err := db.InsertPhasePhysical(phaseRows); err != nil {
		return fmt.Errorf("insert phase physical: %w", err)
	}

	report.PrintMatchSummary(os.Stdout, summary)
	report.PrintPhysicalTable(os.Stdout, playerRows, ingestFocusPlayer)
	fmt.Fprintln(os.Stdout)
	report.PrintZoneTable(os.Stdout, playerRows, ingestFocusPlayer)

	if ingestDiagnostics {
		fmt.Fprintln(os.Stdout)
		for _, pr := range results {
			if pr.Result == nil {
				continue
			}
			report.PrintDiagnostics(os.Stdout, pr.Player.Name, pr.Result.Diagnostics)
		}
	}
	return nil
}

// physicalRow flattens one pipeline result into the storage row shape.
func physicalRow(matchID int, meta model.MatchMeta, pr pipeline.PlayerResult) model.PlayerPhysical {
	row := model.PlayerPhysical{
		MatchID:         matchID,
		PlayerID:        pr.Player.ID,
		Name:            pr.Player.Name,
		Team:            meta.TeamName(&pr.Player),
		Number:          pr.Player.Number,
		Samples:         len(pr.Result.Track),
		DetectionRate:   pr.Result.DetectionRate,
		AnomalyCount:    pr.Result.AnomalyCount,
		DistanceMetrics: pr.Metrics,
		ZoneDistances:   pr.Zones,
	}
	if fps := meta.FPS; fps > 0 {
		row.MinutesPlayed = float64(len(pr.Result.Track)) / (fps * 60)
	}
	return row
}

func showMatch(db *storage.DB, matchID, focusPlayerID int) error {
	summary, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("match not found: %d", matchID)
	}
	rows, err := db.GetPlayerPhysical(matchID)
	if err != nil {
		return fmt.Errorf("get player physical: %w", err)
	}
	report.PrintMatchSummary(os.Stdout, *summary)
	report.PrintPhysicalTable(os.Stdout, rows, focusPlayerID)
	fmt.Fprintln(os.Stdout)
	report.PrintZoneTable(os.Stdout, rows, focusPlayerID)
	return nil
}

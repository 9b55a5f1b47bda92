package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/chart"
	"github.com/pitchlab/go-pitch-metrics/internal/loader"
	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
	"github.com/pitchlab/go-pitch-metrics/internal/report"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var (
	playerShowPhases bool
	playerChartOut   string
	playerDataDir    string
)

var playerCmd = &cobra.Command{
	Use:   "player <match-id> <player-id>",
	Short: "Show one player's physical metrics in a match",
	Long: `Shows the stored physical summary for one player. With --phases the
phase-of-play averages are included. With --chart the kinematic series is
recomputed from the match files (--data required) and written as an HTML
speed/acceleration timeline.`,
	Args: cobra.ExactArgs(2),
	RunE: runPlayer,
}

func init() {
	playerCmd.Flags().BoolVar(&playerShowPhases, "phases", false, "include phase-of-play averages")
	playerCmd.Flags().StringVar(&playerChartOut, "chart", "", "write speed/acceleration charts to this HTML file")
	playerCmd.Flags().StringVar(&playerDataDir, "data", "", "match data directory (required for --chart)")
}

func runPlayer(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}
	playerID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid player id %q", args[1])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	summary, err := db.GetMatch(matchID)
	if err != nil {
		return fmt.Errorf("query match: %w", err)
	}
	if summary == nil {
		return fmt.Errorf("match not found: %d", matchID)
	}
	row, err := db.GetPlayerInMatch(matchID, playerID)
	if err != nil {
		return fmt.Errorf("get player: %w", err)
	}
	if row == nil {
		return fmt.Errorf("player %d not found in match %d", playerID, matchID)
	}

	report.PrintMatchSummary(os.Stdout, *summary)
	report.PrintPhysicalTable(os.Stdout, []model.PlayerPhysical{*row}, 0)
	fmt.Fprintln(os.Stdout)
	report.PrintZoneTable(os.Stdout, []model.PlayerPhysical{*row}, 0)

	if playerShowPhases {
		phases, err := db.GetPhasePhysical(matchID, playerID)
		if err != nil {
			return fmt.Errorf("get phases: %w", err)
		}
		if len(phases) == 0 {
			fmt.Fprintln(os.Stdout, "\nNo phase data stored for this player.")
		} else {
			fmt.Fprintln(os.Stdout)
			report.PrintPhaseTable(os.Stdout, phases, map[int]int{}, summary.FPS)
		}
	}

	if playerChartOut != "" {
		if playerDataDir == "" {
			return fmt.Errorf("--chart requires --data <match data directory>")
		}
		if err := writePlayerCharts(matchID, playerID, row.Name); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nWrote %s\n", playerChartOut)
	}
	return nil
}

// writePlayerCharts re-runs the pipeline for one player from the raw match
// files; the stored rows keep only aggregates, not the series.
func writePlayerCharts(matchID, playerID int, name string) error {
	match, err := loader.LoadMatch(playerDataDir, matchID)
	if err != nil {
		return fmt.Errorf("load match: %w", err)
	}
	track, ok := match.Tracks[playerID]
	if !ok {
		return fmt.Errorf("no track for player %d in match files", playerID)
	}

	cfg := pipelineConfig()
	if match.Meta.FPS > 0 {
		cfg.FPS = match.Meta.FPS
	}
	res, err := pipeline.DeriveTrack(track, cfg)
	if err != nil {
		return fmt.Errorf("derive track: %w", err)
	}
	return chart.WritePlayerCharts(playerChartOut, name, res.Track, res.Series, match.Meta.PeriodStarts(), cfg)
}

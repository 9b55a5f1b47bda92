package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/loader"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

var clockPeriod int

var clockCmd = &cobra.Command{
	Use:   "clock <data-dir> <match-id> <frame>",
	Short: "Map a tracking frame to the match clock",
	Long: `Maps a frame number to the MM:SS match clock using the period start
frames from the match metadata. Second-half clocks continue from 45:00.`,
	Args: cobra.ExactArgs(3),
	RunE: runClock,
}

func init() {
	clockCmd.Flags().IntVar(&clockPeriod, "period", 1, "match period the frame belongs to")
}

func runClock(cmd *cobra.Command, args []string) error {
	dataDir := args[0]
	matchID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[1])
	}
	frame, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid frame %q", args[2])
	}

	meta, err := loader.LoadMeta(loader.MetaPath(dataDir, matchID), matchID)
	if err != nil {
		return fmt.Errorf("load metadata: %w", err)
	}

	cfg := pipelineConfig()
	if meta.FPS > 0 {
		cfg.FPS = meta.FPS
	}

	clock := pipeline.MatchClock(frame, clockPeriod, meta.PeriodStarts(), cfg.FPS)
	fmt.Fprintf(os.Stdout, "frame %d, period %d → %s\n", frame, clockPeriod, clock)
	return nil
}

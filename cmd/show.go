package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/chart"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var (
	showFocusPlayer int
	showChartOut    string
)

var showCmd = &cobra.Command{
	Use:   "show <match-id>",
	Short: "Show stored physical metrics for a match",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().IntVar(&showFocusPlayer, "player", 0, "highlight player trackable ID")
	showCmd.Flags().StringVar(&showChartOut, "chart", "", "write a distance chart to this HTML file")
}

func runShow(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	if err := showMatch(db, matchID, showFocusPlayer); err != nil {
		return err
	}

	if showChartOut != "" {
		rows, err := db.GetPlayerPhysical(matchID)
		if err != nil {
			return fmt.Errorf("get player physical: %w", err)
		}
		if err := chart.WriteMatchCharts(showChartOut, rows); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nWrote %s\n", showChartOut)
	}
	return nil
}

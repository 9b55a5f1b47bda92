package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored matches",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	matches, err := db.ListMatches()
	if err != nil {
		return fmt.Errorf("list matches: %w", err)
	}
	if len(matches) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'pitchmetrics ingest <data-dir> <match-id>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-10s  %-24s  %-24s  %-12s  %7s  %8s\n",
		"MATCH", "HOME", "AWAY", "DATE", "PLAYERS", "FRAMES")
	fmt.Fprintf(os.Stdout, "%-10s  %-24s  %-24s  %-12s  %7s  %8s\n",
		"──────────", "────────────────────────", "────────────────────────", "────────────", "───────", "────────")
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-10d  %-24s  %-24s  %-12s  %7d  %8d\n",
			m.MatchID, m.HomeTeam, m.AwayTeam, m.MatchDate, m.Players, m.Frames)
	}
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/model"
	"github.com/pitchlab/go-pitch-metrics/internal/report"
	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var compareMatchB int

var compareCmd = &cobra.Command{
	Use:   "compare <match-id> <player-a> <player-b>",
	Short: "Compare two players' physical output side by side",
	Long: `Compares two stored players from the same match. Use --match-b to take
the second player from a different match instead.`,
	Args: cobra.ExactArgs(3),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().IntVar(&compareMatchB, "match-b", 0, "match id for the second player (default: same match)")
}

func runCompare(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}
	playerA, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid player id %q", args[1])
	}
	playerB, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("invalid player id %q", args[2])
	}
	matchB := matchID
	if compareMatchB != 0 {
		matchB = compareMatchB
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	a, err := fetchPlayerRow(db, matchID, playerA)
	if err != nil {
		return err
	}
	b, err := fetchPlayerRow(db, matchB, playerB)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	report.PrintComparison(os.Stdout, *a, *b)
	return nil
}

func fetchPlayerRow(db *storage.DB, matchID, playerID int) (*model.PlayerPhysical, error) {
	row, err := db.GetPlayerInMatch(matchID, playerID)
	if err != nil {
		return nil, fmt.Errorf("get player %d: %w", playerID, err)
	}
	if row == nil {
		return nil, fmt.Errorf("player %d not found in match %d", playerID, matchID)
	}
	return row, nil
}

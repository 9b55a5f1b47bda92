package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/storage"
)

var dropForce bool

// dropCmd deletes one stored match, or the whole database file.
var dropCmd = &cobra.Command{
	Use:   "drop [match-id]",
	Short: "Delete a stored match, or the whole database",
	Long: `With a match id, deletes that match and its physical rows. Without
arguments, permanently deletes the SQLite database file. Re-ingest your
matches afterwards to rebuild.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		matchID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid match id %q", args[0])
		}
		db, err := storage.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open storage: %w", err)
		}
		defer db.Close()
		if err := db.DeleteMatch(matchID); err != nil {
			return fmt.Errorf("delete match: %w", err)
		}
		fmt.Fprintf(os.Stdout, "Deleted match %d\n", matchID)
		return nil
	}

	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

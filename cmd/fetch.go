package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pitchlab/go-pitch-metrics/internal/loader"
)

var (
	fetchDataDir string
	fetchVersion string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <match-id>",
	Short: "Download a match from the SkillCorner open-data repository",
	Long: `Downloads the tracking, metadata, events and phases files for a match
into the local data directory, laid out the way ingest expects.`,
	Args: cobra.ExactArgs(1),
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDataDir, "data", "data", "local data directory to download into")
	fetchCmd.Flags().StringVar(&fetchVersion, "version", "", "open-data branch or commit (default: master)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	matchID, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid match id %q", args[0])
	}

	f := loader.NewFetcher(fetchVersion)
	fmt.Fprintf(os.Stdout, "Fetching match %d into %s...\n", matchID, fetchDataDir)
	files, err := f.FetchMatch(fetchDataDir, matchID)
	if err != nil {
		return fmt.Errorf("fetch match: %w", err)
	}
	for _, path := range files {
		fmt.Fprintf(os.Stdout, "  %s\n", path)
	}
	fmt.Fprintf(os.Stdout, "Done. Run 'pitchmetrics ingest %s %d' to process it.\n", fetchDataDir, matchID)
	return nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pitchlab/go-pitch-metrics/internal/config"
	"github.com/pitchlab/go-pitch-metrics/internal/logging"
	"github.com/pitchlab/go-pitch-metrics/internal/pipeline"
)

var (
	dbPath     string
	configPath string
	verbose    bool

	appCfg *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "pitchmetrics",
	Short: "Football tracking physical metrics tool",
	Long:  "Process broadcast tracking data and compute per-player physical metrics: distance, speed zones, max/avg speed.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		appCfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			appCfg.Log.Level = "debug"
		}
		logger, err = logging.NewLogger(appCfg.Log)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".pitchmetrics", "metrics.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(clockCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(dropCmd)
	rootCmd.AddCommand(sqlCmd)
}

func pipelineConfig() pipeline.Config {
	return appCfg.PipelineConfig()
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/config"
	"github.com/tickerwatch/scanner/pkg/logger"
)

var (
	// Global flags
	strategyFile string
	cacheDir     string
	verbose      bool
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scanner",
	Short: "Equity watchlist screener",
	Long: `Scanner fuses independently-updated market-data feeds into scored
symbol records and emits a ranked, filtered watchlist.

Examples:
  go run ./cmd/scanner pipeline
  go run ./cmd/scanner serve
  go run ./cmd/scanner fetch short-interest
  go run ./cmd/scanner audit`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&strategyFile, "strategy", "", "strategy YAML file (default is built-in)")
	rootCmd.PersistentFlags().StringVar(&cacheDir, "cache-dir", "", "cache directory (default from env)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// runtime bundles the shared process dependencies the subcommands
// assemble from flags and environment.
type runtime struct {
	cfg      *config.Config
	log      *logger.Logger
	store    *feedstore.Store
	strategy *strategyconfig.Config
}

// newRuntime loads config, logging, the feed store and the strategy.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cacheDir != "" {
		cfg.CacheDir = cacheDir
	}
	if strategyFile != "" {
		cfg.StrategyFile = strategyFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	strategy, err := strategyconfig.LoadOrDefault(cfg.StrategyFile)
	if err != nil {
		return nil, fmt.Errorf("load strategy: %w", err)
	}

	return &runtime{
		cfg:      cfg,
		log:      log,
		store:    feedstore.New(cfg.CacheDir, log),
		strategy: strategy,
	}, nil
}

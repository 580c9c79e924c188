package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show strategy and cache status",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	hash, err := strategyconfig.Hash(rt.strategy)
	if err != nil {
		return fmt.Errorf("hash strategy: %w", err)
	}

	fmt.Printf("Strategy:  %s v%s\n", rt.strategy.Meta.StrategyID, rt.strategy.Meta.Version)
	fmt.Printf("Hash:      %s\n", hash[:12])
	fmt.Printf("Cache dir: %s\n", rt.cfg.CacheDir)
	fmt.Println()

	now := time.Now()
	artifacts := []string{
		contracts.UniverseArtifact,
		contracts.QuoteSignalsArtifact,
		contracts.SectorPricesArtifact,
		contracts.CandlesArtifact,
		contracts.MultiDayArtifact,
		contracts.ShortInterestArtifact,
		contracts.WatchlistArtifact,
	}

	for _, name := range artifacts {
		state := rt.store.Freshness(name, now)
		modified := "-"
		if info, err := os.Stat(rt.store.Path(name)); err == nil {
			modified = info.ModTime().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %-26s %-7s %s\n", name, state.String(), modified)
	}

	return nil
}

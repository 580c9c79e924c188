package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/housekeeping"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete stale generations of the cache artifacts",
	Long: `Removes cache files not written today, per artifact family, but only
when that family has a fresh member. A family without a fresh file is
skipped so the last good data survives a missed refresh.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	result, err := housekeeping.NewCleaner(rt.store, rt.log).Cleanup(time.Now())
	if err != nil {
		return fmt.Errorf("cache cleanup: %w", err)
	}

	fmt.Printf("Cache cleanup complete: %d files deleted, %d families skipped\n",
		result.Deleted, result.Skipped)
	return nil
}

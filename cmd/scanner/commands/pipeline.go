package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/pipeline"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the enrichment-scoring-filtering pipeline once",
	Long: `Loads the current feed snapshot, enriches and scores the universe,
applies risk blocking, and writes the dated scored snapshot plus the
latest watchlist cache.

A missing universe artifact aborts the run; missing auxiliary feeds
degrade to empty mappings.`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(pipelineCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	pipe := pipeline.New(rt.store, rt.strategy, rt.log)

	result, err := pipe.Run(context.Background())
	if err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	fmt.Printf("Pipeline complete: %d symbols scored, %d on watchlist (%.2fs)\n",
		result.Universe.Len(), len(result.Watchlist.Entries), result.Duration.Seconds())

	for i, rec := range result.Watchlist.Entries {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(result.Watchlist.Entries)-10)
			break
		}
		marker := ""
		if rec.IsBlocked {
			marker = " [blocked]"
		}
		fmt.Printf("  %-6s score=%d%s\n", rec.Symbol, rec.Score, marker)
	}

	return nil
}

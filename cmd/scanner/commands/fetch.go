package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/fetch/shortinterest"
	"github.com/tickerwatch/scanner/pkg/httputil"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Refresh feed artifacts",
	Long: `Refreshes the feed artifacts the repository owns.

Example:
  scanner fetch short-interest`,
}

var fetchShortInterestCmd = &cobra.Command{
	Use:   "short-interest",
	Short: "Scrape the high short interest listing",
	RunE:  runFetchShortInterest,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	fetchCmd.AddCommand(fetchShortInterestCmd)
}

func runFetchShortInterest(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	client := httputil.New(rt.cfg, rt.log)
	fetcher := shortinterest.NewFetcher(client, rt.store, rt.log)

	count, err := fetcher.Fetch(context.Background())
	if err != nil {
		return fmt.Errorf("fetch short interest: %w", err)
	}

	fmt.Printf("Short interest saved for %d tickers\n", count)
	return nil
}

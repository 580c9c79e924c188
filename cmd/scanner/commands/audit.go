package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/housekeeping"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit the health of the feed caches",
	Long: `Checks every major feed artifact: presence, quote timestamps, the
eleven sector ETF prices, empty candle lists, incomplete multi-day
levels, and the short-interest row count.`,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)
}

func runAudit(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	report := housekeeping.NewAuditor(rt.store, rt.log).Audit()

	if report.Healthy() {
		fmt.Println("Cache audit passed: all major caches healthy")
		return nil
	}

	fmt.Printf("Cache audit found %d issue(s):\n", len(report.Issues))
	for _, issue := range report.Issues {
		fmt.Printf("  %-28s %s\n", issue.Artifact, issue.Message)
	}

	return nil
}

package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tickerwatch/scanner/internal/fetch/shortinterest"
	"github.com/tickerwatch/scanner/internal/housekeeping"
	"github.com/tickerwatch/scanner/internal/pipeline"
	"github.com/tickerwatch/scanner/internal/scheduler"
	"github.com/tickerwatch/scanner/internal/scheduler/jobs"
	"github.com/tickerwatch/scanner/pkg/httputil"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the recurring jobs",
	Long: `Starts the cron scheduler with the daily refresh job (short interest
fetch plus pipeline run) and the evening cache cleanup. Blocks until
interrupted.`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}

	client := httputil.New(rt.cfg, rt.log)
	fetcher := shortinterest.NewFetcher(client, rt.store, rt.log)
	pipe := pipeline.New(rt.store, rt.strategy, rt.log)
	cleaner := housekeeping.NewCleaner(rt.store, rt.log)

	sched := scheduler.New(rt.log)
	if err := sched.AddJob(jobs.NewDailyRefreshJob(fetcher, pipe, rt.log)); err != nil {
		return err
	}
	if err := sched.AddJob(jobs.NewCacheCleanupJob(cleaner, rt.log)); err != nil {
		return err
	}

	sched.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	rt.log.WithField("signal", sig.String()).Info("Shutdown signal received")
	sched.Stop()

	return nil
}

package jobs

import (
	"context"
	"fmt"

	"github.com/tickerwatch/scanner/internal/fetch/shortinterest"
	"github.com/tickerwatch/scanner/internal/pipeline"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// DailyRefreshJob refreshes the short-interest feed and then runs the
// full pipeline over the current feed snapshot. The external scrapers
// for the other feeds write their artifacts on their own cadence;
// whatever is present at run time is what gets enriched.
type DailyRefreshJob struct {
	fetcher  *shortinterest.Fetcher
	pipeline *pipeline.Pipeline
	logger   *logger.Logger
}

// NewDailyRefreshJob creates the daily refresh job.
func NewDailyRefreshJob(fetcher *shortinterest.Fetcher, pipe *pipeline.Pipeline, log *logger.Logger) *DailyRefreshJob {
	return &DailyRefreshJob{fetcher: fetcher, pipeline: pipe, logger: log}
}

// Name returns the job name.
func (j *DailyRefreshJob) Name() string {
	return "daily_refresh"
}

// Schedule runs weekday mornings at 09:45 before the watchlist is in
// demand.
func (j *DailyRefreshJob) Schedule() string {
	return "0 45 9 * * 1-5"
}

// Run fetches short interest, then rebuilds the watchlist. A failed
// fetch does not stop the pipeline: the feed degrades to its previous
// or empty state.
func (j *DailyRefreshJob) Run(ctx context.Context) error {
	if _, err := j.fetcher.Fetch(ctx); err != nil {
		j.logger.WithError(err).Warn("Short interest refresh failed, continuing with stale feed")
	}

	if _, err := j.pipeline.Run(ctx); err != nil {
		return fmt.Errorf("pipeline run: %w", err)
	}

	return nil
}

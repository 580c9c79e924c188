package jobs

import (
	"context"
	"time"

	"github.com/tickerwatch/scanner/internal/housekeeping"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// CacheCleanupJob prunes stale artifact generations every evening.
type CacheCleanupJob struct {
	cleaner *housekeeping.Cleaner
	logger  *logger.Logger
}

// NewCacheCleanupJob creates the cache cleanup job.
func NewCacheCleanupJob(cleaner *housekeeping.Cleaner, log *logger.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{cleaner: cleaner, logger: log}
}

// Name returns the job name.
func (j *CacheCleanupJob) Name() string {
	return "cache_cleanup"
}

// Schedule runs daily at 18:00.
func (j *CacheCleanupJob) Schedule() string {
	return "0 0 18 * * *"
}

// Run executes the cleanup.
func (j *CacheCleanupJob) Run(ctx context.Context) error {
	result, err := j.cleaner.Cleanup(time.Now())
	if err != nil {
		return err
	}

	if result.Deleted > 0 {
		j.logger.WithField("deleted", result.Deleted).Info("Scheduled cache cleanup removed stale artifacts")
	}

	return nil
}

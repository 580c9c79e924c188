package housekeeping

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// artifactFamilies are the base names whose old generations the
// cleanup may delete. A family is only pruned when a fresh member
// exists, so a day without a refresh never loses its last good data.
var artifactFamilies = []string{
	contracts.QuoteSignalsArtifact,
	contracts.SectorPricesArtifact,
	contracts.CandlesArtifact,
	contracts.MultiDayArtifact,
	contracts.ShortInterestArtifact,
	strings.TrimSuffix(contracts.EnrichedPrefix, "_"),
	strings.TrimSuffix(contracts.ScoredPrefix, "_"),
}

// CleanupResult summarizes one cleanup pass.
type CleanupResult struct {
	Deleted int `json:"deleted"`
	Skipped int `json:"skipped"`
}

// Cleaner prunes stale generations of the cache artifacts.
type Cleaner struct {
	store  *feedstore.Store
	logger *logger.Logger
}

// NewCleaner creates a cleaner over the given store.
func NewCleaner(store *feedstore.Store, log *logger.Logger) *Cleaner {
	return &Cleaner{store: store, logger: log}
}

// Cleanup deletes, per artifact family, every file not modified on
// the calendar date of now - but only when the family has at least
// one fresh member. Families without a fresh member are skipped.
func (c *Cleaner) Cleanup(now time.Time) (*CleanupResult, error) {
	entries, err := os.ReadDir(c.store.Dir())
	if err != nil {
		return nil, err
	}

	result := &CleanupResult{}

	for _, family := range artifactFamilies {
		var candidates []string
		foundToday := false

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasPrefix(entry.Name(), family) {
				continue
			}
			path := filepath.Join(c.store.Dir(), entry.Name())
			candidates = append(candidates, path)
			if feedstore.ModifiedToday(path, now) {
				foundToday = true
			}
		}

		if !foundToday {
			result.Skipped++
			c.logger.WithField("family", family).Warn("No fresh artifact today, skipping delete")
			continue
		}

		for _, path := range candidates {
			if feedstore.ModifiedToday(path, now) {
				continue
			}
			if err := os.Remove(path); err != nil {
				c.logger.WithError(err).WithField("path", path).Warn("Failed to delete stale artifact")
				continue
			}
			result.Deleted++
			c.logger.WithField("file", filepath.Base(path)).Debug("Stale artifact deleted")
		}
	}

	c.logger.WithFields(map[string]interface{}{
		"deleted": result.Deleted,
		"skipped": result.Skipped,
	}).Info("Cache cleanup completed")

	return result, nil
}

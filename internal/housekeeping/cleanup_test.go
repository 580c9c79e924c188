package housekeeping

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/pkg/logger"
)

func newTestCleaner(t *testing.T) (*Cleaner, *feedstore.Store) {
	t.Helper()
	store := feedstore.New(t.TempDir(), logger.Nop())
	return NewCleaner(store, logger.Nop()), store
}

func touch(t *testing.T, store *feedstore.Store, name string, mtime time.Time) {
	t.Helper()
	path := store.Path(name)
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestCleanup_DeletesStaleWhenFreshExists(t *testing.T) {
	cleaner, store := newTestCleaner(t)
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	touch(t, store, feedstore.SnapshotName(contracts.EnrichedPrefix, now), now)
	touch(t, store, feedstore.SnapshotName(contracts.EnrichedPrefix, yesterday), yesterday)

	result, err := cleaner.Cleanup(now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)

	_, statErr := os.Stat(store.Path(feedstore.SnapshotName(contracts.EnrichedPrefix, now)))
	assert.NoError(t, statErr, "fresh generation survives")

	_, statErr = os.Stat(store.Path(feedstore.SnapshotName(contracts.EnrichedPrefix, yesterday)))
	assert.True(t, os.IsNotExist(statErr), "stale generation is gone")
}

func TestCleanup_StaleSingleFileSurvivesAlone(t *testing.T) {
	cleaner, store := newTestCleaner(t)
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	// A single-file artifact is its own family: stale and alone means
	// no fresh member, so the skip rule protects it.
	touch(t, store, contracts.QuoteSignalsArtifact, yesterday)
	touch(t, store, contracts.MultiDayArtifact, now)

	result, err := cleaner.Cleanup(now)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Deleted)
	_, statErr := os.Stat(store.Path(contracts.QuoteSignalsArtifact))
	assert.NoError(t, statErr)
}

func TestCleanup_SkipsFamilyWithoutFreshMember(t *testing.T) {
	cleaner, store := newTestCleaner(t)
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	// Only a stale generation: nothing may be deleted, or the family
	// would lose its last good data.
	touch(t, store, contracts.QuoteSignalsArtifact, yesterday)

	result, err := cleaner.Cleanup(now)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Deleted)

	_, statErr := os.Stat(store.Path(contracts.QuoteSignalsArtifact))
	assert.NoError(t, statErr, "stale file survives without a fresh replacement")
}

func TestCleanup_ScoredSnapshots(t *testing.T) {
	cleaner, store := newTestCleaner(t)
	now := time.Now()
	old := now.AddDate(0, 0, -3)

	touch(t, store, feedstore.SnapshotName(contracts.ScoredPrefix, now), now)
	touch(t, store, feedstore.SnapshotName(contracts.ScoredPrefix, old), old)

	result, err := cleaner.Cleanup(now)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Deleted)
	_, statErr := os.Stat(store.Path(feedstore.SnapshotName(contracts.ScoredPrefix, now)))
	assert.NoError(t, statErr)
}

func TestCleanup_IgnoresUnrelatedFiles(t *testing.T) {
	cleaner, store := newTestCleaner(t)
	now := time.Now()
	old := now.AddDate(0, 0, -7)

	touch(t, store, contracts.QuoteSignalsArtifact, now)
	touch(t, store, "notes.txt", old)
	touch(t, store, contracts.UniverseArtifact, old)

	_, err := cleaner.Cleanup(now)
	require.NoError(t, err)

	_, statErr := os.Stat(store.Path("notes.txt"))
	assert.NoError(t, statErr)
	_, statErr = os.Stat(store.Path(contracts.UniverseArtifact))
	assert.NoError(t, statErr, "the base universe is never a cleanup target")
}

func TestCleanup_EmptyDir(t *testing.T) {
	cleaner, _ := newTestCleaner(t)

	result, err := cleaner.Cleanup(time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Deleted)
	assert.Equal(t, len(artifactFamilies), result.Skipped)
}

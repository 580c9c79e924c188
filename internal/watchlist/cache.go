package watchlist

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
)

// Persist writes the run output: the dated scored snapshot carrying
// the full record set, then the latest watchlist cache. Both writes
// happen only after every stage has completed; a failure surfaces to
// the caller and leaves the previous generation authoritative.
//
// The dated snapshot is one file per calendar day. A rerun on the
// same day replaces that day's snapshot; prior days are never touched.
func Persist(store *feedstore.Store, universe *contracts.Universe, wl *Watchlist, now time.Time) error {
	scored := make(map[string]*contracts.SymbolRecord, universe.Len())
	universe.Each(func(rec *contracts.SymbolRecord) {
		scored[rec.Symbol] = rec
	})

	snapshot := feedstore.SnapshotName(contracts.ScoredPrefix, now)
	if err := store.WriteArtifact(snapshot, scored); err != nil {
		return fmt.Errorf("write scored snapshot: %w", err)
	}

	if err := store.WriteArtifact(contracts.WatchlistArtifact, wl.Entries); err != nil {
		return fmt.Errorf("write watchlist cache: %w", err)
	}

	return nil
}

// Load reads the latest watchlist cache regardless of freshness.
// Callers gate on CacheState first.
func Load(store *feedstore.Store) ([]contracts.SymbolRecord, error) {
	data, err := os.ReadFile(store.Path(contracts.WatchlistArtifact))
	if err != nil {
		return nil, fmt.Errorf("read watchlist cache: %w", err)
	}

	var entries []contracts.SymbolRecord
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("decode watchlist cache: %w", err)
	}

	return entries, nil
}

// CacheState classifies the latest watchlist cache for the calendar
// date of now. Stale and Absent are equivalent for consumers: rebuild
// before serving.
func CacheState(store *feedstore.Store, now time.Time) feedstore.Freshness {
	return store.Freshness(contracts.WatchlistArtifact, now)
}

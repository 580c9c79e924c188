package handlers

import (
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/internal/pipeline"
	"github.com/tickerwatch/scanner/internal/watchlist"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// RebuildNotifier receives a notification after a watchlist rebuild.
type RebuildNotifier interface {
	NotifyRebuild(count int)
}

// WatchlistHandler serves the watchlist and scored universe. The
// latest cache is served as-is while fresh; a stale or absent cache
// triggers a rebuild before serving, never a stale response.
type WatchlistHandler struct {
	store    *feedstore.Store
	pipeline *pipeline.Pipeline
	notifier RebuildNotifier
	logger   *logger.Logger
}

// NewWatchlistHandler creates the watchlist handler. notifier may be
// nil when no event stream is attached.
func NewWatchlistHandler(store *feedstore.Store, pipe *pipeline.Pipeline, notifier RebuildNotifier, log *logger.Logger) *WatchlistHandler {
	return &WatchlistHandler{store: store, pipeline: pipe, notifier: notifier, logger: log}
}

// GetWatchlist returns the current watchlist, rebuilding first when
// the cache was not written today.
func (h *WatchlistHandler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	now := time.Now()

	if watchlist.CacheState(h.store, now).Usable() {
		entries, err := watchlist.Load(h.store)
		if err == nil {
			respondJSON(w, http.StatusOK, entries)
			return
		}
		h.logger.WithError(err).Warn("Fresh watchlist cache unreadable, rebuilding")
	}

	result, err := h.pipeline.RunAt(r.Context(), now)
	if err != nil {
		h.logger.WithError(err).Error("Watchlist rebuild failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "watchlist rebuild failed",
		})
		return
	}

	if h.notifier != nil {
		h.notifier.NotifyRebuild(len(result.Watchlist.Entries))
	}

	respondJSON(w, http.StatusOK, result.Watchlist.Entries)
}

// GetUniverse returns the newest scored universe snapshot.
func (h *WatchlistHandler) GetUniverse(w http.ResponseWriter, r *http.Request) {
	path, ok := h.store.LatestSnapshot(contracts.ScoredPrefix)
	if !ok {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "no scored universe snapshot available",
		})
		return
	}

	serveArtifactFile(w, path)
}

// respondJSON writes a JSON response body.
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// serveArtifactFile streams a cache artifact verbatim.
func serveArtifactFile(w http.ResponseWriter, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": "artifact unreadable",
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

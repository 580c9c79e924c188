package handlers

import (
	"net/http"
	"os"
	"time"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// CacheHandler exposes the raw feed artifacts and their freshness.
type CacheHandler struct {
	store  *feedstore.Store
	logger *logger.Logger
}

// NewCacheHandler creates the cache handler.
func NewCacheHandler(store *feedstore.Store, log *logger.Logger) *CacheHandler {
	return &CacheHandler{store: store, logger: log}
}

// GetSectorPrices serves the sector ETF price feed verbatim.
func (h *CacheHandler) GetSectorPrices(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, contracts.SectorPricesArtifact)
}

// GetRawUniverse serves the base universe artifact verbatim.
func (h *CacheHandler) GetRawUniverse(w http.ResponseWriter, r *http.Request) {
	h.serveArtifact(w, contracts.UniverseArtifact)
}

// artifactStatus is one row of the cache-timestamps report.
type artifactStatus struct {
	LastModified string `json:"last_modified"`
	Freshness    string `json:"freshness"`
}

// GetCacheTimestamps reports last-modified time and freshness for
// every key artifact.
func (h *CacheHandler) GetCacheTimestamps(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	artifacts := []string{
		contracts.UniverseArtifact,
		contracts.QuoteSignalsArtifact,
		contracts.SectorPricesArtifact,
		contracts.CandlesArtifact,
		contracts.MultiDayArtifact,
		contracts.ShortInterestArtifact,
		contracts.WatchlistArtifact,
	}

	out := make(map[string]artifactStatus, len(artifacts))
	for _, name := range artifacts {
		status := artifactStatus{
			LastModified: "missing",
			Freshness:    h.store.Freshness(name, now).String(),
		}
		if info, err := os.Stat(h.store.Path(name)); err == nil {
			status.LastModified = info.ModTime().Format("2006-01-02 15:04:05")
		}
		out[name] = status
	}

	respondJSON(w, http.StatusOK, out)
}

func (h *CacheHandler) serveArtifact(w http.ResponseWriter, name string) {
	path := h.store.Path(name)
	if _, err := os.Stat(path); err != nil {
		respondJSON(w, http.StatusNotFound, map[string]string{
			"error": name + " not found",
		})
		return
	}

	serveArtifactFile(w, path)
}

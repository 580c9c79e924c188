package watchlist

import (
	"sort"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Summary tags assigned to selected records.
const (
	TagStrongSetup  = "Strong Setup"
	TagSqueezeWatch = "Squeeze Watch"
	TagEarlyWatch   = "Early Watch"
)

// Watchlist is the ranked, filtered output of one pipeline run.
// Entries are ordered by descending score, stable on ties in the
// universe's natural order.
type Watchlist struct {
	Entries []*contracts.SymbolRecord
}

// Symbols returns the entry symbols in ranked order.
func (w *Watchlist) Symbols() []string {
	out := make([]string, len(w.Entries))
	for i, rec := range w.Entries {
		out[i] = rec.Symbol
	}
	return out
}

// Builder filters and ranks the scored universe. Blocked records are
// retained and flagged, not silently dropped, so a caller can audit
// why a symbol failed.
type Builder struct {
	config strategyconfig.Watchlist
	logger *logger.Logger
}

// NewBuilder creates a watchlist builder.
func NewBuilder(config strategyconfig.Watchlist, log *logger.Logger) *Builder {
	return &Builder{config: config, logger: log}
}

// Build selects records scoring at or above the threshold plus every
// blocked record, assigns summary tags, and ranks by descending score.
func (b *Builder) Build(universe *contracts.Universe) *Watchlist {
	entries := make([]*contracts.SymbolRecord, 0)

	universe.Each(func(rec *contracts.SymbolRecord) {
		if rec.Score < b.config.MinScore && !rec.IsBlocked {
			return
		}

		rec.Tags = b.tags(rec)
		entries = append(entries, rec)
	})

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	b.logger.WithFields(map[string]interface{}{
		"selected": len(entries),
	}).Info("Watchlist built")

	return &Watchlist{Entries: entries}
}

// tags derives the summary labels for a selected record.
func (b *Builder) tags(rec *contracts.SymbolRecord) []string {
	tags := make([]string, 0)

	if rec.Tier1Hits >= b.config.StrongSetupT1Hits {
		tags = append(tags, TagStrongSetup)
	}
	if rec.HasSignal(contracts.SignalSqueezeWatch) {
		tags = append(tags, TagSqueezeWatch)
	}
	if rec.HasSignal(contracts.SignalEarlyMove) {
		tags = append(tags, TagEarlyWatch)
	}

	return tags
}

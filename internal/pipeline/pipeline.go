package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/enrich"
	"github.com/tickerwatch/scanner/internal/feedstore"
	"github.com/tickerwatch/scanner/internal/risk"
	"github.com/tickerwatch/scanner/internal/scoring"
	"github.com/tickerwatch/scanner/internal/signals"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/internal/watchlist"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Result is the outcome of one pipeline run.
type Result struct {
	Universe  *contracts.Universe
	Watchlist *watchlist.Watchlist
	StartedAt time.Time
	Duration  time.Duration
}

// Pipeline runs the enrichment-scoring-filtering stages over a feed
// snapshot: feed store → merger → signal deriver → scorer → risk
// blocker → watchlist builder. Single-threaded and batch-oriented;
// the whole universe is held in memory and artifacts are written only
// after every stage has completed for every symbol.
type Pipeline struct {
	store   *feedstore.Store
	merger  *enrich.Merger
	deriver *signals.Deriver
	scorer  *scoring.Scorer
	blocker *risk.Blocker
	builder *watchlist.Builder
	logger  *logger.Logger
}

// New wires the stages from one strategy config.
func New(store *feedstore.Store, strategy *strategyconfig.Config, log *logger.Logger) *Pipeline {
	return &Pipeline{
		store:   store,
		merger:  enrich.NewMerger(strategy.Merge, log),
		deriver: signals.NewDeriver(strategy.Signals, log),
		scorer:  scoring.NewScorer(strategy.Scoring, log),
		blocker: risk.NewBlocker(strategy.Risk, log),
		builder: watchlist.NewBuilder(strategy.Watchlist, log),
		logger:  log,
	}
}

// Run executes one full pass over the current feed snapshot.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	return p.RunAt(ctx, time.Now())
}

// RunAt executes one full pass, stamping artifacts for the calendar
// date of now. A missing universe aborts before any write; missing
// auxiliary feeds degrade to empty mappings inside the store.
func (p *Pipeline) RunAt(ctx context.Context, now time.Time) (*Result, error) {
	start := time.Now()

	universe, err := p.store.LoadUniverse()
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}

	p.logger.WithFields(map[string]interface{}{
		"symbols": universe.Len(),
	}).Info("Pipeline run started")

	feeds := p.store.LoadFeeds()

	p.merger.Merge(universe, feeds)

	enriched := feedstore.SnapshotName(contracts.EnrichedPrefix, now)
	if err := p.store.WriteArtifact(enriched, recordMap(universe)); err != nil {
		return nil, fmt.Errorf("write enriched snapshot: %w", err)
	}

	p.deriver.Derive(universe)
	p.scorer.Score(universe)
	p.blocker.Block(universe)

	wl := p.builder.Build(universe)

	if err := watchlist.Persist(p.store, universe, wl, now); err != nil {
		return nil, fmt.Errorf("persist run output: %w", err)
	}

	result := &Result{
		Universe:  universe,
		Watchlist: wl,
		StartedAt: start,
		Duration:  time.Since(start),
	}

	p.logger.WithFields(map[string]interface{}{
		"symbols":  universe.Len(),
		"selected": len(wl.Entries),
		"duration": result.Duration.String(),
	}).Info("Pipeline run completed")

	return result, nil
}

func recordMap(universe *contracts.Universe) map[string]*contracts.SymbolRecord {
	out := make(map[string]*contracts.SymbolRecord, universe.Len())
	universe.Each(func(rec *contracts.SymbolRecord) {
		out[rec.Symbol] = rec
	})
	return out
}

package scoring

import (
	"sort"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Weight tables, by tier. Declared order is the iteration order for
// the per-tier hit lists, keeping output deterministic across runs.
var (
	Tier1Flags = []string{
		contracts.SignalGapUp,
		contracts.SignalGapDown,
		contracts.SignalBreakAboveRange,
		contracts.SignalBreakBelowRange,
		contracts.SignalHighRelVol,
	}
	Tier2Flags = []string{
		contracts.SignalEarlyMove,
		contracts.SignalSqueezeWatch,
		contracts.SignalStrongSector,
		contracts.SignalWeakSector,
	}
	Tier3Flags = []string{
		contracts.SignalNearRangeHigh,
		contracts.SignalHighVolume,
		contracts.SignalTopVolumeGainer,
		contracts.SignalNearMultiDayHigh,
		contracts.SignalNearMultiDayLow,
		contracts.SignalHighVolNoBreakout,
	}
	RiskFlags = []string{
		contracts.SignalLowLiquidity,
		contracts.SignalWideSpread,
	}
)

// Scorer maps signal flags to weight tiers and computes the composite
// score. Scores are always recomputed from the signals map and the
// weight table; they are never hand-edited.
type Scorer struct {
	config strategyconfig.Scoring
	logger *logger.Logger
}

// NewScorer creates a scorer with the given tier weights.
func NewScorer(config strategyconfig.Scoring, log *logger.Logger) *Scorer {
	return &Scorer{config: config, logger: log}
}

// Score flags the universe-relative top volume gainers, then scores
// every record. Calling it again on the same universe yields the same
// scores.
func (s *Scorer) Score(universe *contracts.Universe) {
	s.flagTopVolumeGainers(universe)

	universe.Each(func(rec *contracts.SymbolRecord) {
		s.ScoreRecord(rec)
	})

	s.logger.WithFields(map[string]interface{}{
		"symbols": universe.Len(),
	}).Info("Scoring completed")
}

// ScoreRecord recomputes the composite score and tier hits for one
// record from its signals map alone.
func (s *Scorer) ScoreRecord(rec *contracts.SymbolRecord) {
	hits := &contracts.TierHits{
		T1:   firedIn(rec, Tier1Flags),
		T2:   firedIn(rec, Tier2Flags),
		T3:   firedIn(rec, Tier3Flags),
		Risk: firedIn(rec, RiskFlags),
	}

	rec.TierHits = hits
	rec.Tier1Hits = len(hits.T1)
	rec.Tier2Hits = len(hits.T2)
	rec.Tier3Hits = len(hits.T3)

	rec.Score = len(hits.T1)*s.config.Tier1Weight +
		len(hits.T2)*s.config.Tier2Weight +
		len(hits.T3)*s.config.Tier3Weight +
		len(hits.Risk)*s.config.RiskWeight
}

// flagTopVolumeGainers ranks the whole universe by relative volume,
// the proxy for how much a symbol's trading is gaining on its own
// average, and flags the top N. Snapshot-relative: recomputed every
// run, stable on ties in the universe's natural order. Symbols without
// a relative volume never rank.
func (s *Scorer) flagTopVolumeGainers(universe *contracts.Universe) {
	type ranked struct {
		rec    *contracts.SymbolRecord
		relVol float64
	}

	candidates := make([]ranked, 0, universe.Len())
	universe.Each(func(rec *contracts.SymbolRecord) {
		if rec.RelVol != nil {
			candidates = append(candidates, ranked{rec: rec, relVol: *rec.RelVol})
		}
	})

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relVol > candidates[j].relVol
	})

	for i := 0; i < len(candidates) && i < s.config.TopVolumeGainers; i++ {
		candidates[i].rec.SetSignal(contracts.SignalTopVolumeGainer)
	}
}

// firedIn collects the flags from table that are set on the record,
// in table order.
func firedIn(rec *contracts.SymbolRecord, table []string) []string {
	fired := make([]string, 0)
	for _, flag := range table {
		if rec.HasSignal(flag) {
			fired = append(fired, flag)
		}
	}
	return fired
}

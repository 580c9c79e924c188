package risk

import (
	"math"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Reason strings appended when a blocking condition triggers. These
// surface in the watchlist so a blocked symbol can be audited.
const (
	ReasonNoPrice       = "No reliable price"
	ReasonLowRelVol     = "Low relative volume"
	ReasonLowLiquidity  = "Low liquidity"
	ReasonNoActiveSetup = "No active signals"
)

// Blocker evaluates the hard-exclusion conditions independently of
// scoring. Any triggered condition blocks the record for the current
// run; the score itself is never mutated.
type Blocker struct {
	config strategyconfig.Risk
	logger *logger.Logger
}

// NewBlocker creates a blocker with the given floors.
func NewBlocker(config strategyconfig.Risk, log *logger.Logger) *Blocker {
	return &Blocker{config: config, logger: log}
}

// Block classifies every record. A blocked record always carries at
// least one reason; an unblocked record carries none.
func (b *Blocker) Block(universe *contracts.Universe) {
	blocked := 0
	universe.Each(func(rec *contracts.SymbolRecord) {
		b.BlockRecord(rec)
		if rec.IsBlocked {
			blocked++
		}
	})

	b.logger.WithFields(map[string]interface{}{
		"symbols": universe.Len(),
		"blocked": blocked,
	}).Info("Risk blocking completed")
}

// BlockRecord evaluates the blocking conditions for one record.
// Multiple reasons may coexist.
func (b *Blocker) BlockRecord(rec *contracts.SymbolRecord) {
	reasons := make([]string, 0)

	if rec.TVPrice == nil || *rec.TVPrice <= 0 {
		reasons = append(reasons, ReasonNoPrice)
	}

	if proxy := relVolProxy(rec); proxy == nil || math.Abs(*proxy) < b.config.MinRelVolProxy {
		reasons = append(reasons, ReasonLowRelVol)
	}

	if rec.AvgVolume != nil && *rec.AvgVolume < b.config.MinAvgVolume {
		reasons = append(reasons, ReasonLowLiquidity)
	}

	if rec.Score == 0 {
		reasons = append(reasons, ReasonNoActiveSetup)
	}

	rec.IsBlocked = len(reasons) > 0
	if rec.IsBlocked {
		rec.Reasons = reasons
	} else {
		rec.Reasons = nil
	}
}

// relVolProxy returns the activity measure used for the minimum
// relative volatility floor: the quoted change percent, or the gap
// percent computed at merge when the feed did not quote one.
func relVolProxy(rec *contracts.SymbolRecord) *float64 {
	if rec.TVChangePercent != nil {
		return rec.TVChangePercent
	}
	return rec.GapPercent
}

package signals

import (
	"math"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Deriver applies the fixed threshold rules to every enriched record.
// Rules are independent and write disjoint flag names, so their order
// never changes the outcome. A missing operand means the rule does
// not fire; a present zero is evaluated like any other value.
type Deriver struct {
	config strategyconfig.Signals
	logger *logger.Logger
}

// NewDeriver creates a deriver with the given rule thresholds.
func NewDeriver(config strategyconfig.Signals, log *logger.Logger) *Deriver {
	return &Deriver{config: config, logger: log}
}

// Derive evaluates the rule set for every record in the universe.
// Flags already set by the merge stage are never cleared.
func (d *Deriver) Derive(universe *contracts.Universe) {
	flagged := 0
	universe.Each(func(rec *contracts.SymbolRecord) {
		before := len(rec.Signals)
		d.deriveRecord(rec)
		if len(rec.Signals) > before {
			flagged++
		}
	})

	d.logger.WithFields(map[string]interface{}{
		"symbols": universe.Len(),
		"flagged": flagged,
	}).Info("Signal derivation completed")
}

func (d *Deriver) deriveRecord(rec *contracts.SymbolRecord) {
	d.gapRules(rec)
	d.breakoutRules(rec)
	d.momentumRules(rec)
	d.multiDayRules(rec)
	// Depends on the breakout flags, so it runs after them; the
	// mutual exclusion is by construction.
	d.highVolumeNoBreakout(rec)
}

// gapRules compares today's open against the prior close.
func (d *Deriver) gapRules(rec *contracts.SymbolRecord) {
	if rec.Open == nil || rec.PrevClose == nil {
		return
	}

	if *rec.Open > *rec.PrevClose*d.config.GapUpRatio {
		rec.SetSignal(contracts.SignalGapUp)
	}
	if *rec.Open < *rec.PrevClose*d.config.GapDownRatio {
		rec.SetSignal(contracts.SignalGapDown)
	}
}

// breakoutRules compares the live price against the intraday opening
// range.
func (d *Deriver) breakoutRules(rec *contracts.SymbolRecord) {
	price := rec.TVPrice
	if price == nil {
		return
	}

	if rec.Range930940High != nil {
		if *price > *rec.Range930940High {
			rec.SetSignal(contracts.SignalBreakAboveRange)
		} else if diff := *rec.Range930940High - *price; diff > 0 && diff <= d.config.NearRangeHighMax {
			rec.SetSignal(contracts.SignalNearRangeHigh)
		}
	}

	if rec.Range930940Low != nil && *price < *rec.Range930940Low {
		rec.SetSignal(contracts.SignalBreakBelowRange)
	}
}

// momentumRules covers the change, volume and relative-volume
// thresholds.
func (d *Deriver) momentumRules(rec *contracts.SymbolRecord) {
	if rec.TVChangePercent != nil && math.Abs(*rec.TVChangePercent) >= d.config.EarlyMoveChangePct {
		rec.SetSignal(contracts.SignalEarlyMove)
	}
	if rec.TVVolume != nil && *rec.TVVolume >= d.config.HighVolumeMin {
		rec.SetSignal(contracts.SignalHighVolume)
	}
	if rec.RelVol != nil && *rec.RelVol > d.config.HighRelVolMin {
		rec.SetSignal(contracts.SignalHighRelVol)
	}
}

// multiDayRules flags prices within the configured fraction of the
// lookback high or low.
func (d *Deriver) multiDayRules(rec *contracts.SymbolRecord) {
	price := rec.TVPrice
	if price == nil {
		return
	}

	if rec.High10D != nil && *rec.High10D > 0 &&
		math.Abs(*price-*rec.High10D) <= d.config.MultiDayProximity**rec.High10D {
		rec.SetSignal(contracts.SignalNearMultiDayHigh)
	}
	if rec.Low10D != nil && *rec.Low10D > 0 &&
		math.Abs(*price-*rec.Low10D) <= d.config.MultiDayProximity**rec.Low10D {
		rec.SetSignal(contracts.SignalNearMultiDayLow)
	}
}

// highVolumeNoBreakout flags heavy trading inside a tight opening
// range. Never fires alongside either breakout flag.
func (d *Deriver) highVolumeNoBreakout(rec *contracts.SymbolRecord) {
	if rec.HasSignal(contracts.SignalBreakAboveRange) || rec.HasSignal(contracts.SignalBreakBelowRange) {
		return
	}

	if rec.TVVolume == nil || rec.RelVol == nil || rec.TVPrice == nil ||
		rec.Range930940High == nil || rec.Range930940Low == nil {
		return
	}

	high, low, price := *rec.Range930940High, *rec.Range930940Low, *rec.TVPrice
	if low <= 0 {
		return
	}

	if *rec.TVVolume >= d.config.HVNBVolumeMin &&
		*rec.RelVol > d.config.HVNBRelVolMin &&
		price >= low*(1-d.config.HVNBRangeSlack) &&
		price <= high*(1+d.config.HVNBRangeSlack) &&
		(high-low)/low < d.config.HVNBMaxRangeWidth {
		rec.SetSignal(contracts.SignalHighVolNoBreakout)
	}
}

package enrich

import (
	"math"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

// Merger fuses the auxiliary feeds into the base universe records.
// The key set never grows: a feed row without a matching universe
// symbol is ignored, a record without feed data simply lacks those
// fields.
type Merger struct {
	config strategyconfig.Merge
	logger *logger.Logger
}

// NewMerger creates a merger with the given merge thresholds.
func NewMerger(config strategyconfig.Merge, log *logger.Logger) *Merger {
	return &Merger{config: config, logger: log}
}

// Merge enriches every record in place. Feeds may be empty in any
// combination; merging never fails.
func (m *Merger) Merge(universe *contracts.Universe, feeds *contracts.Feeds) {
	strong, weak := RankSectorRotation(feeds.SectorPrices)

	quoteHits := 0
	universe.Each(func(rec *contracts.SymbolRecord) {
		if quote, ok := feeds.Quotes[rec.Symbol]; ok {
			m.mergeQuote(rec, quote)
			quoteHits++
		}

		m.mergeSector(rec, strong, weak)
		m.mergeCandleRange(rec, feeds.Candles[rec.Symbol])
		m.mergeMultiDayLevels(rec, feeds.MultiDay)
		m.mergeShortInterest(rec, feeds.ShortInterest)
		m.mergeRiskFlags(rec)
	})

	m.logger.WithFields(map[string]interface{}{
		"symbols":        universe.Len(),
		"quote_matches":  quoteHits,
		"strong_sectors": keys(strong),
		"weak_sectors":   keys(weak),
	}).Info("Universe enriched")
}

// mergeQuote copies the quote feed row onto the record: a nested
// quote sub-record plus the top-level tv_* mirrors. Both shapes are
// read downstream, so both are kept.
func (m *Merger) mergeQuote(rec *contracts.SymbolRecord, quote contracts.QuoteEntry) {
	rec.TVPrice = quote.Price
	rec.TVVolume = quote.Volume
	rec.TVChangePercent = quote.ChangePercent
	rec.RelVol = quote.RelVol
	rec.AvgVolume10D = quote.AvgVolume10D
	rec.PremarketHigh = quote.PremarketHigh
	rec.PremarketLow = quote.PremarketLow
	rec.PrevHigh = quote.PrevHigh
	rec.PrevLow = quote.PrevLow

	// The universe row wins for fundamentals; the quote feed only
	// backfills.
	if rec.Open == nil {
		rec.Open = quote.Open
	}
	if rec.PrevClose == nil {
		rec.PrevClose = quote.PrevClose
	}

	if quote.Price != nil && rec.PrevClose != nil && *rec.PrevClose > 0 {
		pct := (*quote.Price - *rec.PrevClose) / *rec.PrevClose * 100
		rec.GapPercent = contracts.Float(round2(pct))
	}

	rec.Quote = &contracts.QuoteSnapshot{
		Price:         quote.Price,
		Volume:        quote.Volume,
		ChangePercent: quote.ChangePercent,
		GapPercent:    rec.GapPercent,
	}
}

// mergeSector stamps the representative ETF and the rotation flags.
// Unknown sectors are left untouched.
func (m *Merger) mergeSector(rec *contracts.SymbolRecord, strong, weak map[string]bool) {
	if rec.Sector == "" {
		return
	}

	if etf := ETFForSector(rec.Sector); etf != "" {
		rec.SectorETF = etf
	}

	if strong[rec.Sector] {
		rec.SetSignal(contracts.SignalStrongSector)
	}
	if weak[rec.Sector] {
		rec.SetSignal(contracts.SignalWeakSector)
	}
}

// mergeCandleRange derives the observed min low and max high from the
// intraday candle extract. When no candle carries both bounds the
// range fields stay unset, not zero.
func (m *Merger) mergeCandleRange(rec *contracts.SymbolRecord, candles []contracts.Candle) {
	var high, low *float64

	for _, c := range candles {
		if c.High == nil || c.Low == nil {
			continue
		}
		if high == nil || *c.High > *high {
			high = c.High
		}
		if low == nil || *c.Low < *low {
			low = c.Low
		}
	}

	if high != nil && low != nil {
		rec.Range930940High = high
		rec.Range930940Low = low
	}
}

// mergeMultiDayLevels copies the lookback high/low when both are
// present.
func (m *Merger) mergeMultiDayLevels(rec *contracts.SymbolRecord, levels map[string]contracts.LevelEntry) {
	entry, ok := levels[rec.Symbol]
	if !ok || entry.High == nil || entry.Low == nil {
		return
	}

	rec.High10D = entry.High
	rec.Low10D = entry.Low
}

// mergeShortInterest sets the squeeze-watch flag. This is a strict
// conjunction over short percent, relative volume and absolute change
// percent; any missing input fails closed.
func (m *Merger) mergeShortInterest(rec *contracts.SymbolRecord, shorts map[string]contracts.ShortInterestEntry) {
	entry, ok := shorts[rec.Symbol]
	if !ok || entry.ShortPercentOfFloat == nil {
		return
	}
	rec.ShortPercentOfFloat = entry.ShortPercentOfFloat

	if rec.RelVol == nil || rec.TVChangePercent == nil {
		return
	}

	if *entry.ShortPercentOfFloat >= m.config.SqueezeShortPctMin &&
		*rec.RelVol > m.config.SqueezeRelVolMin &&
		math.Abs(*rec.TVChangePercent) >= m.config.SqueezeChangePctMin {
		rec.SetSignal(contracts.SignalSqueezeWatch)
	}
}

// mergeRiskFlags sets the liquidity and spread risk flags. These are
// independent of the squeeze conjunction.
func (m *Merger) mergeRiskFlags(rec *contracts.SymbolRecord) {
	if rec.AvgVolume != nil && *rec.AvgVolume < m.config.LowLiquidityAvgVolume {
		rec.SetSignal(contracts.SignalLowLiquidity)
	}
	if rec.Spread != nil && *rec.Spread > m.config.WideSpreadMin {
		rec.SetSignal(contracts.SignalWideSpread)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for _, se := range SectorETFs {
		if set[se.Sector] {
			out = append(out, se.Sector)
		}
	}
	return out
}

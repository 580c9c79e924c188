package contracts

// Feed artifact names inside the cache directory. The acquisition
// scrapers write these; the pipeline only ever reads them.
const (
	UniverseArtifact      = "universe_cache.json"
	QuoteSignalsArtifact  = "tv_signals.json"
	SectorPricesArtifact  = "sector_etf_prices.json"
	CandlesArtifact       = "candles_5m.json"
	MultiDayArtifact      = "multi_day_levels.json"
	ShortInterestArtifact = "short_interest.json"
	WatchlistArtifact     = "autowatchlist_cache.json"

	// Dated snapshot prefixes, completed with YYYY-MM-DD.
	EnrichedPrefix = "universe_enriched_"
	ScoredPrefix   = "universe_scored_"
)

// UniverseEntry is one row of the base universe artifact.
type UniverseEntry struct {
	Sector    string   `json:"sector,omitempty"`
	Open      *float64 `json:"open,omitempty"`
	PrevClose *float64 `json:"prevClose,omitempty"`
	AvgVolume *float64 `json:"avgVolume,omitempty"`
	Spread    *float64 `json:"spread,omitempty"`
}

// QuoteEntry is one row of the quote-signal feed. The artifact may be
// an object keyed by symbol or a list of entries carrying Symbol; the
// feed store normalizes both shapes to the keyed form.
type QuoteEntry struct {
	Symbol        string   `json:"symbol,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	Open          *float64 `json:"open,omitempty"`
	PrevClose     *float64 `json:"prevClose,omitempty"`
	RelVol        *float64 `json:"rel_vol,omitempty"`
	AvgVolume10D  *float64 `json:"avg_volume_10d,omitempty"`
	PremarketHigh *float64 `json:"premarketHigh,omitempty"`
	PremarketLow  *float64 `json:"premarketLow,omitempty"`
	PrevHigh      *float64 `json:"prevHigh,omitempty"`
	PrevLow       *float64 `json:"prevLow,omitempty"`
	Timestamp     string   `json:"timestamp,omitempty"`
}

// SectorPrice is one row of the sector ETF price feed, keyed by ETF
// ticker.
type SectorPrice struct {
	TVPrice   *float64 `json:"tv_price,omitempty"`
	PrevClose *float64 `json:"prevClose,omitempty"`
}

// Candle is one intraday bar from the candle feed.
type Candle struct {
	Timestamp string   `json:"timestamp,omitempty"`
	Open      *float64 `json:"open,omitempty"`
	High      *float64 `json:"high,omitempty"`
	Low       *float64 `json:"low,omitempty"`
	Close     *float64 `json:"close,omitempty"`
	Volume    *float64 `json:"volume,omitempty"`
}

// LevelEntry is one row of the multi-day high/low feed.
type LevelEntry struct {
	High      *float64 `json:"high,omitempty"`
	Low       *float64 `json:"low,omitempty"`
	Days      int      `json:"days,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
}

// ShortInterestEntry is one row of the short-interest feed.
type ShortInterestEntry struct {
	ShortPercentOfFloat *float64 `json:"shortPercentOfFloat,omitempty"`
}

// Feeds bundles everything the merge stage consumes besides the base
// universe. Any member may be empty; a missing artifact never fails
// the run.
type Feeds struct {
	Quotes        map[string]QuoteEntry
	SectorPrices  map[string]SectorPrice
	Candles       map[string][]Candle
	MultiDay      map[string]LevelEntry
	ShortInterest map[string]ShortInterestEntry
}

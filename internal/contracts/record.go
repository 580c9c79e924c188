package contracts

// Signal flag names. Every stage that reads or writes a flag goes
// through these constants so the weight tables and the derivation
// rules can never drift apart on spelling.
const (
	SignalGapUp               = "gap_up"
	SignalGapDown             = "gap_down"
	SignalBreakAboveRange     = "break_above_range"
	SignalBreakBelowRange     = "break_below_range"
	SignalHighRelVol          = "high_rel_vol"
	SignalEarlyMove           = "early_move"
	SignalSqueezeWatch        = "squeeze_watch"
	SignalStrongSector        = "strong_sector"
	SignalWeakSector          = "weak_sector"
	SignalNearRangeHigh       = "near_range_high"
	SignalHighVolume          = "high_volume"
	SignalTopVolumeGainer     = "top_volume_gainer"
	SignalNearMultiDayHigh    = "near_multi_day_high"
	SignalNearMultiDayLow     = "near_multi_day_low"
	SignalHighVolNoBreakout   = "high_volume_no_breakout"
	SignalLowLiquidity        = "low_liquidity"
	SignalWideSpread          = "wide_spread"
)

// QuoteSnapshot is the nested quote sub-record carried on a
// SymbolRecord. The same values are mirrored as top-level tv_* fields;
// downstream consumers read either shape.
type QuoteSnapshot struct {
	Price         *float64 `json:"price,omitempty"`
	Volume        *float64 `json:"volume,omitempty"`
	ChangePercent *float64 `json:"changePercent,omitempty"`
	GapPercent    *float64 `json:"gapPercent,omitempty"`
}

// TierHits lists, per weight tier, the signal flags that fired.
// Lists follow the declared order of the weight tables, not map
// iteration order, so output is deterministic across runs.
type TierHits struct {
	T1   []string `json:"T1"`
	T2   []string `json:"T2"`
	T3   []string `json:"T3"`
	Risk []string `json:"risk,omitempty"`
}

// SymbolRecord is the unit of work in the pipeline. It is created at
// the merge stage from the base universe plus feed lookups, mutated in
// place by each later stage, and becomes immutable once serialized
// into a dated snapshot.
//
// Optional numeric fields are pointers: nil means the feed never
// supplied the value, while a present zero is legitimate data. Rules
// treat nil operands as "rule does not fire".
type SymbolRecord struct {
	Symbol string `json:"symbol"`

	// Fundamentals from the base universe.
	Sector    string   `json:"sector,omitempty"`
	SectorETF string   `json:"sector_etf,omitempty"`
	Open      *float64 `json:"open,omitempty"`
	PrevClose *float64 `json:"prevClose,omitempty"`
	AvgVolume *float64 `json:"avgVolume,omitempty"`
	Spread    *float64 `json:"spread,omitempty"`

	// Quote-signal feed, mirrored top-level and nested.
	Quote           *QuoteSnapshot `json:"quote,omitempty"`
	TVPrice         *float64       `json:"tv_price,omitempty"`
	TVVolume        *float64       `json:"tv_volume,omitempty"`
	TVChangePercent *float64       `json:"tv_changePercent,omitempty"`
	RelVol          *float64       `json:"rel_vol,omitempty"`
	AvgVolume10D    *float64       `json:"avg_volume_10d,omitempty"`
	GapPercent      *float64       `json:"gapPercent,omitempty"`

	// Derived ranges and levels.
	PremarketHigh   *float64 `json:"premarketHigh,omitempty"`
	PremarketLow    *float64 `json:"premarketLow,omitempty"`
	PrevHigh        *float64 `json:"prevHigh,omitempty"`
	PrevLow         *float64 `json:"prevLow,omitempty"`
	Range930940High *float64 `json:"range_930_940_high,omitempty"`
	Range930940Low  *float64 `json:"range_930_940_low,omitempty"`
	High10D         *float64 `json:"high_10d,omitempty"`
	Low10D          *float64 `json:"low_10d,omitempty"`

	// Risk inputs.
	ShortPercentOfFloat *float64 `json:"shortPercentOfFloat,omitempty"`

	// Accumulated by the signal stages. Append-only within one run.
	Signals map[string]bool `json:"signals,omitempty"`

	// Scoring output.
	Score     int       `json:"score"`
	TierHits  *TierHits `json:"tierHits,omitempty"`
	Tier1Hits int       `json:"tier1_hits"`
	Tier2Hits int       `json:"tier2_hits"`
	Tier3Hits int       `json:"tier3_hits"`

	// Risk-blocking output.
	IsBlocked bool     `json:"isBlocked"`
	Reasons   []string `json:"reasons,omitempty"`

	// Watchlist output.
	Tags []string `json:"tags,omitempty"`
}

// SetSignal marks a flag on the record, allocating the map on first use.
func (r *SymbolRecord) SetSignal(name string) {
	if r.Signals == nil {
		r.Signals = make(map[string]bool)
	}
	r.Signals[name] = true
}

// HasSignal reports whether a flag fired for this record.
func (r *SymbolRecord) HasSignal(name string) bool {
	return r.Signals[name]
}

// Universe is one snapshot of the symbol set under consideration.
// Records are keyed by normalized symbol; Symbols preserves the
// natural iteration order of the base universe artifact so that
// tie-breaks and watchlist ordering are stable across runs.
type Universe struct {
	Symbols []string                 `json:"-"`
	Records map[string]*SymbolRecord `json:"-"`
}

// NewUniverse creates an empty universe snapshot.
func NewUniverse() *Universe {
	return &Universe{
		Symbols: make([]string, 0),
		Records: make(map[string]*SymbolRecord),
	}
}

// Add appends a record, keeping first-seen order. A duplicate symbol
// replaces the stored record without changing its position.
func (u *Universe) Add(rec *SymbolRecord) {
	if _, exists := u.Records[rec.Symbol]; !exists {
		u.Symbols = append(u.Symbols, rec.Symbol)
	}
	u.Records[rec.Symbol] = rec
}

// Len returns the number of symbols in the snapshot.
func (u *Universe) Len() int {
	return len(u.Symbols)
}

// Each calls fn for every record in natural order.
func (u *Universe) Each(fn func(rec *SymbolRecord)) {
	for _, sym := range u.Symbols {
		fn(u.Records[sym])
	}
}

// Float returns a pointer to v. Convenience for building records.
func Float(v float64) *float64 {
	return &v
}

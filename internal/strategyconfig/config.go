package strategyconfig

// Config is the full screening strategy: every threshold and weight
// the pipeline stages consume. Stages receive the relevant section by
// value; there is no process-wide mutable state.
type Config struct {
	Meta      Meta      `yaml:"meta" json:"meta"`
	Merge     Merge     `yaml:"merge" json:"merge"`
	Signals   Signals   `yaml:"signals" json:"signals"`
	Scoring   Scoring   `yaml:"scoring" json:"scoring"`
	Risk      Risk      `yaml:"risk" json:"risk"`
	Watchlist Watchlist `yaml:"watchlist" json:"watchlist"`
}

// Meta identifies the strategy revision.
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
	Timezone   string `yaml:"timezone" json:"timezone"`
}

// Merge holds thresholds applied while fusing feeds into records.
type Merge struct {
	// Squeeze watch is a conjunction: all three must hold.
	SqueezeShortPctMin  float64 `yaml:"squeeze_short_pct_min" json:"squeeze_short_pct_min"`
	SqueezeRelVolMin    float64 `yaml:"squeeze_rel_vol_min" json:"squeeze_rel_vol_min"`
	SqueezeChangePctMin float64 `yaml:"squeeze_change_pct_min" json:"squeeze_change_pct_min"`

	LowLiquidityAvgVolume float64 `yaml:"low_liquidity_avg_volume" json:"low_liquidity_avg_volume"`
	WideSpreadMin         float64 `yaml:"wide_spread_min" json:"wide_spread_min"`
}

// Signals holds the threshold-rule parameters.
type Signals struct {
	GapUpRatio   float64 `yaml:"gap_up_ratio" json:"gap_up_ratio"`
	GapDownRatio float64 `yaml:"gap_down_ratio" json:"gap_down_ratio"`

	EarlyMoveChangePct float64 `yaml:"early_move_change_pct" json:"early_move_change_pct"`
	HighVolumeMin      float64 `yaml:"high_volume_min" json:"high_volume_min"`
	NearRangeHighMax   float64 `yaml:"near_range_high_max" json:"near_range_high_max"` // absolute currency units
	HighRelVolMin      float64 `yaml:"high_rel_vol_min" json:"high_rel_vol_min"`
	MultiDayProximity  float64 `yaml:"multi_day_proximity" json:"multi_day_proximity"` // fraction of the level

	// high_volume_no_breakout conjunction.
	HVNBVolumeMin     float64 `yaml:"hvnb_volume_min" json:"hvnb_volume_min"`
	HVNBRelVolMin     float64 `yaml:"hvnb_rel_vol_min" json:"hvnb_rel_vol_min"`
	HVNBRangeSlack    float64 `yaml:"hvnb_range_slack" json:"hvnb_range_slack"`         // price window around the range
	HVNBMaxRangeWidth float64 `yaml:"hvnb_max_range_width" json:"hvnb_max_range_width"` // (high-low)/low ceiling
}

// Scoring holds the tier weights and the universe-relative top-gainer
// cutoff.
type Scoring struct {
	Tier1Weight int `yaml:"tier1_weight" json:"tier1_weight"`
	Tier2Weight int `yaml:"tier2_weight" json:"tier2_weight"`
	Tier3Weight int `yaml:"tier3_weight" json:"tier3_weight"`
	RiskWeight  int `yaml:"risk_weight" json:"risk_weight"`

	TopVolumeGainers int `yaml:"top_volume_gainers" json:"top_volume_gainers"`
}

// Risk holds the hard-exclusion floors.
type Risk struct {
	MinRelVolProxy float64 `yaml:"min_rel_vol_proxy" json:"min_rel_vol_proxy"`
	MinAvgVolume   float64 `yaml:"min_avg_volume" json:"min_avg_volume"`
}

// Watchlist holds the selection and tagging thresholds.
type Watchlist struct {
	MinScore          int `yaml:"min_score" json:"min_score"`
	StrongSetupT1Hits int `yaml:"strong_setup_t1_hits" json:"strong_setup_t1_hits"`
}

// Default returns the canonical strategy used when no YAML file is
// supplied. The legacy scoring variant (short-only squeeze at 0.20,
// tier-length counting) is deprecated and intentionally not
// represented here.
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "gap_watchlist_v1",
			Version:    "1.0",
			Timezone:   "America/New_York",
		},
		Merge: Merge{
			SqueezeShortPctMin:    0.18,
			SqueezeRelVolMin:      1.2,
			SqueezeChangePctMin:   1.5,
			LowLiquidityAvgVolume: 500_000,
			WideSpreadMin:         0.30,
		},
		Signals: Signals{
			GapUpRatio:         1.01,
			GapDownRatio:       0.99,
			EarlyMoveChangePct: 2.5,
			HighVolumeMin:      1_000_000,
			NearRangeHighMax:   0.25,
			HighRelVolMin:      1.5,
			MultiDayProximity:  0.02,
			HVNBVolumeMin:      800_000,
			HVNBRelVolMin:      1.0,
			HVNBRangeSlack:     0.01,
			HVNBMaxRangeWidth:  0.02,
		},
		Scoring: Scoring{
			Tier1Weight:      3,
			Tier2Weight:      2,
			Tier3Weight:      1,
			RiskWeight:       -3,
			TopVolumeGainers: 5,
		},
		Risk: Risk{
			MinRelVolProxy: 0.3,
			MinAvgVolume:   1_000_000,
		},
		Watchlist: Watchlist{
			MinScore:          3,
			StrongSetupT1Hits: 2,
		},
	}
}

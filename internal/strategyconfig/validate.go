package strategyconfig

import "fmt"

// ValidationError reports a constraint violation; loading aborts.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints.
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	// === Merge ===
	if cfg.Merge.SqueezeShortPctMin <= 0 || cfg.Merge.SqueezeShortPctMin > 1 {
		return ValidationError{"merge.squeeze_short_pct_min", "must be in (0, 1]"}
	}
	if cfg.Merge.SqueezeRelVolMin <= 0 {
		return ValidationError{"merge.squeeze_rel_vol_min", "must be > 0"}
	}
	if cfg.Merge.SqueezeChangePctMin < 0 {
		return ValidationError{"merge.squeeze_change_pct_min", "must be >= 0"}
	}
	if cfg.Merge.LowLiquidityAvgVolume <= 0 {
		return ValidationError{"merge.low_liquidity_avg_volume", "must be > 0"}
	}
	if cfg.Merge.WideSpreadMin <= 0 {
		return ValidationError{"merge.wide_spread_min", "must be > 0"}
	}

	// === Signals ===
	if cfg.Signals.GapUpRatio <= 1.0 {
		return ValidationError{"signals.gap_up_ratio", "must be > 1.0"}
	}
	if cfg.Signals.GapDownRatio <= 0 || cfg.Signals.GapDownRatio >= 1.0 {
		return ValidationError{"signals.gap_down_ratio", "must be in (0, 1.0)"}
	}
	if cfg.Signals.EarlyMoveChangePct <= 0 {
		return ValidationError{"signals.early_move_change_pct", "must be > 0"}
	}
	if cfg.Signals.HighVolumeMin <= 0 {
		return ValidationError{"signals.high_volume_min", "must be > 0"}
	}
	if cfg.Signals.NearRangeHighMax <= 0 {
		return ValidationError{"signals.near_range_high_max", "must be > 0"}
	}
	if cfg.Signals.HighRelVolMin <= 0 {
		return ValidationError{"signals.high_rel_vol_min", "must be > 0"}
	}
	if cfg.Signals.MultiDayProximity <= 0 || cfg.Signals.MultiDayProximity >= 1 {
		return ValidationError{"signals.multi_day_proximity", "must be in (0, 1)"}
	}
	if cfg.Signals.HVNBVolumeMin <= 0 {
		return ValidationError{"signals.hvnb_volume_min", "must be > 0"}
	}
	if cfg.Signals.HVNBRelVolMin <= 0 {
		return ValidationError{"signals.hvnb_rel_vol_min", "must be > 0"}
	}
	if cfg.Signals.HVNBRangeSlack <= 0 {
		return ValidationError{"signals.hvnb_range_slack", "must be > 0"}
	}
	if cfg.Signals.HVNBMaxRangeWidth <= 0 {
		return ValidationError{"signals.hvnb_max_range_width", "must be > 0"}
	}

	// === Scoring ===
	if cfg.Scoring.Tier1Weight <= 0 || cfg.Scoring.Tier2Weight <= 0 || cfg.Scoring.Tier3Weight <= 0 {
		return ValidationError{"scoring", "positive tier weights must be > 0"}
	}
	if cfg.Scoring.Tier1Weight < cfg.Scoring.Tier2Weight || cfg.Scoring.Tier2Weight < cfg.Scoring.Tier3Weight {
		return ValidationError{"scoring", "tier weights must be non-increasing (tier1 >= tier2 >= tier3)"}
	}
	if cfg.Scoring.RiskWeight >= 0 {
		return ValidationError{"scoring.risk_weight", "must be < 0"}
	}
	if cfg.Scoring.TopVolumeGainers <= 0 {
		return ValidationError{"scoring.top_volume_gainers", "must be > 0"}
	}

	// === Risk ===
	if cfg.Risk.MinRelVolProxy <= 0 {
		return ValidationError{"risk.min_rel_vol_proxy", "must be > 0"}
	}
	if cfg.Risk.MinAvgVolume <= 0 {
		return ValidationError{"risk.min_avg_volume", "must be > 0"}
	}

	// === Watchlist ===
	if cfg.Watchlist.MinScore <= 0 {
		return ValidationError{"watchlist.min_score", "must be > 0"}
	}
	if cfg.Watchlist.StrongSetupT1Hits <= 0 {
		return ValidationError{"watchlist.strong_setup_t1_hits", "must be > 0"}
	}

	return nil
}

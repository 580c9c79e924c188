package signals

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

func deriveOne(rec *contracts.SymbolRecord) *contracts.SymbolRecord {
	u := contracts.NewUniverse()
	u.Add(rec)
	NewDeriver(strategyconfig.Default().Signals, logger.Nop()).Derive(u)
	return rec
}

func TestDerive_GapRules(t *testing.T) {
	tests := []struct {
		name      string
		open      *float64
		prevClose *float64
		gapUp     bool
		gapDown   bool
	}{
		{
			name:      "gap up above 1 percent",
			open:      contracts.Float(105),
			prevClose: contracts.Float(100),
			gapUp:     true,
		},
		{
			name:      "gap down below 1 percent",
			open:      contracts.Float(98),
			prevClose: contracts.Float(100),
			gapDown:   true,
		},
		{
			name:      "open exactly at the up threshold does not fire",
			open:      contracts.Float(101),
			prevClose: contracts.Float(100),
		},
		{
			name:      "flat open fires neither",
			open:      contracts.Float(100),
			prevClose: contracts.Float(100),
		},
		{
			name: "missing open fires neither",
			prevClose: contracts.Float(100),
		},
		{
			name: "missing prev close fires neither",
			open: contracts.Float(105),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deriveOne(&contracts.SymbolRecord{
				Symbol:    "T",
				Open:      tt.open,
				PrevClose: tt.prevClose,
			})
			assert.Equal(t, tt.gapUp, rec.HasSignal(contracts.SignalGapUp))
			assert.Equal(t, tt.gapDown, rec.HasSignal(contracts.SignalGapDown))
		})
	}
}

func TestDerive_BreakoutRules(t *testing.T) {
	tests := []struct {
		name      string
		price     *float64
		rangeHigh *float64
		rangeLow  *float64
		above     bool
		below     bool
		near      bool
	}{
		{
			name:      "price above the range high",
			price:     contracts.Float(106),
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
			above:     true,
		},
		{
			name:      "price below the range low",
			price:     contracts.Float(101),
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
			below:     true,
		},
		{
			name:      "price just under the range high",
			price:     contracts.Float(103.80),
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
			near:      true,
		},
		{
			name:      "price exactly at the range high fires nothing",
			price:     contracts.Float(104),
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
		},
		{
			name:      "price too far under the range high",
			price:     contracts.Float(103),
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
		},
		{
			name:  "missing range fires nothing",
			price: contracts.Float(106),
		},
		{
			name:      "missing price fires nothing",
			rangeHigh: contracts.Float(104),
			rangeLow:  contracts.Float(102),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deriveOne(&contracts.SymbolRecord{
				Symbol:          "T",
				TVPrice:         tt.price,
				Range930940High: tt.rangeHigh,
				Range930940Low:  tt.rangeLow,
			})
			assert.Equal(t, tt.above, rec.HasSignal(contracts.SignalBreakAboveRange))
			assert.Equal(t, tt.below, rec.HasSignal(contracts.SignalBreakBelowRange))
			assert.Equal(t, tt.near, rec.HasSignal(contracts.SignalNearRangeHigh))
		})
	}
}

func TestDerive_MomentumRules(t *testing.T) {
	rec := deriveOne(&contracts.SymbolRecord{
		Symbol:          "T",
		TVChangePercent: contracts.Float(-3.0),
		TVVolume:        contracts.Float(1_000_000),
		RelVol:          contracts.Float(1.6),
	})

	assert.True(t, rec.HasSignal(contracts.SignalEarlyMove), "change magnitude counts both ways")
	assert.True(t, rec.HasSignal(contracts.SignalHighVolume), "volume threshold is inclusive")
	assert.True(t, rec.HasSignal(contracts.SignalHighRelVol))

	quiet := deriveOne(&contracts.SymbolRecord{
		Symbol:          "Q",
		TVChangePercent: contracts.Float(1.0),
		TVVolume:        contracts.Float(500_000),
		RelVol:          contracts.Float(1.5),
	})

	assert.False(t, quiet.HasSignal(contracts.SignalEarlyMove))
	assert.False(t, quiet.HasSignal(contracts.SignalHighVolume))
	assert.False(t, quiet.HasSignal(contracts.SignalHighRelVol), "rel vol threshold is strict")
}

func TestDerive_MultiDayRules(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		high     *float64
		low      *float64
		nearHigh bool
		nearLow  bool
	}{
		{
			name:     "within 2 percent of the lookback high",
			price:    108.5,
			high:     contracts.Float(110),
			nearHigh: true,
		},
		{
			name:  "too far from the lookback high",
			price: 105,
			high:  contracts.Float(110),
		},
		{
			name:    "within 2 percent of the lookback low",
			price:   91,
			low:     contracts.Float(90),
			nearLow: true,
		},
		{
			name:     "exactly at the high",
			price:    110,
			high:     contracts.Float(110),
			nearHigh: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := deriveOne(&contracts.SymbolRecord{
				Symbol:  "T",
				TVPrice: contracts.Float(tt.price),
				High10D: tt.high,
				Low10D:  tt.low,
			})
			assert.Equal(t, tt.nearHigh, rec.HasSignal(contracts.SignalNearMultiDayHigh))
			assert.Equal(t, tt.nearLow, rec.HasSignal(contracts.SignalNearMultiDayLow))
		})
	}
}

func TestDerive_HighVolumeNoBreakout(t *testing.T) {
	rec := deriveOne(&contracts.SymbolRecord{
		Symbol:          "T",
		TVPrice:         contracts.Float(102.5),
		TVVolume:        contracts.Float(900_000),
		RelVol:          contracts.Float(1.1),
		Range930940High: contracts.Float(103),
		Range930940Low:  contracts.Float(102),
	})

	assert.True(t, rec.HasSignal(contracts.SignalHighVolNoBreakout))
	assert.False(t, rec.HasSignal(contracts.SignalBreakAboveRange))
	assert.False(t, rec.HasSignal(contracts.SignalBreakBelowRange))
}

func TestDerive_HighVolumeNoBreakoutExclusion(t *testing.T) {
	// Breaking above the range suppresses the no-breakout flag no
	// matter how heavy the volume is.
	rec := deriveOne(&contracts.SymbolRecord{
		Symbol:          "T",
		TVPrice:         contracts.Float(103.5),
		TVVolume:        contracts.Float(5_000_000),
		RelVol:          contracts.Float(3.0),
		Range930940High: contracts.Float(103),
		Range930940Low:  contracts.Float(102),
	})

	assert.True(t, rec.HasSignal(contracts.SignalBreakAboveRange))
	assert.False(t, rec.HasSignal(contracts.SignalHighVolNoBreakout))
}

func TestDerive_HighVolumeNoBreakoutWideRange(t *testing.T) {
	// (high-low)/low of 5 percent exceeds the width ceiling.
	rec := deriveOne(&contracts.SymbolRecord{
		Symbol:          "T",
		TVPrice:         contracts.Float(102),
		TVVolume:        contracts.Float(900_000),
		RelVol:          contracts.Float(1.1),
		Range930940High: contracts.Float(105),
		Range930940Low:  contracts.Float(100),
	})

	assert.False(t, rec.HasSignal(contracts.SignalHighVolNoBreakout))
}

func TestDerive_PreservesMergeFlags(t *testing.T) {
	rec := &contracts.SymbolRecord{Symbol: "T"}
	rec.SetSignal(contracts.SignalStrongSector)

	deriveOne(rec)

	assert.True(t, rec.HasSignal(contracts.SignalStrongSector), "earlier flags are never cleared")
}

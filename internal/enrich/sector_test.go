package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwatch/scanner/internal/contracts"
)

func sectorRow(price, prevClose float64) contracts.SectorPrice {
	return contracts.SectorPrice{
		TVPrice:   contracts.Float(price),
		PrevClose: contracts.Float(prevClose),
	}
}

func TestETFForSector(t *testing.T) {
	assert.Equal(t, "XLK", ETFForSector("Technology"))
	assert.Equal(t, "XLF", ETFForSector("Financials"))
	assert.Equal(t, "", ETFForSector("Cryptocurrency"))
}

func TestRankSectorRotation(t *testing.T) {
	prices := map[string]contracts.SectorPrice{
		"XLK":  sectorRow(103, 100), // +3.0
		"XLE":  sectorRow(102, 100), // +2.0
		"XLF":  sectorRow(101, 100), // +1.0
		"XLV":  sectorRow(100, 100), // 0.0
		"XLU":  sectorRow(99, 100),  // -1.0
		"XLRE": sectorRow(97, 100),  // -3.0
	}

	strong, weak := RankSectorRotation(prices)

	assert.Equal(t, map[string]bool{"Technology": true, "Energy": true}, strong)
	assert.Equal(t, map[string]bool{"Utilities": true, "Real Estate": true}, weak)
}

func TestRankSectorRotation_SkipsUnusableRows(t *testing.T) {
	prices := map[string]contracts.SectorPrice{
		"XLK": sectorRow(103, 100),
		"XLE": {TVPrice: contracts.Float(102)},       // no prevClose
		"XLF": sectorRow(101, 0),                     // zero prevClose
		"XLV": {PrevClose: contracts.Float(100)},     // no price
		"XLU": sectorRow(99, 100),
	}

	strong, weak := RankSectorRotation(prices)

	// Only two usable rows: both are top-2 and bottom-2.
	assert.Equal(t, map[string]bool{"Technology": true, "Utilities": true}, strong)
	assert.Equal(t, map[string]bool{"Technology": true, "Utilities": true}, weak)
}

func TestRankSectorRotation_Empty(t *testing.T) {
	strong, weak := RankSectorRotation(nil)
	assert.Empty(t, strong)
	assert.Empty(t, weak)
}

func TestRankSectorRotation_TieKeepsDeclaredOrder(t *testing.T) {
	// XLF precedes XLK in the declared ETF order; on an exact tie the
	// stable sort must keep that order.
	prices := map[string]contracts.SectorPrice{
		"XLF": sectorRow(102, 100),
		"XLK": sectorRow(102, 100),
		"XLE": sectorRow(101, 100),
		"XLV": sectorRow(99, 100),
	}

	strong, _ := RankSectorRotation(prices)

	require.Len(t, strong, 2)
	assert.True(t, strong["Financials"])
	assert.True(t, strong["Technology"])
}

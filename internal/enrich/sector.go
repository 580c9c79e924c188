package enrich

import (
	"sort"

	"github.com/tickerwatch/scanner/internal/contracts"
)

// sectorETF maps one sector ETF to the sector name it represents.
type sectorETF struct {
	ETF    string
	Sector string
}

// SectorETFs is the fixed set of eleven sector ETFs used for the
// rotation ranking. Order matters: it is the tie-break for equal
// percentage changes.
var SectorETFs = []sectorETF{
	{"XLF", "Financials"},
	{"XLK", "Technology"},
	{"XLE", "Energy"},
	{"XLV", "Healthcare"},
	{"XLY", "Consumer Discretionary"},
	{"XLI", "Industrials"},
	{"XLP", "Consumer Staples"},
	{"XLU", "Utilities"},
	{"XLRE", "Real Estate"},
	{"XLB", "Materials"},
	{"XLC", "Communication Services"},
}

// ETFForSector returns the representative ETF ticker for a sector
// name, or "" when the sector is not one of the eleven.
func ETFForSector(sector string) string {
	for _, se := range SectorETFs {
		if se.Sector == sector {
			return se.ETF
		}
	}
	return ""
}

// sectorChange is one ranked sector rotation entry.
type sectorChange struct {
	Sector    string
	ChangePct float64
}

// RankSectorRotation computes each sector's percentage change from its
// ETF price feed and returns the top-two (strong) and bottom-two
// (weak) sector names. ETFs with an unusable price row are skipped;
// ties keep the declared ETF order via the stable sort.
func RankSectorRotation(prices map[string]contracts.SectorPrice) (strong, weak map[string]bool) {
	changes := make([]sectorChange, 0, len(SectorETFs))

	for _, se := range SectorETFs {
		row, ok := prices[se.ETF]
		if !ok || row.TVPrice == nil || row.PrevClose == nil || *row.PrevClose <= 0 {
			continue
		}

		pct := (*row.TVPrice - *row.PrevClose) / *row.PrevClose * 100
		changes = append(changes, sectorChange{Sector: se.Sector, ChangePct: pct})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].ChangePct > changes[j].ChangePct
	})

	strong = make(map[string]bool)
	weak = make(map[string]bool)

	for i := 0; i < len(changes) && i < 2; i++ {
		strong[changes[i].Sector] = true
	}
	for i := len(changes) - 2; i < len(changes); i++ {
		if i >= 0 {
			weak[changes[i].Sector] = true
		}
	}

	return strong, weak
}

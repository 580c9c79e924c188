package watchlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tickerwatch/scanner/internal/contracts"
	"github.com/tickerwatch/scanner/internal/strategyconfig"
	"github.com/tickerwatch/scanner/pkg/logger"
)

func newTestBuilder() *Builder {
	return NewBuilder(strategyconfig.Default().Watchlist, logger.Nop())
}

func TestBuild_Selection(t *testing.T) {
	u := contracts.NewUniverse()
	u.Add(&contracts.SymbolRecord{Symbol: "HIGH", Score: 7})
	u.Add(&contracts.SymbolRecord{Symbol: "EDGE", Score: 3})
	u.Add(&contracts.SymbolRecord{Symbol: "LOW", Score: 2})
	u.Add(&contracts.SymbolRecord{
		Symbol:    "BLOCKED",
		Score:     1,
		IsBlocked: true,
		Reasons:   []string{"Low liquidity"},
	})

	wl := newTestBuilder().Build(u)

	assert.Equal(t, []string{"HIGH", "EDGE", "BLOCKED"}, wl.Symbols(),
		"threshold is inclusive, blocked records are kept, low scorers drop")
}

func TestBuild_SortsByScoreDescending(t *testing.T) {
	u := contracts.NewUniverse()
	u.Add(&contracts.SymbolRecord{Symbol: "MID", Score: 5})
	u.Add(&contracts.SymbolRecord{Symbol: "TOP", Score: 9})
	u.Add(&contracts.SymbolRecord{Symbol: "BOT", Score: 3})

	wl := newTestBuilder().Build(u)

	assert.Equal(t, []string{"TOP", "MID", "BOT"}, wl.Symbols())
}

func TestBuild_StableTies(t *testing.T) {
	// Equal scores keep the universe's natural order.
	u := contracts.NewUniverse()
	u.Add(&contracts.SymbolRecord{Symbol: "FIRST", Score: 4})
	u.Add(&contracts.SymbolRecord{Symbol: "SECOND", Score: 4})
	u.Add(&contracts.SymbolRecord{Symbol: "THIRD", Score: 4})

	wl := newTestBuilder().Build(u)

	assert.Equal(t, []string{"FIRST", "SECOND", "THIRD"}, wl.Symbols())
}

func TestBuild_Tags(t *testing.T) {
	strong := &contracts.SymbolRecord{Symbol: "STRONG", Score: 6, Tier1Hits: 2}

	squeeze := &contracts.SymbolRecord{Symbol: "SQUEEZE", Score: 4}
	squeeze.SetSignal(contracts.SignalSqueezeWatch)

	early := &contracts.SymbolRecord{Symbol: "EARLY", Score: 4}
	early.SetSignal(contracts.SignalEarlyMove)

	plain := &contracts.SymbolRecord{Symbol: "PLAIN", Score: 3, Tier1Hits: 1}

	u := contracts.NewUniverse()
	u.Add(strong)
	u.Add(squeeze)
	u.Add(early)
	u.Add(plain)

	newTestBuilder().Build(u)

	assert.Equal(t, []string{TagStrongSetup}, strong.Tags)
	assert.Equal(t, []string{TagSqueezeWatch}, squeeze.Tags)
	assert.Equal(t, []string{TagEarlyWatch}, early.Tags)
	assert.Empty(t, plain.Tags)
}

func TestBuild_MultipleTags(t *testing.T) {
	rec := &contracts.SymbolRecord{Symbol: "ALL", Score: 8, Tier1Hits: 3}
	rec.SetSignal(contracts.SignalSqueezeWatch)
	rec.SetSignal(contracts.SignalEarlyMove)

	u := contracts.NewUniverse()
	u.Add(rec)

	wl := newTestBuilder().Build(u)

	require.Len(t, wl.Entries, 1)
	assert.Equal(t, []string{TagStrongSetup, TagSqueezeWatch, TagEarlyWatch}, rec.Tags)
}

func TestBuild_EmptyUniverse(t *testing.T) {
	wl := newTestBuilder().Build(contracts.NewUniverse())
	assert.Empty(t, wl.Entries)
	assert.Empty(t, wl.Symbols())
}

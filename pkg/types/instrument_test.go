package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstrument_PushPriceEvictsOldest(t *testing.T) {
	inst := &Instrument{Symbol: "AAPL"}

	for i := 0; i < PriceHistoryLimit+20; i++ {
		inst.PushPrice(100.0 + float64(i))
	}

	assert.Len(t, inst.PriceHistory, PriceHistoryLimit)
	assert.Equal(t, 100.0+float64(PriceHistoryLimit+19), inst.MarketPrice)
	assert.Equal(t, inst.MarketPrice, inst.PriceHistory[len(inst.PriceHistory)-1])

	// the first 20 samples are gone
	assert.Equal(t, 120.0, inst.PriceHistory[0])
}

func TestInstrument_EffectiveVolatility(t *testing.T) {
	inst := &Instrument{Symbol: "TSLA"}
	assert.Equal(t, DefaultVolatility, inst.EffectiveVolatility())

	inst.Volatility = 0.3
	assert.Equal(t, 0.3, inst.EffectiveVolatility())
}

func TestInstrument_ChangePercent(t *testing.T) {
	inst := &Instrument{Symbol: "NVDA", MarketPrice: 110.0, PreviousClose: 100.0}
	assert.InDelta(t, 10.0, inst.ChangePercent(), 1e-9)

	inst.PreviousClose = 0
	assert.Equal(t, 0.0, inst.ChangePercent())
}

package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simstreet/simstreet/pkg/types"
)

func TestPrintAccount(t *testing.T) {
	record := types.LedgerRecord{
		Cash:         7700.0,
		StartingCash: 10000.0,
		Holdings: map[string]types.Holding{
			"AAPL": {Symbol: "AAPL", Quantity: 15, AverageCost: 153.33},
		},
	}

	instruments := []types.Instrument{
		{Symbol: "AAPL", Sector: "Technology", MarketPrice: 160.0},
		{Symbol: "XOM", Sector: "Energy", MarketPrice: 110.0},
	}

	var buf bytes.Buffer
	PrintAccount(&buf, record, map[string]float64{"AAPL": 160.0}, instruments)

	out := buf.String()
	assert.Contains(t, out, "AAPL")
	assert.Contains(t, out, "15")
	assert.NotContains(t, out, "XOM", "instruments without a holding are not listed")
}

func TestPrintMarket(t *testing.T) {
	var buf bytes.Buffer
	PrintMarket(&buf, []types.Instrument{
		{Symbol: "TSLA", Sector: "Consumer", MarketPrice: 250.0, PreviousClose: 240.0, Sentiment: 0.25},
	})

	out := buf.String()
	assert.Contains(t, out, "TSLA")
	assert.Contains(t, out, "+4.17%")
	assert.Contains(t, out, "+0.250")
}

package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simstreet/simstreet/pkg/types"
)

const Delta = 1e-9

func TestLedger_BuyAveragesCost(t *testing.T) {
	l := New(10000.0)

	result, err := l.Buy("AAPL", 10, 150.0)
	require.NoError(t, err)
	assert.InDelta(t, 8500.0, result.Cash, Delta)
	assert.Equal(t, int64(10), result.Holding.Quantity)
	assert.InDelta(t, 150.0, result.Holding.AverageCost, Delta)

	result, err = l.Buy("AAPL", 5, 160.0)
	require.NoError(t, err)
	assert.InDelta(t, 7700.0, result.Cash, Delta)
	assert.Equal(t, int64(15), result.Holding.Quantity)
	assert.InDelta(t, (10.0*150.0+5.0*160.0)/15.0, result.Holding.AverageCost, Delta)

	result, err = l.Sell("AAPL", 15, 170.0)
	require.NoError(t, err)
	assert.InDelta(t, 10250.0, result.Cash, Delta)

	_, ok := l.Holding("AAPL")
	assert.False(t, ok, "position sold to zero should be removed")

	txns := l.Transactions()
	require.Len(t, txns, 3)
	assert.Equal(t, types.TradeTypeBuy, txns[0].Type)
	assert.Equal(t, types.TradeTypeSell, txns[2].Type)
	assert.InDelta(t, 2550.0, txns[2].TotalValue, Delta)
}

func TestLedger_SellKeepsAverageCost(t *testing.T) {
	l := New(10000.0)

	_, err := l.Buy("TSLA", 10, 100.0)
	require.NoError(t, err)

	result, err := l.Sell("TSLA", 4, 180.0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), result.Holding.Quantity)
	assert.InDelta(t, 100.0, result.Holding.AverageCost, Delta)

	holding, ok := l.Holding("TSLA")
	require.True(t, ok)
	assert.Equal(t, int64(6), holding.Quantity)
	assert.InDelta(t, 100.0, holding.AverageCost, Delta)
}

func assertUnchanged(t *testing.T, l *Ledger, cash float64, holdings int, txns int) {
	t.Helper()
	assert.InDelta(t, cash, l.Cash(), Delta)
	assert.Len(t, l.Holdings(), holdings)
	assert.Len(t, l.Transactions(), txns)
}

func TestLedger_BuyRejections(t *testing.T) {
	l := New(1000.0)

	_, err := l.Buy("AAPL", 0, 100.0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	assertUnchanged(t, l, 1000.0, 0, 0)

	_, err = l.Buy("AAPL", -5, 100.0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = l.Buy("AAPL", 5, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = l.Buy("AAPL", 11, 100.0)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assertUnchanged(t, l, 1000.0, 0, 0)

	// exactly affordable is accepted
	_, err = l.Buy("AAPL", 10, 100.0)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, l.Cash(), Delta)
}

func TestLedger_SellRejections(t *testing.T) {
	l := New(1000.0)

	_, err := l.Sell("AAPL", 5, 100.0)
	assert.ErrorIs(t, err, ErrNoPosition)
	assertUnchanged(t, l, 1000.0, 0, 0)

	_, err = l.Buy("AAPL", 5, 100.0)
	require.NoError(t, err)

	_, err = l.Sell("AAPL", 6, 100.0)
	assert.ErrorIs(t, err, ErrInsufficientShares)
	assert.Contains(t, err.Error(), "hold 5", "rejection must report the held quantity")
	assertUnchanged(t, l, 500.0, 1, 1)

	_, err = l.Sell("AAPL", 2, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assertUnchanged(t, l, 500.0, 1, 1)
}

func TestLedger_PortfolioQueries(t *testing.T) {
	l := New(10000.0)

	_, err := l.Buy("AAPL", 10, 150.0)
	require.NoError(t, err)
	_, err = l.Buy("TSLA", 5, 200.0)
	require.NoError(t, err)

	prices := map[string]float64{
		"AAPL": 160.0,
		// TSLA intentionally missing
	}

	assert.InDelta(t, 1600.0, l.PortfolioValue(prices), Delta)
	assert.InDelta(t, 7500.0+1600.0, l.TotalAssets(prices), Delta)
	assert.InDelta(t, 9100.0-10000.0, l.ProfitLoss(prices), Delta)
	assert.InDelta(t, -9.0, l.PercentChange(prices), Delta)
}

func TestLedger_PercentChangeZeroStartingCash(t *testing.T) {
	l := New(0)
	assert.Equal(t, 0.0, l.PercentChange(nil))
}

func TestLedger_RecordRoundTrip(t *testing.T) {
	l := New(10000.0)
	_, err := l.Buy("AAPL", 10, 150.0)
	require.NoError(t, err)
	_, err = l.Sell("AAPL", 3, 155.0)
	require.NoError(t, err)

	record := l.Record()
	restored := FromRecord(record)

	assert.Equal(t, record, restored.Record())
	assert.InDelta(t, l.Cash(), restored.Cash(), Delta)

	// mutating the restored ledger does not touch the original record
	_, err = restored.Buy("TSLA", 1, 10.0)
	require.NoError(t, err)
	assert.NotContains(t, record.Holdings, "TSLA")
}

// Package ledger owns the session's cash balance, holdings and append-only
// transaction log, and exposes the atomic buy/sell operations.
package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/simstreet/simstreet/pkg/types"
)

// TradeResult reports the ledger delta of one accepted buy or sell.
type TradeResult struct {
	Transaction types.Transaction `json:"transaction"`
	Cash        float64           `json:"cash"`

	// Holding is the position after the trade. A sell that closes the
	// position reports a zero-quantity holding.
	Holding types.Holding `json:"holding"`
}

type Ledger struct {
	mu sync.Mutex

	cash         float64
	startingCash float64
	holdings     map[string]*types.Holding
	transactions []types.Transaction
}

func New(startingCash float64) *Ledger {
	return &Ledger{
		cash:         startingCash,
		startingCash: startingCash,
		holdings:     make(map[string]*types.Holding),
	}
}

// Buy executes a purchase at the given price snapshot. Rejections leave the
// ledger untouched.
func (l *Ledger) Buy(symbol string, quantity int64, price float64) (*TradeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "buy %s: got %d", symbol, quantity)
	}
	if price <= 0 {
		return nil, errors.Wrapf(ErrInvalidPrice, "buy %s: got %f", symbol, price)
	}

	total := float64(quantity) * price
	if total > l.cash {
		return nil, errors.Wrapf(ErrInsufficientFunds, "buy %s: need %s, cash %s",
			symbol,
			types.USD.FormatMoneyFloat64(total),
			types.USD.FormatMoneyFloat64(l.cash))
	}

	l.cash -= total

	holding, ok := l.holdings[symbol]
	if ok {
		// weighted average of the existing lot and the new lot
		oldQty := float64(holding.Quantity)
		holding.AverageCost = (oldQty*holding.AverageCost + total) / (oldQty + float64(quantity))
		holding.Quantity += quantity
	} else {
		holding = &types.Holding{
			Symbol:      symbol,
			Quantity:    quantity,
			AverageCost: price,
		}
		l.holdings[symbol] = holding
	}

	txn := l.appendTransaction(types.TradeTypeBuy, symbol, quantity, price, total)

	return &TradeResult{
		Transaction: txn,
		Cash:        l.cash,
		Holding:     *holding,
	}, nil
}

// Sell executes a sale at the given price snapshot. The average cost of the
// remaining lot is never changed by a sell; a position sold down to zero is
// removed. Rejections leave the ledger untouched.
func (l *Ledger) Sell(symbol string, quantity int64, price float64) (*TradeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if quantity <= 0 {
		return nil, errors.Wrapf(ErrInvalidQuantity, "sell %s: got %d", symbol, quantity)
	}
	if price <= 0 {
		return nil, errors.Wrapf(ErrInvalidPrice, "sell %s: got %f", symbol, price)
	}

	holding, ok := l.holdings[symbol]
	if !ok {
		return nil, errors.Wrapf(ErrNoPosition, "sell %s", symbol)
	}
	if holding.Quantity < quantity {
		return nil, errors.Wrapf(ErrInsufficientShares, "sell %s: hold %d, want %d",
			symbol, holding.Quantity, quantity)
	}

	total := float64(quantity) * price
	l.cash += total
	holding.Quantity -= quantity

	after := *holding
	if holding.Quantity == 0 {
		delete(l.holdings, symbol)
	}

	txn := l.appendTransaction(types.TradeTypeSell, symbol, quantity, price, total)

	return &TradeResult{
		Transaction: txn,
		Cash:        l.cash,
		Holding:     after,
	}, nil
}

func (l *Ledger) appendTransaction(tradeType types.TradeType, symbol string, quantity int64, price, total float64) types.Transaction {
	txn := types.Transaction{
		ID:         uuid.NewString(),
		Type:       tradeType,
		Symbol:     symbol,
		Quantity:   quantity,
		Price:      price,
		TotalValue: total,
		CreatedAt:  time.Now(),
	}
	l.transactions = append(l.transactions, txn)
	return txn
}

func (l *Ledger) Cash() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cash
}

func (l *Ledger) StartingCash() float64 {
	return l.startingCash
}

// Holding returns a copy of the position in symbol, if any.
func (l *Ledger) Holding(symbol string) (types.Holding, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	holding, ok := l.holdings[symbol]
	if !ok {
		return types.Holding{}, false
	}
	return *holding, true
}

// Holdings returns a copy of all open positions keyed by symbol.
func (l *Ledger) Holdings() map[string]types.Holding {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]types.Holding, len(l.holdings))
	for symbol, holding := range l.holdings {
		out[symbol] = *holding
	}
	return out
}

// Transactions returns the execution-ordered transaction log.
func (l *Ledger) Transactions() []types.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]types.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// PortfolioValue sums quantity × current price over all holdings. Symbols
// missing from the price map contribute nothing.
func (l *Ledger) PortfolioValue(prices map[string]float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var value float64
	for symbol, holding := range l.holdings {
		price, ok := prices[symbol]
		if !ok {
			continue
		}
		value += float64(holding.Quantity) * price
	}
	return value
}

// TotalAssets is cash plus the marked-to-market portfolio value.
func (l *Ledger) TotalAssets(prices map[string]float64) float64 {
	return l.Cash() + l.PortfolioValue(prices)
}

// ProfitLoss is total assets minus the starting cash.
func (l *Ledger) ProfitLoss(prices map[string]float64) float64 {
	return l.TotalAssets(prices) - l.startingCash
}

// PercentChange reports profit/loss relative to starting cash, 0 when the
// session started with nothing.
func (l *Ledger) PercentChange(prices map[string]float64) float64 {
	if l.startingCash == 0 {
		return 0
	}
	return l.ProfitLoss(prices) / l.startingCash * 100.0
}

// Record snapshots the ledger into its plain persisted shape.
func (l *Ledger) Record() types.LedgerRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	holdings := make(map[string]types.Holding, len(l.holdings))
	for symbol, holding := range l.holdings {
		holdings[symbol] = *holding
	}

	transactions := make([]types.Transaction, len(l.transactions))
	copy(transactions, l.transactions)

	return types.LedgerRecord{
		Cash:         l.cash,
		StartingCash: l.startingCash,
		Holdings:     holdings,
		Transactions: transactions,
	}
}

// FromRecord rebuilds a ledger from its persisted shape.
func FromRecord(record types.LedgerRecord) *Ledger {
	l := New(record.StartingCash)
	l.cash = record.Cash

	for symbol, holding := range record.Holdings {
		h := holding
		l.holdings[symbol] = &h
	}

	l.transactions = make([]types.Transaction, len(record.Transactions))
	copy(l.transactions, record.Transactions)
	return l
}

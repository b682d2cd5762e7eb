package types

import (
	"fmt"
	"time"
)

type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// Transaction is one executed buy or sell, recorded at the price snapshot
// the ledger saw at execution time. Append-only, never mutated.
type Transaction struct {
	ID         string    `json:"id"`
	Type       TradeType `json:"type"`
	Symbol     string    `json:"symbol"`
	Quantity   int64     `json:"quantity"`
	Price      float64   `json:"price"`
	TotalValue float64   `json:"totalValue"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %d %s @ %s = %s",
		t.Type, t.Quantity, t.Symbol,
		USD.FormatMoneyFloat64(t.Price),
		USD.FormatMoneyFloat64(t.TotalValue))
}

// Holding is the current position in one symbol. AverageCost is the
// quantity-weighted average of all buy fills; sells never change it.
type Holding struct {
	Symbol      string  `json:"symbol"`
	Quantity    int64   `json:"quantity"`
	AverageCost float64 `json:"averageCost"`
}

func (h Holding) String() string {
	return fmt.Sprintf("%s x%d @ %s", h.Symbol, h.Quantity, USD.FormatMoneyFloat64(h.AverageCost))
}

package types

import (
	"fmt"
)

// PriceHistoryLimit is the maximum number of price samples kept per instrument.
// The oldest sample is evicted first.
const PriceHistoryLimit = 100

// DefaultVolatility is used when an instrument is created without one.
const DefaultVolatility = 0.015

// MinPrice is the hard floor for any simulated price.
const MinPrice = 0.01

type Instrument struct {
	Symbol      string `json:"symbol" yaml:"symbol"`
	CompanyName string `json:"companyName" yaml:"companyName"`
	Sector      string `json:"sector" yaml:"sector"`

	MarketPrice   float64 `json:"marketPrice"`
	OpenPrice     float64 `json:"openPrice"`
	PreviousClose float64 `json:"previousClose"`

	// Volatility is annualized. 0 means "unset"; consumers fall back to
	// DefaultVolatility.
	Volatility float64 `json:"volatility"`

	// PriceHistory holds up to PriceHistoryLimit samples, newest last.
	// The last entry always equals MarketPrice.
	PriceHistory []float64 `json:"priceHistory"`

	// Sentiment is the accumulated bullish/bearish bias, clamped to [-1, 1].
	Sentiment float64 `json:"sentiment"`
}

func (inst *Instrument) EffectiveVolatility() float64 {
	if inst.Volatility <= 0 {
		return DefaultVolatility
	}
	return inst.Volatility
}

// PushPrice sets the market price and appends it to the history,
// evicting the oldest sample beyond PriceHistoryLimit.
func (inst *Instrument) PushPrice(price float64) {
	inst.MarketPrice = price
	inst.PriceHistory = append(inst.PriceHistory, price)
	if n := len(inst.PriceHistory); n > PriceHistoryLimit {
		inst.PriceHistory = inst.PriceHistory[n-PriceHistoryLimit:]
	}
}

// ChangePercent reports the move from the previous close in percent.
func (inst *Instrument) ChangePercent() float64 {
	if inst.PreviousClose == 0 {
		return 0
	}
	return (inst.MarketPrice - inst.PreviousClose) / inst.PreviousClose * 100.0
}

func (inst *Instrument) String() string {
	return fmt.Sprintf("%s (%s) %s %+.2f%%",
		inst.Symbol,
		inst.Sector,
		USD.FormatMoneyFloat64(inst.MarketPrice),
		inst.ChangePercent())
}

// Package pricing implements the stochastic per-instrument price model: a
// uniform noise term scaled by volatility, plus a small sentiment-driven
// drift, over a bounded price history.
package pricing

import (
	"math"
	"math/rand"

	"github.com/simstreet/simstreet/pkg/types"
)

const (
	// DefaultSentimentWeight scales how hard sentiment leans on the drift.
	// Kept small so sentiment nudges the walk without dominating noise.
	DefaultSentimentWeight = 0.03

	// TrendBiasRange bounds the per-instrument backfill trend, drawn once
	// per instrument as a symmetric band around zero.
	TrendBiasRange = 0.003

	// TradingDaysPerYear annualizes the sampled return deviation.
	TradingDaysPerYear = 252
)

type Model struct {
	rand *rand.Rand

	// SentimentWeight must stay <= 0.05; see DefaultSentimentWeight.
	SentimentWeight float64

	trendBias map[string]float64
}

func NewModel(r *rand.Rand) *Model {
	return &Model{
		rand:            r,
		SentimentWeight: DefaultSentimentWeight,
		trendBias:       make(map[string]float64),
	}
}

// NextPrice advances the instrument one step and appends the sample to its
// history. The combined effect is uniform noise scaled by volatility plus
// sentiment-weighted drift; the result never goes below types.MinPrice.
func (m *Model) NextPrice(inst *types.Instrument, sentiment float64) float64 {
	u := m.rand.Float64()*2.0 - 1.0
	combined := u*inst.EffectiveVolatility() + sentiment*m.SentimentWeight

	price := inst.MarketPrice * (1.0 + combined)
	price = math.Max(price, types.MinPrice)

	inst.PushPrice(price)
	return price
}

// SimulateHistory backfills days of synthetic history behind seedPrice,
// walking backward with the instrument's trend bias so the series shows a
// non-degenerate trend. The seed price always ends up as the last (most
// recent) history entry.
func (m *Model) SimulateHistory(inst *types.Instrument, days int, seedPrice float64) {
	seedPrice = math.Max(seedPrice, types.MinPrice)

	bias := m.trendBiasFor(inst.Symbol)
	vol := inst.EffectiveVolatility()

	prices := make([]float64, 0, days+1)
	prices = append(prices, seedPrice)

	price := seedPrice
	for i := 0; i < days; i++ {
		noise := m.rand.Float64()*2.0 - 1.0
		price = price / (1.0 + bias + vol*noise)
		price = math.Max(price, types.MinPrice)
		prices = append(prices, price)
	}

	// prices were generated newest-first, history is stored oldest-first
	history := make([]float64, 0, len(prices))
	for i := len(prices) - 1; i >= 0; i-- {
		history = append(history, prices[i])
	}
	if n := len(history); n > types.PriceHistoryLimit {
		history = history[n-types.PriceHistoryLimit:]
	}

	inst.PriceHistory = history
	inst.MarketPrice = seedPrice
	if inst.OpenPrice == 0 {
		inst.OpenPrice = seedPrice
	}
	if inst.PreviousClose == 0 && len(history) > 1 {
		inst.PreviousClose = history[len(history)-2]
	}
}

// RecomputeVolatility re-estimates annualized volatility from the sample
// standard deviation of simple returns over the price history. With fewer
// than two samples there is nothing to estimate and the call is a no-op.
func (m *Model) RecomputeVolatility(inst *types.Instrument) {
	history := inst.PriceHistory
	if len(history) < 2 {
		return
	}

	returns := make([]float64, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		if history[i-1] == 0 {
			continue
		}
		returns = append(returns, history[i]/history[i-1]-1.0)
	}
	if len(returns) < 2 {
		return
	}

	var sum float64
	for _, r := range returns {
		sum += r
	}
	mean := sum / float64(len(returns))

	var sq float64
	for _, r := range returns {
		d := r - mean
		sq += d * d
	}
	stddev := math.Sqrt(sq / float64(len(returns)-1))

	inst.Volatility = stddev * math.Sqrt(TradingDaysPerYear)
}

// RollDailyClose closes out the current trading day: the live price becomes
// the previous close and the next day's open.
func (m *Model) RollDailyClose(inst *types.Instrument) {
	inst.PreviousClose = inst.MarketPrice
	inst.OpenPrice = inst.MarketPrice
}

func (m *Model) trendBiasFor(symbol string) float64 {
	if bias, ok := m.trendBias[symbol]; ok {
		return bias
	}

	bias := (m.rand.Float64()*2.0 - 1.0) * TrendBiasRange
	m.trendBias[symbol] = bias
	return bias
}

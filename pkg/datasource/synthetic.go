package datasource

import (
	"math/rand"

	"github.com/simstreet/simstreet/pkg/types"
)

// Synthetic seeding bands. Prices land in a range wide enough to make the
// game interesting without dwarfing the starting cash.
const (
	syntheticMinPrice = 10.0
	syntheticMaxPrice = 500.0

	syntheticMinVolatility = 0.01
	syntheticMaxVolatility = 0.05
)

var syntheticSectors = []string{
	"Technology",
	"Energy",
	"Finance",
	"Healthcare",
	"Consumer",
	"Industrials",
}

// Synthesize builds an instrument with randomized price, volatility and (if
// missing) sector. It backs the DataSourceUnavailable fallback and pure
// offline play.
func Synthesize(r *rand.Rand, symbol, name, sector string) *types.Instrument {
	if name == "" {
		name = symbol + " Corp."
	}
	if sector == "" {
		sector = syntheticSectors[r.Intn(len(syntheticSectors))]
	}

	price := syntheticMinPrice + r.Float64()*(syntheticMaxPrice-syntheticMinPrice)
	volatility := syntheticMinVolatility + r.Float64()*(syntheticMaxVolatility-syntheticMinVolatility)

	return &types.Instrument{
		Symbol:      symbol,
		CompanyName: name,
		Sector:      sector,
		MarketPrice: price,
		Volatility:  volatility,
	}
}

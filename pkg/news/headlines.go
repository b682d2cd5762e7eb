package news

import (
	"fmt"
	"math/rand"

	"github.com/simstreet/simstreet/pkg/types"
)

// Headline pools keyed by scope and polarity. Instrument templates take the
// company name, sector templates the sector name.
var instrumentPositive = []string{
	"%s beats quarterly earnings expectations",
	"%s announces breakthrough product line",
	"Analysts upgrade %s to strong buy",
	"%s lands major government contract",
	"%s reports record revenue growth",
}

var instrumentNegative = []string{
	"%s misses earnings estimates",
	"%s faces regulatory investigation",
	"Analysts downgrade %s on weak guidance",
	"%s recalls flagship product",
	"Key executive departs %s unexpectedly",
}

var sectorPositive = []string{
	"%s sector rallies on strong demand outlook",
	"Government announces incentives for %s companies",
	"Investor money flows into %s stocks",
	"%s industry posts best quarter in years",
}

var sectorNegative = []string{
	"%s sector slumps on supply chain worries",
	"New regulations weigh on %s companies",
	"Investors rotate out of %s stocks",
	"%s industry faces rising input costs",
}

var marketPositive = []string{
	"Markets rally as economic data beats forecasts",
	"Central bank signals easing, stocks surge",
	"Consumer confidence hits multi-year high",
	"Trade tensions ease, indices climb broadly",
}

var marketNegative = []string{
	"Markets slide on inflation fears",
	"Central bank hints at rate hikes, stocks fall",
	"Weak jobs report drags indices lower",
	"Geopolitical tensions rattle investors",
}

func pickHeadline(r *rand.Rand, scope types.NewsScope, positive bool, name string) string {
	var pool []string

	switch scope {
	case types.NewsScopeInstrument:
		if positive {
			pool = instrumentPositive
		} else {
			pool = instrumentNegative
		}
		return fmt.Sprintf(pool[r.Intn(len(pool))], name)

	case types.NewsScopeSector:
		if positive {
			pool = sectorPositive
		} else {
			pool = sectorNegative
		}
		return fmt.Sprintf(pool[r.Intn(len(pool))], name)

	default:
		if positive {
			pool = marketPositive
		} else {
			pool = marketNegative
		}
		return pool[r.Intn(len(pool))]
	}
}

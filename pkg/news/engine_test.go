package news

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simstreet/simstreet/pkg/sentiment"
	"github.com/simstreet/simstreet/pkg/types"
)

func testInstruments() []*types.Instrument {
	return []*types.Instrument{
		{Symbol: "AAPL", CompanyName: "Apple Inc.", Sector: "Technology", MarketPrice: 180},
		{Symbol: "MSFT", CompanyName: "Microsoft Corp.", Sector: "Technology", MarketPrice: 400},
		{Symbol: "XOM", CompanyName: "Exxon Mobil", Sector: "Energy", MarketPrice: 110},
		{Symbol: "JPM", CompanyName: "JPMorgan Chase", Sector: "Finance", MarketPrice: 190},
	}
}

func TestEngine_RoutineNewsAlwaysFires(t *testing.T) {
	store := sentiment.NewStore()
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(1)), store)
	instruments := testInstruments()

	now := time.Now()
	for i := 0; i < 200; i++ {
		item := engine.GenerateRoutineNews(now, instruments)
		require.NotNil(t, item)
		assert.False(t, item.IsEvent)
		assert.NotEmpty(t, item.Headline)
		assert.NotEmpty(t, item.ID)
	}

	assert.Len(t, engine.History(), types.NewsHistoryLimit)
}

func TestEngine_RoutineNewsEmptyUniverse(t *testing.T) {
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(1)), sentiment.NewStore())
	assert.Nil(t, engine.GenerateRoutineNews(time.Now(), nil))
	assert.Nil(t, engine.CheckForEvent(time.Now(), nil))
}

func TestEngine_HistoryMostRecentFirst(t *testing.T) {
	store := sentiment.NewStore()
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(2)), store)
	instruments := testInstruments()

	base := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	first := engine.GenerateRoutineNews(base, instruments)
	second := engine.GenerateRoutineNews(base.Add(time.Minute), instruments)

	history := engine.History()
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestEngine_EventCooldownGates(t *testing.T) {
	config := DefaultConfig()
	config.EventProbability = 1.0 // always passes the draw
	config.EventCooldown = types.Duration(time.Minute)

	store := sentiment.NewStore()
	engine := NewEngine(config, rand.New(rand.NewSource(3)), store)
	instruments := testInstruments()

	base := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)

	item := engine.CheckForEvent(base, instruments)
	require.NotNil(t, item)
	assert.True(t, item.IsEvent)

	// within cooldown: no-op regardless of probability
	assert.Nil(t, engine.CheckForEvent(base.Add(30*time.Second), instruments))
	assert.Len(t, engine.History(), 1)

	// cooldown elapsed
	assert.NotNil(t, engine.CheckForEvent(base.Add(61*time.Second), instruments))
}

func TestEngine_EventProbabilityGate(t *testing.T) {
	config := DefaultConfig()
	config.EventProbability = 0 // never fires

	engine := NewEngine(config, rand.New(rand.NewSource(4)), sentiment.NewStore())
	instruments := testInstruments()

	for i := 0; i < 100; i++ {
		assert.Nil(t, engine.CheckForEvent(time.Now(), instruments))
	}
	assert.Empty(t, engine.History())
}

func TestEngine_InstrumentScopeHitsOneSymbol(t *testing.T) {
	config := DefaultConfig()
	config.EventProbability = 1.0

	store := sentiment.NewStore()
	engine := NewEngine(config, rand.New(rand.NewSource(5)), store)
	instruments := testInstruments()

	base := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	for i := 0; ; i++ {
		require.Less(t, i, 200, "no instrument-scope event within 200 draws")

		for _, inst := range instruments {
			store.Set(inst.Symbol, 0)
		}

		item := engine.CheckForEvent(base.Add(time.Duration(i)*time.Hour), instruments)
		require.NotNil(t, item)
		if item.Scope != types.NewsScopeInstrument {
			continue
		}

		assert.NotEmpty(t, item.TargetRef)
		mag := math.Abs(item.Magnitude)
		assert.GreaterOrEqual(t, mag, config.EventInstrumentBand.Min)
		assert.LessOrEqual(t, mag, config.EventInstrumentBand.Max)

		touched := 0
		for _, inst := range instruments {
			if store.Sentiment(inst.Symbol) != 0 {
				touched++
				assert.Equal(t, item.TargetRef, inst.Symbol)
			}
		}
		assert.Equal(t, 1, touched)
		return
	}
}

func TestEngine_SectorScopeHitsWholeSector(t *testing.T) {
	store := sentiment.NewStore()
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(6)), store)
	instruments := testInstruments()

	for i := 0; ; i++ {
		require.Less(t, i, 500, "no sector-scope news within 500 draws")

		item := engine.GenerateRoutineNews(time.Now(), instruments)
		require.NotNil(t, item)
		if item.Scope != types.NewsScopeSector {
			// reset so only the sector firing is visible
			for _, inst := range instruments {
				store.Set(inst.Symbol, 0)
			}
			continue
		}

		for _, inst := range instruments {
			if inst.Sector == item.TargetRef {
				assert.NotZero(t, store.Sentiment(inst.Symbol))
			} else {
				assert.Zero(t, store.Sentiment(inst.Symbol))
			}
		}
		return
	}
}

func TestEngine_MarketEventDampened(t *testing.T) {
	config := DefaultConfig()
	config.EventProbability = 1.0

	store := sentiment.NewStore()
	engine := NewEngine(config, rand.New(rand.NewSource(7)), store)
	instruments := testInstruments()

	base := time.Date(2026, 1, 2, 9, 30, 0, 0, time.UTC)
	for i := 0; ; i++ {
		require.Less(t, i, 200, "no market-scope event within 200 draws")

		for _, inst := range instruments {
			store.Set(inst.Symbol, 0)
		}

		item := engine.CheckForEvent(base.Add(time.Duration(i)*time.Hour), instruments)
		require.NotNil(t, item)
		if item.Scope != types.NewsScopeMarket {
			continue
		}

		assert.Empty(t, item.TargetRef)
		expected := item.Magnitude * config.MarketDampening
		for _, inst := range instruments {
			assert.InDelta(t, expected, store.Sentiment(inst.Symbol), 1e-9)
		}
		return
	}
}

func TestEngine_RoutineMarketNewsUndampened(t *testing.T) {
	store := sentiment.NewStore()
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(8)), store)
	instruments := testInstruments()

	for i := 0; ; i++ {
		require.Less(t, i, 500, "no market-scope routine news within 500 draws")

		for _, inst := range instruments {
			store.Set(inst.Symbol, 0)
		}

		item := engine.GenerateRoutineNews(time.Now(), instruments)
		require.NotNil(t, item)
		if item.Scope != types.NewsScopeMarket {
			continue
		}

		for _, inst := range instruments {
			assert.InDelta(t, item.Magnitude, store.Sentiment(inst.Symbol), 1e-9)
		}
		return
	}
}

func TestEngine_RestoreHistoryTrims(t *testing.T) {
	engine := NewEngine(DefaultConfig(), rand.New(rand.NewSource(9)), sentiment.NewStore())

	items := make([]types.NewsItem, types.NewsHistoryLimit+10)
	for i := range items {
		items[i] = types.NewsItem{ID: "n", Headline: "h", Scope: types.NewsScopeMarket}
	}

	engine.RestoreHistory(items)
	assert.Len(t, engine.History(), types.NewsHistoryLimit)
}

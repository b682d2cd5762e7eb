// Package session wires the price model, sentiment store, event engine and
// ledger into one simulation session. The session owns no timers: an
// external driver decides cadence and calls Tick, GenerateRoutineNews and
// CheckForEvent; Buy and Sell are user actions executed at the last
// committed price.
package session

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/simstreet/simstreet/pkg/config"
	"github.com/simstreet/simstreet/pkg/datasource"
	"github.com/simstreet/simstreet/pkg/ledger"
	"github.com/simstreet/simstreet/pkg/metrics"
	"github.com/simstreet/simstreet/pkg/news"
	"github.com/simstreet/simstreet/pkg/pricing"
	"github.com/simstreet/simstreet/pkg/sentiment"
	"github.com/simstreet/simstreet/pkg/types"
)

var ErrUnknownSymbol = errors.New("unknown symbol")

type Session struct {
	// mu serializes ticks, event checks and trades: each operation runs to
	// completion before the next begins, so a trade always reads the last
	// committed price.
	mu sync.Mutex

	config *config.Config
	rand   *rand.Rand
	clock  func() time.Time
	quotes datasource.QuoteService

	instruments []*types.Instrument
	index       map[string]*types.Instrument

	store  *sentiment.Store
	model  *pricing.Model
	engine *news.Engine
	ledger *ledger.Ledger
}

type Option func(*Session)

// WithRand replaces the session random source, pinning every stochastic
// draw for a given seed.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) { s.rand = r }
}

// WithQuoteService sets the seed-quote source consulted for instruments
// without a configured seed price.
func WithQuoteService(quotes datasource.QuoteService) Option {
	return func(s *Session) { s.quotes = quotes }
}

// WithClock replaces the wall clock, for deterministic cooldown tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// New bootstraps a session from config: seeds every configured instrument
// (quote source first, synthetic fallback), backfills price history and
// opens the ledger with the starting cash.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		config: cfg,
		clock:  time.Now,
		index:  make(map[string]*types.Instrument),
		store:  sentiment.NewStore(),
		ledger: ledger.New(cfg.StartingCash),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.rand == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		s.rand = rand.New(rand.NewSource(seed))
	}

	s.model = pricing.NewModel(s.rand)
	if cfg.SentimentWeight > 0 {
		s.model.SentimentWeight = cfg.SentimentWeight
	}

	s.engine = news.NewEngine(cfg.News, s.rand, s.store)

	for _, instCfg := range cfg.Instruments {
		if _, err := s.CreateInstrument(instCfg); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// CreateInstrument adds one instrument to the tracked set. Seed price
// resolution order: configured seed price, then the quote source, then the
// synthetic generator when the source is unavailable.
func (s *Session) CreateInstrument(instCfg config.InstrumentConfig) (types.Instrument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if instCfg.Symbol == "" {
		return types.Instrument{}, errors.New("instrument symbol can not be empty")
	}
	if _, ok := s.index[instCfg.Symbol]; ok {
		return types.Instrument{}, errors.Errorf("instrument %s already exists", instCfg.Symbol)
	}

	inst := s.seedInstrument(instCfg)
	s.model.SimulateHistory(inst, s.config.HistoryDays, inst.MarketPrice)

	s.instruments = append(s.instruments, inst)
	s.index[inst.Symbol] = inst

	log.WithFields(log.Fields{
		"symbol": inst.Symbol,
		"sector": inst.Sector,
		"price":  inst.MarketPrice,
	}).Debug("instrument created")

	return *inst, nil
}

func (s *Session) seedInstrument(instCfg config.InstrumentConfig) *types.Instrument {
	if instCfg.SeedPrice > 0 {
		inst := &types.Instrument{
			Symbol:      instCfg.Symbol,
			CompanyName: instCfg.Name,
			Sector:      instCfg.Sector,
			MarketPrice: instCfg.SeedPrice,
			Volatility:  instCfg.Volatility,
		}
		if inst.CompanyName == "" {
			inst.CompanyName = instCfg.Symbol
		}
		return inst
	}

	if s.quotes != nil {
		quoteSymbol := instCfg.QuoteSymbol
		if quoteSymbol == "" {
			quoteSymbol = instCfg.Symbol
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		price, err := s.quotes.QueryLastPrice(ctx, quoteSymbol)
		cancel()

		if err == nil {
			inst := &types.Instrument{
				Symbol:      instCfg.Symbol,
				CompanyName: instCfg.Name,
				Sector:      instCfg.Sector,
				MarketPrice: price,
				Volatility:  instCfg.Volatility,
			}
			if inst.CompanyName == "" {
				inst.CompanyName = instCfg.Symbol
			}
			return inst
		}

		// documented fallback: the simulation stays usable offline
		log.WithError(err).Warnf("seeding %s synthetically, quote source unavailable", instCfg.Symbol)
	}

	inst := datasource.Synthesize(s.rand, instCfg.Symbol, instCfg.Name, instCfg.Sector)
	if instCfg.Volatility > 0 {
		inst.Volatility = instCfg.Volatility
	}
	return inst
}

// Tick advances every instrument one price step and decays sentiment one
// notch toward neutral.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inst := range s.instruments {
		s.model.NextPrice(inst, s.store.Sentiment(inst.Symbol))
	}

	s.store.DecayAll(s.config.DecayRate)
	s.syncSentiment()

	metrics.TicksTotal.Inc()
}

// CheckForEvent runs one gated event check; nil means nothing fired.
func (s *Session) CheckForEvent() *types.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	metrics.EventChecksTotal.Inc()

	item := s.engine.CheckForEvent(s.clock(), s.instruments)
	if item != nil {
		s.syncSentiment()
		metrics.NewsItemsTotal.WithLabelValues(string(item.Scope), "event").Inc()
	}
	return item
}

// GenerateRoutineNews produces one routine item and applies its impact.
func (s *Session) GenerateRoutineNews() *types.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.engine.GenerateRoutineNews(s.clock(), s.instruments)
	if item != nil {
		s.syncSentiment()
		metrics.NewsItemsTotal.WithLabelValues(string(item.Scope), "news").Inc()
	}
	return item
}

// RollDailyClose closes the trading day for every instrument.
func (s *Session) RollDailyClose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inst := range s.instruments {
		s.model.RollDailyClose(inst)
	}
}

// RecomputeVolatility re-estimates every instrument's volatility from its
// accumulated price history.
func (s *Session) RecomputeVolatility() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, inst := range s.instruments {
		s.model.RecomputeVolatility(inst)
	}
}

// Buy purchases quantity shares at the last committed price.
func (s *Session) Buy(symbol string, quantity int64) (*ledger.TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.index[symbol]
	if !ok {
		metrics.TradeRejectionsTotal.WithLabelValues("BUY").Inc()
		return nil, errors.Wrapf(ErrUnknownSymbol, "buy %s", symbol)
	}

	result, err := s.ledger.Buy(symbol, quantity, inst.MarketPrice)
	if err != nil {
		metrics.TradeRejectionsTotal.WithLabelValues("BUY").Inc()
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues("BUY").Inc()
	return result, nil
}

// Sell sells quantity shares at the last committed price.
func (s *Session) Sell(symbol string, quantity int64) (*ledger.TradeResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.index[symbol]
	if !ok {
		metrics.TradeRejectionsTotal.WithLabelValues("SELL").Inc()
		return nil, errors.Wrapf(ErrUnknownSymbol, "sell %s", symbol)
	}

	result, err := s.ledger.Sell(symbol, quantity, inst.MarketPrice)
	if err != nil {
		metrics.TradeRejectionsTotal.WithLabelValues("SELL").Inc()
		return nil, err
	}

	metrics.TradesTotal.WithLabelValues("SELL").Inc()
	return result, nil
}

// Instrument returns a copy of the tracked instrument.
func (s *Session) Instrument(symbol string) (types.Instrument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.index[symbol]
	if !ok {
		return types.Instrument{}, false
	}
	return *inst, true
}

// Instruments returns copies of all tracked instruments in creation order.
func (s *Session) Instruments() []types.Instrument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copyInstruments()
}

// Prices returns the last committed price per symbol.
func (s *Session) Prices() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	prices := make(map[string]float64, len(s.instruments))
	for _, inst := range s.instruments {
		prices[inst.Symbol] = inst.MarketPrice
	}
	return prices
}

// Ledger exposes the session ledger for derived queries.
func (s *Session) Ledger() *ledger.Ledger {
	return s.ledger
}

// NewsHistory returns retained news, most recent first.
func (s *Session) NewsHistory() []types.NewsItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.History()
}

// Snapshot captures the full session state for persistence and UI
// collaborators. Restoring the snapshot and snapshotting again yields
// identical records.
func (s *Session) Snapshot() types.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return types.Snapshot{
		Instruments: s.copyInstruments(),
		Ledger:      s.ledger.Record(),
		NewsHistory: s.engine.History(),
	}
}

// Restore replaces the session state with a previously captured snapshot.
func (s *Session) Restore(snapshot types.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.instruments = nil
	s.index = make(map[string]*types.Instrument)
	s.store = sentiment.NewStore()

	for i := range snapshot.Instruments {
		inst := snapshot.Instruments[i]
		copied := inst
		copied.PriceHistory = append([]float64(nil), inst.PriceHistory...)

		s.instruments = append(s.instruments, &copied)
		s.index[copied.Symbol] = &copied
		s.store.Set(copied.Symbol, copied.Sentiment)
	}

	s.ledger = ledger.FromRecord(snapshot.Ledger)
	s.engine = news.NewEngine(s.config.News, s.rand, s.store)
	s.engine.RestoreHistory(snapshot.NewsHistory)
}

// syncSentiment mirrors the store back onto the instrument records so
// snapshots and UI reads see current values. Callers hold mu.
func (s *Session) syncSentiment() {
	for _, inst := range s.instruments {
		inst.Sentiment = s.store.Sentiment(inst.Symbol)
	}
}

func (s *Session) copyInstruments() []types.Instrument {
	out := make([]types.Instrument, 0, len(s.instruments))
	for _, inst := range s.instruments {
		copied := *inst
		copied.PriceHistory = append([]float64(nil), inst.PriceHistory...)
		out = append(out, copied)
	}
	return out
}

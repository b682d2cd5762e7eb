// Package news generates the routine news flow and the rarer, cooldown-gated
// market events that perturb instrument sentiment at instrument, sector and
// market scope.
package news

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/simstreet/simstreet/pkg/sentiment"
	"github.com/simstreet/simstreet/pkg/types"
)

// MagnitudeBand is a closed interval the absolute impact is drawn from.
type MagnitudeBand struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (b MagnitudeBand) draw(r *rand.Rand) float64 {
	return b.Min + r.Float64()*(b.Max-b.Min)
}

type Config struct {
	// EventProbability is checked once per CheckForEvent call after the
	// cooldown has elapsed.
	EventProbability float64        `json:"eventProbability" yaml:"eventProbability"`
	EventCooldown    types.Duration `json:"eventCooldown" yaml:"eventCooldown"`

	// Event bands are wider than the routine ones; market-wide events are
	// additionally dampened per instrument.
	EventInstrumentBand MagnitudeBand `json:"eventInstrumentBand" yaml:"eventInstrumentBand"`
	EventSectorBand     MagnitudeBand `json:"eventSectorBand" yaml:"eventSectorBand"`
	EventMarketBand     MagnitudeBand `json:"eventMarketBand" yaml:"eventMarketBand"`

	RoutineInstrumentBand MagnitudeBand `json:"routineInstrumentBand" yaml:"routineInstrumentBand"`
	RoutineSectorBand     MagnitudeBand `json:"routineSectorBand" yaml:"routineSectorBand"`
	RoutineMarketBand     MagnitudeBand `json:"routineMarketBand" yaml:"routineMarketBand"`

	// MarketDampening scales market-wide *event* magnitudes per name.
	// Routine market news is applied undampened from its own band.
	MarketDampening float64 `json:"marketDampening" yaml:"marketDampening"`
}

func DefaultConfig() Config {
	return Config{
		EventProbability: 0.05,
		EventCooldown:    types.Duration(2 * time.Minute),

		EventInstrumentBand: MagnitudeBand{Min: 0.05, Max: 0.20},
		EventSectorBand:     MagnitudeBand{Min: 0.04, Max: 0.15},
		EventMarketBand:     MagnitudeBand{Min: 0.03, Max: 0.10},

		RoutineInstrumentBand: MagnitudeBand{Min: 0.02, Max: 0.09},
		RoutineSectorBand:     MagnitudeBand{Min: 0.015, Max: 0.06},
		RoutineMarketBand:     MagnitudeBand{Min: 0.01, Max: 0.04},

		MarketDampening: 0.75,
	}
}

type Engine struct {
	config Config
	rand   *rand.Rand
	store  *sentiment.Store

	lastEventAt time.Time
	history     []types.NewsItem
}

func NewEngine(config Config, r *rand.Rand, store *sentiment.Store) *Engine {
	return &Engine{
		config: config,
		rand:   r,
		store:  store,
	}
}

// History returns the retained items, most recent first.
func (e *Engine) History() []types.NewsItem {
	out := make([]types.NewsItem, len(e.history))
	copy(out, e.history)
	return out
}

// RestoreHistory replaces the retained items, e.g. when loading a snapshot.
func (e *Engine) RestoreHistory(items []types.NewsItem) {
	e.history = make([]types.NewsItem, len(items))
	copy(e.history, items)
	e.trimHistory()
}

// GenerateRoutineNews always produces one item from the routine magnitude
// bands and applies its impact. Returns nil only when no instruments are
// tracked.
func (e *Engine) GenerateRoutineNews(now time.Time, instruments []*types.Instrument) *types.NewsItem {
	if len(instruments) == 0 {
		return nil
	}

	scope := e.pickScope()
	item := e.fire(now, scope, false, instruments)
	return item
}

// CheckForEvent fires a market event when the cooldown has elapsed and the
// probability draw succeeds; otherwise it returns nil and changes nothing.
func (e *Engine) CheckForEvent(now time.Time, instruments []*types.Instrument) *types.NewsItem {
	if len(instruments) == 0 {
		return nil
	}

	if !e.lastEventAt.IsZero() && now.Sub(e.lastEventAt) < e.config.EventCooldown.Duration() {
		return nil
	}

	if e.rand.Float64() >= e.config.EventProbability {
		return nil
	}

	scope := e.pickScope()
	item := e.fire(now, scope, true, instruments)
	e.lastEventAt = now

	log.WithFields(log.Fields{
		"scope":     item.Scope,
		"target":    item.TargetRef,
		"magnitude": item.Magnitude,
	}).Infof("event fired: %s", item.Headline)

	return item
}

func (e *Engine) pickScope() types.NewsScope {
	switch e.rand.Intn(3) {
	case 0:
		return types.NewsScopeInstrument
	case 1:
		return types.NewsScopeSector
	default:
		return types.NewsScopeMarket
	}
}

func (e *Engine) fire(now time.Time, scope types.NewsScope, isEvent bool, instruments []*types.Instrument) *types.NewsItem {
	positive := e.rand.Intn(2) == 0

	var magnitude float64
	var target string
	var name string

	switch scope {
	case types.NewsScopeInstrument:
		inst := instruments[e.rand.Intn(len(instruments))]
		target = inst.Symbol
		name = inst.CompanyName

		magnitude = e.band(scope, isEvent).draw(e.rand)
		if !positive {
			magnitude = -magnitude
		}

		e.store.ApplyDelta(inst.Symbol, magnitude)

	case types.NewsScopeSector:
		sector := e.pickSector(instruments)
		target = sector
		name = sector

		magnitude = e.band(scope, isEvent).draw(e.rand)
		if !positive {
			magnitude = -magnitude
		}

		for _, inst := range instruments {
			if inst.Sector == sector {
				e.store.ApplyDelta(inst.Symbol, magnitude)
			}
		}

	case types.NewsScopeMarket:
		magnitude = e.band(scope, isEvent).draw(e.rand)
		if !positive {
			magnitude = -magnitude
		}

		applied := magnitude
		if isEvent {
			// market-wide shocks are diluted per name
			applied = magnitude * e.config.MarketDampening
		}

		for _, inst := range instruments {
			e.store.ApplyDelta(inst.Symbol, applied)
		}
	}

	item := types.NewsItem{
		ID:        uuid.NewString(),
		Headline:  pickHeadline(e.rand, scope, positive, name),
		Scope:     scope,
		TargetRef: target,
		Magnitude: magnitude,
		IsEvent:   isEvent,
		CreatedAt: now,
	}

	e.history = append([]types.NewsItem{item}, e.history...)
	e.trimHistory()

	return &item
}

func (e *Engine) band(scope types.NewsScope, isEvent bool) MagnitudeBand {
	switch scope {
	case types.NewsScopeInstrument:
		if isEvent {
			return e.config.EventInstrumentBand
		}
		return e.config.RoutineInstrumentBand

	case types.NewsScopeSector:
		if isEvent {
			return e.config.EventSectorBand
		}
		return e.config.RoutineSectorBand

	default:
		if isEvent {
			return e.config.EventMarketBand
		}
		return e.config.RoutineMarketBand
	}
}

// pickSector selects uniformly among the sectors present, in first-seen
// order so a seeded engine is deterministic.
func (e *Engine) pickSector(instruments []*types.Instrument) string {
	var sectors []string
	seen := make(map[string]struct{})

	for _, inst := range instruments {
		if _, ok := seen[inst.Sector]; ok {
			continue
		}
		seen[inst.Sector] = struct{}{}
		sectors = append(sectors, inst.Sector)
	}

	return sectors[e.rand.Intn(len(sectors))]
}

func (e *Engine) trimHistory() {
	if len(e.history) > types.NewsHistoryLimit {
		e.history = e.history[:types.NewsHistoryLimit]
	}
}

// Package config loads the yaml session configuration.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/simstreet/simstreet/pkg/news"
	"github.com/simstreet/simstreet/pkg/sentiment"
	"github.com/simstreet/simstreet/pkg/types"
)

const (
	DefaultStartingCash = 10000.0
	DefaultHistoryDays  = 30
)

// InstrumentConfig describes one tracked instrument. A zero SeedPrice asks
// the quote source for one (falling back to a synthetic price when the
// source is unavailable); QuoteSymbol overrides the symbol sent upstream.
type InstrumentConfig struct {
	Symbol      string  `json:"symbol" yaml:"symbol"`
	Name        string  `json:"name" yaml:"name"`
	Sector      string  `json:"sector" yaml:"sector"`
	SeedPrice   float64 `json:"seedPrice,omitempty" yaml:"seedPrice,omitempty"`
	Volatility  float64 `json:"volatility,omitempty" yaml:"volatility,omitempty"`
	QuoteSymbol string  `json:"quoteSymbol,omitempty" yaml:"quoteSymbol,omitempty"`
}

type Config struct {
	StartingCash float64 `json:"startingCash" yaml:"startingCash"`

	// Seed pins the random source; 0 seeds from the wall clock.
	Seed int64 `json:"seed,omitempty" yaml:"seed,omitempty"`

	// HistoryDays of synthetic price history are backfilled at bootstrap.
	HistoryDays int `json:"historyDays" yaml:"historyDays"`

	TickInterval  types.Duration `json:"tickInterval" yaml:"tickInterval"`
	NewsInterval  types.Duration `json:"newsInterval" yaml:"newsInterval"`
	EventInterval types.Duration `json:"eventInterval" yaml:"eventInterval"`

	DecayRate       float64 `json:"decayRate" yaml:"decayRate"`
	SentimentWeight float64 `json:"sentimentWeight" yaml:"sentimentWeight"`

	// DailyCloseSchedule is a cron expression rolling open/close prices.
	DailyCloseSchedule string `json:"dailyCloseSchedule,omitempty" yaml:"dailyCloseSchedule,omitempty"`

	// MetricsAddr enables the prometheus listener when non-empty.
	MetricsAddr string `json:"metricsAddr,omitempty" yaml:"metricsAddr,omitempty"`

	News news.Config `json:"news" yaml:"news"`

	Instruments []InstrumentConfig `json:"instruments" yaml:"instruments"`
}

func Default() *Config {
	return &Config{
		StartingCash:    DefaultStartingCash,
		HistoryDays:     DefaultHistoryDays,
		TickInterval:    types.Duration(5 * time.Second),
		NewsInterval:    types.Duration(20 * time.Second),
		EventInterval:   types.Duration(10 * time.Second),
		DecayRate:       sentiment.DefaultDecayRate,
		SentimentWeight: 0.03,
		News:            news.DefaultConfig(),
	}
}

// Load reads and validates a yaml config file, filling defaults for any
// omitted field.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "can not load config file %s", path)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "can not parse config")
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.StartingCash < 0 {
		return errors.Errorf("startingCash can not be negative: %f", c.StartingCash)
	}

	if c.DecayRate < 0 || c.DecayRate > 1 {
		return errors.Errorf("decayRate must be within [0, 1]: %f", c.DecayRate)
	}

	if c.SentimentWeight < 0 || c.SentimentWeight > 0.05 {
		return errors.Errorf("sentimentWeight must be within [0, 0.05]: %f", c.SentimentWeight)
	}

	if c.News.EventProbability < 0 || c.News.EventProbability > 1 {
		return errors.Errorf("news.eventProbability must be within [0, 1]: %f", c.News.EventProbability)
	}

	seen := make(map[string]struct{})
	for _, inst := range c.Instruments {
		if inst.Symbol == "" {
			return errors.New("instrument symbol can not be empty")
		}
		if _, ok := seen[inst.Symbol]; ok {
			return errors.Errorf("duplicated instrument symbol: %s", inst.Symbol)
		}
		seen[inst.Symbol] = struct{}{}
	}

	return nil
}

// Package sentiment tracks the per-instrument bias scalar that nudges price
// drift. Values are clamped to [-1, 1] and decay toward neutral so that
// event impact is transient.
package sentiment

// DefaultDecayRate is the fraction pulled toward zero per tick.
const DefaultDecayRate = 0.05

type Store struct {
	values map[string]float64
}

func NewStore() *Store {
	return &Store{
		values: make(map[string]float64),
	}
}

// Sentiment returns the current value for symbol. Unknown symbols read as
// neutral.
func (s *Store) Sentiment(symbol string) float64 {
	return s.values[symbol]
}

// ApplyDelta adds delta to the symbol's sentiment, saturating at the
// [-1, 1] bounds.
func (s *Store) ApplyDelta(symbol string, delta float64) float64 {
	v := clamp(s.values[symbol] + delta)
	s.values[symbol] = v
	return v
}

// Set overwrites the symbol's sentiment, clamped. Used when restoring a
// snapshot.
func (s *Store) Set(symbol string, value float64) {
	s.values[symbol] = clamp(value)
}

// Decay pulls the symbol's sentiment toward zero by the given fractional
// rate. A rate of 1 resets it to neutral.
func (s *Store) Decay(symbol string, rate float64) float64 {
	if rate < 0 {
		rate = 0
	} else if rate > 1 {
		rate = 1
	}

	v := clamp(s.values[symbol] * (1.0 - rate))
	s.values[symbol] = v
	return v
}

// DecayAll applies Decay to every tracked symbol.
func (s *Store) DecayAll(rate float64) {
	for symbol := range s.values {
		s.Decay(symbol, rate)
	}
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < -1.0 {
		return -1.0
	}
	return v
}

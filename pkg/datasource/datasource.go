// Package datasource seeds instruments from a live quote source, with a
// synthetic fallback so the simulation stays usable offline.
package datasource

import (
	"context"

	"github.com/pkg/errors"
)

// ErrUnavailable marks a quote source failure. Callers treat it as a signal
// to fall back to synthetic seeding, never as a hard failure.
var ErrUnavailable = errors.New("quote source unavailable")

// QuoteService answers the last traded price for a symbol.
type QuoteService interface {
	QueryLastPrice(ctx context.Context, symbol string) (float64, error)
}

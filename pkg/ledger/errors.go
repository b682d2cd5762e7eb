package ledger

import (
	"github.com/pkg/errors"
)

// Trade rejections are expected, user-facing outcomes, not system failures.
// They are returned as values and matched with errors.Is; the wrapped
// message carries the human-readable reason.
var (
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidPrice       = errors.New("price must be positive")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoPosition         = errors.New("no position")
	ErrInsufficientShares = errors.New("insufficient shares")
)

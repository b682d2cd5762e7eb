package types

import (
	"time"
)

// NewsHistoryLimit caps the retained news items, most-recent-first.
const NewsHistoryLimit = 50

type NewsScope string

const (
	NewsScopeInstrument NewsScope = "instrument"
	NewsScopeSector     NewsScope = "sector"
	NewsScopeMarket     NewsScope = "market"
)

// NewsItem is an immutable record of one routine news firing or one market
// event. IsEvent distinguishes the rarer, larger-magnitude event impacts
// from routine news.
type NewsItem struct {
	ID       string    `json:"id"`
	Headline string    `json:"headline"`
	Scope    NewsScope `json:"scope"`

	// TargetRef is the affected symbol for instrument scope, the sector
	// name for sector scope, and empty for market scope.
	TargetRef string `json:"targetRef,omitempty"`

	Magnitude float64   `json:"magnitude"`
	IsEvent   bool      `json:"isEvent"`
	CreatedAt time.Time `json:"createdAt"`
}

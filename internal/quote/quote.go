// Package quote provides lookups of current market prices for security
// symbols from an external quote feed, with optional Redis caching.
package quote

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Quote is a point-in-time price and display name for a security symbol.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
}

// Gateway looks up a current quote for a symbol.
//
// Lookup returns errors.ErrNoSuchSecurity when the feed does not know the
// symbol and errors.ErrQuoteUnavailable when the feed cannot be reached or
// returns an unusable response. There is no cached/stale-price fallback:
// callers must treat a failed lookup for a held position as fatal for the
// whole request.
type Gateway interface {
	Lookup(ctx context.Context, symbol string) (*Quote, error)
}

// NormalizeSymbol canonicalizes a user-supplied symbol for lookups and
// storage: trimmed and upper-cased.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

package testutil

import (
	"context"
	"sync"

	apperrors "papertrade/internal/errors"
	"papertrade/internal/quote"

	"github.com/shopspring/decimal"
)

// StaticGateway is an in-memory quote.Gateway for tests. Symbols not in the
// map produce ErrNoSuchSecurity; setting Err fails every lookup with it.
type StaticGateway struct {
	mu     sync.RWMutex
	quotes map[string]quote.Quote

	// Err, when set, is returned by every Lookup.
	Err error
}

// NewStaticGateway creates an empty StaticGateway.
func NewStaticGateway() *StaticGateway {
	return &StaticGateway{quotes: make(map[string]quote.Quote)}
}

// SetQuote sets or replaces the quote for a symbol.
func (g *StaticGateway) SetQuote(symbol, name string, price decimal.Decimal) {
	g.mu.Lock()
	defer g.mu.Unlock()
	symbol = quote.NormalizeSymbol(symbol)
	g.quotes[symbol] = quote.Quote{Symbol: symbol, Name: name, Price: price}
}

// Lookup implements quote.Gateway.
func (g *StaticGateway) Lookup(_ context.Context, symbol string) (*quote.Quote, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.Err != nil {
		return nil, g.Err
	}
	q, ok := g.quotes[quote.NormalizeSymbol(symbol)]
	if !ok {
		return nil, apperrors.ErrNoSuchSecurity
	}
	return &q, nil
}

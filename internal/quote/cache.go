package quote

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"

	"papertrade/internal/logger"
)

// CachedGateway is a read-through Redis cache in front of another Gateway.
// Cache failures are logged and degrade to a direct lookup; only the
// underlying gateway can fail a request. Negative results (unknown symbol,
// feed outage) are never cached.
type CachedGateway struct {
	next Gateway
	rdb  *redis.Client
	ttl  time.Duration
}

// NewCachedGateway wraps next with a Redis quote cache using the given TTL.
func NewCachedGateway(next Gateway, rdb *redis.Client, ttl time.Duration) *CachedGateway {
	return &CachedGateway{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(symbol string) string {
	return "quote:" + symbol
}

// Lookup returns a cached quote when fresh, otherwise fetches from the
// underlying gateway and caches the result.
func (g *CachedGateway) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	symbol = NormalizeSymbol(symbol)

	cached, err := g.rdb.Get(ctx, cacheKey(symbol)).Result()
	if err == nil {
		var q Quote
		if jsonErr := json.Unmarshal([]byte(cached), &q); jsonErr == nil {
			return &q, nil
		}
		// Corrupt entry: drop it and fall through to a fresh lookup.
		g.rdb.Del(ctx, cacheKey(symbol))
	} else if err != redis.Nil {
		logger.Get().Warnw("quote cache read failed", "symbol", symbol, "error", err)
	}

	q, err := g.next.Lookup(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(q); jsonErr == nil {
		if setErr := g.rdb.Set(ctx, cacheKey(symbol), data, g.ttl).Err(); setErr != nil {
			logger.Get().Warnw("quote cache write failed", "symbol", symbol, "error", setErr)
		}
	}

	return q, nil
}

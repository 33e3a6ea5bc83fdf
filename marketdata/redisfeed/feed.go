// Package redisfeed reads live market quotes out of Redis. Quotes are
// plain string floats under "quote:<scheme>:<id>" keys, published by the
// upstream feed handler.
package redisfeed

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/meenmo/riskcore/marketdata"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Feed is a thin adapter from Redis to marketdata sources.
type Feed struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection.
func New(ctx context.Context, cfg Config) (*Feed, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redisfeed.New: ping %s: %w", cfg.Addr, err)
	}
	return &Feed{client: client}, nil
}

// Close releases the client.
func (f *Feed) Close() error {
	return f.client.Close()
}

func quoteKey(key marketdata.ObservableKey) string {
	return "quote:" + key.Scheme + ":" + key.ID
}

// Fetch reads the given quotes in one round trip and snapshots them into
// a MapSource. A key with no value in Redis yields KeyNotFoundError, so
// curve building fails fast instead of pricing on stale zeroes.
func (f *Feed) Fetch(ctx context.Context, keys []marketdata.ObservableKey) (*marketdata.MapSource, error) {
	if len(keys) == 0 {
		return marketdata.NewMapSource(nil), nil
	}
	redisKeys := make([]string, len(keys))
	for i, k := range keys {
		redisKeys[i] = quoteKey(k)
	}
	vals, err := f.client.MGet(ctx, redisKeys...).Result()
	if err != nil {
		return nil, fmt.Errorf("Fetch: mget: %w", err)
	}
	quotes, err := decodeQuotes(keys, vals)
	if err != nil {
		return nil, fmt.Errorf("Fetch: %w", err)
	}
	return marketdata.NewMapSource(quotes), nil
}

// decodeQuotes pairs MGET replies with their keys. A nil reply is a
// missing quote and surfaces as KeyNotFoundError.
func decodeQuotes(keys []marketdata.ObservableKey, vals []interface{}) (map[marketdata.ObservableKey]float64, error) {
	if len(vals) != len(keys) {
		return nil, fmt.Errorf("got %d replies for %d keys", len(vals), len(keys))
	}
	quotes := make(map[marketdata.ObservableKey]float64, len(keys))
	for i, v := range vals {
		if v == nil {
			return nil, &marketdata.KeyNotFoundError{Key: keys[i]}
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected value type %T", keys[i], v)
		}
		quote, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %q: %w", keys[i], s, err)
		}
		quotes[keys[i]] = quote
	}
	return quotes, nil
}

// Publish writes a quote for downstream consumers.
func (f *Feed) Publish(ctx context.Context, key marketdata.ObservableKey, value float64) error {
	if err := f.client.Set(ctx, quoteKey(key), strconv.FormatFloat(value, 'g', -1, 64), 0).Err(); err != nil {
		return fmt.Errorf("Publish: %s: %w", key, err)
	}
	return nil
}

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// QuoteCache caches raw market-data payloads per ticker so repeated fetches
// within a session do not hammer the provider. DB (primary) with file-system
// fallback; entries expire after TTL.
//
// Schema (when the DB is configured):
//
//	CREATE TABLE market_quotes (
//	    ticker     TEXT PRIMARY KEY,
//	    payload    JSONB NOT NULL,
//	    fetched_at TIMESTAMPTZ NOT NULL
//	);
type QuoteCache struct {
	pool    *pgxpool.Pool
	fileDir string
	ttl     time.Duration
}

type quoteEntry struct {
	Ticker    string          `json:"ticker"`
	Payload   json.RawMessage `json:"payload"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// NewQuoteCache creates a cache. A nil pool falls back to files under dir;
// an empty dir defaults to .cache/marketdata.
func NewQuoteCache(pool *pgxpool.Pool, dir string, ttl time.Duration) *QuoteCache {
	if pool == nil && dir == "" {
		dir = filepath.Join(".cache", "marketdata")
	}
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("[WARNING] quote cache dir: %v\n", err)
		}
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &QuoteCache{pool: pool, fileDir: dir, ttl: ttl}
}

// Get returns the cached payload for ticker, or nil on a miss or an expired
// entry. Cache errors are treated as misses; the provider is the fallback.
func (c *QuoteCache) Get(ctx context.Context, ticker string) []byte {
	ticker = normalizeTicker(ticker)

	if c.pool != nil {
		var payload []byte
		var fetchedAt time.Time
		err := c.pool.QueryRow(ctx,
			`SELECT payload, fetched_at FROM market_quotes WHERE ticker = $1`,
			ticker).Scan(&payload, &fetchedAt)
		if err != nil {
			return nil
		}
		if time.Since(fetchedAt) > c.ttl {
			return nil
		}
		return payload
	}

	if c.fileDir != "" {
		data, err := os.ReadFile(c.filePath(ticker))
		if err != nil {
			return nil
		}
		var entry quoteEntry
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		if time.Since(entry.FetchedAt) > c.ttl {
			return nil
		}
		return entry.Payload
	}

	return nil
}

// Set stores the payload for ticker. Failures are logged, not propagated:
// a broken cache must never fail a fetch.
func (c *QuoteCache) Set(ctx context.Context, ticker string, payload []byte) {
	ticker = normalizeTicker(ticker)

	if c.pool != nil {
		_, err := c.pool.Exec(ctx, `
			INSERT INTO market_quotes (ticker, payload, fetched_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (ticker) DO UPDATE
			SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at
		`, ticker, payload, time.Now())
		if err != nil {
			fmt.Printf("[WARNING] quote cache db write failed: %v\n", err)
		}
		return
	}

	if c.fileDir != "" {
		entry := quoteEntry{Ticker: ticker, Payload: payload, FetchedAt: time.Now()}
		data, err := json.Marshal(entry)
		if err != nil {
			return
		}
		if err := os.WriteFile(c.filePath(ticker), data, 0644); err != nil {
			fmt.Printf("[WARNING] quote cache file write failed: %v\n", err)
		}
	}
}

func (c *QuoteCache) filePath(ticker string) string {
	return filepath.Join(c.fileDir, ticker+".json")
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

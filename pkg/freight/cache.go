package freight

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// Cache defaults. Weight bucketing keeps key cardinality low: carrier
// pricing is a step function of weight, so 100 g granularity rarely changes
// the answer.
const (
	DefaultTTL             = time.Hour
	DefaultWeightBucket    = 100
	DefaultMaxEntries      = 1000
	DefaultCleanupInterval = 30 * time.Minute

	// evictFraction is the share of entries removed, oldest first, when the
	// store is still full after purging expired entries.
	evictFraction = 0.1
)

type cacheEntry struct {
	result    *QuoteResult
	createdAt time.Time
	ttl       time.Duration
}

func (e *cacheEntry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// CacheStats is a diagnostic snapshot of the cache.
type CacheStats struct {
	Total   int `json:"totalEntries"`
	Valid   int `json:"validEntries"`
	Expired int `json:"expiredEntries"`
}

// QuoteCacheConfig holds cache tuning knobs. Zero values fall back to the
// defaults above.
type QuoteCacheConfig struct {
	TTL             time.Duration
	WeightBucket    int
	MaxEntries      int
	CleanupInterval time.Duration
}

// QuoteCache is an in-memory, time-and-size-bounded store of quote results.
// It never returns an error: a miss, a stale entry, and a full store all
// degrade to "treat as miss" internally. Safe for concurrent use.
type QuoteCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry

	ttl          time.Duration
	weightBucket int
	maxEntries   int

	janitor *time.Ticker
	done    chan struct{}
	once    sync.Once
}

// NewQuoteCache creates a cache and starts its periodic cleanup sweep.
// Callers own the lifecycle and must call Stop on shutdown.
func NewQuoteCache(cfg QuoteCacheConfig) *QuoteCache {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.WeightBucket <= 0 {
		cfg.WeightBucket = DefaultWeightBucket
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = DefaultCleanupInterval
	}

	c := &QuoteCache{
		entries:      make(map[string]*cacheEntry),
		ttl:          cfg.TTL,
		weightBucket: cfg.WeightBucket,
		maxEntries:   cfg.MaxEntries,
		janitor:      time.NewTicker(cfg.CleanupInterval),
		done:         make(chan struct{}),
	}

	go c.runJanitor()
	return c
}

// Stop cancels the background cleanup sweep. Idempotent.
func (c *QuoteCache) Stop() {
	c.once.Do(func() {
		c.janitor.Stop()
		close(c.done)
	})
}

func (c *QuoteCache) runJanitor() {
	for {
		select {
		case <-c.done:
			return
		case <-c.janitor.C:
			c.CleanupExpired()
		}
	}
}

// CacheKey builds the composite key for a query: postal code stripped to
// digits plus the weight rounded up to the nearest bucket, e.g.
// "01310100-500g". Nearby weights share an entry.
func (c *QuoteCache) CacheKey(postalCode string, weightGrams int) string {
	digits := stripNonDigits(postalCode)
	bucketed := ((weightGrams + c.weightBucket - 1) / c.weightBucket) * c.weightBucket
	return fmt.Sprintf("%s-%dg", digits, bucketed)
}

// Get returns the cached result for a query, or nil on miss. Reading an
// entry past its TTL deletes it and counts as a miss.
func (c *QuoteCache) Get(postalCode string, weightGrams int) *QuoteResult {
	key := c.CacheKey(postalCode, weightGrams)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if entry.expired(time.Now()) {
		delete(c.entries, key)
		return nil
	}
	return entry.result
}

// Set stores a result under the query's key with the default TTL.
func (c *QuoteCache) Set(postalCode string, weightGrams int, result *QuoteResult) {
	c.SetTTL(postalCode, weightGrams, result, c.ttl)
}

// SetTTL stores a result with an explicit TTL. At capacity, expired entries
// are purged first; if the store is still full, the oldest tenth of entries
// is evicted by insertion time. Insertion overwrites any previous value.
func (c *QuoteCache) SetTTL(postalCode string, weightGrams int, result *QuoteResult, ttl time.Duration) {
	if result == nil || ttl <= 0 {
		return
	}
	key := c.CacheKey(postalCode, weightGrams)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.purgeExpiredLocked(time.Now())
		if len(c.entries) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}

	c.entries[key] = &cacheEntry{
		result:    result,
		createdAt: time.Now(),
		ttl:       ttl,
	}
}

// CleanupExpired removes every entry past its TTL. Runs on the janitor
// interval and before forced eviction; safe to call at any time.
func (c *QuoteCache) CleanupExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.purgeExpiredLocked(time.Now())
}

// Clear removes every entry.
func (c *QuoteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// Stats returns a diagnostic snapshot.
func (c *QuoteCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	stats := CacheStats{Total: len(c.entries)}
	for _, entry := range c.entries {
		if entry.expired(now) {
			stats.Expired++
		} else {
			stats.Valid++
		}
	}
	return stats
}

func (c *QuoteCache) purgeExpiredLocked(now time.Time) {
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

// evictOldestLocked removes the oldest ~10% of entries by insertion time,
// at least one.
func (c *QuoteCache) evictOldestLocked() {
	n := int(float64(len(c.entries)) * evictFraction)
	if n < 1 {
		n = 1
	}

	type keyed struct {
		key       string
		createdAt time.Time
	}
	all := make([]keyed, 0, len(c.entries))
	for key, entry := range c.entries {
		all = append(all, keyed{key, entry.createdAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})

	for i := 0; i < n && i < len(all); i++ {
		delete(c.entries, all[i].key)
	}
}

func stripNonDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

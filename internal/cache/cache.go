// Package cache keeps computed statistics per user so dashboard reloads do not
// hit the database. Each user has a generation; a write bumps it, which makes
// every entry stored under the old generation unreachable.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
)

// DefaultTTL bounds how long an entry can outlive its generation in memory.
const DefaultTTL = 10 * time.Minute

type StatsCache struct {
	cache *ristretto.Cache
	ttl   time.Duration

	mu   sync.Mutex
	gens map[int64]uint64
}

func New(maxCost int64) (*StatsCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost * 10, // ~10x the number of items we expect to hold
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &StatsCache{
		cache: c,
		ttl:   DefaultTTL,
		gens:  make(map[int64]uint64),
	}, nil
}

func cacheKey(userID int64, gen uint64, key string) string {
	return fmt.Sprintf("%d|%d|%s", userID, gen, key)
}

// Generation returns the user's current generation. Read it before loading
// the value that will be passed to Set.
func (s *StatsCache) Generation(userID int64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gens[userID]
}

func (s *StatsCache) Get(userID int64, key string) (any, bool) {
	return s.cache.Get(cacheKey(userID, s.Generation(userID), key))
}

// Set stores v with cost 1 unless the user was invalidated after gen was
// read. Ristretto may also drop the write under contention.
func (s *StatsCache) Set(userID int64, gen uint64, key string, v any) bool {
	if s.Generation(userID) != gen {
		return false
	}
	return s.cache.SetWithTTL(cacheKey(userID, gen, key), v, 1, s.ttl)
}

// InvalidateUser makes every entry stored for the user unreachable. Orphaned
// entries are evicted by ristretto or expire after the TTL.
func (s *StatsCache) InvalidateUser(userID int64) {
	s.mu.Lock()
	s.gens[userID]++
	s.mu.Unlock()
}

// Wait blocks until buffered writes are applied.
func (s *StatsCache) Wait() {
	s.cache.Wait()
}

func (s *StatsCache) Close() {
	s.cache.Close()
}

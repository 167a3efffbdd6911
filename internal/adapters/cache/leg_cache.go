package cache

import (
	"agv-route-service/internal/domain"
	"agv-route-service/internal/platform/metrics"
	"agv-route-service/internal/ports"
	"errors"
	"fmt"
	"sync"
)

type legEntry struct {
	path     domain.Path
	distance float64
	err      error
}

// LegCache memoises origin->destination legs of an underlying PathFinder.
// The graph is immutable, so entries never expire. Unreachable pairs are
// cached too. Safe for concurrent use.
type LegCache struct {
	next ports.PathFinder

	mu   sync.RWMutex
	legs map[string]legEntry
}

func NewLegCache(next ports.PathFinder) *LegCache {
	return &LegCache{next: next, legs: map[string]legEntry{}}
}

func (c *LegCache) ShortestPath(origin, destination string) (domain.Path, float64, error) {
	if c.next == nil {
		return nil, 0, errors.New("leg cache: path finder is nil")
	}

	key := origin + "|" + destination

	c.mu.RLock()
	e, ok := c.legs[key]
	c.mu.RUnlock()

	if ok {
		metrics.LegCacheLookups.WithLabelValues("hit").Inc()
		return e.clone()
	}
	metrics.LegCacheLookups.WithLabelValues("miss").Inc()

	path, dist, err := c.next.ShortestPath(origin, destination)
	if err != nil && !errors.Is(err, domain.ErrNoPathFound) {
		// Only graph answers are cached; anything else is the caller's problem.
		return nil, 0, fmt.Errorf("leg cache: %w", err)
	}

	e = legEntry{path: path, distance: dist, err: err}
	c.mu.Lock()
	c.legs[key] = e
	c.mu.Unlock()

	return e.clone()
}

// Len reports the number of cached legs.
func (c *LegCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.legs)
}

func (e legEntry) clone() (domain.Path, float64, error) {
	if e.err != nil {
		return nil, 0, e.err
	}
	return append(domain.Path(nil), e.path...), e.distance, nil
}

package cache

import (
	"agv-route-service/internal/adapters/legs"
	"agv-route-service/internal/domain"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegCacheMemoisesLegs(t *testing.T) {
	inner := legs.NewStaticPathFinder([]legs.Leg{
		{From: "A", To: "B", Path: domain.Path{"A", "X", "B"}, Distance: 12},
	})
	c := NewLegCache(inner)

	for range 3 {
		path, d, err := c.ShortestPath("A", "B")
		require.NoError(t, err)
		assert.Equal(t, domain.Path{"A", "X", "B"}, path)
		assert.Equal(t, 12.0, d)
	}

	assert.Equal(t, 1, inner.Calls("A", "B"))
	assert.Equal(t, 1, c.Len())
}

func TestLegCacheRemembersUnreachablePairs(t *testing.T) {
	inner := legs.NewStaticPathFinder(nil)
	c := NewLegCache(inner)

	_, _, err := c.ShortestPath("A", "B")
	require.ErrorIs(t, err, domain.ErrNoPathFound)
	_, _, err = c.ShortestPath("A", "B")
	require.ErrorIs(t, err, domain.ErrNoPathFound)

	assert.Equal(t, 1, inner.Calls("A", "B"))
}

func TestLegCacheReturnsCopies(t *testing.T) {
	inner := legs.NewStaticPathFinder([]legs.Leg{{From: "A", To: "B", Distance: 1}})
	c := NewLegCache(inner)

	path, _, err := c.ShortestPath("A", "B")
	require.NoError(t, err)
	path[0] = "Z"

	again, _, err := c.ShortestPath("A", "B")
	require.NoError(t, err)
	assert.Equal(t, domain.Path{"A", "B"}, again)
}

func TestLegCacheConcurrentLookups(t *testing.T) {
	inner := legs.NewStaticPathFinder([]legs.Leg{{From: "A", To: "B", Distance: 3}})
	c := NewLegCache(inner)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, d, err := c.ShortestPath("A", "B")
			assert.NoError(t, err)
			assert.Equal(t, 3.0, d)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, c.Len())
}

package services

import (
	"agv-route-service/internal/domain"
	"agv-route-service/internal/ports"
	"errors"
	"fmt"
	"math"
)

// NearestNeighborOrder builds a visit order greedily: after the fixed
// prefix it always drives to the closest remaining station by shortest-path
// distance. Ties go to the smaller id so the order is deterministic.
//
// Stations that cannot be reached from the current position are skipped for
// that step; if none of the remaining ones can be reached the order fails
// with domain.ErrNoPathFound.
func NearestNeighborOrder(finder ports.PathFinder, depot string, prefix, free []string) ([]string, error) {
	order := make([]string, 0, len(prefix)+len(free))
	order = append(order, prefix...)

	current := depot
	if len(prefix) > 0 {
		current = prefix[len(prefix)-1]
	}

	remaining := make(map[string]struct{}, len(free))
	for _, s := range free {
		remaining[s] = struct{}{}
	}

	for len(remaining) > 0 {
		var best string
		bestDist := math.Inf(1)

		for s := range remaining {
			_, d, err := finder.ShortestPath(current, s)
			if errors.Is(err, domain.ErrNoPathFound) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("nearest neighbor: %s->%s: %w", current, s, err)
			}
			if d < bestDist || (d == bestDist && s < best) {
				bestDist = d
				best = s
			}
		}

		if best == "" {
			return nil, fmt.Errorf("nearest neighbor: no remaining station reachable from %s: %w", current, domain.ErrNoPathFound)
		}

		order = append(order, best)
		delete(remaining, best)
		current = best
	}

	return order, nil
}

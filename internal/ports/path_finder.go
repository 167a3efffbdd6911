package ports

import "agv-route-service/internal/domain"

// Contract for computing the cheapest directed walk between two waypoints.
type PathFinder interface {
	// Return the path from origin to destination and its length.
	// Fails with domain.ErrNoPathFound when destination is unreachable.
	ShortestPath(origin string, destination string) (domain.Path, float64, error)
}

package services

import (
	"agv-route-service/internal/domain"
	"agv-route-service/internal/ports"
	"fmt"
)

// AssembleTour stitches shortest-path legs between consecutive stops into one
// continuous walk and sums their lengths.
//
// The first waypoint of every leg after the first repeats the previous leg's
// last waypoint and is dropped. One unreachable leg makes the whole tour
// infeasible: the leg error is returned and nothing is assembled.
func AssembleTour(finder ports.PathFinder, stops []string) (domain.Path, float64, error) {
	if len(stops) < 2 {
		return nil, 0, fmt.Errorf("assemble tour: need at least 2 stops, got %d: %w", len(stops), domain.ErrInvalidStopSequence)
	}

	path := make(domain.Path, 0, len(stops)*4)
	total := 0.0

	for i := 0; i < len(stops)-1; i++ {
		leg, dist, err := finder.ShortestPath(stops[i], stops[i+1])
		if err != nil {
			return nil, 0, fmt.Errorf("assemble tour: leg %d: %w", i+1, err)
		}
		if i > 0 && len(leg) > 0 {
			leg = leg[1:]
		}
		path = append(path, leg...)
		total += dist
	}

	return path, total, nil
}

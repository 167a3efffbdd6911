package domain

import (
	"fmt"
	"strings"
)

// Path is an ordered walk through the graph. Adjacent ids are joined by a
// directed edge.
type Path []string

// Length sums the Euclidean distances between consecutive waypoints.
func (p Path) Length(g *Graph) (float64, error) {
	total := 0.0
	for i := 1; i < len(p); i++ {
		d, err := g.Distance(p[i-1], p[i])
		if err != nil {
			return 0, fmt.Errorf("path length: leg %d: %w", i, err)
		}
		total += d
	}
	return total, nil
}

// Valid reports whether every consecutive pair is a directed edge of g.
func (p Path) Valid(g *Graph) bool {
	for i := 1; i < len(p); i++ {
		ok := false
		for _, next := range g.Successors(p[i-1]) {
			if next == p[i] {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

func (p Path) String() string { return strings.Join(p, " → ") }

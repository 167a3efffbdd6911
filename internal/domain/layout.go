package domain

import (
	"fmt"
	"strings"
)

// Layout is a named operating graph together with its depot, the waypoint
// every tour starts from and returns to.
type Layout struct {
	Name  string
	Depot string
	Graph *Graph
}

func NewLayout(name, depot string, g *Graph) (*Layout, error) {
	depot = strings.TrimSpace(depot)
	if g == nil {
		return nil, fmt.Errorf("new layout %q: graph is nil: %w", name, ErrInvalidLayout)
	}
	if !g.Has(depot) {
		return nil, fmt.Errorf("new layout %q: depot %q: %w", name, depot, ErrUnknownWaypoint)
	}
	// Without a way back to the depot no tour can ever close.
	if !g.Reachable(depot, depot) {
		return nil, fmt.Errorf("new layout %q: depot %q has no return path: %w", name, depot, ErrInvalidLayout)
	}

	return &Layout{Name: name, Depot: depot, Graph: g}, nil
}

// Stations lists every waypoint except the depot, in declaration order.
func (l *Layout) Stations() []string {
	out := make([]string, 0, l.Graph.Len())
	for _, wp := range l.Graph.Waypoints() {
		if wp.ID != l.Depot {
			out = append(out, wp.ID)
		}
	}
	return out
}

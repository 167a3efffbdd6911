package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Graph is the static directed waypoint graph the AGV drives on.
// There is no implicit reverse edge: the vehicle cannot drive backwards.
// A Graph is read-only after NewGraph returns and is safe for concurrent use.
type Graph struct {
	order      []string
	waypoints  map[string]Waypoint
	successors map[string][]string
	edges      int
}

// NewGraph builds a Graph from a waypoint table and a successor table.
//
// Every id referenced as a source or a successor must be a known waypoint.
// Cycles (including the loop back to the depot) are expected and allowed.
// Successor order is kept as declared so traversal is deterministic.
func NewGraph(waypoints []Waypoint, successors map[string][]string) (*Graph, error) {
	g := &Graph{
		order:      make([]string, 0, len(waypoints)),
		waypoints:  make(map[string]Waypoint, len(waypoints)),
		successors: make(map[string][]string, len(successors)),
	}

	for i, wp := range waypoints {
		id := strings.TrimSpace(wp.ID)
		if id == "" {
			return nil, fmt.Errorf("new graph: waypoint at index %d: empty id: %w", i, ErrInvalidLayout)
		}
		if _, ok := g.waypoints[id]; ok {
			return nil, fmt.Errorf("new graph: duplicate waypoint %q: %w", id, ErrInvalidLayout)
		}
		g.order = append(g.order, id)
		g.waypoints[id] = Waypoint{ID: id, Position: wp.Position}
	}

	// Walk sources in declaration order so validation errors are stable.
	sources := make([]string, 0, len(successors))
	for from := range successors {
		sources = append(sources, from)
	}
	slices.SortFunc(sources, func(a, b string) int { return g.rank(a) - g.rank(b) })

	for _, from := range sources {
		if _, ok := g.waypoints[from]; !ok {
			return nil, fmt.Errorf("new graph: edge source %q: %w", from, ErrUnknownWaypoint)
		}

		next := make([]string, 0, len(successors[from]))
		for _, to := range successors[from] {
			if _, ok := g.waypoints[to]; !ok {
				return nil, fmt.Errorf("new graph: successor %q of %q: %w", to, from, ErrUnknownWaypoint)
			}
			if slices.Contains(next, to) {
				continue
			}
			next = append(next, to)
		}
		g.successors[from] = next
		g.edges += len(next)
	}

	return g, nil
}

// rank orders unknown ids after every known one.
func (g *Graph) rank(id string) int {
	if i := slices.Index(g.order, id); i >= 0 {
		return i
	}
	return len(g.order)
}

// Successors returns the ids reachable from id over one directed edge.
// Unknown ids and terminal waypoints both yield an empty slice.
func (g *Graph) Successors(id string) []string {
	return slices.Clone(g.successors[id])
}

// Position returns the fixed position of a waypoint.
func (g *Graph) Position(id string) (Position, error) {
	wp, ok := g.waypoints[id]
	if !ok {
		return Position{}, fmt.Errorf("position: waypoint %q: %w", id, ErrUnknownWaypoint)
	}
	return wp.Position, nil
}

func (g *Graph) Has(id string) bool {
	_, ok := g.waypoints[id]
	return ok
}

// Waypoints returns every waypoint in declaration order.
func (g *Graph) Waypoints() []Waypoint {
	out := make([]Waypoint, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.waypoints[id])
	}
	return out
}

func (g *Graph) Len() int { return len(g.order) }

func (g *Graph) EdgeCount() int { return g.edges }

// Distance returns the Euclidean distance between two waypoints.
// It does not require an edge between them.
func (g *Graph) Distance(a, b string) (float64, error) {
	pa, err := g.Position(a)
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	pb, err := g.Position(b)
	if err != nil {
		return 0, fmt.Errorf("distance: %w", err)
	}
	return pa.DistanceTo(pb), nil
}

// Reachable reports whether a directed walk of at least one edge leads from
// one waypoint to the other. Reachable(x, x) is true only when x lies on a cycle.
func (g *Graph) Reachable(from, to string) bool {
	seen := map[string]bool{}
	queue := slices.Clone(g.successors[from])
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		queue = append(queue, g.successors[cur]...)
	}
	return false
}

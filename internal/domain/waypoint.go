package domain

import "math"

// Position is a fixed 2D point on the AGV floor plan.
type Position struct {
	X float64
	Y float64
}

// Euclidean distance between two positions.
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Waypoint is a named point of the operating graph. Immutable once constructed.
type Waypoint struct {
	ID       string
	Position Position
}

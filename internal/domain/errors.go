package domain

import "errors"

var (
	ErrUnknownWaypoint     = errors.New("unknown waypoint")
	ErrNoPathFound         = errors.New("no path found")
	ErrInvalidPriority     = errors.New("invalid priority")
	ErrInvalidSpeed        = errors.New("invalid speed")
	ErrEmptySelection      = errors.New("empty selection")
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrNoFeasibleTour      = errors.New("no feasible tour")
	ErrInvalidStopSequence = errors.New("invalid stop sequence")
	ErrInvalidParameter    = errors.New("invalid parameter")
	ErrInvalidLayout       = errors.New("invalid layout")
)

// IsValidationError reports whether err was caused by bad caller input
// rather than by the shape of the graph.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrUnknownWaypoint,
		ErrInvalidPriority,
		ErrInvalidSpeed,
		ErrEmptySelection,
		ErrInvalidSelection,
		ErrInvalidStopSequence,
		ErrInvalidParameter,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

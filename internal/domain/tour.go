package domain

// TourCandidate is one closed tour produced by the search.
// It is transient planning data: created per search and never persisted.
type TourCandidate struct {
	// Stations in visit order, depot excluded.
	VisitOrder []string
	// Full depot-to-depot walk with the shortest-path legs expanded.
	Path          Path
	Distance      float64
	TravelMinutes float64
	// TravelMinutes plus the dwell time of every visited station.
	TotalMinutes float64
}

// StopSequence returns the visit order wrapped by the depot on both ends.
func (t TourCandidate) StopSequence(depot string) Path {
	seq := make(Path, 0, len(t.VisitOrder)+2)
	seq = append(seq, depot)
	seq = append(seq, t.VisitOrder...)
	return append(seq, depot)
}

package legs

import (
	"agv-route-service/internal/domain"
	"fmt"
	"sync"
)

// Leg is one precomputed origin->destination walk.
type Leg struct {
	From, To string
	Path     domain.Path
	Distance float64
}

// StaticPathFinder answers ShortestPath from a fixed leg table.
// Pairs missing from the table are unreachable.
type StaticPathFinder struct {
	m map[string]Leg

	mu    sync.Mutex
	calls map[string]int
}

func NewStaticPathFinder(legs []Leg) *StaticPathFinder {
	m := make(map[string]Leg, len(legs))
	for _, l := range legs {
		if len(l.Path) == 0 {
			l.Path = domain.Path{l.From, l.To}
		}
		m[l.From+"|"+l.To] = l
	}
	return &StaticPathFinder{m: m, calls: map[string]int{}}
}

func (p *StaticPathFinder) ShortestPath(origin, destination string) (domain.Path, float64, error) {
	p.mu.Lock()
	p.calls[origin+"|"+destination]++
	p.mu.Unlock()

	l, ok := p.m[origin+"|"+destination]
	if !ok {
		return nil, 0, fmt.Errorf("missing pair %q -> %q: %w", origin, destination, domain.ErrNoPathFound)
	}

	return append(domain.Path(nil), l.Path...), l.Distance, nil
}

// Calls reports how often a pair was requested.
func (p *StaticPathFinder) Calls(origin, destination string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[origin+"|"+destination]
}

package services

import (
	"agv-route-service/internal/domain"
	"container/heap"
	"fmt"
	"slices"
)

// ShortestPath finds the minimum-distance directed walk from start to goal.
//
// Uniform-cost search (Dijkstra) where every edge costs the Euclidean distance
// between its endpoints, so weights are never negative. A waypoint is final
// the first time it is popped and is never expanded again. Equal costs are
// popped in push order, which keeps results reproducible.
//
// start == goal yields the single-waypoint path with distance 0.
func ShortestPath(g *domain.Graph, start, goal string) (domain.Path, float64, error) {
	if !g.Has(start) {
		return nil, 0, fmt.Errorf("shortest path: start %q: %w", start, domain.ErrUnknownWaypoint)
	}
	if !g.Has(goal) {
		return nil, 0, fmt.Errorf("shortest path: goal %q: %w", goal, domain.ErrUnknownWaypoint)
	}
	if start == goal {
		return domain.Path{start}, 0, nil
	}

	dist := map[string]float64{start: 0}
	prev := map[string]string{}
	done := map[string]bool{}

	pq := legQueue{}
	seq := 0
	heap.Push(&pq, &legItem{id: start, cost: 0, seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(*legItem)
		u := item.id
		if done[u] {
			continue
		}
		if u == goal {
			return walkBack(prev, start, goal), item.cost, nil
		}
		done[u] = true

		from, _ := g.Position(u)
		for _, v := range g.Successors(u) {
			if done[v] {
				continue
			}
			to, _ := g.Position(v)
			cost := item.cost + from.DistanceTo(to)
			if d, seen := dist[v]; seen && cost >= d {
				continue
			}
			dist[v] = cost
			prev[v] = u
			seq++
			heap.Push(&pq, &legItem{id: v, cost: cost, seq: seq})
		}
	}

	return nil, 0, fmt.Errorf("shortest path: %q -> %q: %w", start, goal, domain.ErrNoPathFound)
}

func walkBack(prev map[string]string, start, goal string) domain.Path {
	path := domain.Path{goal}
	for cur := goal; cur != start; {
		cur = prev[cur]
		path = append(path, cur)
	}
	slices.Reverse(path)
	return path
}

// DijkstraFinder serves ports.PathFinder straight from the graph.
type DijkstraFinder struct {
	Graph *domain.Graph
}

func NewDijkstraFinder(g *domain.Graph) *DijkstraFinder {
	return &DijkstraFinder{Graph: g}
}

func (f *DijkstraFinder) ShortestPath(origin, destination string) (domain.Path, float64, error) {
	return ShortestPath(f.Graph, origin, destination)
}

type legItem struct {
	id   string
	cost float64
	seq  int
}

// legQueue is a min-heap on (cost, seq).
type legQueue []*legItem

func (q legQueue) Len() int { return len(q) }
func (q legQueue) Less(i, j int) bool {
	if q[i].cost != q[j].cost {
		return q[i].cost < q[j].cost
	}
	return q[i].seq < q[j].seq
}
func (q legQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *legQueue) Push(x any)   { *q = append(*q, x.(*legItem)) }
func (q *legQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return x
}

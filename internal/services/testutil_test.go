package services

import (
	"agv-route-service/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

type node struct {
	id   string
	x, y float64
	next []string
}

func buildGraph(t *testing.T, nodes ...node) *domain.Graph {
	t.Helper()

	wps := make([]domain.Waypoint, 0, len(nodes))
	succ := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		wps = append(wps, domain.Waypoint{ID: n.id, Position: domain.Position{X: n.x, Y: n.y}})
		if len(n.next) > 0 {
			succ[n.id] = n.next
		}
	}

	g, err := domain.NewGraph(wps, succ)
	require.NoError(t, err)
	return g
}

// depot P0 and station P1 ten units apart, one edge each way.
func twoNodeCycle(t *testing.T) *domain.Graph {
	return buildGraph(t,
		node{id: "P0", x: 0, y: 0, next: []string{"P1"}},
		node{id: "P1", x: 10, y: 0, next: []string{"P0"}},
	)
}

package services

import (
	"agv-route-service/internal/adapters/legs"
	"agv-route-service/internal/domain"
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceRequest() SearchRequest {
	return SearchRequest{
		Depot:        "P0",
		Stops:        []string{"P1", "P2", "P5", "P20", "P33"},
		DwellMinutes: 2,
		Speed:        0.1,
		Trials:       DefaultTrials,
		TopK:         DefaultTopK,
		Workers:      DefaultWorkers,
		Seed:         42,
	}
}

func TestSearchToursTwoNodeCycle(t *testing.T) {
	g := twoNodeCycle(t)

	got, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), SearchRequest{
		Depot:  "P0",
		Stops:  []string{"P1"},
		Speed:  1,
		Trials: DefaultTrials,
		TopK:   DefaultTopK,
		Seed:   1,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, []string{"P1"}, c.VisitOrder)
	assert.Equal(t, domain.Path{"P0", "P1", "P0"}, c.Path)
	assert.Equal(t, 20.0, c.Distance)
	assert.InDelta(t, 20.0/60, c.TravelMinutes, 1e-12)
	assert.InDelta(t, 20.0/60, c.TotalMinutes, 1e-12)
}

func TestSearchToursRankingInvariants(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	req := referenceRequest()
	req.Priority = []string{"P20", "P2"}

	got, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), req)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), req.TopK)

	assert.True(t, slices.IsSortedFunc(got, func(a, b domain.TourCandidate) int {
		switch {
		case a.TotalMinutes < b.TotalMinutes:
			return -1
		case a.TotalMinutes > b.TotalMinutes:
			return 1
		}
		return 0
	}))

	want := slices.Sorted(slices.Values(req.Stops))
	for _, c := range got {
		assert.Equal(t, req.Priority, c.VisitOrder[:len(req.Priority)])
		assert.Equal(t, want, slices.Sorted(slices.Values(c.VisitOrder)))

		assert.True(t, c.Path.Valid(g))
		assert.Equal(t, "P0", c.Path[0])
		assert.Equal(t, "P0", c.Path[len(c.Path)-1])

		travel := c.Distance / req.Speed / 60
		assert.InDelta(t, travel, c.TravelMinutes, 1e-9)
		assert.InDelta(t, travel+req.DwellMinutes*float64(len(req.Stops)), c.TotalMinutes, 1e-9)
	}
}

func TestSearchToursReturnsDistinctOrders(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	req := referenceRequest()

	got, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), req)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, c := range got {
		key := domain.Path(c.VisitOrder).String()
		assert.False(t, seen[key], "order %s returned twice", key)
		seen[key] = true
	}
}

func TestSearchToursFixedOrderIsDeterministic(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	stops := []string{"P14", "P3", "P30"}

	for seed := int64(1); seed <= 5; seed++ {
		got, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), SearchRequest{
			Depot:    "P0",
			Stops:    stops,
			Priority: stops,
			Speed:    0.1,
			Trials:   1,
			TopK:     DefaultTopK,
			Seed:     seed,
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, stops, got[0].VisitOrder)
	}
}

func TestSearchToursSameSeedSameRanking(t *testing.T) {
	g := domain.ReferenceLayout().Graph

	serial := referenceRequest()
	serial.Workers = 1
	parallel := referenceRequest()
	parallel.Workers = 8

	a, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), serial)
	require.NoError(t, err)
	b, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), parallel)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSearchToursFindsBestOrderWhenSpaceIsCovered(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	stops := []string{"P5", "P2", "P1"}

	got, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), SearchRequest{
		Depot:  "P0",
		Stops:  stops,
		Speed:  0.1,
		Trials: 500,
		TopK:   10,
		Seed:   7,
	})
	require.NoError(t, err)

	// 500 draws over 6 orders cover them all.
	require.Len(t, got, 6)
	// Following the single forward lane is the only way to avoid a full lap.
	assert.Equal(t, []string{"P1", "P2", "P5"}, got[0].VisitOrder)
}

func TestSearchToursUnreachableStation(t *testing.T) {
	g := buildGraph(t,
		node{id: "P0", x: 0, y: 0, next: []string{"P1"}},
		node{id: "P1", x: 10, y: 0, next: []string{"P0"}},
		node{id: "P9", x: 50, y: 50},
	)

	_, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), SearchRequest{
		Depot:  "P0",
		Stops:  []string{"P1", "P9"},
		Speed:  1,
		Trials: 20,
		TopK:   DefaultTopK,
		Seed:   3,
	})
	require.ErrorIs(t, err, domain.ErrNoFeasibleTour)
}

func TestSearchToursDiscardsInfeasibleTrials(t *testing.T) {
	g := buildGraph(t,
		node{id: "D", next: []string{"A"}},
		node{id: "A", next: []string{"D"}},
		node{id: "B", next: []string{"D"}},
	)
	// Only D->A->B->D can be driven.
	finder := legs.NewStaticPathFinder([]legs.Leg{
		{From: "D", To: "A", Distance: 1},
		{From: "A", To: "B", Distance: 1},
		{From: "B", To: "D", Distance: 1},
		{From: "D", To: "B", Distance: 1},
	})

	got, err := SearchTours(context.Background(), g, finder, SearchRequest{
		Depot:  "D",
		Stops:  []string{"A", "B"},
		Speed:  1,
		Trials: 50,
		TopK:   DefaultTopK,
		Seed:   11,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"A", "B"}, got[0].VisitOrder)
}

func TestSearchToursInvalidPriorityRunsNoTrial(t *testing.T) {
	g := twoNodeCycle(t)
	finder := legs.NewStaticPathFinder(nil)

	_, err := SearchTours(context.Background(), g, finder, SearchRequest{
		Depot:    "P0",
		Stops:    []string{"P1"},
		Priority: []string{"P0"},
		Speed:    1,
		Trials:   10,
		TopK:     1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidPriority)
	assert.Zero(t, finder.Calls("P0", "P1"))
}

func TestSearchToursValidation(t *testing.T) {
	g := twoNodeCycle(t)
	base := SearchRequest{Depot: "P0", Stops: []string{"P1"}, Speed: 1, Trials: 1, TopK: 1}

	cases := []struct {
		name   string
		modify func(*SearchRequest)
		want   error
	}{
		{"empty selection", func(r *SearchRequest) { r.Stops = nil }, domain.ErrEmptySelection},
		{"unknown depot", func(r *SearchRequest) { r.Depot = "X" }, domain.ErrUnknownWaypoint},
		{"unknown stop", func(r *SearchRequest) { r.Stops = []string{"X"} }, domain.ErrUnknownWaypoint},
		{"depot selected", func(r *SearchRequest) { r.Stops = []string{"P1", "P0"} }, domain.ErrInvalidSelection},
		{"duplicate stop", func(r *SearchRequest) { r.Stops = []string{"P1", "P1"} }, domain.ErrInvalidSelection},
		{"duplicate priority", func(r *SearchRequest) { r.Priority = []string{"P1", "P1"} }, domain.ErrInvalidPriority},
		{"zero speed", func(r *SearchRequest) { r.Speed = 0 }, domain.ErrInvalidSpeed},
		{"negative speed", func(r *SearchRequest) { r.Speed = -1 }, domain.ErrInvalidSpeed},
		{"negative dwell", func(r *SearchRequest) { r.DwellMinutes = -1 }, domain.ErrInvalidParameter},
		{"zero trials", func(r *SearchRequest) { r.Trials = 0 }, domain.ErrInvalidParameter},
		{"zero top k", func(r *SearchRequest) { r.TopK = 0 }, domain.ErrInvalidParameter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base
			tc.modify(&req)
			_, err := SearchTours(context.Background(), g, NewDijkstraFinder(g), req)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSearchToursCancelledBeforeStart(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SearchTours(ctx, g, NewDijkstraFinder(g), referenceRequest())
	require.ErrorIs(t, err, context.Canceled)
}

// cancellingFinder cancels the search after its first leg.
type cancellingFinder struct {
	next   *DijkstraFinder
	cancel context.CancelFunc
}

func (f *cancellingFinder) ShortestPath(origin, destination string) (domain.Path, float64, error) {
	f.cancel()
	return f.next.ShortestPath(origin, destination)
}

func TestSearchToursReturnsBestSoFarWhenInterrupted(t *testing.T) {
	g := domain.ReferenceLayout().Graph
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req := referenceRequest()
	req.Workers = 1

	got, err := SearchTours(ctx, g, &cancellingFinder{next: NewDijkstraFinder(g), cancel: cancel}, req)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].VisitOrder, len(req.Stops))
}

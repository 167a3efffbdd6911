package services

import (
	"agv-route-service/internal/domain"
	"agv-route-service/internal/platform/metrics"
	"agv-route-service/internal/platform/obs"
	"agv-route-service/internal/ports"
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultTrials  = 200
	DefaultTopK    = 5
	DefaultWorkers = 4
)

type SearchRequest struct {
	Depot string
	// Stations to visit. Must not contain the depot.
	Stops []string
	// Ordered subset of Stops that leads every visit order.
	Priority     []string
	DwellMinutes float64
	// Vehicle speed in distance units per second.
	Speed  float64
	Trials int
	TopK   int
	// Upper bound on concurrent tour assemblies.
	Workers int
	// Seed for the visit-order sampler. Zero picks a time-based seed.
	Seed int64
	// Also evaluate the nearest-neighbor order alongside the sampled ones.
	Greedy bool
}

type trialOutcome int

const (
	trialSkipped trialOutcome = iota
	trialFeasible
	trialInfeasible
)

// SearchTours samples visit orders and returns the best tours found.
//
// The priority prefix is kept fixed and the remaining stations are shuffled
// once per trial. This is a Monte-Carlo explorer, not an exact solver: it
// returns good orders, not provably optimal ones.
//
// Orders are drawn sequentially from a single seeded generator and duplicates
// are assembled only once, so a fixed seed gives the same ranking regardless
// of Workers. Trials whose tour cannot be assembled are dropped; the search
// only fails with domain.ErrNoFeasibleTour when every trial was dropped.
//
// If ctx ends mid-search the best tours found so far are returned.
func SearchTours(
	ctx context.Context,
	g *domain.Graph,
	finder ports.PathFinder,
	req SearchRequest,
) (_ []domain.TourCandidate, err error) {
	defer obs.Time(ctx, "tour.search")(&err)

	started := time.Now()
	defer func() { metrics.SearchDuration.Observe(time.Since(started).Seconds()) }()

	free, err := validateSearch(g, req)
	if err != nil {
		return nil, fmt.Errorf("search tours: %w", err)
	}

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var seeded [][]string
	if req.Greedy {
		greedy, gerr := NearestNeighborOrder(finder, req.Depot, req.Priority, free)
		switch {
		case gerr == nil:
			seeded = append(seeded, greedy)
		case errors.Is(gerr, domain.ErrNoPathFound):
			log.Printf("req_id=%s op=tour.search greedy=skipped err=%v", obs.RequestID(ctx), gerr)
		default:
			return nil, fmt.Errorf("search tours: %w", gerr)
		}
	}

	orders, duplicates := sampleOrders(rng, seeded, req.Priority, free, req.Trials)
	metrics.SearchTrials.WithLabelValues("duplicate").Add(float64(duplicates))

	results := make([]*domain.TourCandidate, len(orders))
	outcomes := make([]trialOutcome, len(orders))

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(max(req.Workers, 1))

	for i, order := range orders {
		grp.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			cand, err := evaluateOrder(finder, req, order)
			if errors.Is(err, domain.ErrNoPathFound) {
				outcomes[i] = trialInfeasible
				return nil
			}
			if err != nil {
				return fmt.Errorf("evaluate order %v: %w", order, err)
			}

			results[i] = cand
			outcomes[i] = trialFeasible
			return nil
		})
	}

	if err = grp.Wait(); err != nil {
		return nil, fmt.Errorf("search tours: %w", err)
	}

	tally := map[trialOutcome]int{}
	for _, o := range outcomes {
		tally[o]++
	}
	metrics.SearchTrials.WithLabelValues("feasible").Add(float64(tally[trialFeasible]))
	metrics.SearchTrials.WithLabelValues("infeasible").Add(float64(tally[trialInfeasible]))
	metrics.SearchTrials.WithLabelValues("skipped").Add(float64(tally[trialSkipped]))

	candidates := make([]domain.TourCandidate, 0, tally[trialFeasible])
	for _, c := range results {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if len(candidates) == 0 {
			return nil, fmt.Errorf("search tours: interrupted before any feasible tour: %w", ctxErr)
		}
		log.Printf(
			"req_id=%s op=tour.search interrupted=true evaluated=%d distinct=%d err=%v",
			obs.RequestID(ctx), len(orders)-tally[trialSkipped], len(orders), ctxErr,
		)
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf(
			"search tours: %d trials, %d distinct orders, none assembled: %w",
			req.Trials, len(orders), domain.ErrNoFeasibleTour,
		)
	}

	RankCandidates(candidates)
	if len(candidates) > req.TopK {
		candidates = candidates[:req.TopK]
	}

	return candidates, nil
}

// RankCandidates sorts tours by total time, then distance, then visit order.
// The order is total, so the result never depends on evaluation order.
func RankCandidates(candidates []domain.TourCandidate) {
	slices.SortFunc(candidates, func(a, b domain.TourCandidate) int {
		if c := cmp.Compare(a.TotalMinutes, b.TotalMinutes); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Distance, b.Distance); c != 0 {
			return c
		}
		return slices.Compare(a.VisitOrder, b.VisitOrder)
	})
}

// EstimateTravelMinutes converts a distance driven at speed (units per second)
// into minutes.
func EstimateTravelMinutes(distance, speed float64) float64 {
	return distance / speed / 60
}

func evaluateOrder(finder ports.PathFinder, req SearchRequest, order []string) (*domain.TourCandidate, error) {
	stops := make([]string, 0, len(order)+2)
	stops = append(stops, req.Depot)
	stops = append(stops, order...)
	stops = append(stops, req.Depot)

	path, dist, err := AssembleTour(finder, stops)
	if err != nil {
		return nil, err
	}

	travel := EstimateTravelMinutes(dist, req.Speed)
	return &domain.TourCandidate{
		VisitOrder:    order,
		Path:          path,
		Distance:      dist,
		TravelMinutes: travel,
		TotalMinutes:  travel + req.DwellMinutes*float64(len(order)),
	}, nil
}

// sampleOrders draws trials permutations of free behind the fixed prefix and
// returns the distinct ones in first-drawn order, after any seeded orders.
func sampleOrders(rng *rand.Rand, seeded [][]string, prefix, free []string, trials int) ([][]string, int) {
	seen := make(map[string]struct{}, trials+len(seeded))
	orders := make([][]string, 0, min(trials, 64)+len(seeded))
	duplicates := 0

	for _, order := range seeded {
		seen[strings.Join(order, "\x00")] = struct{}{}
		orders = append(orders, order)
	}

	for range trials {
		tail := slices.Clone(free)
		rng.Shuffle(len(tail), func(i, j int) { tail[i], tail[j] = tail[j], tail[i] })

		order := make([]string, 0, len(prefix)+len(tail))
		order = append(order, prefix...)
		order = append(order, tail...)

		key := strings.Join(order, "\x00")
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
		orders = append(orders, order)
	}

	return orders, duplicates
}

// validateSearch checks the request and returns the stations outside the
// priority prefix, in selection order.
func validateSearch(g *domain.Graph, req SearchRequest) ([]string, error) {
	if len(req.Stops) == 0 {
		return nil, domain.ErrEmptySelection
	}
	if !g.Has(req.Depot) {
		return nil, fmt.Errorf("depot %q: %w", req.Depot, domain.ErrUnknownWaypoint)
	}

	selected := make(map[string]bool, len(req.Stops))
	for _, s := range req.Stops {
		if !g.Has(s) {
			return nil, fmt.Errorf("stop %q: %w", s, domain.ErrUnknownWaypoint)
		}
		if s == req.Depot {
			return nil, fmt.Errorf("stop %q is the depot: %w", s, domain.ErrInvalidSelection)
		}
		if selected[s] {
			return nil, fmt.Errorf("stop %q selected twice: %w", s, domain.ErrInvalidSelection)
		}
		selected[s] = true
	}

	fixed := make(map[string]bool, len(req.Priority))
	for _, p := range req.Priority {
		if !selected[p] {
			return nil, fmt.Errorf("priority %q is not a selected stop: %w", p, domain.ErrInvalidPriority)
		}
		if fixed[p] {
			return nil, fmt.Errorf("priority %q listed twice: %w", p, domain.ErrInvalidPriority)
		}
		fixed[p] = true
	}

	if !(req.Speed > 0) || math.IsInf(req.Speed, 0) {
		return nil, fmt.Errorf("speed %v must be a positive number: %w", req.Speed, domain.ErrInvalidSpeed)
	}
	if !(req.DwellMinutes >= 0) || math.IsInf(req.DwellMinutes, 0) {
		return nil, fmt.Errorf("dwell minutes %v must be non-negative: %w", req.DwellMinutes, domain.ErrInvalidParameter)
	}
	if req.Trials < 1 {
		return nil, fmt.Errorf("trials %d must be positive: %w", req.Trials, domain.ErrInvalidParameter)
	}
	if req.TopK < 1 {
		return nil, fmt.Errorf("top k %d must be positive: %w", req.TopK, domain.ErrInvalidParameter)
	}

	free := make([]string, 0, len(req.Stops)-len(req.Priority))
	for _, s := range req.Stops {
		if !fixed[s] {
			free = append(free, s)
		}
	}
	return free, nil
}

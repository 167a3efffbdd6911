package api

import (
	"agv-route-service/internal/api/handlers"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/platform/metrics"
	"agv-route-service/internal/ports"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Options carries the tunables the router hands to its handlers.
type Options struct {
	Plan handlers.PlanDefaults
	// Token bucket for POST /plans. Nil disables limiting.
	PlanLimiter *rate.Limiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the layout and the PathFinder port.
func NewRouter(layout *domain.Layout, finder ports.PathFinder, opts Options) http.Handler {
	mux := http.NewServeMux()

	wpHandler := &handlers.WaypointHandler{Layout: layout}
	routeHandler := &handlers.RouteHandler{Finder: finder, Speed: opts.Plan.Speed}
	planHandler := &handlers.PlanHandler{
		Layout:   layout,
		Finder:   finder,
		Defaults: opts.Plan,
	}

	var plans http.Handler = http.HandlerFunc(planHandler.Plan)
	if opts.PlanLimiter != nil {
		plans = rateLimit(opts.PlanLimiter, plans)
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/waypoints", wpHandler.List)
	mux.HandleFunc("/routes", routeHandler.Get)
	mux.Handle("/plans", plans)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(loggingMiddleware(mux))
}

package main

import (
	"agv-route-service/internal/adapters/cache"
	"agv-route-service/internal/adapters/repositories"
	"agv-route-service/internal/api"
	"agv-route-service/internal/api/handlers"
	"agv-route-service/internal/config"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/platform/db"
	"agv-route-service/internal/platform/metrics"
	"agv-route-service/internal/ports"
	"agv-route-service/internal/services"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It picks a layout source, wraps Dijkstra in the leg cache and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	layout, err := loadLayout(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatal(err)
	}
	log.Printf(
		"layout loaded name=%s depot=%s waypoints=%d edges=%d",
		layout.Name, layout.Depot, layout.Graph.Len(), layout.Graph.EdgeCount(),
	)

	metrics.RegisterDefault()

	finder := cache.NewLegCache(services.NewDijkstraFinder(layout.Graph))
	router := api.NewRouter(layout, finder, api.Options{
		Plan: handlers.PlanDefaults{
			DwellMinutes: cfg.DwellMinutes,
			Speed:        cfg.Speed,
			Trials:       cfg.Trials,
			MaxTrials:    cfg.MaxTrials,
			TopK:         cfg.TopK,
			Workers:      cfg.Workers,
			Timeout:      cfg.SearchTimeout,
		},
		PlanLimiter: rate.NewLimiter(rate.Limit(cfg.PlanRateLimit), cfg.PlanRateBurst),
	})

	// Write timeout leaves room for a search that runs into SEARCH_TIMEOUT.
	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.SearchTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// loadLayout prefers Postgres, then a layout file, then the compiled-in plant.
func loadLayout(ctx context.Context, cfg config.Config) (*domain.Layout, error) {
	var repo ports.LayoutRepository

	switch {
	case cfg.DatabaseURL != "":
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("load layout: %w", err)
		}
		// The layout is read once and kept in memory.
		defer conn.Close()
		log.Printf("layout source=postgres name=%s", cfg.LayoutName)
		repo = repositories.NewPostgresLayoutRepository(conn, cfg.LayoutName)
	case cfg.LayoutPath != "":
		log.Printf("layout source=file path=%s", cfg.LayoutPath)
		repo = repositories.NewYAMLLayoutRepository(cfg.LayoutPath)
	default:
		log.Printf("layout source=builtin name=%s", domain.ReferenceLayoutName)
		return domain.ReferenceLayout(), nil
	}

	return repo.LoadLayout(ctx)
}

package ports

import (
	"agv-route-service/internal/domain"
	"context"
)

// Port: a boundary for loading the operating layout at process start.
type LayoutRepository interface {
	// Load the waypoint graph and its depot.
	LoadLayout(ctx context.Context) (*domain.Layout, error)
}

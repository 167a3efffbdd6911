package repositories

import (
	"agv-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema for stored layouts.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createLayoutsQuery := `
	CREATE TABLE IF NOT EXISTS layouts (
		name TEXT PRIMARY KEY,
		depot TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createWaypointsQuery := `
	CREATE TABLE IF NOT EXISTS waypoints (
		layout TEXT NOT NULL REFERENCES layouts(name) ON DELETE CASCADE,
		waypoint_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (layout, waypoint_id)
	);
	`

	createEdgesQuery := `
	CREATE TABLE IF NOT EXISTS waypoint_edges (
		layout TEXT NOT NULL,
		from_id TEXT NOT NULL,
		to_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		PRIMARY KEY (layout, from_id, to_id),
		FOREIGN KEY (layout, from_id) REFERENCES waypoints(layout, waypoint_id) ON DELETE CASCADE,
		FOREIGN KEY (layout, to_id) REFERENCES waypoints(layout, waypoint_id) ON DELETE CASCADE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_waypoint_edges_layout_seq
	ON waypoint_edges(layout, from_id, seq);
	`

	statements := []string{
		createLayoutsQuery,
		createWaypointsQuery,
		createEdgesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedLayout replaces any stored copy of the layout with the given one.
func SeedLayout(ctx context.Context, db *sql.DB, l *domain.Layout) error {
	if db == nil {
		return errors.New("seed layout: DB is nil")
	}
	if l == nil || l.Graph == nil {
		return fmt.Errorf("seed layout: %w", domain.ErrInvalidLayout)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed layout: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertLayout := `
	INSERT INTO layouts (name, depot, updated_at)
	VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE
	SET depot = EXCLUDED.depot, updated_at = now();
	`
	if _, err := tx.ExecContext(ctx, upsertLayout, l.Name, l.Depot); err != nil {
		return fmt.Errorf("seed layout %q: upsert layout: %w", l.Name, err)
	}

	// Edges go with the waypoints through the cascade.
	if _, err := tx.ExecContext(ctx, `DELETE FROM waypoints WHERE layout = $1;`, l.Name); err != nil {
		return fmt.Errorf("seed layout %q: clear waypoints: %w", l.Name, err)
	}

	wpStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO waypoints (layout, waypoint_id, seq, x, y)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("seed layout: prepare waypoint insert: %w", err)
	}
	defer wpStmt.Close()

	waypoints := l.Graph.Waypoints()
	for i, wp := range waypoints {
		if _, err := wpStmt.ExecContext(ctx, l.Name, wp.ID, i, wp.Position.X, wp.Position.Y); err != nil {
			return fmt.Errorf("seed layout: insert waypoint %s: %w", wp.ID, err)
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO waypoint_edges (layout, from_id, to_id, seq)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed layout: prepare edge insert: %w", err)
	}
	defer edgeStmt.Close()

	for _, wp := range waypoints {
		for i, next := range l.Graph.Successors(wp.ID) {
			if _, err := edgeStmt.ExecContext(ctx, l.Name, wp.ID, next, i); err != nil {
				return fmt.Errorf("seed layout: insert edge %s->%s: %w", wp.ID, next, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed layout: commit tx: %w", err)
	}

	return nil
}

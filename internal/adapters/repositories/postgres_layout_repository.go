package repositories

import (
	"agv-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the LayoutRepository port.
type PostgresLayoutRepository struct {
	DB   *sql.DB
	Name string
}

func NewPostgresLayoutRepository(db *sql.DB, name string) *PostgresLayoutRepository {
	return &PostgresLayoutRepository{DB: db, Name: name}
}

// Load the named layout with waypoints and successors in stored order.
func (p *PostgresLayoutRepository) LoadLayout(ctx context.Context) (*domain.Layout, error) {
	if p.DB == nil {
		return nil, errors.New("postgres layout repository: DB is nil")
	}

	var depot string
	err := p.DB.QueryRowContext(ctx, `SELECT depot FROM layouts WHERE name = $1;`, p.Name).Scan(&depot)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load layout %q: not found: %w", p.Name, domain.ErrInvalidLayout)
	}
	if err != nil {
		return nil, fmt.Errorf("load layout %q: query layouts table: %w", p.Name, err)
	}

	doc := LayoutDocument{Name: p.Name, Depot: depot}
	index := make(map[string]int, 64)

	query := `
	SELECT
		waypoint_id,
		x,
		y
	FROM waypoints
	WHERE layout = $1
	ORDER BY seq;
	`
	rows, err := p.DB.QueryContext(ctx, query, p.Name)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: query waypoints table: %w", p.Name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var w WaypointDocument
		if err := rows.Scan(&w.ID, &w.X, &w.Y); err != nil {
			return nil, fmt.Errorf("load layout %q: scan waypoint: %w", p.Name, err)
		}
		index[w.ID] = len(doc.Waypoints)
		doc.Waypoints = append(doc.Waypoints, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load layout %q: waypoint iteration: %w", p.Name, err)
	}

	edgeQuery := `
	SELECT
		from_id,
		to_id
	FROM waypoint_edges
	WHERE layout = $1
	ORDER BY from_id, seq;
	`
	edges, err := p.DB.QueryContext(ctx, edgeQuery, p.Name)
	if err != nil {
		return nil, fmt.Errorf("load layout %q: query waypoint_edges table: %w", p.Name, err)
	}
	defer edges.Close()

	for edges.Next() {
		var from, to string
		if err := edges.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("load layout %q: scan edge: %w", p.Name, err)
		}
		i, ok := index[from]
		if !ok {
			return nil, fmt.Errorf("load layout %q: edge from %s: %w", p.Name, from, domain.ErrUnknownWaypoint)
		}
		doc.Waypoints[i].Next = append(doc.Waypoints[i].Next, to)
	}
	if err := edges.Err(); err != nil {
		return nil, fmt.Errorf("load layout %q: edge iteration: %w", p.Name, err)
	}

	return doc.ToLayout()
}

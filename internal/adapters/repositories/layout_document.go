package repositories

import (
	"agv-route-service/internal/domain"
	"fmt"
	"strings"
)

// LayoutDocument is the serialised form of a layout, shared by the YAML file
// format and the database seeder.
type LayoutDocument struct {
	Name      string             `yaml:"name"`
	Depot     string             `yaml:"depot"`
	Waypoints []WaypointDocument `yaml:"waypoints"`
}

type WaypointDocument struct {
	ID   string   `yaml:"id"`
	X    float64  `yaml:"x"`
	Y    float64  `yaml:"y"`
	Next []string `yaml:"next,omitempty"`
}

// ToLayout validates the document and builds an immutable layout.
func (d LayoutDocument) ToLayout() (*domain.Layout, error) {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return nil, fmt.Errorf("layout document: name is required: %w", domain.ErrInvalidLayout)
	}
	if len(d.Waypoints) == 0 {
		return nil, fmt.Errorf("layout document %q: no waypoints: %w", name, domain.ErrInvalidLayout)
	}

	wps := make([]domain.Waypoint, 0, len(d.Waypoints))
	succ := make(map[string][]string, len(d.Waypoints))
	for _, w := range d.Waypoints {
		id := strings.TrimSpace(w.ID)
		wps = append(wps, domain.Waypoint{ID: id, Position: domain.Position{X: w.X, Y: w.Y}})
		for _, n := range w.Next {
			succ[id] = append(succ[id], strings.TrimSpace(n))
		}
	}

	g, err := domain.NewGraph(wps, succ)
	if err != nil {
		return nil, fmt.Errorf("layout document %q: %w", name, err)
	}
	l, err := domain.NewLayout(name, d.Depot, g)
	if err != nil {
		return nil, fmt.Errorf("layout document: %w", err)
	}
	return l, nil
}

// DocumentFromLayout is the inverse of ToLayout.
func DocumentFromLayout(l *domain.Layout) LayoutDocument {
	doc := LayoutDocument{Name: l.Name, Depot: l.Depot}
	for _, wp := range l.Graph.Waypoints() {
		doc.Waypoints = append(doc.Waypoints, WaypointDocument{
			ID:   wp.ID,
			X:    wp.Position.X,
			Y:    wp.Position.Y,
			Next: l.Graph.Successors(wp.ID),
		})
	}
	return doc
}

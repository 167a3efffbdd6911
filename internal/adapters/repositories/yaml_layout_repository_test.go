package repositories

import (
	"agv-route-service/internal/domain"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLayout(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestYAMLLayoutRepositoryLoadsLayout(t *testing.T) {
	path := writeLayout(t, `
name: loop
depot: P0
waypoints:
  - id: P0
    x: 0
    y: 0
    next: [P1]
  - id: P1
    x: 10
    y: 0
    next: [P2, P0]
  - id: P2
    x: 10
    y: 5
    next: [P0]
`)

	l, err := NewYAMLLayoutRepository(path).LoadLayout(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "loop", l.Name)
	assert.Equal(t, "P0", l.Depot)
	assert.Equal(t, 3, l.Graph.Len())
	assert.Equal(t, []string{"P2", "P0"}, l.Graph.Successors("P1"))
	assert.Equal(t, []string{"P1", "P2"}, l.Stations())
}

func TestYAMLLayoutRepositoryRejectsUnknownFields(t *testing.T) {
	path := writeLayout(t, `
name: loop
depot: P0
speed: 3
waypoints:
  - id: P0
    x: 0
    y: 0
`)

	_, err := NewYAMLLayoutRepository(path).LoadLayout(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestYAMLLayoutRepositoryRejectsInvalidLayouts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "missing name",
			body: "depot: P0\nwaypoints:\n  - {id: P0, x: 0, y: 0}\n",
			want: domain.ErrInvalidLayout,
		},
		{
			name: "unknown successor",
			body: "name: l\ndepot: P0\nwaypoints:\n  - {id: P0, x: 0, y: 0, next: [P7]}\n",
			want: domain.ErrUnknownWaypoint,
		},
		{
			name: "unknown depot",
			body: "name: l\ndepot: P9\nwaypoints:\n  - {id: P0, x: 0, y: 0}\n",
			want: domain.ErrUnknownWaypoint,
		},
		{
			name: "depot without return path",
			body: "name: l\ndepot: P0\nwaypoints:\n  - {id: P0, x: 0, y: 0, next: [P1]}\n  - {id: P1, x: 1, y: 0}\n",
			want: domain.ErrInvalidLayout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLLayoutRepository(writeLayout(t, tt.body)).LoadLayout(context.Background())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestYAMLLayoutRepositoryMissingFile(t *testing.T) {
	_, err := NewYAMLLayoutRepository(filepath.Join(t.TempDir(), "nope.yaml")).LoadLayout(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReferenceLayoutSurvivesYAMLEncoding(t *testing.T) {
	ref := domain.ReferenceLayout()

	data, err := EncodeLayoutYAML(DocumentFromLayout(ref))
	require.NoError(t, err)

	doc, err := DecodeLayoutYAML(data)
	require.NoError(t, err)
	got, err := doc.ToLayout()
	require.NoError(t, err)

	assert.Equal(t, ref.Name, got.Name)
	assert.Equal(t, ref.Depot, got.Depot)
	assert.Equal(t, ref.Graph.Waypoints(), got.Graph.Waypoints())
	for _, wp := range ref.Graph.Waypoints() {
		assert.Equal(t, ref.Graph.Successors(wp.ID), got.Graph.Successors(wp.ID), wp.ID)
	}
}

func TestShippedReferenceLayoutFileMatchesCompiledLayout(t *testing.T) {
	l, err := NewYAMLLayoutRepository("../../../data/layouts/jlr-plant.yaml").LoadLayout(context.Background())
	require.NoError(t, err)

	ref := domain.ReferenceLayout()
	assert.Equal(t, ref.Name, l.Name)
	assert.Equal(t, ref.Graph.Waypoints(), l.Graph.Waypoints())
	assert.Equal(t, ref.Graph.EdgeCount(), l.Graph.EdgeCount())
}

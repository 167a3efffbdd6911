package handlers

import (
	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/domain"
	"net/http"
)

// WaypointHandler exposes the active layout for map rendering.
type WaypointHandler struct {
	Layout *domain.Layout
}

func (h *WaypointHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	wps := h.Layout.Graph.Waypoints()
	res := dto.ListWaypointsResponse{
		Layout:    h.Layout.Name,
		Depot:     h.Layout.Depot,
		Waypoints: make([]dto.WaypointResponse, 0, len(wps)),
	}
	for _, wp := range wps {
		next := h.Layout.Graph.Successors(wp.ID)
		if next == nil {
			next = []string{}
		}
		res.Waypoints = append(res.Waypoints, dto.WaypointResponse{
			ID:   wp.ID,
			X:    wp.Position.X,
			Y:    wp.Position.Y,
			Next: next,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

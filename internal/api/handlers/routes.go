package handlers

import (
	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/ports"
	"agv-route-service/internal/services"
	"net/http"
	"strings"
)

// RouteHandler answers point-to-point shortest path queries.
type RouteHandler struct {
	Finder ports.PathFinder
	// Speed used for the travel estimate, in distance units per second.
	Speed float64
}

func (h *RouteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodGet) {
		return
	}

	q := r.URL.Query()
	from := strings.TrimSpace(q.Get("from"))
	to := strings.TrimSpace(q.Get("to"))
	if from == "" || to == "" {
		writeError(w, r, http.StatusBadRequest, "from and to are required")
		return
	}

	path, dist, err := h.Finder.ShortestPath(from, to)
	if err != nil {
		writeServiceError(w, r, "shortest path", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.RouteResponse{
		From:          from,
		To:            to,
		Path:          path,
		Sequence:      path.String(),
		Distance:      round2(dist),
		TravelMinutes: round2(services.EstimateTravelMinutes(dist, h.Speed)),
	})
}

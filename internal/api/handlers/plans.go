package handlers

import (
	"agv-route-service/internal/api/dto"
	"agv-route-service/internal/domain"
	"agv-route-service/internal/ports"
	"agv-route-service/internal/services"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxPlanBody = 64 << 10

// PlanDefaults fills fields a plan request leaves out.
type PlanDefaults struct {
	DwellMinutes float64
	Speed        float64
	Trials       int
	MaxTrials    int
	TopK         int
	Workers      int
	Timeout      time.Duration
}

type PlanHandler struct {
	Layout   *domain.Layout
	Finder   ports.PathFinder
	Defaults PlanDefaults
}

// Plan runs a tour search over the requested stations and returns the
// ranked tours.
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowOnly(w, r, http.MethodPost) {
		return
	}

	var req dto.PlanRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxPlanBody))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	svcReq, err := h.searchRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if h.Defaults.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Defaults.Timeout)
		defer cancel()
	}

	tours, err := services.SearchTours(ctx, h.Layout.Graph, h.Finder, svcReq)
	if err != nil {
		writeServiceError(w, r, "search tours", err)
		return
	}

	rows := services.FormatRanking(h.Layout.Depot, tours)
	res := dto.PlanResponse{
		Depot: h.Layout.Depot,
		Tours: make([]dto.TourResponse, 0, len(rows)),
	}
	for _, row := range rows {
		res.Tours = append(res.Tours, dto.TourResponse{
			Rank:          row.Rank,
			VisitOrder:    row.VisitOrder,
			FullPath:      row.FullPath,
			Sequence:      row.Sequence,
			Distance:      row.Distance,
			TravelMinutes: row.TravelMinutes,
			TotalMinutes:  row.TotalMinutes,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *PlanHandler) searchRequest(req dto.PlanRequest) (services.SearchRequest, error) {
	out := services.SearchRequest{
		Depot:        h.Layout.Depot,
		Stops:        trimAll(req.Stops),
		Priority:     trimAll(req.Priority),
		DwellMinutes: h.Defaults.DwellMinutes,
		Speed:        h.Defaults.Speed,
		Trials:       h.Defaults.Trials,
		TopK:         h.Defaults.TopK,
		Workers:      h.Defaults.Workers,
		Seed:         req.Seed,
		Greedy:       req.Greedy,
	}
	if req.DwellMinutes != nil {
		out.DwellMinutes = *req.DwellMinutes
	}
	if req.Speed != nil {
		out.Speed = *req.Speed
	}
	if req.Trials != nil {
		out.Trials = *req.Trials
	}
	if req.TopK != nil {
		out.TopK = *req.TopK
	}

	if h.Defaults.MaxTrials > 0 && out.Trials > h.Defaults.MaxTrials {
		return services.SearchRequest{}, fmt.Errorf("trials must be at most %d", h.Defaults.MaxTrials)
	}
	return out, nil
}

func trimAll(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, strings.TrimSpace(id))
	}
	return out
}

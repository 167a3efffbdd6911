package dto

// Omitted numeric fields fall back to the service defaults, so they are
// pointers to tell "absent" from zero.
type PlanRequest struct {
	Stops        []string `json:"stops"`
	Priority     []string `json:"priority"`
	DwellMinutes *float64 `json:"dwell_minutes"`
	Speed        *float64 `json:"speed"`
	Trials       *int     `json:"trials"`
	TopK         *int     `json:"top_k"`
	Seed         int64    `json:"seed"`
	Greedy       bool     `json:"greedy"`
}

type TourResponse struct {
	Rank          string   `json:"rank"`
	VisitOrder    []string `json:"visit_order"`
	FullPath      []string `json:"full_path"`
	Sequence      string   `json:"sequence"`
	Distance      float64  `json:"distance"`
	TravelMinutes float64  `json:"travel_minutes"`
	TotalMinutes  float64  `json:"total_minutes"`
}

type PlanResponse struct {
	Depot string         `json:"depot"`
	Tours []TourResponse `json:"tours"`
}

package dto

type RouteResponse struct {
	From          string   `json:"from"`
	To            string   `json:"to"`
	Path          []string `json:"path"`
	Sequence      string   `json:"sequence"`
	Distance      float64  `json:"distance"`
	TravelMinutes float64  `json:"travel_minutes"`
}

package dto

type WaypointResponse struct {
	ID   string   `json:"id"`
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	Next []string `json:"next"`
}

type ListWaypointsResponse struct {
	Layout    string             `json:"layout"`
	Depot     string             `json:"depot"`
	Waypoints []WaypointResponse `json:"waypoints"`
}

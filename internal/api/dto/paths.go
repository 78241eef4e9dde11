package dto

type CheckpointPathResponse struct {
	Path          []string `json:"path"`
	CheckpointIDs []string `json:"checkpoint_ids"`
	TotalDistance *float64 `json:"total_distance"`
	Verified      bool     `json:"verified"`
}

type ListPathsResponse struct {
	DepartureDistrictID   string                   `json:"departure_district_id"`
	DestinationDistrictID string                   `json:"destination_district_id"`
	Paths                 []CheckpointPathResponse `json:"paths"`
}

type ZonePathsResponse struct {
	From         string     `json:"from"`
	To           string     `json:"to"`
	ShortestPath []string   `json:"shortest_path"`
	FewestHops   []string   `json:"fewest_hops"`
	AllPaths     [][]string `json:"all_paths"`
}

package dto

type LinksResponse struct {
	NorthernNext *string `json:"northern_next_id"`
	SouthernNext *string `json:"southern_next_id"`
	EasternNext  *string `json:"eastern_next_id"`
	WesternNext  *string `json:"western_next_id"`
}

type LocationResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type CheckpointResponse struct {
	CheckpointID   string            `json:"checkpoint_id"`
	Name           string            `json:"name"`
	DistrictID     string            `json:"district_id"`
	DistrictName   string            `json:"district_name"`
	ProvinceName   string            `json:"province_name"`
	CheckpointType string            `json:"checkpoint_type"`
	Location       *LocationResponse `json:"location"`
	Links          LinksResponse     `json:"links"`
}

type ListCheckpointsResponse struct {
	Checkpoints []CheckpointResponse `json:"checkpoints"`
}

type LinkRequest struct {
	NeighborID string `json:"neighbor_id" validate:"required,max=64"`
}

// UpdateLinksRequest replaces all four slots; an omitted slot is cleared.
type UpdateLinksRequest struct {
	NorthernNext string `json:"northern_next_id" validate:"max=64"`
	SouthernNext string `json:"southern_next_id" validate:"max=64"`
	EasternNext  string `json:"eastern_next_id" validate:"max=64"`
	WesternNext  string `json:"western_next_id" validate:"max=64"`
}

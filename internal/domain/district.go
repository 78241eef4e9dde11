package domain

// A District is an administrative area. Its zone membership is implicit:
// a district belongs to every zone graph that lists its name as a key.
type District struct {
	DistrictID string
	Name       string
	ProvinceID string
}

// Labels used when a checkpoint's district or province cannot be resolved.
// Such checkpoints stay in the graph under these names.
const (
	UnknownDistrictName = "Unknown district"
	UnknownProvinceName = "Unknown province"
)

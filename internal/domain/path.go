package domain

// CheckpointPath is one candidate route between two districts.
//
// Path holds the district name of each checkpoint visited and CheckpointIDs
// the matching checkpoint ids, element for element. The fallback route used
// when no checkpoint chain exists is the only exception: Path holds the two
// district names and CheckpointIDs is empty. Verified is false only for
// that fallback.
type CheckpointPath struct {
	Path          []string
	CheckpointIDs []string
	TotalDistance *float64
	Verified      bool
}

// FallbackPath builds the unverified direct route between two districts.
func FallbackPath(departureDistrictName, destinationDistrictName string) CheckpointPath {
	return CheckpointPath{
		Path:          []string{departureDistrictName, destinationDistrictName},
		CheckpointIDs: []string{},
		Verified:      false,
	}
}

// ZonePaths is the coarse district-level route estimate from the static
// zone graphs.
//
// ShortestPath is the first path the depth-first enumeration discovers, not
// necessarily the one with the fewest hops. FewestHops carries the true
// minimum-hop route.
type ZonePaths struct {
	ShortestPath []string
	AllPaths     [][]string
	FewestHops   []string
}

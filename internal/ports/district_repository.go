package ports

import "context"

// Port: district name lookups.
type DistrictReader interface {
	// Return the district's name, or an error wrapping domain.ErrNotFound.
	DistrictName(ctx context.Context, districtID string) (string, error)
}

package distance

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"encoding/json"
	"fmt"
)

type matrixRequest struct {
	Locations    [][]float64 `json:"locations"`
	Destinations []int       `json:"destinations"`
	Metrics      []string    `json:"metrics"`
	Sources      []int       `json:"sources"`
}

type matrixResponse struct {
	Distances [][]*float64 `json:"distances"`
}

// fetchMatrixRow retrieves road distances in meters from one origin to many
// destinations using the OpenRouteService matrix endpoint.
func (o *ORSDistanceProvider) fetchMatrixRow(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]float64, error) {
	if len(destinations) == 0 {
		return []float64{}, nil
	}

	endpoint := fmt.Sprintf("%s/v2/matrix/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, 1+len(destinations))
	locations = append(locations, origin.CoordsToList())
	for _, c := range destinations {
		locations = append(locations, c.CoordsToList())
	}

	destIdx := make([]int, 0, len(destinations))
	for i := 1; i < len(locations); i++ {
		destIdx = append(destIdx, i)
	}

	payload, err := json.Marshal(matrixRequest{
		Locations:    locations,
		Destinations: destIdx,
		Metrics:      []string{"distance"},
		Sources:      []int{0},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal matrix request: %w", err)
	}

	resp, err := o.postJSON(ctx, endpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("matrix request: %w", err)
	}
	defer resp.Body.Close()

	var mr matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode matrix response: %w", err)
	}

	if len(mr.Distances) != 1 {
		return nil, fmt.Errorf("expected 1 source row; got %d", len(mr.Distances))
	}

	row := mr.Distances[0]
	if len(row) != len(destinations) {
		return nil, fmt.Errorf("row length %d does not match %d destinations", len(row), len(destinations))
	}

	out := make([]float64, 0, len(row))
	for i, meters := range row {
		// ORS returns null for unroutable pairs.
		if meters == nil {
			return nil, fmt.Errorf("matrix returned no distance for destination #%d", i+1)
		}
		out = append(out, *meters)
	}

	return out, nil
}

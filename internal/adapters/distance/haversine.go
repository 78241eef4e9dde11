package distance

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"math"
)

const earthRadiusMeters = 6371008.8

// HaversineDistanceProvider estimates distances as great-circle length
// times a detour factor. It needs no network and is used when no ORS key
// is configured.
type HaversineDistanceProvider struct {
	// DetourFactor scales straight-line distance toward road distance.
	// Values below 1 are treated as 1.
	DetourFactor float64
}

func NewHaversineDistanceProvider(detourFactor float64) *HaversineDistanceProvider {
	return &HaversineDistanceProvider{DetourFactor: detourFactor}
}

func (p *HaversineDistanceProvider) GetDistances(
	ctx context.Context,
	origin domain.Coordinates,
	destinations []domain.Coordinates,
) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	factor := math.Max(p.DetourFactor, 1)
	out := make([]float64, 0, len(destinations))
	for _, d := range destinations {
		out = append(out, haversine(origin, d)*factor)
	}
	return out, nil
}

func haversine(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMeters * math.Asin(math.Min(1, math.Sqrt(h)))
}

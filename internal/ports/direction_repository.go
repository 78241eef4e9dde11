package ports

import "context"

// Port: resolves a shipment direction to the districts of its departure and
// destination addresses.
type DirectionReader interface {
	DirectionDistricts(ctx context.Context, shipmentID, directionID string) (departureDistrictID, destinationDistrictID string, err error)
}

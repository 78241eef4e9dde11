package domain

import "fmt"

// Coordinates locate a checkpoint in WGS84 degrees.
type Coordinates struct {
	Lon float64
	Lat float64
}

// Validate rejects out-of-range latitude or longitude.
func (c Coordinates) Validate() error {
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

// CoordsToList returns [lon, lat], the order ORS expects.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

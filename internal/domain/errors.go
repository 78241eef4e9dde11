package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrSelfLink         = errors.New("checkpoint cannot link to itself")
	// A shipment direction whose addresses do not resolve to districts.
	ErrUnresolvedDirection = errors.New("shipment direction has no departure or destination district")
)

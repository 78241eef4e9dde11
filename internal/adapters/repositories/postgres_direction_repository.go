package repositories

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DirectionReader port.
type PostgresDirectionRepository struct{ DB *sql.DB }

func NewPostgresDirectionRepository(db *sql.DB) *PostgresDirectionRepository {
	return &PostgresDirectionRepository{DB: db}
}

// Resolve the departure and destination districts of a shipment leg through
// its addresses. An address without a district yields an empty id.
func (r *PostgresDirectionRepository) DirectionDistricts(
	ctx context.Context,
	shipmentID, directionID string,
) (string, string, error) {
	query := `
	SELECT
		COALESCE(dep.district_id, ''),
		COALESCE(dest.district_id, '')
	FROM shipment_directions sd
	LEFT JOIN addresses dep ON dep.id = sd.departure_address_id
	LEFT JOIN addresses dest ON dest.id = sd.destination_address_id
	WHERE sd.id = $1 AND sd.shipment_id = $2;
	`

	var departure, destination string
	err := r.DB.QueryRowContext(ctx, query, directionID, shipmentID).Scan(&departure, &destination)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("direction districts: shipment %q direction %q: %w",
			shipmentID, directionID, domain.ErrNotFound)
	}
	if err != nil {
		return "", "", fmt.Errorf("direction districts: query: %w", err)
	}

	return departure, destination, nil
}

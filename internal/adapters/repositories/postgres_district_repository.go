package repositories

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the DistrictReader port.
type PostgresDistrictRepository struct{ DB *sql.DB }

func NewPostgresDistrictRepository(db *sql.DB) *PostgresDistrictRepository {
	return &PostgresDistrictRepository{DB: db}
}

func (r *PostgresDistrictRepository) DistrictName(ctx context.Context, districtID string) (string, error) {
	var name string
	err := r.DB.QueryRowContext(ctx, `SELECT name FROM districts WHERE id = $1;`, districtID).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("district name: district %q: %w", districtID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("district name: query district %q: %w", districtID, err)
	}
	return name, nil
}

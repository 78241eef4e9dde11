package repositories

import (
	"checkpoint-route-service/internal/domain"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema for the checkpoint network and sequences.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createProvincesQuery := `
	CREATE TABLE IF NOT EXISTS provinces (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL
	);
	`

	createDistrictsQuery := `
	CREATE TABLE IF NOT EXISTS districts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		province_id TEXT REFERENCES provinces(id) ON DELETE SET NULL
	);
	`

	createAddressesQuery := `
	CREATE TABLE IF NOT EXISTS addresses (
		id TEXT PRIMARY KEY,
		district_id TEXT REFERENCES districts(id) ON DELETE SET NULL
	);
	`

	createCheckpointsQuery := `
	CREATE TABLE IF NOT EXISTS checkpoints (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		district_id TEXT REFERENCES districts(id) ON DELETE SET NULL,
		checkpoint_type TEXT NOT NULL,
		latitude DOUBLE PRECISION CHECK (latitude BETWEEN -90 AND 90),
		longitude DOUBLE PRECISION CHECK (longitude BETWEEN -180 AND 180),
		northern_next_id TEXT REFERENCES checkpoints(id) ON DELETE SET NULL,
		southern_next_id TEXT REFERENCES checkpoints(id) ON DELETE SET NULL,
		eastern_next_id TEXT REFERENCES checkpoints(id) ON DELETE SET NULL,
		western_next_id TEXT REFERENCES checkpoints(id) ON DELETE SET NULL
	);
	`

	createDirectionsQuery := `
	CREATE TABLE IF NOT EXISTS shipment_directions (
		id TEXT PRIMARY KEY,
		shipment_id TEXT NOT NULL,
		departure_address_id TEXT REFERENCES addresses(id) ON DELETE SET NULL,
		destination_address_id TEXT REFERENCES addresses(id) ON DELETE SET NULL
	);
	`

	createSequencesQuery := `
	CREATE TABLE IF NOT EXISTS shipment_checkpoint_sequences (
		shipment_id TEXT NOT NULL,
		shipment_direction_id TEXT NOT NULL,
		checkpoint_id TEXT NOT NULL,
		sequence_order INTEGER NOT NULL CHECK (sequence_order > 0),
		sync_id TEXT NOT NULL,
		path_label TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (shipment_id, shipment_direction_id, sequence_order)
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_checkpoints_district
	ON checkpoints(district_id);
	`

	statements := []string{
		createProvincesQuery,
		createDistrictsQuery,
		createAddressesQuery,
		createCheckpointsQuery,
		createDirectionsQuery,
		createSequencesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ProvinceSeed struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type DistrictSeed struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ProvinceID string `json:"province_id"`
}

type AddressSeed struct {
	ID         string `json:"id"`
	DistrictID string `json:"district_id"`
}

type CheckpointSeed struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	DistrictID     string   `json:"district_id"`
	CheckpointType string   `json:"checkpoint_type"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	NorthernNextID string   `json:"northern_next_id"`
	SouthernNextID string   `json:"southern_next_id"`
	EasternNextID  string   `json:"eastern_next_id"`
	WesternNextID  string   `json:"western_next_id"`
}

type DirectionSeed struct {
	ID                   string `json:"id"`
	ShipmentID           string `json:"shipment_id"`
	DepartureAddressID   string `json:"departure_address_id"`
	DestinationAddressID string `json:"destination_address_id"`
}

// Seed is the layout of the JSON seed file.
type Seed struct {
	Provinces          []ProvinceSeed   `json:"provinces"`
	Districts          []DistrictSeed   `json:"districts"`
	Addresses          []AddressSeed    `json:"addresses"`
	Checkpoints        []CheckpointSeed `json:"checkpoints"`
	ShipmentDirections []DirectionSeed  `json:"shipment_directions"`
}

func (s *Seed) validate() error {
	for i, p := range s.Provinces {
		if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("province at index %d: id and name are required", i+1)
		}
	}
	for i, d := range s.Districts {
		if strings.TrimSpace(d.ID) == "" || strings.TrimSpace(d.Name) == "" {
			return fmt.Errorf("district at index %d: id and name are required", i+1)
		}
	}
	for i, a := range s.Addresses {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("address at index %d: id is required", i+1)
		}
	}
	for i, c := range s.Checkpoints {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("checkpoint at index %d: id and name are required", i+1)
		}
		if !domain.CheckpointType(c.CheckpointType).Valid() {
			return fmt.Errorf("checkpoint %q: invalid checkpoint_type %q", c.ID, c.CheckpointType)
		}
		if (c.Latitude == nil) != (c.Longitude == nil) {
			return fmt.Errorf("checkpoint %q: latitude and longitude must be set together", c.ID)
		}
		if c.Latitude != nil {
			loc := domain.Coordinates{Lon: *c.Longitude, Lat: *c.Latitude}
			if err := loc.Validate(); err != nil {
				return fmt.Errorf("checkpoint %q: %w", c.ID, err)
			}
		}
	}
	for i, d := range s.ShipmentDirections {
		if strings.TrimSpace(d.ID) == "" || strings.TrimSpace(d.ShipmentID) == "" {
			return fmt.Errorf("shipment direction at index %d: id and shipment_id are required", i+1)
		}
	}
	return nil
}

// Populate the database with reference data from a JSON file. Rows are
// upserted by id, so the seed can be re-applied.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed: read %q: %w", jsonPath, err)
	}

	var seed Seed
	if err := json.Unmarshal(bytes, &seed); err != nil {
		return fmt.Errorf("seed: parse json: %w", err)
	}
	if err := seed.validate(); err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	steps := []struct {
		name  string
		query string
		args  func(yield func(args ...any) error) error
	}{
		{
			name: "provinces",
			query: `
			INSERT INTO provinces (id, name) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;
			`,
			args: func(yield func(args ...any) error) error {
				for _, p := range seed.Provinces {
					if err := yield(p.ID, p.Name); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "districts",
			query: `
			INSERT INTO districts (id, name, province_id) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, province_id = EXCLUDED.province_id;
			`,
			args: func(yield func(args ...any) error) error {
				for _, d := range seed.Districts {
					if err := yield(d.ID, d.Name, nullable(d.ProvinceID)); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "addresses",
			query: `
			INSERT INTO addresses (id, district_id) VALUES ($1, $2)
			ON CONFLICT (id) DO UPDATE SET district_id = EXCLUDED.district_id;
			`,
			args: func(yield func(args ...any) error) error {
				for _, a := range seed.Addresses {
					if err := yield(a.ID, nullable(a.DistrictID)); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			// Links are written in a second pass once every checkpoint exists.
			name: "checkpoints",
			query: `
			INSERT INTO checkpoints (id, name, district_id, checkpoint_type, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				district_id = EXCLUDED.district_id,
				checkpoint_type = EXCLUDED.checkpoint_type,
				latitude = EXCLUDED.latitude,
				longitude = EXCLUDED.longitude;
			`,
			args: func(yield func(args ...any) error) error {
				for _, c := range seed.Checkpoints {
					if err := yield(c.ID, c.Name, nullable(c.DistrictID), c.CheckpointType, c.Latitude, c.Longitude); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "checkpoint links",
			query: `
			UPDATE checkpoints SET
				northern_next_id = $2,
				southern_next_id = $3,
				eastern_next_id = $4,
				western_next_id = $5
			WHERE id = $1;
			`,
			args: func(yield func(args ...any) error) error {
				for _, c := range seed.Checkpoints {
					err := yield(c.ID,
						nullable(c.NorthernNextID), nullable(c.SouthernNextID),
						nullable(c.EasternNextID), nullable(c.WesternNextID))
					if err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			name: "shipment directions",
			query: `
			INSERT INTO shipment_directions (id, shipment_id, departure_address_id, destination_address_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET
				shipment_id = EXCLUDED.shipment_id,
				departure_address_id = EXCLUDED.departure_address_id,
				destination_address_id = EXCLUDED.destination_address_id;
			`,
			args: func(yield func(args ...any) error) error {
				for _, d := range seed.ShipmentDirections {
					err := yield(d.ID, d.ShipmentID, nullable(d.DepartureAddressID), nullable(d.DestinationAddressID))
					if err != nil {
						return err
					}
				}
				return nil
			},
		},
	}

	for _, step := range steps {
		stmt, err := tx.PrepareContext(ctx, step.query)
		if err != nil {
			return fmt.Errorf("seed %s: prepare: %w", step.name, err)
		}

		err = step.args(func(args ...any) error {
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return fmt.Errorf("seed %s: insert id=%v: %w", step.name, args[0], err)
			}
			return nil
		})
		_ = stmt.Close()
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit tx: %w", err)
	}

	return nil
}

// nullable maps an empty id to SQL NULL.
func nullable(id string) sql.NullString {
	id = strings.TrimSpace(id)
	return sql.NullString{String: id, Valid: id != ""}
}

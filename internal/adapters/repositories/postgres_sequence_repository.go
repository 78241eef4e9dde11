package repositories

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Postgres-backed implementation of the SequenceRepository port.
type PostgresSequenceRepository struct{ DB *sql.DB }

func NewPostgresSequenceRepository(db *sql.DB) *PostgresSequenceRepository {
	return &PostgresSequenceRepository{DB: db}
}

// Delete the leg's existing rows and insert the new ones in one transaction.
func (r *PostgresSequenceRepository) ReplaceSequence(
	ctx context.Context,
	shipmentID, directionID string,
	rows []domain.ShipmentCheckpointSequence,
) (err error) {
	defer obs.Time(ctx, "sequence.Replace")(&err)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("replace sequence: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	deleteQuery := `
	DELETE FROM shipment_checkpoint_sequences
	WHERE shipment_id = $1 AND shipment_direction_id = $2;
	`
	if _, err := tx.ExecContext(ctx, deleteQuery, shipmentID, directionID); err != nil {
		return fmt.Errorf("replace sequence: delete existing rows: %w", err)
	}

	insertQuery := `
	INSERT INTO shipment_checkpoint_sequences (
		shipment_id,
		shipment_direction_id,
		checkpoint_id,
		sequence_order,
		sync_id,
		path_label,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	stmt, err := tx.PrepareContext(ctx, insertQuery)
	if err != nil {
		return fmt.Errorf("replace sequence: prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, row := range rows {
		if row.ShipmentID != shipmentID || row.ShipmentDirectionID != directionID {
			return fmt.Errorf("replace sequence: row for %q/%q does not belong to %q/%q",
				row.ShipmentID, row.ShipmentDirectionID, shipmentID, directionID)
		}
		createdAt := row.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		_, err := stmt.ExecContext(ctx,
			row.ShipmentID,
			row.ShipmentDirectionID,
			row.CheckpointID,
			row.SequenceOrder,
			row.SyncID,
			string(row.Label),
			createdAt,
		)
		if err != nil {
			return fmt.Errorf("replace sequence: insert sequence_order=%d: %w", row.SequenceOrder, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("replace sequence: commit tx: %w", err)
	}

	return nil
}

func (r *PostgresSequenceRepository) ListSequence(
	ctx context.Context,
	shipmentID, directionID string,
) ([]domain.ShipmentCheckpointSequence, error) {
	query := `
	SELECT
		shipment_id,
		shipment_direction_id,
		checkpoint_id,
		sequence_order,
		sync_id,
		path_label,
		created_at
	FROM shipment_checkpoint_sequences
	WHERE shipment_id = $1 AND shipment_direction_id = $2
	ORDER BY sequence_order;
	`
	rows, err := r.DB.QueryContext(ctx, query, shipmentID, directionID)
	if err != nil {
		return nil, fmt.Errorf("list sequence: query: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ShipmentCheckpointSequence, 0, 16)
	for rows.Next() {
		var s domain.ShipmentCheckpointSequence
		var label string
		err := rows.Scan(
			&s.ShipmentID,
			&s.ShipmentDirectionID,
			&s.CheckpointID,
			&s.SequenceOrder,
			&s.SyncID,
			&label,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list sequence: scan row: %w", err)
		}
		s.Label = domain.PathLabel(label)
		out = append(out, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sequence: row iteration: %w", err)
	}

	return out, nil
}

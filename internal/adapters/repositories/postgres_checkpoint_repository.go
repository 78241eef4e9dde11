package repositories

import (
	"checkpoint-route-service/internal/domain"
	"checkpoint-route-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres-backed implementation of the CheckpointRepository port.
type PostgresCheckpointRepository struct{ DB *sql.DB }

func NewPostgresCheckpointRepository(db *sql.DB) *PostgresCheckpointRepository {
	return &PostgresCheckpointRepository{DB: db}
}

// linkColumn maps a direction to its column. Only these fixed names are
// ever interpolated into SQL.
func linkColumn(d domain.Direction) (string, error) {
	switch d {
	case domain.North:
		return "northern_next_id", nil
	case domain.South:
		return "southern_next_id", nil
	case domain.East:
		return "eastern_next_id", nil
	case domain.West:
		return "western_next_id", nil
	}
	return "", fmt.Errorf("link column %q: %w", d, domain.ErrInvalidDirection)
}

// Return every checkpoint with district and province names resolved.
// Missing names come back as placeholders.
func (r *PostgresCheckpointRepository) ListCheckpoints(ctx context.Context) (_ []domain.CheckpointNode, err error) {
	defer obs.Time(ctx, "checkpoints.List")(&err)

	if r.DB == nil {
		return nil, errors.New("postgres checkpoint repository: DB is nil")
	}

	query := `
	SELECT
		c.id,
		c.name,
		COALESCE(c.district_id, ''),
		COALESCE(d.name, $1),
		COALESCE(p.name, $2),
		c.checkpoint_type,
		c.latitude,
		c.longitude,
		COALESCE(c.northern_next_id, ''),
		COALESCE(c.southern_next_id, ''),
		COALESCE(c.eastern_next_id, ''),
		COALESCE(c.western_next_id, '')
	FROM checkpoints c
	LEFT JOIN districts d ON d.id = c.district_id
	LEFT JOIN provinces p ON p.id = d.province_id
	ORDER BY c.id;
	`
	rows, err := r.DB.QueryContext(ctx, query, domain.UnknownDistrictName, domain.UnknownProvinceName)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: query checkpoints table: %w", err)
	}
	defer rows.Close()

	nodes := make([]domain.CheckpointNode, 0, 64)
	for rows.Next() {
		var n domain.CheckpointNode
		var cpType string
		var lat, lon sql.NullFloat64
		err := rows.Scan(
			&n.CheckpointID,
			&n.Name,
			&n.DistrictID,
			&n.DistrictName,
			&n.ProvinceName,
			&cpType,
			&lat,
			&lon,
			&n.NorthernNext,
			&n.SouthernNext,
			&n.EasternNext,
			&n.WesternNext,
		)
		if err != nil {
			return nil, fmt.Errorf("list checkpoints: scan row: %w", err)
		}
		n.CheckpointType = domain.CheckpointType(cpType)
		if lat.Valid && lon.Valid {
			n.Location = &domain.Coordinates{Lon: lon.Float64, Lat: lat.Float64}
		}
		nodes = append(nodes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list checkpoints: row iteration: %w", err)
	}

	return nodes, nil
}

// UpdateLinks overwrites the four link slots of one checkpoint as given.
// Reverse links are left alone. An unknown neighbor id is ErrNotFound.
func (r *PostgresCheckpointRepository) UpdateLinks(ctx context.Context, checkpointID string, links domain.Links) (err error) {
	defer obs.Time(ctx, "checkpoints.UpdateLinks")(&err)

	query := `
	UPDATE checkpoints SET
		northern_next_id = $2,
		southern_next_id = $3,
		eastern_next_id = $4,
		western_next_id = $5
	WHERE id = $1;
	`
	res, err := r.DB.ExecContext(ctx, query, checkpointID,
		nullable(links.NorthernNext), nullable(links.SouthernNext),
		nullable(links.EasternNext), nullable(links.WesternNext))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("update links: checkpoint %q: neighbor: %w", checkpointID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update links: checkpoint %q: %w", checkpointID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update links: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update links: checkpoint %q: %w", checkpointID, domain.ErrNotFound)
	}

	return nil
}

// deadlockAttempts bounds how often a link edit is replayed after Postgres
// aborts it as a deadlock victim.
const deadlockAttempts = 3

const (
	sqlStateDeadlock            = "40P01"
	sqlStateForeignKeyViolation = "23503"
)

// Link sets checkpointID.dir = neighborID and the reverse slot on the
// neighbor in one transaction. Both rows are locked first, in id order.
func (r *PostgresCheckpointRepository) Link(
	ctx context.Context,
	checkpointID, neighborID string,
	dir domain.Direction,
) (err error) {
	defer obs.Time(ctx, "checkpoints.Link")(&err)

	col, err := linkColumn(dir)
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}
	rev, err := linkColumn(dir.Opposite())
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}

	return retryOnDeadlock(ctx, func() error {
		return r.link(ctx, checkpointID, neighborID, col, rev)
	})
}

func (r *PostgresCheckpointRepository) link(ctx context.Context, checkpointID, neighborID, col, rev string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("link: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	oldA, oldB, err := lockPair(ctx, tx, checkpointID, col, neighborID, rev)
	if err != nil {
		return fmt.Errorf("link: %w", err)
	}

	// Detach whatever either side pointed at before.
	if oldA != "" && oldA != neighborID {
		if err := clearIfPointsTo(ctx, tx, oldA, rev, checkpointID); err != nil {
			return fmt.Errorf("link: %w", err)
		}
	}
	if oldB != "" && oldB != checkpointID {
		if err := clearIfPointsTo(ctx, tx, oldB, col, neighborID); err != nil {
			return fmt.Errorf("link: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE checkpoints SET `+col+` = $2 WHERE id = $1;`, checkpointID, neighborID); err != nil {
		return fmt.Errorf("link: set %s on %q: %w", col, checkpointID, err)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE checkpoints SET `+rev+` = $2 WHERE id = $1;`, neighborID, checkpointID); err != nil {
		return fmt.Errorf("link: set %s on %q: %w", rev, neighborID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("link: commit tx: %w", err)
	}

	return nil
}

func (r *PostgresCheckpointRepository) Unlink(ctx context.Context, checkpointID string, dir domain.Direction) (err error) {
	defer obs.Time(ctx, "checkpoints.Unlink")(&err)

	col, err := linkColumn(dir)
	if err != nil {
		return fmt.Errorf("unlink: %w", err)
	}
	rev, err := linkColumn(dir.Opposite())
	if err != nil {
		return fmt.Errorf("unlink: %w", err)
	}

	return retryOnDeadlock(ctx, func() error {
		return r.unlink(ctx, checkpointID, col, rev)
	})
}

func (r *PostgresCheckpointRepository) unlink(ctx context.Context, checkpointID, col, rev string) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("unlink: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	old, err := lockSlot(ctx, tx, checkpointID, col)
	if err != nil {
		return fmt.Errorf("unlink: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE checkpoints SET `+col+` = NULL WHERE id = $1;`, checkpointID); err != nil {
		return fmt.Errorf("unlink: clear %s on %q: %w", col, checkpointID, err)
	}
	if old != "" {
		if err := clearIfPointsTo(ctx, tx, old, rev, checkpointID); err != nil {
			return fmt.Errorf("unlink: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("unlink: commit tx: %w", err)
	}

	return nil
}

// lockSlot locks the checkpoint row and returns the current value of col.
func lockSlot(ctx context.Context, tx *sql.Tx, checkpointID, col string) (string, error) {
	var current sql.NullString
	err := tx.QueryRowContext(ctx,
		`SELECT `+col+` FROM checkpoints WHERE id = $1 FOR UPDATE;`, checkpointID,
	).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("checkpoint %q: %w", checkpointID, domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("lock checkpoint %q: %w", checkpointID, err)
	}
	return current.String, nil
}

// lockPair locks rows a and b with one statement in id order, so two
// reciprocal edits never wait on each other crosswise. It returns a.aCol
// and b.bCol.
func lockPair(ctx context.Context, tx *sql.Tx, aID, aCol, bID, bCol string) (string, string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, `+aCol+`, `+bCol+` FROM checkpoints WHERE id IN ($1, $2) ORDER BY id FOR UPDATE;`,
		aID, bID)
	if err != nil {
		return "", "", fmt.Errorf("lock checkpoints %q, %q: %w", aID, bID, err)
	}
	defer rows.Close()

	var oldA, oldB string
	var seenA, seenB bool
	for rows.Next() {
		var id string
		var colA, colB sql.NullString
		if err := rows.Scan(&id, &colA, &colB); err != nil {
			return "", "", fmt.Errorf("lock checkpoints: scan: %w", err)
		}
		if id == aID {
			oldA, seenA = colA.String, true
		}
		if id == bID {
			oldB, seenB = colB.String, true
		}
	}
	if err := rows.Err(); err != nil {
		return "", "", fmt.Errorf("lock checkpoints: row iteration: %w", err)
	}

	if !seenA {
		return "", "", fmt.Errorf("checkpoint %q: %w", aID, domain.ErrNotFound)
	}
	if !seenB {
		return "", "", fmt.Errorf("checkpoint %q: %w", bID, domain.ErrNotFound)
	}
	return oldA, oldB, nil
}

func clearIfPointsTo(ctx context.Context, tx *sql.Tx, checkpointID, col, target string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE checkpoints SET `+col+` = NULL WHERE id = $1 AND `+col+` = $2;`, checkpointID, target)
	if err != nil {
		return fmt.Errorf("detach %s on %q: %w", col, checkpointID, err)
	}
	return nil
}

// retryOnDeadlock replays fn while Postgres reports it as a deadlock victim.
// Edits that also detach third checkpoints can still cross lock orders.
func retryOnDeadlock(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= deadlockAttempts; attempt++ {
		if err = fn(); err == nil || !isDeadlock(err) {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return err
}

func isDeadlock(err error) bool {
	return hasSQLState(err, sqlStateDeadlock)
}

func isForeignKeyViolation(err error) bool {
	return hasSQLState(err, sqlStateForeignKeyViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

package quick_roll

import (
	"context"
	"errors"
	"fmt"

	"github.com/PedroPerillo/dndice/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const quickRollColumns = "id, user_id, COALESCE(name, ''), count, dice_type, modifier, created_at"

// PostgresConfig holds configuration for the Postgres quick roll repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface over the quick_rolls table
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed quick roll repository. The schema
// is expected to be migrated already.
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.Pool == nil {
		return nil, ErrNilPool
	}

	return &postgresRepository{
		pool: cfg.Pool,
	}, nil
}

func scanQuickRoll(row pgx.Row) (*models.QuickRoll, error) {
	var q models.QuickRoll
	if err := row.Scan(&q.ID, &q.OwnerID, &q.Name, &q.Count, &q.DieSize, &q.Modifier, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.CreatedAt = q.CreatedAt.UTC()
	return &q, nil
}

// nullableName stores blank names as NULL
func nullableName(name string) *string {
	if name == "" {
		return nil
	}
	return &name
}

// ListQuickRolls returns the owner's rows newest first, insertion order breaking timestamp ties
func (r *postgresRepository) ListQuickRolls(ctx context.Context, input *ListQuickRollsInput) (*ListQuickRollsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+quickRollColumns+`
		FROM quick_rolls
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC`, input.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query quick rolls: %w", err)
	}
	defer rows.Close()

	quickRolls := []*models.QuickRoll{}
	for rows.Next() {
		q, err := scanQuickRoll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quick roll: %w", err)
		}
		quickRolls = append(quickRolls, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quick rolls: %w", err)
	}

	return &ListQuickRollsOutput{
		QuickRolls: quickRolls,
	}, nil
}

// CreateQuickRoll inserts a row; id and created_at come from the database
func (r *postgresRepository) CreateQuickRoll(ctx context.Context, input *CreateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	q := input.QuickRoll
	if q.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO quick_rolls (user_id, name, count, dice_type, modifier)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+quickRollColumns,
		q.OwnerID, nullableName(q.Name), q.Count, q.DieSize, q.Modifier)

	created, err := scanQuickRoll(row)
	if err != nil {
		return nil, fmt.Errorf("failed to insert quick roll: %w", err)
	}

	return created, nil
}

// GetQuickRoll retrieves one of the owner's rows
func (r *postgresRepository) GetQuickRoll(ctx context.Context, input *GetQuickRollInput) (*models.QuickRoll, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	if input.ID == "" {
		return nil, ErrMissingID
	}

	row := r.pool.QueryRow(ctx, `
		SELECT `+quickRollColumns+`
		FROM quick_rolls
		WHERE id = $1 AND user_id = $2`, input.ID, input.OwnerID)

	q, err := scanQuickRoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuickRollNotFound
		}
		return nil, fmt.Errorf("failed to get quick roll: %w", err)
	}

	return q, nil
}

// UpdateQuickRoll replaces name and dice fields of one of the owner's rows
func (r *postgresRepository) UpdateQuickRoll(ctx context.Context, input *UpdateQuickRollInput) (*models.QuickRoll, error) {
	if input == nil || input.QuickRoll == nil {
		return nil, ErrNilInput
	}

	q := input.QuickRoll
	if q.OwnerID == "" {
		return nil, ErrMissingOwner
	}

	if q.ID == "" {
		return nil, ErrMissingID
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE quick_rolls
		SET name = $3, count = $4, dice_type = $5, modifier = $6
		WHERE id = $1 AND user_id = $2
		RETURNING `+quickRollColumns,
		q.ID, q.OwnerID, nullableName(q.Name), q.Count, q.DieSize, q.Modifier)

	updated, err := scanQuickRoll(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuickRollNotFound
		}
		return nil, fmt.Errorf("failed to update quick roll: %w", err)
	}

	return updated, nil
}

// DeleteQuickRoll removes one of the owner's rows, if present
func (r *postgresRepository) DeleteQuickRoll(ctx context.Context, input *DeleteQuickRollInput) error {
	if input == nil {
		return ErrNilInput
	}

	if input.OwnerID == "" {
		return ErrMissingOwner
	}

	if input.ID == "" {
		return ErrMissingID
	}

	if _, err := r.pool.Exec(ctx, `DELETE FROM quick_rolls WHERE id = $1 AND user_id = $2`, input.ID, input.OwnerID); err != nil {
		return fmt.Errorf("failed to delete quick roll: %w", err)
	}

	return nil
}

// Ping checks the database connection
func (r *postgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

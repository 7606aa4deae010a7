package character

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
//
// The verified-duplicate invariant is enforced by a partial unique index:
//
//	CREATE UNIQUE INDEX characters_verified_lodestone_idx
//	ON characters (lodestone_id) WHERE verified;
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new character record. The existence check for a verified
// duplicate runs in the same statement so two unverified creates never race
// past each other into an invalid state.
func (r *PostgresRepository) Create(ctx context.Context, c *Character) error {
	query := `
		INSERT INTO characters (user_id, lodestone_id, name, world, avatar_url, verified)
		SELECT $1, $2, $3, $4, $5, FALSE
		WHERE NOT EXISTS (
			SELECT 1 FROM characters WHERE lodestone_id = $2 AND verified
		)
		RETURNING id, verified, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, c.UserID, c.LodestoneID, c.Name, c.World, c.AvatarURL).
		Scan(&c.ID, &c.Verified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrVerifiedDuplicate
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrVerifiedDuplicate
		}
		return fmt.Errorf("inserting character: %w", err)
	}

	return nil
}

// ListByUser retrieves all of a user's characters in creation order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Character, error) {
	query := `
		SELECT id, user_id, lodestone_id, name, world, avatar_url, verified, created_at, updated_at
		FROM characters
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	var chars []Character
	for rows.Next() {
		var c Character
		err := rows.Scan(&c.ID, &c.UserID, &c.LodestoneID, &c.Name, &c.World, &c.AvatarURL, &c.Verified, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		chars = append(chars, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating character rows: %w", err)
	}

	if chars == nil {
		chars = []Character{}
	}

	return chars, nil
}

// GetByID retrieves a single character by its UUID, regardless of owner.
// Used by the verification worker, never by request handlers.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Character, error) {
	return r.get(ctx, `
		SELECT id, user_id, lodestone_id, name, world, avatar_url, verified, created_at, updated_at
		FROM characters
		WHERE id = $1`, id)
}

// GetForUser retrieves a character owned by the given user. A character owned
// by someone else yields ErrCharacterNotFound, same as a missing one.
func (r *PostgresRepository) GetForUser(ctx context.Context, id, userID uuid.UUID) (*Character, error) {
	return r.get(ctx, `
		SELECT id, user_id, lodestone_id, name, world, avatar_url, verified, created_at, updated_at
		FROM characters
		WHERE id = $1 AND user_id = $2`, id, userID)
}

func (r *PostgresRepository) get(ctx context.Context, query string, args ...any) (*Character, error) {
	var c Character
	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&c.ID, &c.UserID, &c.LodestoneID, &c.Name, &c.World, &c.AvatarURL, &c.Verified, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCharacterNotFound
		}
		return nil, fmt.Errorf("querying character: %w", err)
	}

	return &c, nil
}

// MarkVerified flips the verified flag. The WHERE clause makes the
// check-then-set atomic: of two concurrent verification tasks for the same
// character, exactly one sees a row updated and the other gets
// ErrAlreadyVerified.
func (r *PostgresRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE characters
		SET verified = TRUE, updated_at = NOW()
		WHERE id = $1 AND NOT verified`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("marking character verified: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrAlreadyVerified
	}

	return nil
}

// Delete removes a character by its UUID. Team membership and BIS list rows
// cascade via foreign keys.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrCharacterNotFound
	}

	return nil
}

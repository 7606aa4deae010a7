package bis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// CreateList inserts a new BIS list record.
func (r *PostgresRepository) CreateList(ctx context.Context, l *BISList) error {
	query := `
		INSERT INTO bis_lists (owner_id, job_code)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query, l.OwnerID, l.JobCode).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("inserting bis list: %w", err)
	}

	return nil
}

// ListByCharacter retrieves all BIS lists owned by a character, oldest first.
func (r *PostgresRepository) ListByCharacter(ctx context.Context, characterID uuid.UUID) ([]BISList, error) {
	query := `
		SELECT id, owner_id, job_code, created_at, updated_at
		FROM bis_lists
		WHERE owner_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("listing bis lists: %w", err)
	}
	defer rows.Close()

	var lists []BISList
	for rows.Next() {
		var l BISList
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.JobCode, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning bis list row: %w", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bis list rows: %w", err)
	}

	if lists == nil {
		lists = []BISList{}
	}

	return lists, nil
}

// GetJob retrieves a job from the catalogue by its code.
func (r *PostgresRepository) GetJob(ctx context.Context, code string) (*Job, error) {
	query := `
		SELECT code, name, role, ordering
		FROM jobs
		WHERE code = $1`

	var j Job
	err := r.pool.QueryRow(ctx, query, code).Scan(&j.Code, &j.Name, &j.Role, &j.Ordering)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("querying job: %w", err)
	}

	return &j, nil
}

// SeedJobs inserts the job catalogue if the jobs table is empty.
func (r *PostgresRepository) SeedJobs(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting jobs: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	query := `
		INSERT INTO jobs (code, name, role, ordering)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO NOTHING`

	inserted := 0
	for _, j := range jobCatalogue {
		tag, err := r.pool.Exec(ctx, query, j.Code, j.Name, j.Role, j.Ordering)
		if err != nil {
			return inserted, fmt.Errorf("seeding job %s: %w", j.Code, err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

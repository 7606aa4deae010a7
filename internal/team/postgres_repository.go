package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// inviteCodeRetries bounds how often Create regenerates a colliding code.
const inviteCodeRetries = 3

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new team record. An empty InviteCode is filled with a
// generated one; collisions on the unique index are retried with fresh codes.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	query := `
		INSERT INTO teams (name, invite_code, tier_name)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		if t.InviteCode == "" {
			code, err := GenerateInviteCode()
			if err != nil {
				return err
			}
			t.InviteCode = code
		}

		err := r.pool.QueryRow(ctx, query, t.Name, t.InviteCode, t.TierName).
			Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
		if err == nil {
			return nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			t.InviteCode = ""
			continue
		}
		return fmt.Errorf("inserting team: %w", err)
	}

	return ErrDuplicateInviteCode
}

// GetByID retrieves a single team by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT id, name, invite_code, tier_name, created_at, updated_at
		FROM teams
		WHERE id = $1`

	var t Team
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.InviteCode, &t.TierName, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// AddMember inserts a team membership row.
func (r *PostgresRepository) AddMember(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO team_members (team_id, character_id, bis_list_id, lead)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	err := r.pool.QueryRow(ctx, query, m.TeamID, m.CharacterID, m.BISListID, m.Lead).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("inserting team member: %w", err)
	}

	return nil
}

// ImpactForCharacter aggregates the character's teams with their current
// member counts and the character's lead flag in each.
func (r *PostgresRepository) ImpactForCharacter(ctx context.Context, characterID uuid.UUID) ([]ImpactEntry, error) {
	query := `
		SELECT t.name,
		       (SELECT COUNT(*) FROM team_members c WHERE c.team_id = t.id) AS members,
		       m.lead
		FROM teams t
		JOIN team_members m ON m.team_id = t.id
		WHERE m.character_id = $1`

	rows, err := r.pool.Query(ctx, query, characterID)
	if err != nil {
		return nil, fmt.Errorf("querying character team impact: %w", err)
	}
	defer rows.Close()

	var entries []ImpactEntry
	for rows.Next() {
		var e ImpactEntry
		if err := rows.Scan(&e.Name, &e.Members, &e.Lead); err != nil {
			return nil, fmt.Errorf("scanning impact row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating impact rows: %w", err)
	}

	if entries == nil {
		entries = []ImpactEntry{}
	}

	return entries, nil
}

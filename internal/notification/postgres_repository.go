package notification

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

// Create inserts a new notification record, unread.
func (r *PostgresRepository) Create(ctx context.Context, n *Notification) error {
	query := `
		INSERT INTO notifications (user_id, link, text, type, read)
		VALUES ($1, $2, $3, $4, FALSE)
		RETURNING id, read, created_at`

	err := r.pool.QueryRow(ctx, query, n.UserID, n.Link, n.Text, n.Type).
		Scan(&n.ID, &n.Read, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting notification: %w", err)
	}

	return nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	query := `
		SELECT id, user_id, link, text, type, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifs []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Link, &n.Text, &n.Type, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification row: %w", err)
		}
		notifs = append(notifs, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	if notifs == nil {
		notifs = []Notification{}
	}

	return notifs, nil
}

// PostgresSettingsRepository implements SettingsRepository using pgxpool.
// The notifications preference map is stored as jsonb.
type PostgresSettingsRepository struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a new SettingsRepository backed by the given pool.
func NewSettingsRepository(pool *pgxpool.Pool) SettingsRepository {
	return &PostgresSettingsRepository{pool: pool}
}

// GetByUser retrieves a user's settings row.
func (r *PostgresSettingsRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*Settings, error) {
	query := `
		SELECT user_id, theme, notifications
		FROM settings
		WHERE user_id = $1`

	var s Settings
	err := r.pool.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.Theme, &s.Notifications)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("querying settings: %w", err)
	}

	return &s, nil
}

// Upsert creates or replaces a user's settings row.
func (r *PostgresSettingsRepository) Upsert(ctx context.Context, s *Settings) error {
	query := `
		INSERT INTO settings (user_id, theme, notifications)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET theme = EXCLUDED.theme, notifications = EXCLUDED.notifications`

	if _, err := r.pool.Exec(ctx, query, s.UserID, s.Theme, s.Notifications); err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}

	return nil
}

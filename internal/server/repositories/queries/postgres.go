// Package queries provides a PostgreSQL-backed repository for the per-user
// query history.
package queries

import (
	"context"
	"fmt"

	"github.com/voiceviz/voiceviz-server/internal/dbx"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a query-history entry for its owning user.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.QueryHistoryEntry) (*models.QueryHistoryEntry, error) {
	query := `
		INSERT INTO query_history (id, user_id, query_text)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, entry.ID, entry.UserID, entry.QueryText).
		Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return entry, nil
}

// ListByUser returns the user's query history, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.QueryHistoryEntry, error) {
	query := `
		SELECT id, user_id, query_text, created_at
		FROM query_history
		WHERE user_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var entries []*models.QueryHistoryEntry
	for rows.Next() {
		entry := &models.QueryHistoryEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.QueryText, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entries, nil
}

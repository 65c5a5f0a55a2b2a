package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/voiceviz/voiceviz-server/internal/server/models"
	"github.com/voiceviz/voiceviz-server/internal/server/repositories/repomanager"
)

// QueryService records and retrieves the per-user query history.
type QueryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQueryService(db *sql.DB, m repomanager.RepositoryManager) *QueryService {
	return &QueryService{db: db, repomanager: m}
}

// Record appends an executed query to the user's history.
func (s *QueryService) Record(ctx context.Context, userID, queryText string) (*models.QueryHistoryEntry, error) {
	entry := &models.QueryHistoryEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		QueryText: queryText,
	}

	repo := s.repomanager.Queries(s.db)
	entry, err := repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error recording query: %w", err)
	}

	return entry, nil
}

// History returns the user's recorded queries, oldest first.
func (s *QueryService) History(ctx context.Context, userID string) ([]*models.QueryHistoryEntry, error) {
	repo := s.repomanager.Queries(s.db)

	entries, err := repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing query history: %w", err)
	}

	return entries, nil
}

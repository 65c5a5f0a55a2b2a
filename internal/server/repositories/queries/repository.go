package queries

import (
	"context"

	"github.com/voiceviz/voiceviz-server/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, entry *models.QueryHistoryEntry) (*models.QueryHistoryEntry, error)
	ListByUser(ctx context.Context, userID string) ([]*models.QueryHistoryEntry, error)
}

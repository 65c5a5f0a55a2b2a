package models

import "time"

// QueryHistoryEntry records one query a user executed.
type QueryHistoryEntry struct {
	ID        string
	UserID    string
	QueryText string
	CreatedAt time.Time
}

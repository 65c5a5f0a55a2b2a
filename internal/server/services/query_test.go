package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voiceviz/voiceviz-server/internal/server/models"
)

func TestQueryService_Record_Success(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{queries: &fakeQueriesRepo{}}
	s := NewQueryService(db, rm)

	entry, err := s.Record(context.Background(), "u-1", "SELECT 1")
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected a system-assigned id")
	}
	if entry.UserID != "u-1" || entry.QueryText != "SELECT 1" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestQueryService_Record_RepoError(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{queries: &fakeQueriesRepo{createErr: errors.New("db down")}}
	s := NewQueryService(db, rm)

	_, err := s.Record(context.Background(), "u-1", "SELECT 1")
	if err == nil {
		t.Fatalf("expected error when the repository fails")
	}
}

func TestQueryService_History_ReturnsEntries(t *testing.T) {
	db, _ := newSQLMockDB(t)
	want := []*models.QueryHistoryEntry{
		{ID: "q-1", UserID: "u-1", QueryText: "SELECT 1", CreatedAt: time.Now().Add(-time.Hour)},
		{ID: "q-2", UserID: "u-1", QueryText: "SELECT 2", CreatedAt: time.Now()},
	}
	rm := &fakeRepoManager{queries: &fakeQueriesRepo{listOut: want}}
	s := NewQueryService(db, rm)

	got, err := s.History(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 2 || got[0].ID != "q-1" || got[1].ID != "q-2" {
		t.Fatalf("unexpected history: %+v", got)
	}
}

func TestQueryService_History_Empty(t *testing.T) {
	db, _ := newSQLMockDB(t)
	rm := &fakeRepoManager{queries: &fakeQueriesRepo{}}
	s := NewQueryService(db, rm)

	got, err := s.History(context.Background(), "u-2")
	if err != nil {
		t.Fatalf("History error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty history, got %+v", got)
	}
}

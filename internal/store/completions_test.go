package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"chorewheel/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCompletionStore(t *testing.T) {
	db := setupTestDB(t)
	cs := NewCompletionStore(db)

	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	sub1 := uuid.New().String()
	sub2 := uuid.New().String()

	t.Run("Latest on empty store returns nil", func(t *testing.T) {
		got, err := cs.Latest("vacuum")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Fatalf("expected nil, got %+v", got)
		}
	})

	t.Run("AppendBatch and Latest", func(t *testing.T) {
		batch := []models.CompletionRecord{
			{TaskName: "vacuum", DoneAt: base, SubmissionID: sub1},
			{TaskName: "bins", DoneAt: base, SubmissionID: sub1},
		}
		if err := cs.AppendBatch(batch); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		got, err := cs.Latest("vacuum")
		if err != nil {
			t.Fatalf("latest failed: %v", err)
		}
		if got == nil || !got.DoneAt.Equal(base) {
			t.Fatalf("expected completion at %s, got %+v", base, got)
		}
		if got.SubmissionID != sub1 {
			t.Fatalf("submission id mismatch: %s", got.SubmissionID)
		}
	})

	t.Run("Latest picks most recent", func(t *testing.T) {
		later := base.Add(7 * 24 * time.Hour)
		if err := cs.AppendBatch([]models.CompletionRecord{
			{TaskName: "vacuum", DoneAt: later, SubmissionID: sub2},
		}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		got, err := cs.Latest("vacuum")
		if err != nil {
			t.Fatalf("latest failed: %v", err)
		}
		if !got.DoneAt.Equal(later) {
			t.Fatalf("expected %s, got %s", later, got.DoneAt)
		}
	})

	t.Run("LatestAll", func(t *testing.T) {
		latest, err := cs.LatestAll()
		if err != nil {
			t.Fatalf("latest all failed: %v", err)
		}
		if len(latest) != 2 {
			t.Fatalf("expected 2 tasks, got %d", len(latest))
		}
		if !latest["bins"].Equal(base) {
			t.Fatalf("bins latest mismatch: %s", latest["bins"])
		}
	})

	t.Run("All is ordered and complete", func(t *testing.T) {
		all, err := cs.All("")
		if err != nil {
			t.Fatalf("all failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("expected 3 records, got %d", len(all))
		}
		for i := 1; i < len(all); i++ {
			if all[i].DoneAt.Before(all[i-1].DoneAt) {
				t.Fatal("history not ordered by completion time")
			}
		}

		vacuumOnly, err := cs.All("vacuum")
		if err != nil {
			t.Fatalf("filtered all failed: %v", err)
		}
		if len(vacuumOnly) != 2 {
			t.Fatalf("expected 2 vacuum records, got %d", len(vacuumOnly))
		}
	})

	t.Run("AppendBatch with no records is a no-op", func(t *testing.T) {
		if err := cs.AppendBatch(nil); err != nil {
			t.Fatalf("empty append failed: %v", err)
		}
		count, err := db.CompletionCount()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 3 {
			t.Fatalf("expected 3 records, got %d", count)
		}
	})
}

package store

import (
	"database/sql"
	"fmt"
	"time"

	"chorewheel/internal/models"
)

// CompletionStore handles the append-only completion log. Records are never
// updated or deleted; only the most recent per task drives status, but the
// full history feeds the timeline and audit views.
type CompletionStore struct {
	db *DB
}

func NewCompletionStore(db *DB) *CompletionStore {
	return &CompletionStore{db: db}
}

// AppendBatch inserts all records inside a single transaction so the batch
// becomes durably visible together or not at all.
func (s *CompletionStore) AppendBatch(records []models.CompletionRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO completions (task_name, done_at, submission_id, created_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, r := range records {
		if _, err := stmt.Exec(r.TaskName, r.DoneAt.Unix(), r.SubmissionID, now); err != nil {
			return fmt.Errorf("insert completion for %s: %w", r.TaskName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// Latest returns the most recent completion for a task, or nil when the task
// has never been completed.
func (s *CompletionStore) Latest(taskName string) (*models.CompletionRecord, error) {
	row := s.db.QueryRow(`
		SELECT task_name, done_at, submission_id FROM completions
		WHERE task_name = ? ORDER BY done_at DESC, id DESC LIMIT 1
	`, taskName)

	var r models.CompletionRecord
	var doneAt int64
	err := row.Scan(&r.TaskName, &doneAt, &r.SubmissionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest completion for %s: %w", taskName, err)
	}
	r.DoneAt = time.Unix(doneAt, 0).UTC()
	return &r, nil
}

// LatestAll returns the most recent completion time per task in one query.
func (s *CompletionStore) LatestAll() (map[string]time.Time, error) {
	rows, err := s.db.Query(`
		SELECT task_name, MAX(done_at) FROM completions GROUP BY task_name
	`)
	if err != nil {
		return nil, fmt.Errorf("latest completions: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time)
	for rows.Next() {
		var name string
		var doneAt int64
		if err := rows.Scan(&name, &doneAt); err != nil {
			return nil, fmt.Errorf("scan latest completion: %w", err)
		}
		latest[name] = time.Unix(doneAt, 0).UTC()
	}
	return latest, rows.Err()
}

// All returns the full completion history ordered by completion time, oldest
// first. An empty taskName returns every task's history.
func (s *CompletionStore) All(taskName string) ([]models.CompletionRecord, error) {
	query := `SELECT task_name, done_at, submission_id FROM completions ORDER BY done_at, id`
	args := []any{}
	if taskName != "" {
		query = `SELECT task_name, done_at, submission_id FROM completions
			WHERE task_name = ? ORDER BY done_at, id`
		args = append(args, taskName)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var records []models.CompletionRecord
	for rows.Next() {
		var r models.CompletionRecord
		var doneAt int64
		if err := rows.Scan(&r.TaskName, &doneAt, &r.SubmissionID); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		r.DoneAt = time.Unix(doneAt, 0).UTC()
		records = append(records, r)
	}
	return records, rows.Err()
}

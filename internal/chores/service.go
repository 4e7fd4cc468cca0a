// Package chores is the completion transaction processor: it validates
// submission batches against the recurrence engine and commits them to the
// durable store atomically under a single-writer lock.
package chores

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"chorewheel/internal/models"
	"chorewheel/internal/recurrence"
	"chorewheel/internal/store"
	"chorewheel/internal/timeline"
)

// Service orchestrates submissions and the read paths over a fixed set of
// task definitions. Definitions are immutable after load; all mutable state
// lives in the completion log.
type Service struct {
	defs        map[string]models.TaskDefinition
	order       []string // file order, for stable listings
	completions *store.CompletionStore

	// writeSem serializes the read-validate-write sequence of submissions.
	// Capacity one: whoever holds the slot is the single writer. Readers
	// never touch it.
	writeSem chan struct{}
	lockWait time.Duration

	cachePath string // "" disables the status cache rewrite
	logger    *slog.Logger
}

func NewService(defs []models.TaskDefinition, completions *store.CompletionStore, cachePath string, lockWait time.Duration, logger *slog.Logger) *Service {
	byName := make(map[string]models.TaskDefinition, len(defs))
	order := make([]string, 0, len(defs))
	for _, d := range defs {
		byName[d.Name] = d
		order = append(order, d.Name)
	}
	return &Service{
		defs:        byName,
		order:       order,
		completions: completions,
		writeSem:    make(chan struct{}, 1),
		lockWait:    lockWait,
		cachePath:   cachePath,
		logger:      logger,
	}
}

// Submit applies a batch of "mark done" submissions at the given server
// timestamp. The batch is all-or-nothing: any unknown task name rejects the
// whole submission, and the appends for eligible tasks commit in a single
// transaction. Tasks already done are accepted as idempotent no-ops so
// duplicate clicks and retries never append duplicate history.
func (s *Service) Submit(ctx context.Context, names []string, at time.Time) (*models.SubmitResponse, error) {
	// The log stores second granularity; truncate up front so the reported
	// CompletedAt always matches the durable DoneAt.
	at = at.Truncate(time.Second)
	names = dedupe(names)

	var unknown []string
	for _, name := range names {
		if _, ok := s.defs[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		return nil, &UnknownTaskError{Tasks: unknown}
	}

	// Single-writer discipline: two concurrent submissions must not both
	// observe stale "not yet done" state and double-append.
	if err := s.acquireWrite(ctx); err != nil {
		return nil, err
	}
	defer s.releaseWrite()

	submissionID := uuid.New().String()
	resp := &models.SubmitResponse{SubmissionID: submissionID, CompletedAt: at}
	var records []models.CompletionRecord

	for _, name := range names {
		def := s.defs[name]
		last, err := s.completions.Latest(name)
		if err != nil {
			return nil, err
		}

		var lastDone *time.Time
		if last != nil {
			lastDone = &last.DoneAt
		}

		if recurrence.Status(def, lastDone, at) == models.StatusDone {
			resp.Results = append(resp.Results, models.TaskResult{
				Task:   name,
				Status: models.StatusDone,
			})
			continue
		}

		records = append(records, models.CompletionRecord{
			TaskName:     name,
			DoneAt:       at,
			SubmissionID: submissionID,
		})
		resp.Results = append(resp.Results, models.TaskResult{
			Task:           name,
			Status:         models.StatusDone,
			NewlyCompleted: true,
		})
	}

	if err := s.completions.AppendBatch(records); err != nil {
		return nil, err
	}

	s.refreshStatusCache(at)

	s.logger.Info("submission committed",
		"submission_id", submissionID,
		"tasks", len(names),
		"appended", len(records),
	)
	return resp, nil
}

// Statuses returns the derived status for every active task, lock-free,
// against the most recently committed snapshot.
func (s *Service) Statuses(now time.Time) ([]models.TaskStatusView, error) {
	latest, err := s.completions.LatestAll()
	if err != nil {
		return nil, err
	}

	views := make([]models.TaskStatusView, 0, len(s.order))
	for _, name := range s.order {
		def := s.defs[name]

		var lastDone *time.Time
		if t, ok := latest[name]; ok {
			lastDone = &t
		}

		view := models.TaskStatusView{
			Task:     name,
			Every:    def.Every,
			LeadTime: def.LeadTime,
			Status:   recurrence.Status(def, lastDone, now),
			LastDone: lastDone,
		}
		if next, ok := recurrence.NextTransition(def, lastDone, now); ok {
			view.NextChange = &next
		}
		views = append(views, view)
	}
	return views, nil
}

// Timeline projects due dates for every active task over the horizon.
func (s *Service) Timeline(now time.Time, horizon time.Duration) ([]models.Occurrence, error) {
	latest, err := s.completions.LatestAll()
	if err != nil {
		return nil, err
	}

	defs := make([]models.TaskDefinition, 0, len(s.order))
	for _, name := range s.order {
		defs = append(defs, s.defs[name])
	}
	return timeline.Project(defs, latest, now, horizon), nil
}

// History returns the append-only completion log, optionally filtered to one
// task.
func (s *Service) History(taskName string) ([]models.CompletionRecord, error) {
	return s.completions.All(taskName)
}

func (s *Service) acquireWrite(ctx context.Context) error {
	timer := time.NewTimer(s.lockWait)
	defer timer.Stop()

	select {
	case s.writeSem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrStoreBusy
	}
}

func (s *Service) releaseWrite() {
	<-s.writeSem
}

// refreshStatusCache rewrites the task file's status field after a commit.
// The cache is display-only, so a failure here is logged and swallowed; the
// committed completion records remain the source of truth.
func (s *Service) refreshStatusCache(now time.Time) {
	if s.cachePath == "" {
		return
	}

	views, err := s.Statuses(now)
	if err != nil {
		s.logger.Warn("status cache refresh failed", "error", err)
		return
	}

	statuses := make(map[string]models.Status, len(views))
	for _, v := range views {
		statuses[v.Task] = v.Status
	}

	defs := make([]models.TaskDefinition, 0, len(s.order))
	for _, name := range s.order {
		defs = append(defs, s.defs[name])
	}

	if err := store.WriteStatusCache(s.cachePath, defs, statuses); err != nil {
		s.logger.Warn("status cache write failed", "error", err)
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

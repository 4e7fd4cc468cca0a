package models

import (
	"fmt"
	"time"
)

// Status is a task's lifecycle state, always derived from its last
// completion timestamp and recurrence parameters. Any stored status is a
// display cache, never a source of truth.
type Status string

const (
	StatusDue      Status = "due"
	StatusUpcoming Status = "upcoming"
	StatusDone     Status = "done"
)

func (s Status) IsValid() bool {
	return s == StatusDue || s == StatusUpcoming || s == StatusDone
}

// TaskDefinition describes one recurring chore. Definitions are loaded from
// the task file at startup and are immutable for the life of the process.
type TaskDefinition struct {
	// Name is the unique key for the task.
	Name string

	// Every is the recurrence period: how long after a completion the task
	// becomes due again.
	Every time.Duration

	// LeadTime is the window before the period elapses during which the
	// task shows as upcoming rather than done.
	LeadTime time.Duration
}

// Validate checks the recurrence invariants. A LeadTime above Every would
// make the task perpetually upcoming.
func (d TaskDefinition) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("task name must not be empty")
	}
	if d.Every <= 0 {
		return fmt.Errorf("recurrence period must be positive, got %s", d.Every)
	}
	if d.LeadTime < 0 {
		return fmt.Errorf("lead time must not be negative, got %s", d.LeadTime)
	}
	if d.LeadTime > d.Every {
		return fmt.Errorf("lead time %s exceeds recurrence period %s", d.LeadTime, d.Every)
	}
	return nil
}

// CompletionRecord is one immutable row of the append-only completion log.
type CompletionRecord struct {
	TaskName string    `json:"task"`
	DoneAt   time.Time `json:"doneAt"`
	// SubmissionID groups the records committed by a single batch.
	SubmissionID string `json:"submissionId"`
}

// Occurrence is a projected future due date, generated for the yearly
// timeline view and never persisted.
type Occurrence struct {
	TaskName string    `json:"task"`
	DueAt    time.Time `json:"dueAt"`
}

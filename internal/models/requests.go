package models

import "time"

// SubmitRequest is the payload for POST /chores/complete.
type SubmitRequest struct {
	Tasks []string `json:"tasks"`
}

// TaskResult is the per-task outcome of a submission.
type TaskResult struct {
	Task   string `json:"task"`
	Status Status `json:"status"`
	// NewlyCompleted is false when the task was already done and the
	// submission was an idempotent no-op.
	NewlyCompleted bool `json:"newlyCompleted"`
}

// SubmitResponse is returned from POST /chores/complete.
type SubmitResponse struct {
	SubmissionID string       `json:"submissionId"`
	CompletedAt  time.Time    `json:"completedAt"`
	Results      []TaskResult `json:"results"`
}

// TaskStatusView is one row of GET /chores/status.
type TaskStatusView struct {
	Task     string        `json:"task"`
	Every    time.Duration `json:"every"`
	LeadTime time.Duration `json:"leadTime"`
	Status   Status        `json:"status"`
	// LastDone is nil for tasks that have never been completed.
	LastDone *time.Time `json:"lastDone,omitempty"`
	// NextChange is the instant the derived status next changes; nil when
	// the task is already due.
	NextChange *time.Time `json:"nextChange,omitempty"`
}

// StatusResponse is returned from GET /chores/status.
type StatusResponse struct {
	Now   time.Time        `json:"now"`
	Tasks []TaskStatusView `json:"tasks"`
}

// TimelineResponse is returned from GET /chores/timeline.
type TimelineResponse struct {
	Horizon     time.Time    `json:"horizon"`
	Occurrences []Occurrence `json:"occurrences"`
}

// HistoryResponse is returned from GET /chores/history.
type HistoryResponse struct {
	Completions []CompletionRecord `json:"completions"`
}

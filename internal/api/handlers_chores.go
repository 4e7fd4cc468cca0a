package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"chorewheel/internal/chores"
	"chorewheel/internal/models"
)

// maxTimelineDays bounds the projection window so a huge query value cannot
// overflow the duration arithmetic.
const maxTimelineDays = 3650

// choreService is the slice of the chore service the handlers consume.
type choreService interface {
	Submit(ctx context.Context, names []string, at time.Time) (*models.SubmitResponse, error)
	Statuses(now time.Time) ([]models.TaskStatusView, error)
	Timeline(now time.Time, horizon time.Duration) ([]models.Occurrence, error)
	History(taskName string) ([]models.CompletionRecord, error)
}

type ChoreHandler struct {
	svc             choreService
	defaultTimeline time.Duration
}

func NewChoreHandler(svc choreService, defaultTimeline time.Duration) *ChoreHandler {
	return &ChoreHandler{svc: svc, defaultTimeline: defaultTimeline}
}

// Complete handles POST /chores/complete. The completion timestamp is always
// server-assigned so client clock skew cannot distort the history.
func (h *ChoreHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if len(req.Tasks) == 0 {
		writeError(w, http.StatusBadRequest, "tasks array is required")
		return
	}

	resp, err := h.svc.Submit(r.Context(), req.Tasks, time.Now().UTC())
	if err != nil {
		var unknown *chores.UnknownTaskError
		switch {
		case errors.As(err, &unknown):
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error: "unknown tasks in batch, nothing committed",
				Tasks: unknown.Tasks,
			})
		case errors.Is(err, chores.ErrStoreBusy):
			w.Header().Set("Retry-After", "1")
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Status handles GET /chores/status.
func (h *ChoreHandler) Status(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	tasks, err := h.svc.Statuses(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.StatusResponse{Now: now, Tasks: tasks})
}

// Timeline handles GET /chores/timeline?days=N.
func (h *ChoreHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	horizon := h.defaultTimeline
	if v := r.URL.Query().Get("days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 1 || days > maxTimelineDays {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("days must be between 1 and %d", maxTimelineDays))
			return
		}
		horizon = time.Duration(days) * 24 * time.Hour
	}

	now := time.Now().UTC()
	occurrences, err := h.svc.Timeline(now, horizon)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.TimelineResponse{
		Horizon:     now.Add(horizon),
		Occurrences: occurrences,
	})
}

// History handles GET /chores/history?task=Name.
func (h *ChoreHandler) History(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.History(r.URL.Query().Get("task"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, models.HistoryResponse{Completions: records})
}

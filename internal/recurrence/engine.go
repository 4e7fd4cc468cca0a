// Package recurrence derives a task's lifecycle status from its last
// completion. It holds no state: status is a pure function of the task
// definition, the latest completion timestamp, and an explicit evaluation
// instant, so every read reproduces the same answer.
package recurrence

import (
	"time"

	"chorewheel/internal/models"
)

// Status maps (definition, last completion, now) to the derived lifecycle
// state. A task that has never been completed is due. Otherwise the elapsed
// time since the last completion walks the task through done, then upcoming
// once inside the lead window, then due once the full period has passed.
func Status(def models.TaskDefinition, lastDone *time.Time, now time.Time) models.Status {
	if lastDone == nil {
		return models.StatusDue
	}

	elapsed := now.Sub(*lastDone)
	switch {
	case elapsed < def.Every-def.LeadTime:
		return models.StatusDone
	case elapsed < def.Every:
		return models.StatusUpcoming
	default:
		return models.StatusDue
	}
}

// NextTransition returns the instant at which the derived status next
// changes as time advances. The second return is false when no further
// time-driven transition exists: a due task stays due until completed.
func NextTransition(def models.TaskDefinition, lastDone *time.Time, now time.Time) (time.Time, bool) {
	if lastDone == nil {
		return time.Time{}, false
	}

	switch Status(def, lastDone, now) {
	case models.StatusDone:
		return lastDone.Add(def.Every - def.LeadTime), true
	case models.StatusUpcoming:
		return lastDone.Add(def.Every), true
	default:
		return time.Time{}, false
	}
}

// Package timeline projects future due dates for the yearly diagram. The
// projection is recomputed fresh per query and never writes to the store.
package timeline

import (
	"sort"
	"time"

	"chorewheel/internal/models"
)

// Project generates each task's successive due dates from its last
// completion (or from now, for tasks never completed) up to now+horizon.
// Every task yields at least its first due date even when that falls beyond
// the horizon, so the diagram always has one marker per task. The result is
// ordered by (task name, due time) for stable rendering.
func Project(defs []models.TaskDefinition, latest map[string]time.Time, now time.Time, horizon time.Duration) []models.Occurrence {
	end := now.Add(horizon)

	var out []models.Occurrence
	for _, def := range defs {
		first := now
		if last, ok := latest[def.Name]; ok {
			first = last.Add(def.Every)
		}

		due := first
		for {
			out = append(out, models.Occurrence{TaskName: def.Name, DueAt: due})
			due = due.Add(def.Every)
			if due.After(end) {
				break
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TaskName != out[j].TaskName {
			return out[i].TaskName < out[j].TaskName
		}
		return out[i].DueAt.Before(out[j].DueAt)
	})
	return out
}

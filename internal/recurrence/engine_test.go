package recurrence

import (
	"testing"
	"time"

	"chorewheel/internal/models"
)

var day = 24 * time.Hour

func TestStatusNeverCompleted(t *testing.T) {
	def := models.TaskDefinition{Name: "Mop Floor", Every: 7 * day, LeadTime: 2 * day}

	for _, now := range []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC),
	} {
		if got := Status(def, nil, now); got != models.StatusDue {
			t.Fatalf("never-completed task at %s: expected due, got %s", now, got)
		}
	}
}

func TestStatusLifecycle(t *testing.T) {
	def := models.TaskDefinition{Name: "Mop Floor", Every: 7 * day, LeadTime: 2 * day}
	done := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    models.Status
	}{
		{"just completed", 0, models.StatusDone},
		{"4 days in", 4 * day, models.StatusDone},
		{"lead window boundary", 5 * day, models.StatusUpcoming},
		{"6 days ago", 6 * day, models.StatusUpcoming},
		{"period boundary", 7 * day, models.StatusDue},
		{"8 days ago", 8 * day, models.StatusDue},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			now := done.Add(tc.elapsed)
			if got := Status(def, &done, now); got != tc.want {
				t.Fatalf("elapsed %s: expected %s, got %s", tc.elapsed, tc.want, got)
			}
		})
	}
}

// Status must walk done -> upcoming -> due as time advances, never skipping
// or reversing.
func TestStatusMonotonic(t *testing.T) {
	rank := map[models.Status]int{
		models.StatusDone:     0,
		models.StatusUpcoming: 1,
		models.StatusDue:      2,
	}

	defs := []models.TaskDefinition{
		{Name: "a", Every: 7 * day, LeadTime: 2 * day},
		{Name: "b", Every: 30 * day, LeadTime: 0},
		{Name: "c", Every: 12 * time.Hour, LeadTime: 12 * time.Hour},
	}
	done := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	for _, def := range defs {
		prev := -1
		for elapsed := time.Duration(0); elapsed <= 2*def.Every; elapsed += def.Every / 48 {
			got := Status(def, &done, done.Add(elapsed))
			if rank[got] < prev {
				t.Fatalf("%s: status reversed to %s at elapsed %s", def.Name, got, elapsed)
			}
			if rank[got] > prev+1 && prev >= 0 {
				// zero lead collapses the upcoming window, which is a
				// legal done -> due jump
				if def.LeadTime != 0 {
					t.Fatalf("%s: status skipped to %s at elapsed %s", def.Name, got, elapsed)
				}
			}
			prev = rank[got]
		}
	}
}

func TestStatusZeroLeadSkipsUpcoming(t *testing.T) {
	def := models.TaskDefinition{Name: "bins", Every: 7 * day}
	done := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := Status(def, &done, done.Add(7*day-time.Second)); got != models.StatusDone {
		t.Fatalf("expected done just before period, got %s", got)
	}
	if got := Status(def, &done, done.Add(7*day)); got != models.StatusDue {
		t.Fatalf("expected due at period, got %s", got)
	}
}

func TestStatusFullLeadNeverDone(t *testing.T) {
	def := models.TaskDefinition{Name: "filters", Every: 7 * day, LeadTime: 7 * day}
	done := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := Status(def, &done, done.Add(time.Second)); got != models.StatusUpcoming {
		t.Fatalf("expected upcoming immediately after completion, got %s", got)
	}
}

func TestNextTransition(t *testing.T) {
	def := models.TaskDefinition{Name: "Mop Floor", Every: 7 * day, LeadTime: 2 * day}
	done := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("done transitions at lead boundary", func(t *testing.T) {
		next, ok := NextTransition(def, &done, done.Add(day))
		if !ok {
			t.Fatal("expected a next transition")
		}
		if want := done.Add(5 * day); !next.Equal(want) {
			t.Fatalf("expected %s, got %s", want, next)
		}
	})

	t.Run("upcoming transitions at period", func(t *testing.T) {
		next, ok := NextTransition(def, &done, done.Add(6*day))
		if !ok {
			t.Fatal("expected a next transition")
		}
		if want := done.Add(7 * day); !next.Equal(want) {
			t.Fatalf("expected %s, got %s", want, next)
		}
	})

	t.Run("due is terminal", func(t *testing.T) {
		if _, ok := NextTransition(def, &done, done.Add(10*day)); ok {
			t.Fatal("due task should have no time-driven transition")
		}
	})

	t.Run("never completed has no transition", func(t *testing.T) {
		if _, ok := NextTransition(def, nil, done); ok {
			t.Fatal("never-completed task should have no transition")
		}
	})
}

package scheduler

import (
	"context"
	"testing"
	"time"

	"taskmanager/models"
	"taskmanager/storage"
)

func seedTask(t *testing.T, store storage.TaskStore, task models.Task) models.Task {
	t.Helper()
	created, err := store.Create(context.Background(), task)
	if err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return created
}

func TestRollOver_ResetsCompletedRecurringTask(t *testing.T) {
	store := storage.NewMemoryTaskStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := now.AddDate(0, 0, -1)

	task := seedTask(t, store, models.Task{
		Title:            "water plants",
		IsRecurring:      true,
		RecurringPattern: "daily",
		Completed:        true,
		Progress:         100,
		DueDate:          &due,
	})

	svc := NewRecurringService(store)
	if err := svc.RollOver(context.Background(), now); err != nil {
		t.Fatalf("rollover: %v", err)
	}

	rolled, err := store.FindByID(context.Background(), task.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if rolled.Completed {
		t.Error("completed not cleared")
	}
	if rolled.Progress != 0 {
		t.Errorf("progress = %d, want 0", rolled.Progress)
	}
	if rolled.DueDate == nil || !rolled.DueDate.After(now) {
		t.Errorf("due date not advanced past now: %v", rolled.DueDate)
	}
	want := due.AddDate(0, 0, 2) // first daily occurrence after noon on the 10th
	if !rolled.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", rolled.DueDate, want)
	}
	if !rolled.LastModified.Equal(now) {
		t.Errorf("last modified = %v, want %v", rolled.LastModified, now)
	}
}

func TestRollOver_AdvancesByPattern(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	due := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		pattern string
		want    time.Time
	}{
		{"daily", time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)},
		{"weekly", time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)},
		{"monthly", time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := nextDueDate(due, tt.pattern, now)
			if !got.Equal(tt.want) {
				t.Errorf("nextDueDate(%s) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestRollOver_LeavesOtherTasksAlone(t *testing.T) {
	store := storage.NewMemoryTaskStore()
	now := time.Now().UTC()
	past := now.AddDate(0, 0, -1)
	future := now.AddDate(0, 0, 1)

	oneShot := seedTask(t, store, models.Task{Title: "one-shot", Completed: true, DueDate: &past})
	notDue := seedTask(t, store, models.Task{Title: "not due", IsRecurring: true, RecurringPattern: "daily", Completed: true, DueDate: &future})
	incomplete := seedTask(t, store, models.Task{Title: "incomplete", IsRecurring: true, RecurringPattern: "daily", DueDate: &past})

	svc := NewRecurringService(store)
	if err := svc.RollOver(context.Background(), now); err != nil {
		t.Fatalf("rollover: %v", err)
	}

	for _, seeded := range []models.Task{oneShot, notDue, incomplete} {
		got, err := store.FindByID(context.Background(), seeded.ID)
		if err != nil {
			t.Fatalf("find %s: %v", seeded.Title, err)
		}
		if got.Completed != seeded.Completed || !got.DueDate.Equal(*seeded.DueDate) {
			t.Errorf("task %q changed: %+v", seeded.Title, got)
		}
	}
}

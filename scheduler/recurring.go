// Package scheduler rolls completed recurring tasks over to their next
// occurrence on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"taskmanager/constants"
	"taskmanager/storage"
)

type RecurringService struct {
	store storage.TaskStore
	cron  *cron.Cron
}

func NewRecurringService(store storage.TaskStore) *RecurringService {
	return &RecurringService{store: store, cron: cron.New()}
}

// Start schedules RollOver to run every interval. A non-positive interval
// leaves the scheduler off.
func (s *RecurringService) Start(interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	spec := fmt.Sprintf("@every %ds", int(interval.Seconds()))
	_, err := s.cron.AddFunc(spec, func() {
		if err := s.RollOver(context.Background(), time.Now().UTC()); err != nil {
			slog.Error("recurring rollover", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule rollover: %w", err)
	}

	s.cron.Start()
	return nil
}

func (s *RecurringService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// RollOver resets every completed recurring task whose due date has passed:
// completed and progress are cleared, the due date advances past now by the
// task's pattern, and last_modified is refreshed.
func (s *RecurringService) RollOver(ctx context.Context, now time.Time) error {
	tasks, err := s.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("fetch tasks: %w", err)
	}

	for _, task := range tasks {
		if !task.IsRecurring || !task.Completed || task.RecurringPattern == "" {
			continue
		}
		if task.DueDate == nil || task.DueDate.After(now) {
			continue
		}

		next := nextDueDate(*task.DueDate, task.RecurringPattern, now)
		fields := map[string]any{
			"completed":     false,
			"progress":      0,
			"due_date":      &next,
			"last_modified": now,
		}
		if _, err := s.store.UpdateByID(ctx, task.ID, fields); err != nil {
			slog.Error("roll over task", "id", task.ID.Hex(), "err", err)
			continue
		}
		slog.Info("rolled over recurring task", "id", task.ID.Hex(), "due", next)
	}
	return nil
}

// nextDueDate advances due by the pattern until it lands after now.
func nextDueDate(due time.Time, pattern string, now time.Time) time.Time {
	for !due.After(now) {
		switch pattern {
		case constants.RecurringDaily:
			due = due.AddDate(0, 0, 1)
		case constants.RecurringWeekly:
			due = due.AddDate(0, 0, 7)
		case constants.RecurringMonthly:
			due = due.AddDate(0, 1, 0)
		}
	}
	return due
}

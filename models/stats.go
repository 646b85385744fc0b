package models

import (
	"math"
	"time"
)

// TaskStats are the aggregate counts the dashboard and report views render.
type TaskStats struct {
	Total          int            `json:"total"`
	Completed      int            `json:"completed"`
	Pending        int            `json:"pending"`
	Overdue        int            `json:"overdue"`
	ByPriority     map[string]int `json:"byPriority"`
	ByCategory     map[string]int `json:"byCategory"`
	CompletionRate float64        `json:"completionRate"`
}

// ComputeStats aggregates the full task list. A task counts as overdue when
// it is incomplete and its due date is before now.
func ComputeStats(tasks []Task, now time.Time) TaskStats {
	stats := TaskStats{
		ByPriority: map[string]int{},
		ByCategory: map[string]int{},
	}

	for _, task := range tasks {
		stats.Total++
		if task.Completed {
			stats.Completed++
		} else {
			stats.Pending++
			if task.DueDate != nil && task.DueDate.Before(now) {
				stats.Overdue++
			}
		}
		stats.ByPriority[task.Priority]++
		if task.Category != "" {
			stats.ByCategory[task.Category]++
		}
	}

	if stats.Total > 0 {
		rate := float64(stats.Completed) / float64(stats.Total) * 100
		stats.CompletionRate = math.Round(rate*10) / 10
	}
	return stats
}

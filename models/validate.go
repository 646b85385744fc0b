package models

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskmanager/constants"
)

var attachmentURLPattern = regexp.MustCompile(`^https?://\S+$`)

// ValidateForCreate normalizes a creation input into a Task with defaults
// applied, or returns a *ValidationError naming every violated rule.
// The caller assigns ID, CreatedAt and LastModified after a successful
// validation.
func ValidateForCreate(input TaskInput, now time.Time) (Task, error) {
	task := Task{
		Priority:    constants.PriorityMedium,
		Category:    constants.DefaultCategory,
		Subtasks:    []primitive.ObjectID{},
		Attachments: []string{},
	}

	verr := &ValidationError{}
	if input.Title == nil {
		verr.add("title is required")
	}
	mergeInput(&task, input, now, verr)
	checkConsistency(&task, verr)

	if verr.hasViolations() {
		return Task{}, verr
	}
	return task, nil
}

// ValidateForUpdate merges only the fields present in input onto a copy of
// existing and re-validates the result. Fields absent from input are left
// untouched. A createdAt in the input that differs from the stored value is
// rejected.
func ValidateForUpdate(existing Task, input TaskInput, now time.Time) (Task, error) {
	task := existing

	verr := &ValidationError{}
	if input.CreatedAt != nil && !input.CreatedAt.Equal(existing.CreatedAt) {
		verr.add("createdAt cannot be changed")
	}
	mergeInput(&task, input, now, verr)
	checkConsistency(&task, verr)

	if verr.hasViolations() {
		return Task{}, verr
	}
	return task, nil
}

// TouchLastModified returns a copy of task with LastModified set to now.
// Called on every successful create or update, never on read or delete.
func TouchLastModified(task Task, now time.Time) Task {
	task.LastModified = now
	return task
}

// UpdateFields builds the set of stored fields an update writes: exactly the
// fields present in input, taken from the merged task, plus the refreshed
// last_modified. Keys match the bson tags on Task.
func UpdateFields(input TaskInput, merged Task) map[string]any {
	fields := map[string]any{"last_modified": merged.LastModified}
	if input.Title != nil {
		fields["title"] = merged.Title
	}
	if input.Description != nil {
		fields["description"] = merged.Description
	}
	if input.Priority != nil {
		fields["priority"] = merged.Priority
	}
	if input.Category != nil {
		fields["category"] = merged.Category
	}
	if input.Completed != nil {
		fields["completed"] = merged.Completed
	}
	if input.DueDate != nil {
		fields["due_date"] = merged.DueDate
	}
	if input.IsRecurring != nil {
		fields["is_recurring"] = merged.IsRecurring
	}
	if input.RecurringPattern != nil {
		fields["recurring_pattern"] = merged.RecurringPattern
	}
	if input.Progress != nil {
		fields["progress"] = merged.Progress
	}
	if input.ParentTask != nil {
		fields["parent_task"] = merged.ParentTask
	}
	if input.Subtasks != nil {
		fields["subtasks"] = merged.Subtasks
	}
	if input.Attachments != nil {
		fields["attachments"] = merged.Attachments
	}
	if input.AssignedTo != nil {
		fields["assigned_to"] = merged.AssignedTo
	}
	return fields
}

// mergeInput applies the fields present in input onto task, trimming and
// normalizing as it goes. Per-field violations accumulate in verr; the
// offending field keeps its previous value.
func mergeInput(task *Task, input TaskInput, now time.Time, verr *ValidationError) {
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		switch {
		case title == "":
			verr.add("title is required")
		case utf8.RuneCountInString(title) > constants.TitleMaxLength:
			verr.add(fmt.Sprintf("title cannot be more than %d characters", constants.TitleMaxLength))
		default:
			task.Title = title
		}
	}

	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if utf8.RuneCountInString(description) > constants.DescriptionMaxLength {
			verr.add(fmt.Sprintf("description cannot be more than %d characters", constants.DescriptionMaxLength))
		} else {
			task.Description = description
		}
	}

	if input.Priority != nil {
		switch *input.Priority {
		case constants.PriorityHigh, constants.PriorityMedium, constants.PriorityLow:
			task.Priority = *input.Priority
		default:
			verr.add("priority must be one of high, medium, low")
		}
	}

	if input.Category != nil {
		task.Category = strings.TrimSpace(*input.Category)
	}

	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if input.DueDate != nil {
		due := *input.DueDate
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if due.Before(today) {
			verr.add("due date cannot be in the past")
		} else {
			task.DueDate = &due
		}
	}

	if input.IsRecurring != nil {
		task.IsRecurring = *input.IsRecurring
	}

	if input.RecurringPattern != nil {
		switch *input.RecurringPattern {
		case "", constants.RecurringDaily, constants.RecurringWeekly, constants.RecurringMonthly:
			task.RecurringPattern = *input.RecurringPattern
		default:
			verr.add("recurring pattern must be one of daily, weekly, monthly")
		}
	}

	if input.Progress != nil {
		progress := *input.Progress
		switch {
		case progress != math.Trunc(progress):
			verr.add("progress must be an integer")
		case progress < 0 || progress > 100:
			verr.add("progress must be between 0 and 100")
		default:
			task.Progress = int(progress)
		}
	}

	if input.ParentTask != nil {
		if *input.ParentTask == "" {
			task.ParentTask = nil
		} else if parent, err := primitive.ObjectIDFromHex(*input.ParentTask); err != nil {
			verr.add("parent task id is invalid")
		} else {
			task.ParentTask = &parent
		}
	}

	if input.Subtasks != nil {
		subtasks := make([]primitive.ObjectID, 0, len(input.Subtasks))
		valid := true
		for _, raw := range input.Subtasks {
			id, err := primitive.ObjectIDFromHex(raw)
			if err != nil {
				verr.add(fmt.Sprintf("subtask id %q is invalid", raw))
				valid = false
				continue
			}
			subtasks = append(subtasks, id)
		}
		if valid {
			task.Subtasks = subtasks
		}
	}

	if input.Attachments != nil {
		attachments := make([]string, 0, len(input.Attachments))
		valid := true
		for _, raw := range input.Attachments {
			url := strings.TrimSpace(raw)
			if !attachmentURLPattern.MatchString(url) {
				verr.add(fmt.Sprintf("attachment %q must be an http or https URL", url))
				valid = false
				continue
			}
			attachments = append(attachments, url)
		}
		if valid {
			task.Attachments = attachments
		}
	}

	if input.AssignedTo != nil {
		task.AssignedTo = strings.TrimSpace(*input.AssignedTo)
	}
}

// checkConsistency enforces the cross-field rules on the merged task.
func checkConsistency(task *Task, verr *ValidationError) {
	if task.IsRecurring && task.RecurringPattern == "" {
		verr.add("recurring pattern is required for recurring tasks")
	}
	if !task.IsRecurring && task.RecurringPattern != "" {
		verr.add("recurring pattern must be empty for non-recurring tasks")
	}
	if task.ParentTask != nil && !task.ID.IsZero() && *task.ParentTask == task.ID {
		verr.add("task cannot be its own parent")
	}
}

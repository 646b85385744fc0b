package models

import (
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func ptr[T any](v T) *T { return &v }

func mustValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	verr, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return verr
}

func TestValidateForCreate_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	task, err := ValidateForCreate(TaskInput{Title: ptr("  Buy milk  ")}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.Title != "Buy milk" {
		t.Errorf("title not trimmed: %q", task.Title)
	}
	if task.Priority != "medium" {
		t.Errorf("priority default = %q, want medium", task.Priority)
	}
	if task.Category != "personal" {
		t.Errorf("category default = %q, want personal", task.Category)
	}
	if task.Completed {
		t.Error("completed should default to false")
	}
	if task.Progress != 0 {
		t.Errorf("progress default = %d, want 0", task.Progress)
	}
	if task.IsRecurring {
		t.Error("isRecurring should default to false")
	}
	if task.Subtasks == nil || len(task.Subtasks) != 0 {
		t.Errorf("subtasks should default to empty, got %v", task.Subtasks)
	}
	if task.Attachments == nil || len(task.Attachments) != 0 {
		t.Errorf("attachments should default to empty, got %v", task.Attachments)
	}
}

func TestValidateForCreate_Boundaries(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name    string
		input   TaskInput
		wantErr string
	}{
		{
			name:  "valid full input",
			input: TaskInput{Title: ptr("T"), Description: ptr("d"), Priority: ptr("high"), Progress: ptr(50.0), DueDate: &tomorrow},
		},
		{
			name:  "title at max length",
			input: TaskInput{Title: ptr(strings.Repeat("a", 200))},
		},
		{
			// Limits count characters, not bytes: 200 CJK runes are 600
			// bytes but still a valid title.
			name:  "multi-byte title at max length",
			input: TaskInput{Title: ptr(strings.Repeat("日", 200))},
		},
		{
			name:    "multi-byte title too long",
			input:   TaskInput{Title: ptr(strings.Repeat("日", 201))},
			wantErr: "title cannot be more than 200 characters",
		},
		{
			name:    "missing title",
			input:   TaskInput{Priority: ptr("low")},
			wantErr: "title is required",
		},
		{
			name:    "blank title",
			input:   TaskInput{Title: ptr("   ")},
			wantErr: "title is required",
		},
		{
			name:    "title too long",
			input:   TaskInput{Title: ptr(strings.Repeat("a", 201))},
			wantErr: "title cannot be more than 200 characters",
		},
		{
			name:    "description too long",
			input:   TaskInput{Title: ptr("T"), Description: ptr(strings.Repeat("d", 1001))},
			wantErr: "description cannot be more than 1000 characters",
		},
		{
			name:  "description at max length",
			input: TaskInput{Title: ptr("T"), Description: ptr(strings.Repeat("d", 1000))},
		},
		{
			name:  "multi-byte description at max length",
			input: TaskInput{Title: ptr("T"), Description: ptr(strings.Repeat("日", 1000))},
		},
		{
			name:    "invalid priority",
			input:   TaskInput{Title: ptr("T"), Priority: ptr("urgent")},
			wantErr: "priority must be one of high, medium, low",
		},
		{
			name:    "fractional progress",
			input:   TaskInput{Title: ptr("T"), Progress: ptr(100.5)},
			wantErr: "progress must be an integer",
		},
		{
			name:    "negative progress",
			input:   TaskInput{Title: ptr("T"), Progress: ptr(-1.0)},
			wantErr: "progress must be between 0 and 100",
		},
		{
			name:  "progress at upper bound",
			input: TaskInput{Title: ptr("T"), Progress: ptr(100.0)},
		},
		{
			name:    "due date yesterday",
			input:   TaskInput{Title: ptr("T"), DueDate: &yesterday},
			wantErr: "due date cannot be in the past",
		},
		{
			name:  "due date today",
			input: TaskInput{Title: ptr("T"), DueDate: &today},
		},
		{
			name:    "recurring without pattern",
			input:   TaskInput{Title: ptr("T"), IsRecurring: ptr(true)},
			wantErr: "recurring pattern is required for recurring tasks",
		},
		{
			name:  "recurring with pattern",
			input: TaskInput{Title: ptr("T"), IsRecurring: ptr(true), RecurringPattern: ptr("daily")},
		},
		{
			name:    "pattern without recurring",
			input:   TaskInput{Title: ptr("T"), RecurringPattern: ptr("weekly")},
			wantErr: "recurring pattern must be empty for non-recurring tasks",
		},
		{
			name:    "invalid pattern",
			input:   TaskInput{Title: ptr("T"), IsRecurring: ptr(true), RecurringPattern: ptr("yearly")},
			wantErr: "recurring pattern must be one of daily, weekly, monthly",
		},
		{
			name:    "non-http attachment",
			input:   TaskInput{Title: ptr("T"), Attachments: []string{"ftp://x"}},
			wantErr: "must be an http or https URL",
		},
		{
			name:  "http and https attachments",
			input: TaskInput{Title: ptr("T"), Attachments: []string{"http://example.com/a.pdf", "https://example.com/b.png"}},
		},
		{
			name:    "invalid parent id",
			input:   TaskInput{Title: ptr("T"), ParentTask: ptr("not-an-id")},
			wantErr: "parent task id is invalid",
		},
		{
			name:  "valid parent id",
			input: TaskInput{Title: ptr("T"), ParentTask: ptr(primitive.NewObjectID().Hex())},
		},
		{
			name:    "invalid subtask id",
			input:   TaskInput{Title: ptr("T"), Subtasks: []string{"zzz"}},
			wantErr: "is invalid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateForCreate(tt.input, now)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			verr := mustValidationError(t, err)
			if !strings.Contains(verr.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", verr.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateForCreate_ReportsAllViolations(t *testing.T) {
	now := time.Now().UTC()

	_, err := ValidateForCreate(TaskInput{Title: ptr(""), IsRecurring: ptr(true)}, now)
	verr := mustValidationError(t, err)

	msg := verr.Error()
	if !strings.Contains(msg, "title is required") {
		t.Errorf("error %q should name the missing title", msg)
	}
	if !strings.Contains(msg, "recurring pattern is required") {
		t.Errorf("error %q should name the missing recurring pattern", msg)
	}
}

func existingTask() Task {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return Task{
		ID:           primitive.NewObjectID(),
		Title:        "Original",
		Description:  "Original description",
		Priority:     "low",
		Category:     "work",
		Progress:     25,
		Subtasks:     []primitive.ObjectID{},
		Attachments:  []string{},
		CreatedAt:    created,
		LastModified: created,
	}
}

func TestValidateForUpdate_MergesOnlyPresentFields(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()

	merged, err := ValidateForUpdate(existing, TaskInput{Completed: ptr(true)}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !merged.Completed {
		t.Error("completed not applied")
	}
	if merged.Title != existing.Title || merged.Priority != existing.Priority || merged.Progress != existing.Progress {
		t.Errorf("untouched fields changed: %+v", merged)
	}
	if !merged.CreatedAt.Equal(existing.CreatedAt) {
		t.Error("createdAt changed on update")
	}
}

func TestValidateForUpdate_RevalidatesMergedResult(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()

	_, err := ValidateForUpdate(existing, TaskInput{Title: ptr("  ")}, now)
	verr := mustValidationError(t, err)
	if !strings.Contains(verr.Error(), "title is required") {
		t.Errorf("error %q should reject a blanked title", verr.Error())
	}
}

func TestValidateForUpdate_CreatedAtImmutable(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()

	other := existing.CreatedAt.Add(time.Hour)
	_, err := ValidateForUpdate(existing, TaskInput{CreatedAt: &other}, now)
	verr := mustValidationError(t, err)
	if !strings.Contains(verr.Error(), "createdAt cannot be changed") {
		t.Errorf("error %q should reject createdAt change", verr.Error())
	}

	same := existing.CreatedAt
	if _, err := ValidateForUpdate(existing, TaskInput{CreatedAt: &same}, now); err != nil {
		t.Errorf("identical createdAt should be accepted: %v", err)
	}
}

func TestValidateForUpdate_SelfParentRejected(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()

	_, err := ValidateForUpdate(existing, TaskInput{ParentTask: ptr(existing.ID.Hex())}, now)
	verr := mustValidationError(t, err)
	if !strings.Contains(verr.Error(), "task cannot be its own parent") {
		t.Errorf("error %q should reject self-parent", verr.Error())
	}
}

func TestValidateForUpdate_RecurringConsistency(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()
	existing.IsRecurring = true
	existing.RecurringPattern = "weekly"

	// Turning recurrence off without clearing the pattern leaves the task
	// inconsistent and must be rejected.
	_, err := ValidateForUpdate(existing, TaskInput{IsRecurring: ptr(false)}, now)
	verr := mustValidationError(t, err)
	if !strings.Contains(verr.Error(), "recurring pattern must be empty") {
		t.Errorf("error %q should reject leftover pattern", verr.Error())
	}

	merged, err := ValidateForUpdate(existing, TaskInput{IsRecurring: ptr(false), RecurringPattern: ptr("")}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if merged.IsRecurring || merged.RecurringPattern != "" {
		t.Errorf("recurrence not cleared: %+v", merged)
	}
}

func TestTouchLastModified(t *testing.T) {
	existing := existingTask()
	now := existing.CreatedAt.Add(time.Hour)

	touched := TouchLastModified(existing, now)
	if !touched.LastModified.Equal(now) {
		t.Errorf("lastModified = %v, want %v", touched.LastModified, now)
	}
	if !existing.LastModified.Equal(existing.CreatedAt) {
		t.Error("TouchLastModified mutated its argument")
	}
}

func TestUpdateFields_OnlyPresentFields(t *testing.T) {
	now := time.Now().UTC()
	existing := existingTask()

	input := TaskInput{Completed: ptr(true), Progress: ptr(80.0)}
	merged, err := ValidateForUpdate(existing, input, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged = TouchLastModified(merged, now)

	fields := UpdateFields(input, merged)
	if len(fields) != 3 {
		t.Fatalf("fields = %v, want exactly completed, progress, last_modified", fields)
	}
	if fields["completed"] != true {
		t.Errorf("completed = %v", fields["completed"])
	}
	if fields["progress"] != 80 {
		t.Errorf("progress = %v", fields["progress"])
	}
	if got := fields["last_modified"].(time.Time); !got.Equal(now) {
		t.Errorf("last_modified = %v, want %v", got, now)
	}
}

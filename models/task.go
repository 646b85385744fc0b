package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task is the stored representation of a to-do item.
type Task struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title            string               `bson:"title" json:"title"`
	Description      string               `bson:"description,omitempty" json:"description"`
	Priority         string               `bson:"priority" json:"priority"`
	Category         string               `bson:"category" json:"category"`
	Completed        bool                 `bson:"completed" json:"completed"`
	DueDate          *time.Time           `bson:"due_date,omitempty" json:"dueDate,omitempty"`
	IsRecurring      bool                 `bson:"is_recurring" json:"isRecurring"`
	RecurringPattern string               `bson:"recurring_pattern,omitempty" json:"recurringPattern,omitempty"`
	Progress         int                  `bson:"progress" json:"progress"`
	ParentTask       *primitive.ObjectID  `bson:"parent_task,omitempty" json:"parentTask,omitempty"`
	Subtasks         []primitive.ObjectID `bson:"subtasks" json:"subtasks"`
	Attachments      []string             `bson:"attachments" json:"attachments"`
	AssignedTo       string               `bson:"assigned_to,omitempty" json:"assignedTo,omitempty"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
	LastModified     time.Time            `bson:"last_modified" json:"lastModified"`
}

// TaskInput is the request-body shape for create and partial update.
// Every field is a pointer (or nilable slice) so an absent field can be
// told apart from a zero value. Progress binds as a float so a fractional
// value reaches validation instead of failing in the JSON decoder.
type TaskInput struct {
	Title            *string    `json:"title"`
	Description      *string    `json:"description"`
	Priority         *string    `json:"priority"`
	Category         *string    `json:"category"`
	Completed        *bool      `json:"completed"`
	DueDate          *time.Time `json:"dueDate"`
	IsRecurring      *bool      `json:"isRecurring"`
	RecurringPattern *string    `json:"recurringPattern"`
	Progress         *float64   `json:"progress"`
	ParentTask       *string    `json:"parentTask"`
	Subtasks         []string   `json:"subtasks"`
	Attachments      []string   `json:"attachments"`
	AssignedTo       *string    `json:"assignedTo"`
	CreatedAt        *time.Time `json:"createdAt"`
}

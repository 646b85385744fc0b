// Package storage abstracts the document store behind minimal interfaces so
// handlers stay storage-agnostic and tests can run against an in-memory fake.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskmanager/models"
)

// ErrNotFound is returned when no document matches the given identifier.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registering an already-known email.
var ErrDuplicateEmail = errors.New("email already registered")

// TaskStore is the persistence surface the task handlers depend on.
// FindAll returns tasks sorted by creation time, newest first. UpdateByID
// applies only the given fields (keys are the bson field names) and returns
// the full updated document.
type TaskStore interface {
	Create(ctx context.Context, task models.Task) (models.Task, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Task, error)
	FindAll(ctx context.Context) ([]models.Task, error)
	UpdateByID(ctx context.Context, id primitive.ObjectID, fields map[string]any) (models.Task, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
}

// UserStore backs the register/login surface.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

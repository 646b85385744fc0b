package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"taskmanager/models"
)

// MemoryTaskStore is an in-memory TaskStore with the same observable
// semantics as the Mongo implementation. Used by tests.
type MemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]memoryEntry
	seq   int
}

type memoryEntry struct {
	task models.Task
	seq  int
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{tasks: map[primitive.ObjectID]memoryEntry{}}
}

func (s *MemoryTaskStore) Create(_ context.Context, task models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	s.seq++
	s.tasks[task.ID] = memoryEntry{task: task, seq: s.seq}
	return task, nil
}

func (s *MemoryTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	return entry.task, nil
}

func (s *MemoryTaskStore) FindAll(_ context.Context) ([]models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]memoryEntry, 0, len(s.tasks))
	for _, entry := range s.tasks {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].task.CreatedAt.Equal(entries[j].task.CreatedAt) {
			return entries[i].task.CreatedAt.After(entries[j].task.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})

	tasks := make([]models.Task, len(entries))
	for i, entry := range entries {
		tasks[i] = entry.task
	}
	return tasks, nil
}

func (s *MemoryTaskStore) UpdateByID(_ context.Context, id primitive.ObjectID, fields map[string]any) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrNotFound
	}
	for key, value := range fields {
		applyField(&entry.task, key, value)
	}
	s.tasks[id] = entry
	return entry.task, nil
}

func (s *MemoryTaskStore) DeleteByID(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// applyField mirrors a $set on a single stored field. Keys and value types
// match what models.UpdateFields produces.
func applyField(task *models.Task, key string, value any) {
	switch key {
	case "title":
		task.Title = value.(string)
	case "description":
		task.Description = value.(string)
	case "priority":
		task.Priority = value.(string)
	case "category":
		task.Category = value.(string)
	case "completed":
		task.Completed = value.(bool)
	case "due_date":
		task.DueDate = value.(*time.Time)
	case "is_recurring":
		task.IsRecurring = value.(bool)
	case "recurring_pattern":
		task.RecurringPattern = value.(string)
	case "progress":
		task.Progress = value.(int)
	case "parent_task":
		task.ParentTask = value.(*primitive.ObjectID)
	case "subtasks":
		task.Subtasks = value.([]primitive.ObjectID)
	case "attachments":
		task.Attachments = value.([]string)
	case "assigned_to":
		task.AssignedTo = value.(string)
	case "last_modified":
		task.LastModified = value.(time.Time)
	}
}

// MemoryUserStore is an in-memory UserStore for tests.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]models.User{}}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return models.User{}, ErrDuplicateEmail
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.Email] = user
	return user, nil
}

func (s *MemoryUserStore) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

// Package task provides the core domain types for task management.
package task

import "time"

// Status represents the state of a task.
type Status string

const (
	// StatusTodo is the initial state of every freshly created task.
	StatusTodo Status = "TODO"
	// StatusInProgress is a valid stored state; no core operation writes it.
	StatusInProgress Status = "IN_PROGRESS"
	// StatusDone is the terminal state reached via Complete.
	StatusDone Status = "DONE"
)

// IsValid reports whether s is a member of the closed status set.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Task is the core domain entity representing a unit of work.
// ID is zero until the task has been persisted for the first time.
type Task struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// New creates a fresh task in StatusTodo with equal timestamps and no id.
func New(title, description string) (*Task, error) {
	if title == "" {
		return nil, ErrEmptyTitle
	}
	now := time.Now()
	return &Task{
		Title:       title,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// CanComplete reports whether the task may still be completed.
func (t *Task) CanComplete() bool {
	return t.Status != StatusDone
}

// Complete transitions the task to StatusDone and moves UpdatedAt strictly
// forward. Completing a task that is already done fails with
// ErrAlreadyCompleted; a completed task never leaves StatusDone.
func (t *Task) Complete() error {
	if !t.CanComplete() {
		return ErrAlreadyCompleted
	}
	now := time.Now()
	if !now.After(t.UpdatedAt) {
		now = t.UpdatedAt.Add(time.Millisecond)
	}
	t.Status = StatusDone
	t.UpdatedAt = now
	return nil
}

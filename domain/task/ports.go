package task

import "context"

// Repository is the persistence port for tasks.
type Repository interface {
	// Save persists the task. A task with a zero ID is inserted and returned
	// with its store-assigned id; a task with a set ID is updated in place.
	Save(ctx context.Context, t *Task) (*Task, error)
	// FindByID returns the task with the given id, or (nil, nil) when no such
	// task exists.
	FindByID(ctx context.Context, id uint) (*Task, error)
	// Transact runs fn inside one atomic boundary. Every repository call made
	// through the repository passed to fn commits or rolls back as a unit.
	Transact(ctx context.Context, fn func(Repository) error) error
}

// UserValidator is the port for checking user existence at the remote
// authority. Inability to decide fails with ErrValidationUnavailable.
type UserValidator interface {
	ExistsUser(ctx context.Context, userID string) (bool, error)
}

// Notifier is the port for emitting task lifecycle notifications. Both calls
// are best-effort: implementations swallow and log their own failures, so the
// caller treats them as infallible.
type Notifier interface {
	NotifyTaskCreated(ctx context.Context, taskID uint, title string)
	NotifyTaskCompleted(ctx context.Context, taskID uint)
}

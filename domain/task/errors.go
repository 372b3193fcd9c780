package task

import "errors"

var (
	// ErrTaskNotFound indicates no task exists with the requested id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrUserNotFound indicates the remote authority confirmed the user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyCompleted indicates Complete was called on a task already in DONE.
	ErrAlreadyCompleted = errors.New("task is already completed")
	// ErrEmptyTitle indicates a task was created without a title.
	ErrEmptyTitle = errors.New("task title is required")
	// ErrValidationUnavailable indicates the user validation service could not
	// decide whether the user exists.
	ErrValidationUnavailable = errors.New("user validation unavailable")
)

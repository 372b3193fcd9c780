package task

import (
	"context"
	"time"

	domain "github.com/example/task-api/domain/task"
)

// Port is the contract driving adapters (HTTP API, request-reply services)
// use to reach the task use cases.
type Port interface {
	CreateTask(ctx context.Context, userID, title, description string) (*domain.Task, error)
	GetTask(ctx context.Context, id uint) (*domain.Task, error)
	CompleteTask(ctx context.Context, id uint) (*domain.Task, error)
}

// Compile-time interface check.
var _ Port = (*Service)(nil)

// CreateTaskRequest is the request for the create-task service.
type CreateTaskRequest struct {
	UserID      string `json:"user_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetTaskRequest is the request for the get-task service.
type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// CompleteTaskRequest is the request for the complete-task service.
type CompleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// TaskReply is the reply for all task services.
type TaskReply struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskReply(t *domain.Task) TaskReply {
	return TaskReply{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

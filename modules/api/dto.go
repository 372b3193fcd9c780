package api

import (
	"strings"
	"time"

	domain "github.com/example/task-api/domain/task"
)

// localDateTimeLayout renders timestamps as ISO-8601 local date-times,
// without a zone offset.
const localDateTimeLayout = "2006-01-02T15:04:05.999999999"

// LocalDateTime is a time.Time that serializes as an ISO-8601 local date-time.
type LocalDateTime time.Time

// MarshalJSON implements json.Marshaler.
func (t LocalDateTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(localDateTimeLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *LocalDateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	parsed, err := time.Parse(localDateTimeLayout, s)
	if err != nil {
		return err
	}
	*t = LocalDateTime(parsed)
	return nil
}

// CreateTaskRequest is the HTTP request body for creating a task.
type CreateTaskRequest struct {
	UserID      string `json:"userId"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TaskResponse is the HTTP representation of a task.
type TaskResponse struct {
	ID          uint          `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	CreatedAt   LocalDateTime `json:"createdAt"`
	UpdatedAt   LocalDateTime `json:"updatedAt"`
}

// ErrorResponse is the HTTP body for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the HTTP response for the health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

func toTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   LocalDateTime(t.CreatedAt),
		UpdatedAt:   LocalDateTime(t.UpdatedAt),
	}
}

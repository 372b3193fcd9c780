// Package notification delivers best-effort task notifications.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 5 * time.Second

// notifyPayload is the body POSTed to the notification API.
type notifyPayload struct {
	TaskID uint   `json:"taskId"`
	Title  string `json:"title"`
	Event  string `json:"event"`
}

// Client posts task-created notifications to the external notification API.
// The response body is ignored; callers decide what to do with errors.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// NewClient creates a new notification client for the given endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		endpoint:   endpoint,
	}
}

// SendTaskCreated posts a TASK_CREATED notification.
func (c *Client) SendTaskCreated(ctx context.Context, taskID uint, title string) error {
	body, err := json.Marshal(notifyPayload{
		TaskID: taskID,
		Title:  title,
		Event:  "TASK_CREATED",
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}

// Package user provides the HTTP-backed user-validation adapter.
package user

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	domain "github.com/example/task-api/domain/task"
)

const requestTimeout = 5 * time.Second

// Client checks user existence against the remote user API.
//
// Contract: GET {base}/{userId} returns 200 when the user exists and 404 when
// it does not. Any other outcome means the remote authority could not decide
// and fails with ErrValidationUnavailable.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// Compile-time interface check.
var _ domain.UserValidator = (*Client)(nil)

// NewClient creates a new user-validation client for the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
	}
}

// ExistsUser reports whether the user exists at the remote authority.
func (c *Client) ExistsUser(ctx context.Context, userID string) (bool, error) {
	url := c.baseURL + "/" + userID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("%w: building request for %s: %v", domain.ErrValidationUnavailable, userID, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: calling user api for %s: %v", domain.ErrValidationUnavailable, userID, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: user api returned status %d for %s",
			domain.ErrValidationUnavailable, resp.StatusCode, userID)
	}
}

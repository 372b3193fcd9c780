package user

import (
	"context"
	"log"

	domain "github.com/example/task-api/domain/task"
	"github.com/go-monolith/mono"
)

// Module wraps the user-validation client with module lifecycle.
type Module struct {
	client  *Client
	baseURL string
}

// Compile-time interface check.
var _ mono.Module = (*Module)(nil)

// NewModule creates a new user module talking to the given user API base URL.
func NewModule(baseURL string) *Module {
	return &Module{
		client:  NewClient(baseURL),
		baseURL: baseURL,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "user"
}

// Validator returns the user-validation port for wiring into other modules.
func (m *Module) Validator() domain.UserValidator {
	return m.client
}

// Start logs the configured endpoint.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[user] Module started (user api: %s)", m.baseURL)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[user] Module stopped")
	return nil
}

// Package api exposes the task use cases over HTTP.
package api

import (
	"context"
	"fmt"
	"log"

	"github.com/example/task-api/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// Module is the driving adapter exposing REST endpoints. It reaches the core
// domain exclusively through the task.Port interface.
type Module struct {
	app   *fiber.App
	tasks task.Port
	port  int
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new API module listening on the given port.
func NewModule(port int) *Module {
	return &Module{port: port}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "api"
}

// SetTaskPort wires the task use cases. Must be called before traffic arrives;
// handlers answer 503 until then.
func (m *Module) SetTaskPort(p task.Port) {
	m.tasks = p
}

// Start initializes the Fiber HTTP server.
func (m *Module) Start(_ context.Context) error {
	m.app = newApp()
	m.registerRoutes(m.app)

	// Server availability is verified via Health().
	go func() {
		if err := m.app.Listen(fmt.Sprintf(":%d", m.port)); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%d", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *Module) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health reports the server status.
func (m *Module) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{"port": m.port},
	}
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          fiberErrorHandler,
	})
	app.Use(recover.New())
	return app
}

// fiberErrorHandler handles errors escaping the handlers.
func fiberErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{Message: message})
}

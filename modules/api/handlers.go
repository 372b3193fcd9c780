package api

import (
	"errors"
	"strconv"

	domain "github.com/example/task-api/domain/task"
	"github.com/gofiber/fiber/v2"
)

// registerRoutes configures all HTTP routes.
func (m *Module) registerRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	app.Post("/tasks", m.createTask)
	app.Get("/tasks/:id", m.getTask)
	app.Post("/tasks/:id/complete", m.completeTask)
}

// healthHandler handles GET /health.
func (m *Module) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createTask handles POST /tasks.
func (m *Module) createTask(c *fiber.Ctx) error {
	if m.tasks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Message: "service not ready"})
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Invalid request body"})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Title is required"})
	}
	if req.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "User ID is required"})
	}

	t, err := m.tasks.CreateTask(c.Context(), req.UserID, req.Title, req.Description)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(toTaskResponse(t))
}

// getTask handles GET /tasks/:id.
func (m *Module) getTask(c *fiber.Ctx) error {
	if m.tasks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Message: "service not ready"})
	}

	id, err := parseTaskID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Task ID must be a decimal integer"})
	}

	t, err := m.tasks.GetTask(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(toTaskResponse(t))
}

// completeTask handles POST /tasks/:id/complete.
func (m *Module) completeTask(c *fiber.Ctx) error {
	if m.tasks == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Message: "service not ready"})
	}

	id, err := parseTaskID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: "Task ID must be a decimal integer"})
	}

	t, err := m.tasks.CompleteTask(c.Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(toTaskResponse(t))
}

func parseTaskID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// errorResponse maps domain errors to HTTP status codes.
func errorResponse(c *fiber.Ctx, err error) error {
	var code int
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrAlreadyCompleted),
		errors.Is(err, domain.ErrEmptyTitle):
		code = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrValidationUnavailable):
		code = fiber.StatusBadGateway
	default:
		code = fiber.StatusInternalServerError
	}

	return c.Status(code).JSON(ErrorResponse{Message: err.Error()})
}

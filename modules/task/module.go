// Package task implements the core task management module.
package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	domain "github.com/example/task-api/domain/task"
	"github.com/example/task-api/events"
	"github.com/example/task-api/modules/cache"
	"github.com/example/task-api/modules/notification"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module owns the task database and exposes the use cases as services.
type Module struct {
	db       *gorm.DB
	dbPath   string
	repo     *Repository
	service  *Service
	users    domain.UserValidator
	notifier domain.Notifier
	eventBus mono.EventBus
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.ServiceProviderModule = (*Module)(nil)
var _ mono.EventEmitterModule = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a new task module backed by the SQLite database at dbPath.
func NewModule(dbPath string) *Module {
	return &Module{dbPath: dbPath}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "task"
}

// SetEventBus receives the application event bus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskCompletedV1.ToBase(),
	}
}

// SetUserValidator wires the user-validation port. Must be called before the
// first CreateTask request is served.
func (m *Module) SetUserValidator(v domain.UserValidator) {
	m.users = v
	if m.service != nil {
		m.service.users = v
	}
}

// SetCache wires the optional read cache.
func (m *Module) SetCache(c cache.Service) {
	if m.service != nil {
		m.service.SetCache(c)
	}
}

// Service returns the use-case orchestrator for driving adapters.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterServices registers the task use cases as request-reply services.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "complete-task", json.Unmarshal, json.Marshal, m.completeTask,
	); err != nil {
		return fmt.Errorf("failed to register complete-task service: %w", err)
	}

	log.Printf("[task] Registered services: create-task, get-task, complete-task")
	return nil
}

// createTask handles the create-task service request.
func (m *Module) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.CreateTask(ctx, req.UserID, req.Title, req.Description)
	if err != nil {
		return TaskReply{}, err
	}
	return toTaskReply(t), nil
}

// getTask handles the get-task service request.
func (m *Module) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		return TaskReply{}, err
	}
	return toTaskReply(t), nil
}

// completeTask handles the complete-task service request.
func (m *Module) completeTask(ctx context.Context, req CompleteTaskRequest, _ *mono.Msg) (TaskReply, error) {
	t, err := m.service.CompleteTask(ctx, req.TaskID)
	if err != nil {
		return TaskReply{}, err
	}
	return toTaskReply(t), nil
}

// Start opens the database, runs migrations and builds the orchestrator.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[task] Connecting to SQLite database: %s", m.dbPath)

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "true" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	m.repo = NewRepository(db)
	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}
	m.notifier = notification.NewBusNotifier(m.eventBus)
	m.service = NewService(m.repo, m.users, m.notifier)

	log.Println("[task] Module started")
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	log.Println("[task] Module stopped")
	return nil
}

// Health reports database connectivity.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{Healthy: false, Message: "database not initialized"}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("failed to get sql.DB: %v", err)}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("database ping failed: %v", err)}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}

package notification

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/example/task-api/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/google/uuid"
)

// Delivery records one notification attempt.
type Delivery struct {
	ID     string    `json:"id"`
	TaskID uint      `json:"task_id"`
	Event  string    `json:"event"`
	SentAt time.Time `json:"sent_at"`
	Error  string    `json:"error,omitempty"`
}

// Module consumes task events and forwards creation notifications to the
// external notification API. Delivery failures are logged and recorded but
// never propagated; notification is strictly best-effort.
type Module struct {
	client     *Client
	endpoint   string
	deliveries []Delivery
	mu         sync.RWMutex
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.EventConsumerModule = (*Module)(nil)

// NewModule creates a new notification module posting to endpoint.
func NewModule(endpoint string) *Module {
	return &Module{
		client:   NewClient(endpoint),
		endpoint: endpoint,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "notification"
}

// RegisterEventConsumers subscribes to the task lifecycle events.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCompletedV1, m.handleTaskCompleted, m); err != nil {
		return fmt.Errorf("failed to register TaskCompleted consumer: %w", err)
	}

	log.Printf("[notification] Registered event consumers: TaskCreated, TaskCompleted")
	return nil
}

// handleTaskCreated forwards the creation event to the notification API.
// Always returns nil: a failed delivery must not fail the event pipeline.
func (m *Module) handleTaskCreated(ctx context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	err := m.client.SendTaskCreated(ctx, event.TaskID, event.Title)
	if err != nil {
		log.Printf("[notification] Failed to send notification for task %d: %v", event.TaskID, err)
	} else {
		log.Printf("[notification] Task created: %d - %s", event.TaskID, event.Title)
	}
	m.record(event.TaskID, "TASK_CREATED", err)
	return nil
}

// handleTaskCompleted records the completion; the external contract only
// covers creation, so nothing is posted.
func (m *Module) handleTaskCompleted(_ context.Context, event events.TaskCompletedEvent, _ *mono.Msg) error {
	log.Printf("[notification] Task completed: %d", event.TaskID)
	m.record(event.TaskID, "TASK_COMPLETED", nil)
	return nil
}

func (m *Module) record(taskID uint, eventName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d := Delivery{
		ID:     uuid.New().String(),
		TaskID: taskID,
		Event:  eventName,
		SentAt: time.Now(),
	}
	if err != nil {
		d.Error = err.Error()
	}
	m.deliveries = append(m.deliveries, d)
}

// Deliveries returns a copy of the recorded notification attempts.
func (m *Module) Deliveries() []Delivery {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]Delivery, len(m.deliveries))
	copy(result, m.deliveries)
	return result
}

// Start initializes the module.
func (m *Module) Start(_ context.Context) error {
	log.Printf("[notification] Module started (notification api: %s)", m.endpoint)
	return nil
}

// Stop shuts down the module.
func (m *Module) Stop(_ context.Context) error {
	log.Println("[notification] Module stopped")
	return nil
}

package notification

import (
	"context"
	"log"
	"time"

	domain "github.com/example/task-api/domain/task"
	"github.com/example/task-api/events"
	"github.com/go-monolith/mono"
)

// BusNotifier implements the notification port by publishing typed events on
// the application event bus. Publish failures are logged and swallowed, so
// the port never fails its caller.
type BusNotifier struct {
	bus mono.EventBus
}

// Compile-time interface check.
var _ domain.Notifier = (*BusNotifier)(nil)

// NewBusNotifier creates a notifier publishing on bus. A nil bus turns every
// call into a logged no-op.
func NewBusNotifier(bus mono.EventBus) *BusNotifier {
	return &BusNotifier{bus: bus}
}

// NotifyTaskCreated publishes a TaskCreated event.
func (n *BusNotifier) NotifyTaskCreated(_ context.Context, taskID uint, title string) {
	if n.bus == nil {
		log.Printf("[notification] Warning: no event bus, dropping TaskCreated for task %d", taskID)
		return
	}

	event := events.TaskCreatedEvent{
		TaskID:    taskID,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if err := events.TaskCreatedV1.Publish(n.bus, event, nil); err != nil {
		log.Printf("[notification] Warning: failed to publish TaskCreated for task %d: %v", taskID, err)
	}
}

// NotifyTaskCompleted publishes a TaskCompleted event.
func (n *BusNotifier) NotifyTaskCompleted(_ context.Context, taskID uint) {
	if n.bus == nil {
		log.Printf("[notification] Warning: no event bus, dropping TaskCompleted for task %d", taskID)
		return
	}

	event := events.TaskCompletedEvent{
		TaskID:      taskID,
		CompletedAt: time.Now(),
	}
	if err := events.TaskCompletedV1.Publish(n.bus, event, nil); err != nil {
		log.Printf("[notification] Warning: failed to publish TaskCompleted for task %d: %v", taskID, err)
	}
}

package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/example/task-api/domain/task"
	"gorm.io/gorm"
)

// taskRecord is the GORM model backing the tasks table. Timestamps are owned
// by the domain entity, so GORM's automatic tracking is disabled.
type taskRecord struct {
	ID          uint      `gorm:"primarykey"`
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"size:1000"`
	Status      string    `gorm:"size:20;not null;default:TODO;index"`
	CreatedAt   time.Time `gorm:"index;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the table name for the task model.
func (taskRecord) TableName() string {
	return "tasks"
}

// Repository is the GORM-backed implementation of the task persistence port.
type Repository struct {
	db *gorm.DB
}

// Compile-time interface check.
var _ domain.Repository = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs database migrations for the tasks table.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&taskRecord{})
}

// Save persists the task. A zero-ID task is inserted and the store-assigned
// id is returned on the result; a task with an id is updated in place, which
// is idempotent for identical inputs.
func (r *Repository) Save(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	rec := toRecord(t)
	if err := r.db.WithContext(ctx).Save(rec).Error; err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}
	return toDomain(rec), nil
}

// FindByID retrieves a task by id, returning (nil, nil) when absent.
func (r *Repository) FindByID(ctx context.Context, id uint) (*domain.Task, error) {
	var rec taskRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return toDomain(&rec), nil
}

// Transact runs fn inside a database transaction. The repository handed to fn
// is scoped to that transaction; fn returning an error rolls everything back.
func (r *Repository) Transact(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

func toRecord(t *domain.Task) *taskRecord {
	return &taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// toDomain rebuilds the entity from a stored row, preserving the stored
// timestamps and status rather than going through the fresh-create factory.
func toDomain(rec *taskRecord) *domain.Task {
	return &domain.Task{
		ID:          rec.ID,
		Title:       rec.Title,
		Description: rec.Description,
		Status:      domain.Status(rec.Status),
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

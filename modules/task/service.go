package task

import (
	"context"
	"fmt"
	"log"
	"strconv"

	domain "github.com/example/task-api/domain/task"
	"github.com/example/task-api/modules/cache"
	"golang.org/x/sync/singleflight"
)

// Service orchestrates the task use cases over the three outbound ports.
// It holds no mutable state of its own and is safe for concurrent use.
type Service struct {
	repo     domain.Repository
	users    domain.UserValidator
	notifier domain.Notifier
	cache    cache.Service
	sfGroup  singleflight.Group // Prevents cache stampede on concurrent misses
}

// NewService creates a new task service.
func NewService(repo domain.Repository, users domain.UserValidator, notifier domain.Notifier) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		notifier: notifier,
	}
}

// SetCache wires an optional read cache for GetTask. A nil cache disables caching.
func (s *Service) SetCache(c cache.Service) {
	s.cache = c
}

func cacheKey(id uint) string {
	return "id:" + strconv.FormatUint(uint64(id), 10)
}

// CreateTask validates the user against the remote authority, persists a
// fresh task and emits a best-effort creation notification. When the user is
// confirmed absent or validation is unavailable, nothing is written and
// nothing is notified.
func (s *Service) CreateTask(ctx context.Context, userID, title, description string) (*domain.Task, error) {
	if s.users == nil {
		return nil, fmt.Errorf("%w: validator not wired", domain.ErrValidationUnavailable)
	}

	exists, err := s.users.ExistsUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: userId=%s", domain.ErrUserNotFound, userID)
	}

	t, err := domain.New(title, description)
	if err != nil {
		return nil, err
	}

	var saved *domain.Task
	err = s.repo.Transact(ctx, func(r domain.Repository) error {
		var txErr error
		saved, txErr = r.Save(ctx, t)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	// Notification is fire-and-forget; the port swallows its own failures.
	s.notifier.NotifyTaskCreated(ctx, saved.ID, saved.Title)

	return saved, nil
}

// GetTask retrieves a task by id, consulting the read cache first when one is
// wired. A missing task fails with ErrTaskNotFound.
func (s *Service) GetTask(ctx context.Context, id uint) (*domain.Task, error) {
	if s.cache != nil {
		var cached domain.Task
		found, err := s.cache.Get(ctx, cacheKey(id), &cached)
		if err != nil {
			log.Printf("[task] Cache error for id=%d: %v", id, err)
		}
		if found {
			return &cached, nil
		}
	}

	val, err, _ := s.sfGroup.Do(cacheKey(id), func() (any, error) {
		return s.repo.FindByID(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	t, ok := val.(*domain.Task)
	if !ok || t == nil {
		return nil, fmt.Errorf("%w: id=%d", domain.ErrTaskNotFound, id)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey(id), t); err != nil {
			log.Printf("[task] Warning: failed to cache task id=%d: %v", id, err)
		}
	}

	return t, nil
}

// CompleteTask transitions a task to DONE inside one atomic boundary. The
// read goes through the store, never the cache, so concurrent completions are
// serialized by the persistence layer.
func (s *Service) CompleteTask(ctx context.Context, id uint) (*domain.Task, error) {
	var saved *domain.Task
	err := s.repo.Transact(ctx, func(r domain.Repository) error {
		t, txErr := r.FindByID(ctx, id)
		if txErr != nil {
			return txErr
		}
		if t == nil {
			return fmt.Errorf("%w: id=%d", domain.ErrTaskNotFound, id)
		}
		if txErr := t.Complete(); txErr != nil {
			return txErr
		}
		saved, txErr = r.Save(ctx, t)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cacheKey(id)); err != nil {
			log.Printf("[task] Warning: failed to invalidate cache for id=%d: %v", id, err)
		}
	}

	s.notifier.NotifyTaskCompleted(ctx, saved.ID)

	return saved, nil
}

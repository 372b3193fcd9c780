package task

import (
	"context"
	"errors"
	"testing"

	domain "github.com/example/task-api/domain/task"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestRepo creates a repository on an in-memory SQLite database.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return repo
}

func mustNewTask(t *testing.T, title, description string) *domain.Task {
	t.Helper()
	tk, err := domain.New(title, description)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return tk
}

func TestRepository_SaveAssignsID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, mustNewTask(t, "First", "one"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if saved.ID == 0 {
		t.Fatal("expected a store-assigned id, got 0")
	}

	second, err := repo.Save(ctx, mustNewTask(t, "Second", "two"))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if second.ID <= saved.ID {
		t.Errorf("expected monotonic ids, got %d after %d", second.ID, saved.ID)
	}
}

func TestRepository_SaveUpdateIsStable(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, mustNewTask(t, "Stable", ""))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	// Saving the persisted task again must keep the same id.
	again, err := repo.Save(ctx, saved)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if again.ID != saved.ID {
		t.Errorf("expected id %d to be stable, got %d", saved.ID, again.ID)
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	original := mustNewTask(t, "Roundtrip", "check all fields")
	saved, err := repo.Save(ctx, original)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	t.Run("present", func(t *testing.T) {
		found, err := repo.FindByID(ctx, saved.ID)
		if err != nil {
			t.Fatalf("FindByID() error = %v", err)
		}
		if found == nil {
			t.Fatal("expected a task, got nil")
		}
		if found.Title != original.Title {
			t.Errorf("expected title %q, got %q", original.Title, found.Title)
		}
		if found.Description != original.Description {
			t.Errorf("expected description %q, got %q", original.Description, found.Description)
		}
		if found.Status != original.Status {
			t.Errorf("expected status %q, got %q", original.Status, found.Status)
		}
		if !found.CreatedAt.Equal(original.CreatedAt) {
			t.Errorf("expected createdAt %v, got %v", original.CreatedAt, found.CreatedAt)
		}
		if !found.UpdatedAt.Equal(original.UpdatedAt) {
			t.Errorf("expected updatedAt %v, got %v", original.UpdatedAt, found.UpdatedAt)
		}
	})

	t.Run("absent", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 9999)
		if err != nil {
			t.Fatalf("FindByID() must not fail on absence, got %v", err)
		}
		if found != nil {
			t.Fatalf("expected nil for a missing task, got %+v", found)
		}
	})
}

func TestRepository_UpdatePersistsCompletion(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	saved, err := repo.Save(ctx, mustNewTask(t, "Complete me", ""))
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := saved.Complete(); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if _, err := repo.Save(ctx, saved); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	found, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Status != domain.StatusDone {
		t.Errorf("expected status %q, got %q", domain.StatusDone, found.Status)
	}
	if !found.UpdatedAt.After(found.CreatedAt) {
		t.Errorf("expected updatedAt > createdAt, got %v and %v", found.UpdatedAt, found.CreatedAt)
	}
}

func TestRepository_TransactRollsBack(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	var insertedID uint
	errBoom := errors.New("boom")

	err := repo.Transact(ctx, func(r domain.Repository) error {
		saved, err := r.Save(ctx, mustNewTask(t, "Doomed", ""))
		if err != nil {
			return err
		}
		insertedID = saved.ID
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected the transaction error to surface, got %v", err)
	}

	found, err := repo.FindByID(ctx, insertedID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found != nil {
		t.Fatalf("expected the rolled-back task to be absent, got %+v", found)
	}
}

func TestRepository_TransactCommits(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	var insertedID uint
	err := repo.Transact(ctx, func(r domain.Repository) error {
		saved, err := r.Save(ctx, mustNewTask(t, "Kept", ""))
		if err != nil {
			return err
		}
		insertedID = saved.ID
		return nil
	})
	if err != nil {
		t.Fatalf("Transact() error = %v", err)
	}

	found, err := repo.FindByID(ctx, insertedID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found == nil {
		t.Fatal("expected the committed task to be present")
	}
}

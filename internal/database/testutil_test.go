package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"taskman/internal/models"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory database and runs migrations.
// This is the unified test database setup used by all tests in this package.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := runMigrations(ctx, db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// createTestUser inserts a user directly and returns its id
func createTestUser(t *testing.T, repo *Repository, name, email string) int64 {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), name, email, models.RoleMember)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user.ID
}

// createTestProject inserts a project and returns its id
func createTestProject(t *testing.T, repo *Repository, name string) int64 {
	t.Helper()
	project, err := repo.CreateProject(context.Background(), &models.Project{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project.ID
}

// createTestTask inserts a pending medium-priority task and returns its id
func createTestTask(t *testing.T, repo *Repository, title string, due *time.Time) int64 {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), &models.Task{
		Title:    title,
		Status:   models.StatusPending,
		Priority: models.PriorityMedium,
		DueDate:  due,
	})
	if err != nil {
		t.Fatalf("Failed to create test task: %v", err)
	}
	return task.ID
}

func datePtr(t time.Time) *time.Time { return &t }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

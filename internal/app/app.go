// Package app wires the repository and services into a single container.
package app

import (
	"database/sql"
	"log/slog"

	"taskman/internal/database"
	projectservice "taskman/internal/services/project"
	taskservice "taskman/internal/services/task"
	userservice "taskman/internal/services/user"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db   *sql.DB
	repo *database.Repository

	UserService    userservice.Service
	ProjectService projectservice.Service
	TaskService    taskservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, logger *slog.Logger) *App {
	repo := database.NewRepository(db)
	return &App{
		db:             db,
		repo:           repo,
		UserService:    userservice.NewService(repo, logger),
		ProjectService: projectservice.NewService(repo, repo, logger),
		TaskService:    taskservice.NewService(repo, repo, repo, logger),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Close releases the database connection
func (a *App) Close() error {
	return a.db.Close()
}

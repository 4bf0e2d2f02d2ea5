package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"taskman/internal/models"
)

// Service defines all project-related business operations
type Service interface {
	// Read operations
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectsByManager(ctx context.Context, managerID int64) ([]*models.Project, error)
	GetActiveProjects(ctx context.Context) ([]*models.Project, error)
	GetCompletedProjects(ctx context.Context) ([]*models.Project, error)
	GetUpcomingProjects(ctx context.Context) ([]*models.Project, error)

	// Write operations
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, id int64) (bool, error)
}

// CreateProjectRequest encapsulates data for creating a project
type CreateProjectRequest struct {
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	ManagerID   *int64
}

// UpdateProjectRequest encapsulates data for updating a project.
// Nil fields keep their current value.
type UpdateProjectRequest struct {
	ID          int64
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	ManagerID   *int64
}

// repository defines the data access methods needed by the project service.
// This interface is private to the service layer.
type repository interface {
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	GetProjectsByManager(ctx context.Context, managerID int64) ([]*models.Project, error)
	GetActiveProjects(ctx context.Context, today time.Time) ([]*models.Project, error)
	GetCompletedProjects(ctx context.Context, today time.Time) ([]*models.Project, error)
	GetUpcomingProjects(ctx context.Context, today time.Time) ([]*models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id int64) (int64, error)
}

// userRepository is needed to confirm a referenced manager exists
type userRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

type service struct {
	repo     repository
	userRepo userRepository
	logger   *slog.Logger
}

// NewService creates a new project service
func NewService(repo repository, userRepo userRepository, logger *slog.Logger) Service {
	return &service{repo: repo, userRepo: userRepo, logger: logger}
}

// GetProjectByID retrieves a project, returning ErrProjectNotFound for a
// missing id
func (s *service) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	if id <= 0 {
		return nil, ErrInvalidProjectID
	}
	project, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// GetAllProjects retrieves all projects ordered by name
func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetAllProjects(ctx)
}

// GetProjectsByManager retrieves projects managed by the given user
func (s *service) GetProjectsByManager(ctx context.Context, managerID int64) ([]*models.Project, error) {
	if managerID <= 0 {
		return nil, ErrManagerNotFound
	}
	return s.repo.GetProjectsByManager(ctx, managerID)
}

// GetActiveProjects retrieves projects whose date window contains today
func (s *service) GetActiveProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetActiveProjects(ctx, time.Now())
}

// GetCompletedProjects retrieves projects whose end date has passed
func (s *service) GetCompletedProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetCompletedProjects(ctx, time.Now())
}

// GetUpcomingProjects retrieves projects starting in the future
func (s *service) GetUpcomingProjects(ctx context.Context) ([]*models.Project, error) {
	return s.repo.GetUpcomingProjects(ctx, time.Now())
}

// CreateProject creates a new project with validation
func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if err := validateProjectFields(req.Name, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	if req.ManagerID != nil {
		manager, err := s.userRepo.GetUserByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, ErrManagerNotFound
		}
	}

	created, err := s.repo.CreateProject(ctx, &models.Project{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		ManagerID:   req.ManagerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("added project", "name", created.Name, "id", created.ID)
	return created, nil
}

// UpdateProject updates an existing project. A nil request field keeps the
// current value.
func (s *service) UpdateProject(ctx context.Context, req UpdateProjectRequest) (*models.Project, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidProjectID
	}

	existing, err := s.repo.GetProjectByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProjectNotFound
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.StartDate != nil {
		existing.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		existing.EndDate = req.EndDate
	}
	if req.ManagerID != nil {
		manager, err := s.userRepo.GetUserByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, err
		}
		if manager == nil {
			return nil, ErrManagerNotFound
		}
		existing.ManagerID = req.ManagerID
	}

	if err := validateProjectFields(existing.Name, existing.StartDate, existing.EndDate); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateProject(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.logger.Info("updated project", "id", req.ID, "name", existing.Name)
	return s.repo.GetProjectByID(ctx, req.ID)
}

// DeleteProject removes a project. A missing id is not an error: the first
// return value reports whether a row existed and was removed. Tasks that
// referenced the project survive with project_id nullified.
func (s *service) DeleteProject(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidProjectID
	}

	affected, err := s.repo.DeleteProject(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete project: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("attempted to delete non-existent project", "id", id)
		return false, nil
	}

	s.logger.Info("deleted project", "id", id)
	return true, nil
}

func validateProjectFields(name string, start, end *time.Time) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 100 {
		return ErrNameTooLong
	}
	if start != nil && end != nil && end.Before(*start) {
		return ErrEndBeforeStart
	}
	return nil
}

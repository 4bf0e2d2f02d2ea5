package task

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"taskman/internal/database"
	"taskman/internal/models"
)

// Service defines all task-related business operations, including
// comments on tasks
type Service interface {
	// Read operations
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error)
	GetTasksByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	GetTasksByProject(ctx context.Context, projectID int64) ([]*models.Task, error)
	GetOverdueTasks(ctx context.Context) ([]*models.Task, error)
	GetUpcomingTasks(ctx context.Context, days int) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, id int64) (bool, error)

	// Status transitions
	CompleteTask(ctx context.Context, id int64) (*models.Task, error)
	StartTask(ctx context.Context, id int64) (*models.Task, error)
	ResetTask(ctx context.Context, id int64) (*models.Task, error)

	// Comment operations
	AddComment(ctx context.Context, taskID, authorID int64, content string) (*models.Comment, error)
	GetComments(ctx context.Context, taskID int64) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, commentID int64) (bool, error)
}

// CreateTaskRequest encapsulates data for creating a task.
// Status defaults to pending and Priority to medium when left zero.
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      string
	Priority    int
	DueDate     *time.Time
	AssignedTo  *int64
	ProjectID   *int64
}

// UpdateTaskRequest encapsulates data for updating a task.
// Nil fields keep their current value.
type UpdateTaskRequest struct {
	ID          int64
	Title       *string
	Description *string
	Status      *string
	Priority    *int
	DueDate     *time.Time
	AssignedTo  *int64
	ProjectID   *int64
}

// repository defines the data access methods needed by the task service.
// This interface is private to the service layer.
type repository interface {
	CreateTask(ctx context.Context, t *models.Task) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*models.Task, error)
	ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error)
	GetTasksByUser(ctx context.Context, userID int64) ([]*models.Task, error)
	GetTasksByProject(ctx context.Context, projectID int64) ([]*models.Task, error)
	GetOverdueTasks(ctx context.Context, today time.Time) ([]*models.Task, error)
	GetUpcomingTasks(ctx context.Context, today time.Time, days int) ([]*models.Task, error)
	UpdateTask(ctx context.Context, t *models.Task) error
	DeleteTask(ctx context.Context, id int64) (int64, error)

	CreateComment(ctx context.Context, taskID, userID int64, content string) (*models.Comment, error)
	GetCommentsByTask(ctx context.Context, taskID int64) ([]*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) (int64, error)
}

// userRepository is needed to confirm referenced users exist
type userRepository interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// projectRepository is needed to confirm a referenced project exists
type projectRepository interface {
	GetProjectByID(ctx context.Context, id int64) (*models.Project, error)
}

type service struct {
	repo        repository
	userRepo    userRepository
	projectRepo projectRepository
	logger      *slog.Logger
}

// NewService creates a new task service
func NewService(repo repository, userRepo userRepository, projectRepo projectRepository, logger *slog.Logger) Service {
	return &service{repo: repo, userRepo: userRepo, projectRepo: projectRepo, logger: logger}
}

// GetTaskByID retrieves a task, returning ErrTaskNotFound for a missing id
func (s *service) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

// ListTasks retrieves tasks matching the filter, ordered by priority then
// due date with missing due dates last
func (s *service) ListTasks(ctx context.Context, filter database.TaskFilter) ([]*models.Task, error) {
	if filter.Status != "" && !slices.Contains(models.Statuses, filter.Status) {
		return nil, ErrInvalidStatus
	}
	return s.repo.ListTasks(ctx, filter)
}

// GetTasksByUser retrieves all tasks assigned to the given user
func (s *service) GetTasksByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	return s.repo.GetTasksByUser(ctx, userID)
}

// GetTasksByProject retrieves all tasks in the given project
func (s *service) GetTasksByProject(ctx context.Context, projectID int64) ([]*models.Task, error) {
	return s.repo.GetTasksByProject(ctx, projectID)
}

// GetOverdueTasks retrieves tasks due strictly before today that are not
// completed
func (s *service) GetOverdueTasks(ctx context.Context) ([]*models.Task, error) {
	return s.repo.GetOverdueTasks(ctx, time.Now())
}

// GetUpcomingTasks retrieves non-completed tasks due within the next days
// days, today inclusive. days=0 means due exactly today.
func (s *service) GetUpcomingTasks(ctx context.Context, days int) ([]*models.Task, error) {
	if days < 0 {
		return nil, ErrNegativeDays
	}
	return s.repo.GetUpcomingTasks(ctx, time.Now(), days)
}

// CreateTask creates a new task with validation. Referenced users and
// projects must exist.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if req.Priority == 0 {
		req.Priority = models.PriorityMedium
	}
	if err := validateTaskFields(req.Title, req.Status, req.Priority); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req.AssignedTo, req.ProjectID); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateTask(ctx, &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
		ProjectID:   req.ProjectID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("added task", "title", created.Title, "id", created.ID)
	return created, nil
}

// UpdateTask updates an existing task. A nil request field keeps the
// current value; updated_at always advances.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidTaskID
	}

	existing, err := s.repo.GetTaskByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrTaskNotFound
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.Status != nil {
		existing.Status = *req.Status
	}
	if req.Priority != nil {
		existing.Priority = *req.Priority
	}
	if req.DueDate != nil {
		existing.DueDate = req.DueDate
	}
	if req.AssignedTo != nil || req.ProjectID != nil {
		if err := s.checkReferences(ctx, req.AssignedTo, req.ProjectID); err != nil {
			return nil, err
		}
	}
	if req.AssignedTo != nil {
		existing.AssignedTo = req.AssignedTo
	}
	if req.ProjectID != nil {
		existing.ProjectID = req.ProjectID
	}

	if err := validateTaskFields(existing.Title, existing.Status, existing.Priority); err != nil {
		return nil, err
	}

	existing.UpdatedAt = time.Now()
	if err := s.repo.UpdateTask(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("updated task", "id", req.ID, "title", existing.Title)
	return s.repo.GetTaskByID(ctx, req.ID)
}

// DeleteTask removes a task and, through the schema, its comments.
// A missing id is not an error: the first return value reports whether a
// row existed and was removed.
func (s *service) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidTaskID
	}

	affected, err := s.repo.DeleteTask(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("attempted to delete non-existent task", "id", id)
		return false, nil
	}

	s.logger.Info("deleted task", "id", id)
	return true, nil
}

// CompleteTask marks a task completed. Completing an already-completed
// task is idempotent on status but still advances updated_at.
func (s *service) CompleteTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, (*models.Task).Complete, "completed task")
}

// StartTask marks a task in progress
func (s *service) StartTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, (*models.Task).Start, "started task")
}

// ResetTask returns a task to pending
func (s *service) ResetTask(ctx context.Context, id int64) (*models.Task, error) {
	return s.transition(ctx, id, (*models.Task).Reset, "reset task")
}

// transition fetches a task, applies a status mutator, and persists it.
// All transitions are allowed; there is no terminal state.
func (s *service) transition(ctx context.Context, id int64, mutate func(*models.Task, time.Time), action string) (*models.Task, error) {
	if id <= 0 {
		return nil, ErrInvalidTaskID
	}

	task, err := s.repo.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	mutate(task, time.Now())
	if err := s.repo.UpdateTask(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to persist status change: %w", err)
	}

	s.logger.Info(action, "id", id, "status", task.Status)
	return s.repo.GetTaskByID(ctx, id)
}

// AddComment attaches a comment to a task. Both the task and the author
// must exist.
func (s *service) AddComment(ctx context.Context, taskID, authorID int64, content string) (*models.Comment, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if content == "" {
		return nil, ErrEmptyCommentContent
	}
	if len(content) > 1000 {
		return nil, ErrCommentContentTooLong
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}

	author, err := s.userRepo.GetUserByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrAuthorNotFound
	}

	comment, err := s.repo.CreateComment(ctx, taskID, authorID, content)
	if err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}

	s.logger.Info("added comment", "task", taskID, "author", authorID, "id", comment.ID)
	return comment, nil
}

// GetComments retrieves a task's comments, oldest first
func (s *service) GetComments(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return s.repo.GetCommentsByTask(ctx, taskID)
}

// DeleteComment removes a comment. A missing id is not an error: the first
// return value reports whether a row existed and was removed.
func (s *service) DeleteComment(ctx context.Context, commentID int64) (bool, error) {
	if commentID <= 0 {
		return false, ErrInvalidCommentID
	}

	affected, err := s.repo.DeleteComment(ctx, commentID)
	if err != nil {
		return false, fmt.Errorf("failed to delete comment: %w", err)
	}
	return affected > 0, nil
}

// checkReferences confirms that a non-nil assignee and project exist
func (s *service) checkReferences(ctx context.Context, assignee, projectID *int64) error {
	if assignee != nil {
		user, err := s.userRepo.GetUserByID(ctx, *assignee)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrAssigneeNotFound
		}
	}
	if projectID != nil {
		project, err := s.projectRepo.GetProjectByID(ctx, *projectID)
		if err != nil {
			return err
		}
		if project == nil {
			return ErrProjectNotFound
		}
	}
	return nil
}

func validateTaskFields(title, status string, priority int) error {
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > 255 {
		return ErrTitleTooLong
	}
	if !slices.Contains(models.Statuses, status) {
		return ErrInvalidStatus
	}
	if priority < models.PriorityHigh || priority > models.PriorityLow {
		return ErrInvalidPriority
	}
	return nil
}

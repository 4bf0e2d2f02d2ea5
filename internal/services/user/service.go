package user

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"taskman/internal/database"
	"taskman/internal/models"
)

// Service defines all user-related business operations
type Service interface {
	// Read operations
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]*models.User, error)

	// Write operations
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// CreateUserRequest encapsulates data for creating a user
type CreateUserRequest struct {
	Name  string
	Email string
	Role  string
}

// UpdateUserRequest encapsulates data for updating a user.
// Nil fields keep their current value.
type UpdateUserRequest struct {
	ID    int64
	Name  *string
	Email *string
	Role  *string
}

// repository defines the data access methods needed by the user service.
// This interface is private to the service layer.
type repository interface {
	CreateUser(ctx context.Context, name, email, role string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetAllUsers(ctx context.Context) ([]*models.User, error)
	GetUsersByRole(ctx context.Context, role string) ([]*models.User, error)
	UpdateUser(ctx context.Context, id int64, name, email, role string) error
	DeleteUser(ctx context.Context, id int64) (int64, error)
}

type service struct {
	repo   repository
	logger *slog.Logger
}

// NewService creates a new user service
func NewService(repo repository, logger *slog.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// GetUserByID retrieves a user, returning ErrUserNotFound for a missing id
func (s *service) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, returning ErrUserNotFound when
// no user carries the address
func (s *service) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetAllUsers retrieves all users ordered by name
func (s *service) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAllUsers(ctx)
}

// GetUsersByRole retrieves all users carrying the given role
func (s *service) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	if !slices.Contains(models.Roles, role) {
		return nil, ErrInvalidRole
	}
	return s.repo.GetUsersByRole(ctx, role)
}

// CreateUser creates a new user with validation. Email uniqueness is
// enforced by the store's UNIQUE constraint; the pre-check below only
// exists so the common case fails before touching the insert path.
func (s *service) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	if err := validateUserFields(req.Name, req.Email, req.Role); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	created, err := s.repo.CreateUser(ctx, req.Name, req.Email, req.Role)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("added user", "name", created.Name, "email", created.Email, "id", created.ID)
	return created, nil
}

// UpdateUser updates an existing user. A nil request field keeps the
// current value. Changing the email to one held by a different user
// fails with ErrDuplicateEmail.
func (s *service) UpdateUser(ctx context.Context, req UpdateUserRequest) (*models.User, error) {
	if req.ID <= 0 {
		return nil, ErrInvalidUserID
	}

	existing, err := s.repo.GetUserByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	name := existing.Name
	email := existing.Email
	role := existing.Role
	if req.Name != nil {
		name = *req.Name
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Role != nil {
		role = *req.Role
	}

	if err := validateUserFields(name, email, role); err != nil {
		return nil, err
	}

	if email != existing.Email {
		collision, err := s.repo.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if collision != nil && collision.ID != req.ID {
			return nil, ErrDuplicateEmail
		}
	}

	if err := s.repo.UpdateUser(ctx, req.ID, name, email, role); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("updated user", "id", req.ID, "email", email)
	return s.repo.GetUserByID(ctx, req.ID)
}

// DeleteUser removes a user. A missing id is not an error: the first
// return value reports whether a row existed and was removed.
func (s *service) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidUserID
	}

	affected, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	if affected == 0 {
		s.logger.Warn("attempted to delete non-existent user", "id", id)
		return false, nil
	}

	s.logger.Info("deleted user", "id", id)
	return true, nil
}

func validateUserFields(name, email, role string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 100 {
		return ErrNameTooLong
	}
	if email == "" {
		return ErrEmptyEmail
	}
	if !slices.Contains(models.Roles, role) {
		return ErrInvalidRole
	}
	return nil
}

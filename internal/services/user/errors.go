package user

import "errors"

// Domain errors for the user service
var (
	// Validation errors
	ErrEmptyName     = errors.New("user name cannot be empty")
	ErrNameTooLong   = errors.New("user name cannot exceed 100 characters")
	ErrEmptyEmail    = errors.New("user email cannot be empty")
	ErrInvalidRole   = errors.New("role must be one of: admin, manager, member")
	ErrInvalidUserID = errors.New("invalid user ID")

	// Business logic errors
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

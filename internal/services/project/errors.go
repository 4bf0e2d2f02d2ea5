package project

import "errors"

// Domain errors for the project service
var (
	// Validation errors
	ErrEmptyName        = errors.New("project name cannot be empty")
	ErrNameTooLong      = errors.New("project name cannot exceed 100 characters")
	ErrInvalidProjectID = errors.New("invalid project ID")
	ErrEndBeforeStart   = errors.New("project end date cannot be before its start date")

	// Business logic errors
	ErrProjectNotFound = errors.New("project not found")
	ErrManagerNotFound = errors.New("manager user not found")
)

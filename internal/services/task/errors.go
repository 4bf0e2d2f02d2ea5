package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle      = errors.New("task title cannot be empty")
	ErrTitleTooLong    = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID   = errors.New("invalid task ID")
	ErrInvalidStatus   = errors.New("status must be one of: pending, in_progress, completed")
	ErrInvalidPriority = errors.New("priority must be 1 (high), 2 (medium), or 3 (low)")
	ErrNegativeDays    = errors.New("days must be >= 0")

	// Business logic errors
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assignee user not found")
	ErrProjectNotFound  = errors.New("project not found")
)

// Comment-related errors
var (
	ErrEmptyCommentContent   = errors.New("comment content cannot be empty")
	ErrCommentContentTooLong = errors.New("comment content cannot exceed 1000 characters")
	ErrInvalidCommentID      = errors.New("invalid comment ID")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrAuthorNotFound        = errors.New("comment author not found")
)

package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"taskman/internal/models"
	projectservice "taskman/internal/services/project"
	taskservice "taskman/internal/services/task"
	userservice "taskman/internal/services/user"
)

// ParsePriority maps a priority argument to its numeric value.
// Both names and digits are accepted.
func ParsePriority(priority string) (int, error) {
	switch strings.ToLower(priority) {
	case "high", "1":
		return models.PriorityHigh, nil
	case "medium", "2":
		return models.PriorityMedium, nil
	case "low", "3":
		return models.PriorityLow, nil
	}
	return 0, fmt.Errorf("invalid priority '%s' (must be: high, medium, low or 1-3)", priority)
}

// PriorityName returns the display name for a numeric priority
func PriorityName(priority int) string {
	switch priority {
	case models.PriorityHigh:
		return "high"
	case models.PriorityMedium:
		return "medium"
	case models.PriorityLow:
		return "low"
	}
	return strconv.Itoa(priority)
}

// parseDate parses a YYYY-MM-DD argument that has already passed
// validation
func parseDate(s string) *time.Time {
	t, err := time.Parse(models.DateFormat, s)
	if err != nil {
		return nil
	}
	return &t
}

// parseID parses a positional id argument
func parseID(arg string) (int64, bool) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// exitCodeFor maps service errors to exit codes
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, userservice.ErrUserNotFound),
		errors.Is(err, projectservice.ErrProjectNotFound),
		errors.Is(err, projectservice.ErrManagerNotFound),
		errors.Is(err, taskservice.ErrTaskNotFound),
		errors.Is(err, taskservice.ErrAssigneeNotFound),
		errors.Is(err, taskservice.ErrProjectNotFound),
		errors.Is(err, taskservice.ErrCommentNotFound),
		errors.Is(err, taskservice.ErrAuthorNotFound):
		return ExitNotFound
	case errors.Is(err, userservice.ErrDuplicateEmail):
		return ExitDataErr
	case errors.Is(err, userservice.ErrEmptyName),
		errors.Is(err, userservice.ErrEmptyEmail),
		errors.Is(err, userservice.ErrInvalidRole),
		errors.Is(err, projectservice.ErrEmptyName),
		errors.Is(err, projectservice.ErrEndBeforeStart),
		errors.Is(err, taskservice.ErrEmptyTitle),
		errors.Is(err, taskservice.ErrInvalidStatus),
		errors.Is(err, taskservice.ErrInvalidPriority),
		errors.Is(err, taskservice.ErrEmptyCommentContent):
		return ExitValidation
	}
	return ExitError
}

// errorCodeFor maps service errors to machine-readable codes for JSON
// output
func errorCodeFor(err error) string {
	switch exitCodeFor(err) {
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitDataErr:
		return "CONFLICT"
	case ExitValidation:
		return "VALIDATION_ERROR"
	}
	return "ERROR"
}

// fail prints a one-line diagnostic and exits with the error's code.
// Mutating operations are single autocommitted statements, so exiting
// here never leaves partial state behind.
func fail(f *OutputFormatter, err error) {
	f.Error(errorCodeFor(err), err.Error())
	os.Exit(exitCodeFor(err))
}

// failValidation prints a validation diagnostic and exits
func failValidation(f *OutputFormatter, msg string) {
	f.Error("VALIDATION_ERROR", msg)
	os.Exit(ExitValidation)
}

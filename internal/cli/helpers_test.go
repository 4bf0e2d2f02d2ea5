package cli

import (
	"errors"
	"testing"
	"time"

	"taskman/internal/models"
	projectservice "taskman/internal/services/project"
	taskservice "taskman/internal/services/task"
	userservice "taskman/internal/services/user"
)

var errFake = errors.New("database is on fire")

// ============================================================================
// Priority Parsing Tests
// ============================================================================

func TestParsePriority_Valid(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"high", models.PriorityHigh},
		{"medium", models.PriorityMedium},
		{"low", models.PriorityLow},
		{"1", models.PriorityHigh},
		{"2", models.PriorityMedium},
		{"3", models.PriorityLow},
		// Case insensitivity
		{"HIGH", models.PriorityHigh},
		{"Medium", models.PriorityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePriority(tt.input)
			if err != nil {
				t.Fatalf("Expected %s to parse, got error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParsePriority(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParsePriority_Invalid(t *testing.T) {
	for _, input := range []string{"", "urgent", "0", "4", "-1", "hi"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParsePriority(input); err == nil {
				t.Errorf("Expected %q to be rejected", input)
			}
		})
	}
}

func TestPriorityName(t *testing.T) {
	tests := []struct {
		priority int
		expected string
	}{
		{models.PriorityHigh, "high"},
		{models.PriorityMedium, "medium"},
		{models.PriorityLow, "low"},
		{9, "9"},
	}

	for _, tt := range tests {
		if got := PriorityName(tt.priority); got != tt.expected {
			t.Errorf("PriorityName(%d) = %q, want %q", tt.priority, got, tt.expected)
		}
	}
}

// ============================================================================
// Argument Parsing Tests
// ============================================================================

func TestParseID(t *testing.T) {
	tests := []struct {
		arg      string
		expected int64
		ok       bool
	}{
		{"1", 1, true},
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"1.5", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			id, ok := parseID(tt.arg)
			if ok != tt.ok {
				t.Fatalf("parseID(%q) ok = %v, want %v", tt.arg, ok, tt.ok)
			}
			if ok && id != tt.expected {
				t.Errorf("parseID(%q) = %d, want %d", tt.arg, id, tt.expected)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	got := parseDate("2026-03-15")
	if got == nil {
		t.Fatal("Expected a parsed date, got nil")
	}
	want := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	if parseDate("") != nil {
		t.Error("Expected nil for empty input")
	}
	if parseDate("not-a-date") != nil {
		t.Error("Expected nil for malformed input")
	}
}

// ============================================================================
// Error Mapping Tests
// ============================================================================

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"user not found", userservice.ErrUserNotFound, ExitNotFound},
		{"project not found", projectservice.ErrProjectNotFound, ExitNotFound},
		{"task not found", taskservice.ErrTaskNotFound, ExitNotFound},
		{"comment not found", taskservice.ErrCommentNotFound, ExitNotFound},
		{"assignee not found", taskservice.ErrAssigneeNotFound, ExitNotFound},
		{"duplicate email", userservice.ErrDuplicateEmail, ExitDataErr},
		{"empty title", taskservice.ErrEmptyTitle, ExitValidation},
		{"bad status", taskservice.ErrInvalidStatus, ExitValidation},
		{"end before start", projectservice.ErrEndBeforeStart, ExitValidation},
		{"generic failure", errFake, ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCodeFor(tt.err); got != tt.expected {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.expected)
			}
		})
	}
}

func TestErrorCodeFor(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{taskservice.ErrTaskNotFound, "NOT_FOUND"},
		{userservice.ErrDuplicateEmail, "CONFLICT"},
		{userservice.ErrEmptyName, "VALIDATION_ERROR"},
		{errFake, "ERROR"},
	}

	for _, tt := range tests {
		if got := errorCodeFor(tt.err); got != tt.expected {
			t.Errorf("errorCodeFor(%v) = %q, want %q", tt.err, got, tt.expected)
		}
	}
}

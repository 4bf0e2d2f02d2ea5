package models

import "time"

// Task represents a single unit of work. AssignedTo and ProjectID are nil
// when the task is unassigned or does not belong to a project.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      string
	Priority    int
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	AssignedTo  *int64
	ProjectID   *int64
}

// IsCompleted reports whether the task has been marked completed
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsPending reports whether the task has not been started
func (t *Task) IsPending() bool {
	return t.Status == StatusPending
}

// IsInProgress reports whether the task is being worked on
func (t *Task) IsInProgress() bool {
	return t.Status == StatusInProgress
}

// IsHighPriority reports whether the task carries the highest priority
func (t *Task) IsHighPriority() bool {
	return t.Priority == PriorityHigh
}

// IsOverdue reports whether the task's due date is strictly before the
// given day and the task is not completed. Tasks without a due date are
// never overdue, and a task due today is not overdue yet.
func (t *Task) IsOverdue(today time.Time) bool {
	if t.DueDate == nil || t.IsCompleted() {
		return false
	}
	return t.DueDate.Before(truncateToDay(today))
}

// DaysUntilDue returns the number of whole days until the due date,
// negative when the task is already past due. Returns 0 when no due
// date is set.
func (t *Task) DaysUntilDue(today time.Time) int {
	if t.DueDate == nil {
		return 0
	}
	return int(truncateToDay(*t.DueDate).Sub(truncateToDay(today)).Hours() / 24)
}

// Complete marks the task completed and advances UpdatedAt.
// Calling it on an already-completed task still advances UpdatedAt.
func (t *Task) Complete(now time.Time) {
	t.Status = StatusCompleted
	t.UpdatedAt = now
}

// Start marks the task in progress and advances UpdatedAt
func (t *Task) Start(now time.Time) {
	t.Status = StatusInProgress
	t.UpdatedAt = now
}

// Reset returns the task to pending and advances UpdatedAt. There is no
// terminal state; a completed task can be reset.
func (t *Task) Reset(now time.Time) {
	t.Status = StatusPending
	t.UpdatedAt = now
}

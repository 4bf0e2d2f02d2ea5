package models

// ============================================================================
// TASK STATUS CONSTANTS
// ============================================================================

// Task status values as stored in the tasks table
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

// Statuses lists all valid task statuses
var Statuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// ============================================================================
// PRIORITY CONSTANTS
// ============================================================================

// Priority constants (lower number = more urgent)
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// ============================================================================
// USER ROLE CONSTANTS
// ============================================================================

// User role values. Roles are advisory flags only; nothing enforces them.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleMember  = "member"
)

// Roles lists all valid user roles
var Roles = []string{RoleAdmin, RoleManager, RoleMember}

// ============================================================================
// TIMESTAMP FORMATS
// ============================================================================

// Wire formats for timestamps stored as text in the database
const (
	// TimestampFormat is used for created_at/updated_at columns
	TimestampFormat = "2006-01-02 15:04:05"

	// DateFormat is used for date-only columns (due_date, start_date, end_date)
	DateFormat = "2006-01-02"
)

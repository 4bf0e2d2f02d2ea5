package models

import "time"

// User represents an operator account that tasks and projects can reference
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the user carries the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager reports whether the user carries the manager role
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

package models

import "time"

// Comment represents a note attached to a task by a user
type Comment struct {
	ID        int64
	Content   string
	CreatedAt time.Time
	TaskID    int64
	UserID    int64
}

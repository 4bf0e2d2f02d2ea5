package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"taskman/internal/models"
)

// CommentRepo handles all comment-related database operations.
type CommentRepo struct {
	db *sql.DB
}

// CreateComment inserts a new comment on a task and returns the stored record
func (r *CommentRepo) CreateComment(ctx context.Context, taskID, userID int64, content string) (*models.Comment, error) {
	now := time.Now().UTC().Format(models.TimestampFormat)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO comments (content, created_at, task_id, user_id) VALUES (?, ?, ?, ?)`,
		content, now, taskID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert comment on task %d: %w", taskID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get comment ID after insert: %w", err)
	}

	return r.GetCommentByID(ctx, id)
}

// GetCommentByID retrieves a comment by id. Returns (nil, nil) when no row matches.
func (r *CommentRepo) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	comment := &models.Comment{}
	var createdAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT id, content, created_at, task_id, user_id FROM comments WHERE id = ?`, id,
	).Scan(&comment.ID, &comment.Content, &createdAt, &comment.TaskID, &comment.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment %d: %w", id, err)
	}
	comment.CreatedAt = parseTimestamp(createdAt)
	return comment, nil
}

// GetCommentsByTask retrieves all comments on a task, oldest first
func (r *CommentRepo) GetCommentsByTask(ctx context.Context, taskID int64) ([]*models.Comment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, content, created_at, task_id, user_id FROM comments
		 WHERE task_id = ? ORDER BY created_at, id`,
		taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments for task %d: %w", taskID, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{}
		var createdAt string
		if err := rows.Scan(&comment.ID, &comment.Content, &createdAt,
			&comment.TaskID, &comment.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan comment row: %w", err)
		}
		comment.CreatedAt = parseTimestamp(createdAt)
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

// DeleteComment removes a comment row. Returns the number of rows removed.
func (r *CommentRepo) DeleteComment(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comment %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows for comment %d: %w", id, err)
	}
	return affected, nil
}

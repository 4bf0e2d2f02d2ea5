package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"taskman/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// TaskFilter narrows ListTasks results. Zero values mean "no filter".
type TaskFilter struct {
	AssigneeEmail string
	ProjectID     int64
	Status        string
}

const taskColumns = `t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.created_at, t.updated_at, t.assigned_to, t.project_id`

func scanTask(scan func(dest ...any) error) (*models.Task, error) {
	task := &models.Task{}
	var (
		description sql.NullString
		dueDate     sql.NullString
		createdAt   string
		updatedAt   string
		assignedTo  sql.NullInt64
		projectID   sql.NullInt64
	)
	if err := scan(&task.ID, &task.Title, &description, &task.Status, &task.Priority,
		&dueDate, &createdAt, &updatedAt, &assignedTo, &projectID); err != nil {
		return nil, err
	}
	task.Description = nullStringToString(description)
	task.DueDate = nullStringToDate(dueDate)
	task.CreatedAt = parseTimestamp(createdAt)
	task.UpdatedAt = parseTimestamp(updatedAt)
	task.AssignedTo = nullInt64ToPtr(assignedTo)
	task.ProjectID = nullInt64ToPtr(projectID)
	return task, nil
}

// CreateTask inserts a new task and returns the stored record
func (r *TaskRepo) CreateTask(ctx context.Context, t *models.Task) (*models.Task, error) {
	now := time.Now().UTC().Format(models.TimestampFormat)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (title, description, status, priority, due_date,
		    created_at, updated_at, assigned_to, project_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Status, t.Priority, dateToNullString(t.DueDate),
		now, now, ptrToNullInt64(t.AssignedTo), ptrToNullInt64(t.ProjectID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert task '%s': %w", t.Title, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get task ID after insert: %w", err)
	}

	return r.GetTaskByID(ctx, id)
}

// GetTaskByID retrieves a task by id. Returns (nil, nil) when no row matches.
func (r *TaskRepo) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks t WHERE t.id = ?`, id)
	task, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return task, nil
}

// ListTasks retrieves tasks matching the filter, AND-composing whichever
// predicates are set. The users table is joined only when filtering by
// assignee email. Ordering is priority ascending, then due date ascending
// with NULL due dates sorting after all real dates.
func (r *TaskRepo) ListTasks(ctx context.Context, filter TaskFilter) ([]*models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks t`
	var (
		where []string
		args  []any
	)

	if filter.AssigneeEmail != "" {
		query += ` JOIN users u ON t.assigned_to = u.id`
		where = append(where, `u.email = ?`)
		args = append(args, filter.AssigneeEmail)
	}
	if filter.ProjectID != 0 {
		where = append(where, `t.project_id = ?`)
		args = append(args, filter.ProjectID)
	}
	if filter.Status != "" {
		where = append(where, `t.status = ?`)
		args = append(args, filter.Status)
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY t.priority, t.due_date IS NULL, t.due_date`

	return r.queryTasks(ctx, query, args...)
}

// GetTasksByUser retrieves all tasks assigned to the given user
func (r *TaskRepo) GetTasksByUser(ctx context.Context, userID int64) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks t WHERE t.assigned_to = ?
		 ORDER BY t.priority, t.due_date IS NULL, t.due_date`,
		userID)
}

// GetTasksByProject retrieves all tasks belonging to the given project
func (r *TaskRepo) GetTasksByProject(ctx context.Context, projectID int64) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks t WHERE t.project_id = ?
		 ORDER BY t.priority, t.due_date IS NULL, t.due_date`,
		projectID)
}

// GetOverdueTasks retrieves tasks due strictly before today that are not
// completed. A task due today is not overdue.
func (r *TaskRepo) GetOverdueTasks(ctx context.Context, today time.Time) ([]*models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks t
		 WHERE t.due_date < ? AND t.status != ?
		 ORDER BY t.priority, t.due_date`,
		today.Format(models.DateFormat), models.StatusCompleted)
}

// GetUpcomingTasks retrieves non-completed tasks due in [today, today+days],
// both endpoints inclusive. days=0 means due exactly today.
func (r *TaskRepo) GetUpcomingTasks(ctx context.Context, today time.Time, days int) ([]*models.Task, error) {
	start := today.Format(models.DateFormat)
	end := today.AddDate(0, 0, days).Format(models.DateFormat)
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks t
		 WHERE t.due_date BETWEEN ? AND ? AND t.status != ?
		 ORDER BY t.due_date, t.priority`,
		start, end, models.StatusCompleted)
}

func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]*models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// UpdateTask persists the mutable fields of a task record along with its
// updated_at timestamp. Every mutation must advance updated_at; callers
// set it before calling.
func (r *TaskRepo) UpdateTask(ctx context.Context, t *models.Task) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?,
		    due_date = ?, updated_at = ?, assigned_to = ?, project_id = ?
		 WHERE id = ?`,
		t.Title, t.Description, t.Status, t.Priority, dateToNullString(t.DueDate),
		t.UpdatedAt.UTC().Format(models.TimestampFormat),
		ptrToNullInt64(t.AssignedTo), ptrToNullInt64(t.ProjectID), t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task %d: %w", t.ID, err)
	}
	return nil
}

// DeleteTask removes a task row; its comments cascade away (schema rule).
// Returns the number of rows removed.
func (r *TaskRepo) DeleteTask(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows for task %d: %w", id, err)
	}
	return affected, nil
}

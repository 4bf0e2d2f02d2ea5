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

// ProjectRepo handles all project-related database operations.
type ProjectRepo struct {
	db *sql.DB
}

const projectColumns = `id, name, description, start_date, end_date, manager_id, created_at`

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	project := &models.Project{}
	var (
		description sql.NullString
		startDate   sql.NullString
		endDate     sql.NullString
		managerID   sql.NullInt64
		createdAt   string
	)
	if err := scan(&project.ID, &project.Name, &description, &startDate,
		&endDate, &managerID, &createdAt); err != nil {
		return nil, err
	}
	project.Description = nullStringToString(description)
	project.StartDate = nullStringToDate(startDate)
	project.EndDate = nullStringToDate(endDate)
	project.ManagerID = nullInt64ToPtr(managerID)
	project.CreatedAt = parseTimestamp(createdAt)
	return project, nil
}

// CreateProject inserts a new project and returns the stored record
func (r *ProjectRepo) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	now := time.Now().UTC().Format(models.TimestampFormat)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (name, description, start_date, end_date, manager_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.Name, p.Description, dateToNullString(p.StartDate),
		dateToNullString(p.EndDate), ptrToNullInt64(p.ManagerID), now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert project '%s': %w", p.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get project ID after insert: %w", err)
	}

	return r.GetProjectByID(ctx, id)
}

// GetProjectByID retrieves a project by id. Returns (nil, nil) when no row matches.
func (r *ProjectRepo) GetProjectByID(ctx context.Context, id int64) (*models.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	project, err := scanProject(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %d: %w", id, err)
	}
	return project, nil
}

// GetAllProjects retrieves all projects ordered by name
func (r *ProjectRepo) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return r.queryProjects(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY name`)
}

// GetProjectsByManager retrieves projects managed by the given user
func (r *ProjectRepo) GetProjectsByManager(ctx context.Context, managerID int64) ([]*models.Project, error) {
	return r.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE manager_id = ? ORDER BY name`,
		managerID)
}

// GetActiveProjects retrieves projects whose date window contains today:
// no start date or a start date on/before today, and no end date or an end
// date on/after today.
func (r *ProjectRepo) GetActiveProjects(ctx context.Context, today time.Time) ([]*models.Project, error) {
	day := today.Format(models.DateFormat)
	return r.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects
		 WHERE (start_date IS NULL OR start_date <= ?)
		   AND (end_date IS NULL OR end_date >= ?)
		 ORDER BY name`,
		day, day)
}

// GetCompletedProjects retrieves projects whose end date has passed,
// most recently ended first
func (r *ProjectRepo) GetCompletedProjects(ctx context.Context, today time.Time) ([]*models.Project, error) {
	return r.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE end_date < ? ORDER BY end_date DESC`,
		today.Format(models.DateFormat))
}

// GetUpcomingProjects retrieves projects starting after today, soonest first
func (r *ProjectRepo) GetUpcomingProjects(ctx context.Context, today time.Time) ([]*models.Project, error) {
	return r.queryProjects(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE start_date > ? ORDER BY start_date`,
		today.Format(models.DateFormat))
}

func (r *ProjectRepo) queryProjects(ctx context.Context, query string, args ...any) ([]*models.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// UpdateProject updates the mutable fields of a project record
func (r *ProjectRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?, manager_id = ?
		 WHERE id = ?`,
		p.Name, p.Description, dateToNullString(p.StartDate),
		dateToNullString(p.EndDate), ptrToNullInt64(p.ManagerID), p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %d: %w", p.ID, err)
	}
	return nil
}

// DeleteProject removes a project row. Tasks that referenced it keep
// existing with project_id nullified (schema rule). Returns the number of
// rows removed.
func (r *ProjectRepo) DeleteProject(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete project %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows for project %d: %w", id, err)
	}
	return affected, nil
}

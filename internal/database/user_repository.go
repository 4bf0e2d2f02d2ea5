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

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

const userColumns = `id, name, email, role, created_at`

// scanUser reads one users row. The caller owns the row lifetime.
func scanUser(scan func(dest ...any) error) (*models.User, error) {
	user := &models.User{}
	var createdAt string
	if err := scan(&user.ID, &user.Name, &user.Email, &user.Role, &createdAt); err != nil {
		return nil, err
	}
	user.CreatedAt = parseTimestamp(createdAt)
	return user, nil
}

// CreateUser inserts a new user and returns the stored record.
// A duplicate email surfaces as a unique-constraint error from the driver.
func (r *UserRepo) CreateUser(ctx context.Context, name, email, role string) (*models.User, error) {
	now := time.Now().UTC().Format(models.TimestampFormat)
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (name, email, role, created_at) VALUES (?, ?, ?, ?)`,
		name, email, role, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user '%s': %w", email, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID after insert: %w", err)
	}

	return r.GetUserByID(ctx, id)
}

// GetUserByID retrieves a user by id. Returns (nil, nil) when no row matches.
func (r *UserRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no row matches.
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email '%s': %w", email, err)
	}
	return user, nil
}

// GetAllUsers retrieves all users ordered by name
func (r *UserRepo) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
}

// GetUsersByRole retrieves all users with the given role, ordered by name
func (r *UserRepo) GetUsersByRole(ctx context.Context, role string) ([]*models.User, error) {
	return r.queryUsers(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = ? ORDER BY name`, role)
}

func (r *UserRepo) queryUsers(ctx context.Context, query string, args ...any) ([]*models.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Printf("failed to close rows: %v", err)
		}
	}()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser updates the mutable fields of a user record
func (r *UserRepo) UpdateUser(ctx context.Context, id int64, name, email, role string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, email = ?, role = ? WHERE id = ?`,
		name, email, role, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return nil
}

// DeleteUser removes a user row. Dependent tasks keep existing with their
// assignee nullified, and the user's comments cascade away (schema rules).
// Returns the number of rows removed.
func (r *UserRepo) DeleteUser(ctx context.Context, id int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted rows for user %d: %w", id, err)
	}
	return affected, nil
}

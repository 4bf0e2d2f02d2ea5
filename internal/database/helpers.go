package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"taskman/internal/models"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			log.Printf("failed to rollback transaction: %v", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IsUniqueViolation reports whether err is a SQLite unique-constraint
// failure. The UNIQUE constraint on users.email is the authority for
// duplicate detection; service-level pre-checks only exist for friendlier
// messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// nullInt64ToPtr converts sql.NullInt64 to *int64.
// Returns nil if the value is not valid.
func nullInt64ToPtr(nv sql.NullInt64) *int64 {
	if nv.Valid {
		val := nv.Int64
		return &val
	}
	return nil
}

// ptrToNullInt64 converts *int64 to sql.NullInt64 for binding
func ptrToNullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

// nullStringToString converts sql.NullString to string.
// Returns empty string if the value is not valid.
func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// dateToNullString serializes an optional date for a DATE column
func dateToNullString(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(models.DateFormat), Valid: true}
}

// nullStringToDate parses an optional DATE column value.
// Returns nil for NULL or unparseable values.
func nullStringToDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(models.DateFormat, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

// parseTimestamp reads a created_at/updated_at column. SQLite's
// CURRENT_TIMESTAMP writes "YYYY-MM-DD HH:MM:SS"; values we write
// ourselves use the same format.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(models.TimestampFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

package database

import "database/sql"

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*ProjectRepo
	*TaskRepo
	*CommentRepo
}

// NewRepository creates a new Repository instance wrapping the given
// database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: db},
		ProjectRepo: &ProjectRepo{db: db},
		TaskRepo:    &TaskRepo{db: db},
		CommentRepo: &CommentRepo{db: db},
	}
}

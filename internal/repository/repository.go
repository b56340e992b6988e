package repository

import (
	"context"
	"database/sql"
	"errors"

	"signup_portal/internal/models"
)

// Store-level conflicts raised by the users table unique constraints.
var (
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrDuplicateUsername = errors.New("username already exists")
)

// Users persists user accounts. Lookups return (nil, nil) when nothing matches.
type Users interface {
	Create(ctx context.Context, u models.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

type Repository struct {
	Users Users
}

// NewRepository builds the repositories for the given dialect ("sqlite" or "postgres").
func NewRepository(db *sql.DB, driver string) *Repository {
	return &Repository{
		Users: NewUserRepository(db, driver),
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"signup_portal/internal/models"
)

type UserRepository struct {
	db      *sql.DB
	queries userQueries
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

type userQueries struct {
	insert          string
	selectByName    string
	selectByEmail   string
	returningInsert bool
}

// sqlite queries
var sqliteUserQueries = userQueries{
	insert:        `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
	selectByName:  `SELECT id, username, email, password_hash FROM users WHERE username = ?`,
	selectByEmail: `SELECT id, username, email, password_hash FROM users WHERE email = ?`,
}

// postgres has no LastInsertId; the id comes back through RETURNING.
var postgresUserQueries = userQueries{
	insert:          `INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
	selectByName:    `SELECT id, username, email, password_hash FROM users WHERE username = $1`,
	selectByEmail:   `SELECT id, username, email, password_hash FROM users WHERE email = $1`,
	returningInsert: true,
}

// NewUserRepository returns a users repository for the given dialect.
// Anything other than "postgres" uses the sqlite dialect.
func NewUserRepository(db *sql.DB, driver string) *UserRepository {
	q := sqliteUserQueries
	if driver == "postgres" {
		q = postgresUserQueries
	}
	return &UserRepository{db: db, queries: q}
}

// Create inserts a new user and returns its ID. Unique violations come back as
// ErrDuplicateEmail or ErrDuplicateUsername (wrapped).
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	if r.queries.returningInsert {
		var id int64
		err := r.db.QueryRowContext(ctx, r.queries.insert, u.Username, u.Email, u.PasswordHash).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("insert user %q: %w", u.Username, mapConflict(err))
		}
		return id, nil
	}

	res, err := r.db.ExecContext(ctx, r.queries.insert, u.Username, u.Email, u.PasswordHash)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, mapConflict(err))
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return lastID, nil
}

// GetByUsername fetches a user by exact username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	u, err := r.getOne(ctx, r.queries.selectByName, username)
	if err != nil {
		return nil, fmt.Errorf("select user %q: %w", username, err)
	}
	return u, nil
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := r.getOne(ctx, r.queries.selectByEmail, email)
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

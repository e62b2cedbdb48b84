package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bumptrack-be/internal/entities"

	"github.com/lib/pq"
)

var (
	// ErrDuplicateEmail is returned when the unique index on users.email
	// rejects an insert. Uniqueness lives in the database, not in a
	// check-then-insert.
	ErrDuplicateEmail = errors.New("email already registered")

	ErrUserNotFound = errors.New("user not found")
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(email, passwordHash string, dueDate *time.Time) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	UpdateDueDate(id string, dueDate time.Time) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(email, passwordHash string, dueDate *time.Time) (*entities.User, error) {
	query := `
		INSERT INTO users (email, password_hash, due_date)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, due_date, created_at, updated_at
	`

	var user entities.User
	err := r.db.QueryRow(query, email, passwordHash, dueDate).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DueDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	return r.findOne(`
		SELECT id, email, password_hash, due_date, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	return r.findOne(`
		SELECT id, email, password_hash, due_date, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id)
}

func (r *userRepository) findOne(query string, arg interface{}) (*entities.User, error) {
	var user entities.User
	err := r.db.QueryRow(query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.DueDate,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return &user, nil
}

// UpdateDueDate replaces the user's due date. Last write wins.
func (r *userRepository) UpdateDueDate(id string, dueDate time.Time) error {
	query := `
		UPDATE users
		SET due_date = $2, updated_at = now()
		WHERE id = $1
	`

	result, err := r.db.Exec(query, id, dueDate)
	if err != nil {
		return fmt.Errorf("failed to update due date: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update due date: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

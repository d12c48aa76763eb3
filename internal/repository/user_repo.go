package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"linkfeed/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL        = `INSERT INTO users (email, name, password_hash, created_at) VALUES (?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, email, name, password_hash, created_at FROM users WHERE email = ?`
	selectUserByIDSQL    = `SELECT id, email, name, password_hash, created_at FROM users WHERE id = ?`
)

// Create inserts a new user and returns the stored record.
// A duplicate email surfaces as ErrUniqueViolation.
func (r *UserRepository) Create(ctx context.Context, email, name, passwordHash string) (models.User, error) {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertUserSQL, email, name, passwordHash, now)
	if err != nil {
		return models.User{}, translateUnique(fmt.Sprintf("insert user %q", email), err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return models.User{}, fmt.Errorf("get last insert id for user %q: %w", email, err)
	}
	return models.User{
		ID:           lastID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// GetByEmail fetches a user by email. Returns ErrNotFound if absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserByEmailSQL, email), fmt.Sprintf("select user %q", email))
}

// GetByID fetches a user by id. Returns ErrNotFound if absent.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	return r.scanUser(r.db.QueryRowContext(ctx, selectUserByIDSQL, id), fmt.Sprintf("select user id=%d", id))
}

func (r *UserRepository) scanUser(row *sql.Row, op string) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

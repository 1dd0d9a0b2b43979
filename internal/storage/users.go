package storage

import (
	"context"
	"fmt"

	"github.com/claude/ironlog/internal/models"
)

const userColumns = `id, email, name, password_hash, experience_level, created_at`

// GetOrCreateDefaultUser finds or creates the account used when requests carry
// no identity. Name and level are only applied on creation.
func (db *DB) GetOrCreateDefaultUser(ctx context.Context, email, name string, level models.ExperienceLevel) (*models.User, error) {
	row := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, experience_level)
		VALUES ($1, $2, $3)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING `+userColumns,
		email, name, string(level))
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("upserting default user: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new account and fills in its ID and CreatedAt.
// A duplicate email yields ErrEmailTaken.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, name, password_hash, experience_level)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		u.Email, u.Name, u.PasswordHash, string(u.ExperienceLevel),
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByEmail looks up an account by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

// GetUser looks up an account by ID.
func (db *DB) GetUser(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(db.Pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err, "user")
	}
	return u, nil
}

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	var level string
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &level, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.ExperienceLevel = models.ExperienceLevel(level)
	return &u, nil
}

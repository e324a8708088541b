// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/db"
	"github.com/danielhkuo/pollboard/models"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", models.ErrInvalidInput)
	}
	if len(password) < auth.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrInvalidInput, auth.MinPasswordLength)
	}
	return nil
}

// Register creates a USER account
func (s *UserStore) Register(ctx context.Context, name, email, password string) (models.User, error) {
	return s.create(ctx, name, email, password, models.RoleUser)
}

func (s *UserStore) create(ctx context.Context, name, email, password, role string) (models.User, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return models.User{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return models.User{}, models.ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	slog.Info("user registered", "user_id", user.ID, "role", user.Role)
	return user, nil
}

// Authenticate returns the user for valid credentials.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *UserStore) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := s.getBy(ctx, "email", normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, models.ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return models.User{}, models.ErrInvalidCredentials
	}
	return user, nil
}

// ResetPassword replaces the password hash for the account with this email
func (s *UserStore) ResetPassword(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET password_hash = $1 WHERE email = $2
	`, hash, email)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: email not registered", models.ErrNotFound)
	}

	slog.Info("password reset", "email", email)
	return nil
}

// EnsureAdmin creates an ADMIN account, or promotes the existing account with this email.
// Safe to call on every startup.
func (s *UserStore) EnsureAdmin(ctx context.Context, email, password string) (models.User, error) {
	existing, err := s.getBy(ctx, "email", normalizeEmail(email))
	if errors.Is(err, models.ErrNotFound) {
		return s.create(ctx, "Administrator", email, password, models.RoleAdmin)
	}
	if err != nil {
		return models.User{}, err
	}

	if existing.Role == models.RoleAdmin {
		return existing, nil
	}

	_, err = s.db.ExecContext(ctx, `UPDATE users SET role = $1 WHERE id = $2`, models.RoleAdmin, existing.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to promote admin: %w", err)
	}
	existing.Role = models.RoleAdmin

	slog.Info("user promoted to admin", "user_id", existing.ID)
	return existing, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (models.User, error) {
	return s.getBy(ctx, "id", id)
}

// List returns every account, oldest first
func (s *UserStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	return users, nil
}

// Exists reports whether a user row with this id exists
func (s *UserStore) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)
	`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user: %w", err)
	}
	return exists, nil
}

// getBy looks a user up by a fixed column name (id or email)
func (s *UserStore) getBy(ctx context.Context, column, value string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE `+column+` = $1
	`, value).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return models.User{}, fmt.Errorf("%w: user", models.ErrNotFound)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return user, nil
}

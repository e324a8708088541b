// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid", email: "  Alice@Example.com ", password: "secret1", wantErr: nil},
		{name: "duplicate email different case", email: "alice@example.com", password: "secret1", wantErr: models.ErrEmailTaken},
		{name: "missing email", email: "", password: "secret1", wantErr: models.ErrInvalidInput},
		{name: "malformed email", email: "not-an-email", password: "secret1", wantErr: models.ErrInvalidInput},
		{name: "short password", email: "bob@example.com", password: "123", wantErr: models.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := users.Register(ctx, "Alice", tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Register failed: %v", err)
			}
			if user.Email != "alice@example.com" {
				t.Errorf("Expected normalized email, got %q", user.Email)
			}
			if user.Role != models.RoleUser {
				t.Errorf("Expected role USER, got %s", user.Role)
			}
			if user.PasswordHash == tt.password || !auth.CheckPassword(user.PasswordHash, tt.password) {
				t.Error("Expected a bcrypt hash of the password")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	registered, err := users.Register(ctx, "Carol", "carol@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "correct credentials", email: "carol@example.com", password: "hunter22"},
		{name: "email is case insensitive", email: "CAROL@example.com", password: "hunter22"},
		{name: "wrong password", email: "carol@example.com", password: "hunter23", wantErr: models.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "hunter22", wantErr: models.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := users.Authenticate(ctx, tt.email, tt.password)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate failed: %v", err)
			}
			if user.ID != registered.ID {
				t.Errorf("Expected user %s, got %s", registered.ID, user.ID)
			}
		})
	}
}

func TestResetPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	testutil.CreateTestUser(t, db, "dave@example.com", models.RoleUser)

	if err := users.ResetPassword(ctx, "dave@example.com", "newpassword"); err != nil {
		t.Fatalf("ResetPassword failed: %v", err)
	}

	if _, err := users.Authenticate(ctx, "dave@example.com", testutil.TestPassword); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Errorf("Old password should no longer work, got %v", err)
	}
	if _, err := users.Authenticate(ctx, "dave@example.com", "newpassword"); err != nil {
		t.Errorf("New password should work, got %v", err)
	}

	err := users.ResetPassword(ctx, "ghost@example.com", "newpassword")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown email, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		admin, err := users.EnsureAdmin(ctx, "root@example.com", "rootpass")
		if err != nil {
			t.Fatalf("EnsureAdmin failed: %v", err)
		}
		if admin.Role != models.RoleAdmin {
			t.Errorf("Expected ADMIN role, got %s", admin.Role)
		}

		again, err := users.EnsureAdmin(ctx, "root@example.com", "rootpass")
		if err != nil {
			t.Fatalf("Second EnsureAdmin failed: %v", err)
		}
		if again.ID != admin.ID {
			t.Error("EnsureAdmin should be idempotent")
		}
	})

	t.Run("promotes existing user", func(t *testing.T) {
		existing := testutil.CreateTestUser(t, db, "erin@example.com", models.RoleUser)

		admin, err := users.EnsureAdmin(ctx, "erin@example.com", "whatever")
		if err != nil {
			t.Fatalf("EnsureAdmin failed: %v", err)
		}
		if admin.ID != existing.ID {
			t.Errorf("Expected existing user %s to be promoted, got %s", existing.ID, admin.ID)
		}

		stored, err := users.Get(ctx, existing.ID)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if stored.Role != models.RoleAdmin {
			t.Errorf("Expected stored role ADMIN, got %s", stored.Role)
		}
	})
}

func TestGetAndExists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)
	ctx := context.Background()

	user := testutil.CreateTestUser(t, db, "frank@example.com", models.RoleUser)

	ok, err := users.Exists(ctx, user.ID)
	if err != nil || !ok {
		t.Errorf("Expected user to exist, got %v (err %v)", ok, err)
	}

	ok, err = users.Exists(ctx, "missing")
	if err != nil || ok {
		t.Errorf("Expected missing user to not exist, got %v (err %v)", ok, err)
	}

	if _, err := users.Get(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestListUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := NewUserStore(db)

	empty, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", empty)
	}

	testutil.CreateTestUser(t, db, "gina@example.com", models.RoleUser)
	testutil.CreateTestUser(t, db, "hank@example.com", models.RoleAdmin)

	all, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 users, got %d", len(all))
	}
}

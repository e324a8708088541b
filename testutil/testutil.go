// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollboard/auth"
	"github.com/danielhkuo/pollboard/cliparse"
	"github.com/danielhkuo/pollboard/db"
	"github.com/danielhkuo/pollboard/models"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// TestPassword is the password given to every fixture user
const TestPassword = "password123"

// SetupTestDB creates a fresh test database with the full schema.
// Uses a throwaway SQLite file unless TEST_DATABASE_URL points at Postgres.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dialect, url := db.DialectSQLite, filepath.Join(t.TempDir(), "test.db")
	if pgURL := os.Getenv("TEST_DATABASE_URL"); pgURL != "" {
		dialect, url = db.DialectPostgres, pgURL
	}

	conn, err := db.Open(context.Background(), dialect, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if dialect == db.DialectPostgres {
		// Clean up tables before each test
		_, err = conn.Exec(`
			DROP TABLE IF EXISTS votes CASCADE;
			DROP TABLE IF EXISTS poll_options CASCADE;
			DROP TABLE IF EXISTS polls CASCADE;
			DROP TABLE IF EXISTS users CASCADE;
		`)
		if err != nil {
			t.Fatalf("Failed to clean database: %v", err)
		}
	}

	if err := db.CreateSchema(conn, dialect); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.DialectSQLite,
		DatabaseURL:  ":memory:",
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
	}
}

// NewTestResolver returns a resolver using the test secret
func NewTestResolver(t *testing.T) *auth.Resolver {
	t.Helper()
	r, err := auth.NewResolver(TestJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to create resolver: %v", err)
	}
	return r
}

// CreateTestUser inserts a user with TestPassword and returns it.
// role should be models.RoleUser or models.RoleAdmin.
func CreateTestUser(t *testing.T, conn *sql.DB, email, role string) models.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	_, err = conn.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// IdentityOf returns the identity a valid token for user would resolve to
func IdentityOf(user models.User) models.Identity {
	return models.Identity{UserID: user.ID, Email: user.Email, Role: user.Role}
}

// TestToken issues a session token for user with the test secret
func TestToken(t *testing.T, user models.User) string {
	t.Helper()
	token, err := NewTestResolver(t).Issue(user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// BearerHeader builds request headers carrying user's token
func BearerHeader(t *testing.T, user models.User) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TestToken(t, user)}
}

// CreateTestPoll creates a poll with no options and returns its ID
func CreateTestPoll(t *testing.T, conn *sql.DB, pollType, status string) string {
	t.Helper()

	pollID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO polls (id, title, description, type, status, created_at)
		VALUES ($1, 'Test Poll', 'A test poll', $2, $3, $4)
	`, pollID, pollType, status, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestOption adds an option to a poll and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, pollID, label string, position int) string {
	t.Helper()

	optionID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO poll_options (id, poll_id, label, position)
		VALUES ($1, $2, $3, $4)
	`, optionID, pollID, label, position)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CastTestVote writes a vote row directly, bypassing the ledger checks
func CastTestVote(t *testing.T, conn *sql.DB, pollID, optionID, userID string, at time.Time) string {
	t.Helper()

	voteID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO votes (id, poll_id, option_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, voteID, pollID, optionID, userID, at.UTC())
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// CountRows returns the row count of a table, optionally filtered by poll_id
func CountRows(t *testing.T, conn *sql.DB, table, pollID string) int {
	t.Helper()

	var (
		n   int
		err error
	)
	if pollID == "" {
		err = conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n)
	} else {
		err = conn.QueryRow(`SELECT COUNT(*) FROM `+table+` WHERE poll_id = $1`, pollID).Scan(&n)
	}
	if err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

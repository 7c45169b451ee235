// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-poll/db"
	"github.com/danielhkuo/quickly-poll/token"
)

// SetupTestDB creates a fresh SQLite database with the full schema in a
// temporary directory. It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	conn, err := db.Open(db.TypeSQLite, "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestPoll inserts a poll with the given options and returns the option ids in order
func CreateTestPoll(t *testing.T, conn *sql.DB, pollID, title string, options ...string) []string {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO polls (id, title, creator_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, pollID, title, 1, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	ids := make([]string, len(options))
	for i, opt := range options {
		ids[i] = token.OptionID(pollID, opt)
		_, err := conn.Exec(`
			INSERT INTO options (id, poll_id, title, position)
			VALUES ($1, $2, $3, $4)
		`, ids[i], pollID, opt, i)
		if err != nil {
			t.Fatalf("Failed to create test option: %v", err)
		}
	}

	return ids
}

// AddTestVote inserts a vote row directly, bypassing the toggle
func AddTestVote(t *testing.T, conn *sql.DB, userID int64, pollID, optionID string, castAt int64) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO votes (user_id, option_id, poll_id, cast_at)
		VALUES ($1, $2, $3, $4)
	`, userID, optionID, pollID, castAt)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// CountVotes returns the number of vote rows a user holds in a poll
func CountVotes(t *testing.T, conn *sql.DB, pollID string, userID int64) int {
	t.Helper()

	var n int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM votes WHERE poll_id = $1 AND user_id = $2
	`, pollID, userID).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
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
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected Content-Type application/json, got %q", ct)
	}
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}

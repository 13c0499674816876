package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vytor/codeflash/internal/db"
)

// NewTestDB creates an in-memory SQLite database with all migrations applied.
// The database is configured with foreign keys enabled.
func NewTestDB(t *testing.T) *sql.DB {
	database, err := db.Open("file::memory:")
	require.NoError(t, err)
	return database.DB
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}

// InsertDeck adds a deck directly and returns its id.
func InsertDeck(t *testing.T, database *sql.DB, name string) int64 {
	now := time.Now().UTC()
	res, err := database.ExecContext(context.Background(), `
INSERT INTO decks (name, color, created_at, updated_at) VALUES (?, '#7C3AED', ?, ?)
`, name, now, now)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

// InsertCard adds a card directly with the given next review time and returns its id.
func InsertCard(t *testing.T, database *sql.DB, deckID int64, front string, nextReview time.Time) int64 {
	now := time.Now().UTC()
	res, err := database.ExecContext(context.Background(), `
INSERT INTO cards (deck_id, front, back, language, ease_factor, interval_days, repetitions, next_review, created_at, updated_at)
VALUES (?, ?, 'answer', 'go', 2.5, 0, 0, ?, ?, ?)
`, deckID, front, nextReview.UTC(), now, now)
	require.NoError(t, err)
	id, err := res.LastInsertId()
	require.NoError(t, err)
	return id
}

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names the variable holding the test database URL.
const DatabaseURLEnv = "MESTO_TEST_DATABASE_URL"

// TestTimeout bounds setup and cleanup operations against the test database.
const TestTimeout = 10 * time.Second

// GetTestDatabaseURL returns the configured test database URL, or "".
func GetTestDatabaseURL() string {
	return os.Getenv(DatabaseURLEnv)
}

// Open connects to the test database and migrates it to the latest schema.
// The test is skipped when no database is configured. The connection is
// closed when the test finishes.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skipf("%s not set, skipping database test", DatabaseURLEnv)
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()

	require.NoError(t, db.PingContext(ctx), "failed to ping test database")
	require.NoError(t, postgres.Migrate(ctx, db, "up", slog.New(slog.NewTextHandler(io.Discard, nil))),
		"failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no rows behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Errorf("failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CleanupUsers deletes the given users with their cards and likes once the
// test finishes. Stores that open their own transactions cannot run inside
// WithTx, so their tests clean up this way.
func CleanupUsers(t *testing.T, db *sql.DB, userIDs ...uuid.UUID) {
	t.Helper()

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
		defer cancel()

		for _, id := range userIDs {
			for _, q := range []string{
				`DELETE FROM card_likes WHERE user_id = $1`,
				`DELETE FROM cards WHERE owner_id = $1`,
				`DELETE FROM users WHERE id = $1`,
			} {
				if _, err := db.ExecContext(ctx, q, id); err != nil {
					t.Errorf("cleanup %q failed: %v", q, err)
				}
			}
		}
	})
}

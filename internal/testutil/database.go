// Package testutil provides fixtures and helpers shared by skinvault tests.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/skinvault/internal/kv"
)

// SetupTestStore creates a migrated in-memory SQLite store that is closed
// when the test ends.
func SetupTestStore(t *testing.T) *kv.SQLiteStore {
	t.Helper()

	store, err := kv.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

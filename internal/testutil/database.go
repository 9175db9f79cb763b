// Package testutil provides shared fixtures for tests that need a real
// snapshot cache or canned prediction history.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/storage"
)

// TestDB is a migrated in-memory snapshot cache.
type TestDB struct {
	Storage *storage.SQLiteStorage
	t       *testing.T
}

// SetupTestDB creates a new in-memory cache holding entries. It runs
// migrations and closes the database when the test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.HistoryEntries(3)...)
//	store := history.NewStore(source, history.WithCache(db.Storage))
func SetupTestDB(t *testing.T, entries ...model.HistoryEntry) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Entries: entries})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, *storage.SQLiteStorage) error
	Entries        []model.HistoryEntry
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	db, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	ctx := context.Background()

	if !opts.SkipMigrations {
		if err := db.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if len(opts.Entries) > 0 {
		if err := db.SaveHistorySnapshot(ctx, opts.Entries); err != nil {
			t.Fatalf("failed to seed history snapshot: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, db); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: db,
		t:       t,
	}
}

// MustLoad returns the cached snapshot or fails the test.
func (db *TestDB) MustLoad() []model.HistoryEntry {
	db.t.Helper()
	entries, err := db.Storage.LoadHistorySnapshot(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load history snapshot: %v", err)
	}
	return entries
}

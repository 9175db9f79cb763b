package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/fraudwatch/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t, HistoryEntries(7)...)

	assert.Equal(t, HistoryEntries(7), db.MustLoad())
}

func TestSetupTestDBWithOptions_CustomSetup(t *testing.T) {
	called := false
	db := SetupTestDBWithOptions(t, TestDBOptions{
		CustomSetup: func(ctx context.Context, s *storage.SQLiteStorage) error {
			called = true
			return s.SaveHistorySnapshot(ctx, HistoryEntries(2))
		},
	})

	require.True(t, called)
	assert.Len(t, db.MustLoad(), 2)
}

func TestHistoryEntries(t *testing.T) {
	entries := HistoryEntries(10)

	require.Len(t, entries, 10)
	assert.Equal(t, FixtureTime, entries[0].Timestamp)
	assert.True(t, entries[0].Timestamp.After(entries[1].Timestamp))
	assert.True(t, entries[4].IsFraud)
	assert.True(t, entries[9].IsFraud)
	assert.False(t, entries[0].IsFraud)
}

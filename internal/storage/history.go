package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/service"
)

// Ensure we implement the interface.
var _ service.SnapshotCache = (*SQLiteStorage)(nil)

// SaveHistorySnapshot replaces the stored snapshot with entries, keeping their
// order. The replacement is atomic.
func (s *SQLiteStorage) SaveHistorySnapshot(ctx context.Context, entries []model.HistoryEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateHistory(entries); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM history_snapshot`); err != nil {
		return fmt.Errorf("failed to clear history snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO history_snapshot (position, timestamp, amount, merchant, location, status, risk_score, is_fraud)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i, e := range entries {
		if _, err := stmt.ExecContext(ctx,
			i,
			e.Timestamp.UTC().Format(time.RFC3339Nano),
			e.Amount,
			e.Merchant,
			e.Location,
			e.Status,
			e.RiskScore,
			e.IsFraud,
		); err != nil {
			return fmt.Errorf("failed to insert history entry %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshot_meta (id, fetched_at, entry_count) VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at, entry_count = excluded.entry_count`,
		time.Now().UTC().Format(time.RFC3339Nano), len(entries),
	); err != nil {
		return fmt.Errorf("failed to update snapshot metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit history snapshot: %w", err)
	}
	return nil
}

// LoadHistorySnapshot returns the stored snapshot in its original order.
func (s *SQLiteStorage) LoadHistorySnapshot(ctx context.Context) ([]model.HistoryEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT timestamp, amount, merchant, location, status, risk_score, is_fraud
		FROM history_snapshot
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query history snapshot: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var (
			e  model.HistoryEntry
			ts string
		)
		if err := rows.Scan(&ts, &e.Amount, &e.Merchant, &e.Location, &e.Status, &e.RiskScore, &e.IsFraud); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("%w: bad timestamp %q", common.ErrDatabaseCorrupted, ts)
		}
		e.Timestamp = parsed
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history snapshot: %w", err)
	}

	return entries, nil
}

// SnapshotFetchedAt reports when the stored snapshot was written. It returns
// common.ErrNotFound when no snapshot has been saved yet.
func (s *SQLiteStorage) SnapshotFetchedAt(ctx context.Context) (time.Time, error) {
	if err := validateContext(ctx); err != nil {
		return time.Time{}, err
	}

	var ts string
	err := s.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1`).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, common.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read snapshot metadata: %w", err)
	}

	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad fetched_at %q", common.ErrDatabaseCorrupted, ts)
	}
	return parsed, nil
}

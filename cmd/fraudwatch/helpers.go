package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/config"
	"github.com/Veraticus/fraudwatch/internal/history"
	"github.com/Veraticus/fraudwatch/internal/predict"
	"github.com/Veraticus/fraudwatch/internal/storage"
	"github.com/spf13/viper"
)

// loadSettings resolves the configuration read in initConfig.
func loadSettings() config.Settings {
	return config.Load(viper.GetViper())
}

// initClient builds the prediction client from settings.
func initClient(settings config.Settings) (*predict.Client, error) {
	client, err := predict.NewClient(predict.Config{
		BaseURL: settings.BaseURL,
		Timeout: settings.Timeout,
	})
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) {
			return nil, common.NewUserError(
				"no prediction service configured: set service.base_url, FRAUDWATCH_SERVICE_BASE_URL or --base-url", err)
		}
		return nil, err
	}
	return client, nil
}

// initStorage opens and migrates the snapshot cache. It returns nil when the
// cache is disabled by an empty storage.path.
func initStorage(ctx context.Context, settings config.Settings) (*storage.SQLiteStorage, error) {
	if settings.StoragePath == "" {
		slog.Debug("History cache disabled")
		return nil, nil
	}

	store, err := storage.NewSQLiteStorage(settings.StoragePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initHistory builds a history store over client, caching snapshots in db
// when it is non-nil.
func initHistory(client *predict.Client, db *storage.SQLiteStorage) *history.Store {
	if db == nil {
		return history.NewStore(client)
	}
	return history.NewStore(client, history.WithCache(db))
}

// closeStorage closes db if it was opened.
func closeStorage(db *storage.SQLiteStorage) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		slog.Warn("Failed to close history cache", "error", err)
	}
}

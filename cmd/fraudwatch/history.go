package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/fraudwatch/internal/cli"
	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/config"
	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/predict"
	"github.com/spf13/cobra"
)

func historyCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the prediction history",
		Long: `Show the prediction history kept by the service, newest first.

The fetched history is cached locally. With --offline the cached snapshot is
shown without contacting the service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, fetchedAt, err := loadHistory(cmd.Context(), loadSettings(), offline)
			if err != nil {
				return err
			}

			reporter := cli.NewReporter(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if offline && !fetchedAt.IsZero() {
				reporter.Println(cli.FormatInfo("Cached snapshot from " + fetchedAt.UTC().Format(export.TimestampLayout) + " UTC"))
			}
			reporter.PrintHistory(entries)
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "show the cached snapshot instead of fetching")

	return cmd
}

// loadHistory returns the current history, fetched through a store so the
// cache is updated, or read from the cache alone when offline.
func loadHistory(ctx context.Context, settings config.Settings, offline bool) ([]model.HistoryEntry, time.Time, error) {
	db, err := initStorage(ctx, settings)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer closeStorage(db)

	if offline {
		if db == nil {
			return nil, time.Time{}, common.NewUserError("--offline needs the history cache; set storage.path", common.ErrMissingConfig)
		}
		entries, err := db.LoadHistorySnapshot(ctx)
		if err != nil {
			return nil, time.Time{}, err
		}
		fetchedAt, err := db.SnapshotFetchedAt(ctx)
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return nil, time.Time{}, err
		}
		return entries, fetchedAt, nil
	}

	client, err := initClient(settings)
	if err != nil {
		return nil, time.Time{}, err
	}

	entries, err := initHistory(client, db).Refresh(ctx)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w (use --offline for the cached snapshot)", err)
	}
	return entries, time.Now(), nil
}

// refreshAfterPrediction updates the history cache after a successful
// prediction. Failures are reported as warnings and never fail the command.
func refreshAfterPrediction(cmd *cobra.Command, settings config.Settings, client *predict.Client, reporter *cli.Reporter) {
	ctx := cmd.Context()

	db, err := initStorage(ctx, settings)
	if err != nil {
		common.LogWarn(err, "History cache unavailable", nil)
		return
	}
	defer closeStorage(db)

	store := initHistory(client, db)
	entries, err := store.Refresh(ctx)
	if err != nil {
		reporter.Println(cli.FormatWarning(err.Error()))
		return
	}
	common.LogDebug("History refreshed", common.Fields{"entries": len(entries)})
}

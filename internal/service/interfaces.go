// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/fraudwatch/internal/model"
)

// Predictor submits a transaction to the prediction service.
type Predictor interface {
	Submit(ctx context.Context, input model.TransactionInput) (*model.PredictionResult, error)
}

// HistorySource fetches the full prediction history from the service.
type HistorySource interface {
	FetchHistory(ctx context.Context) ([]model.HistoryEntry, error)
}

// PredictionService is the complete remote contract.
type PredictionService interface {
	Predictor
	HistorySource
}

// SnapshotCache persists the last fetched history snapshot locally.
type SnapshotCache interface {
	SaveHistorySnapshot(ctx context.Context, entries []model.HistoryEntry) error
	LoadHistorySnapshot(ctx context.Context) ([]model.HistoryEntry, error)
}

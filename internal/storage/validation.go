// Package storage provides the local persistence layer for fraudwatch.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateHistory checks entries before they replace the snapshot. An empty
// slice is valid: the service may have no history yet.
func validateHistory(entries []model.HistoryEntry) error {
	if entries == nil {
		return fmt.Errorf("%w: entries", ErrNilParameter)
	}
	return nil
}

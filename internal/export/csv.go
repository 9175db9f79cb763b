// Package export renders the prediction history as downloadable files.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/model"
)

// FileName is the conventional name of the history export.
const FileName = "fraud_prediction_history.csv"

// TimestampLayout renders entry times. Times are converted to UTC first so the
// output does not depend on the machine's zone or locale.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the fixed first row of every export.
var Header = []string{"Date", "Amount", "Merchant", "Location", "Status", "Risk Score"}

// Encode renders entries as comma-joined rows separated by newlines, header
// first. Fields are not quoted or escaped: a merchant, location or status that
// contains a comma yields a row with extra columns.
func Encode(entries []model.HistoryEntry) []byte {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, strings.Join(Header, ","))

	for _, e := range entries {
		lines = append(lines, strings.Join([]string{
			FormatTimestamp(e),
			model.FormatAmount(e.Amount),
			e.Merchant,
			e.Location,
			e.Status,
			strconv.Itoa(e.RiskScore),
		}, ","))
	}

	return []byte(strings.Join(lines, "\n"))
}

// FormatTimestamp renders an entry's time, or an empty string when unknown.
func FormatTimestamp(e model.HistoryEntry) string {
	if e.Timestamp.IsZero() {
		return ""
	}
	return e.Timestamp.UTC().Format(TimestampLayout)
}

// WriteFile encodes entries into dir/FileName and returns the written path.
func WriteFile(dir string, entries []model.HistoryEntry) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, Encode(entries), 0600); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

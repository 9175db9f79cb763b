package testutil

import (
	"time"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
)

// FixtureTime is the timestamp of the newest fixture entry.
var FixtureTime = time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)

// HistoryEntries returns n entries, newest first, cycling through the
// quick-test scenarios. Every fifth entry is a fraud verdict.
func HistoryEntries(n int) []model.HistoryEntry {
	scenarios := preset.All()
	entries := make([]model.HistoryEntry, n)
	for i := range entries {
		s := scenarios[i%len(scenarios)]
		fraud := s.Name == preset.Suspicious

		status, score := "Legitimate", 5+i%20
		if fraud {
			status, score = "Fraud Detected", 90
		}

		entries[i] = model.HistoryEntry{
			Timestamp: FixtureTime.Add(-time.Duration(i) * time.Minute),
			Amount:    s.Amount,
			Merchant:  string(s.Merchant),
			Location:  string(s.Location),
			Status:    status,
			RiskScore: score,
			IsFraud:   fraud,
		}
	}
	return entries
}

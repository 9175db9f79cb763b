package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleHistory() []model.HistoryEntry {
	return []model.HistoryEntry{
		{
			Timestamp: time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC),
			Amount:    5000,
			Merchant:  "Travel",
			Location:  "Abroad",
			Status:    "Fraud Detected",
			RiskScore: 92,
			IsFraud:   true,
		},
		{
			Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("CET", 3600)),
			Amount:    12.5,
			Merchant:  "Grocery",
			Location:  "Home City",
			Status:    "Legitimate",
			RiskScore: 4,
		},
	}
}

func TestEncode(t *testing.T) {
	got := string(Encode(sampleHistory()))

	want := strings.Join([]string{
		"Date,Amount,Merchant,Location,Status,Risk Score",
		"2024-03-01 14:05:09,5000,Travel,Abroad,Fraud Detected,92",
		"2024-03-01 08:00:00,12.5,Grocery,Home City,Legitimate,4",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestEncode_HeaderOnlyWhenEmpty(t *testing.T) {
	assert.Equal(t, "Date,Amount,Merchant,Location,Status,Risk Score", string(Encode(nil)))
}

func TestEncode_Deterministic(t *testing.T) {
	entries := sampleHistory()
	first := Encode(entries)

	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Encode(entries))
	}
}

func TestEncode_KeepsServiceOrder(t *testing.T) {
	entries := sampleHistory()
	entries[0], entries[1] = entries[1], entries[0]

	lines := strings.Split(string(Encode(entries)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "2024-03-01 08:00:00,12.5,Grocery"))
}

func TestEncode_DoesNotEscapeDelimiters(t *testing.T) {
	entries := []model.HistoryEntry{{
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Amount:    1,
		Merchant:  "Shop, Inc",
		Location:  "Home City",
		Status:    "Legitimate",
	}}

	lines := strings.Split(string(Encode(entries)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-01-01 00:00:00,1,Shop, Inc,Home City,Legitimate,0", lines[1])
	assert.Len(t, strings.Split(lines[1], ","), 7)
}

func TestFormatTimestamp_Zero(t *testing.T) {
	assert.Equal(t, "", FormatTimestamp(model.HistoryEntry{}))
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteFile(dir, sampleHistory())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Encode(sampleHistory()), data)
}

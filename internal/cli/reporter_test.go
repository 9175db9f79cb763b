package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/stretchr/testify/assert"
)

func testInput() model.TransactionInput {
	in := model.DefaultTransactionInput()
	in.AmountText = "5000"
	in.Time = 2
	in.Merchant = model.MerchantTravel
	in.Location = model.LocationAbroad
	return in
}

func TestFormatResult(t *testing.T) {
	result := &model.PredictionResult{
		Status:              "Fraud Detected",
		IsFraud:             true,
		RiskScore:           92,
		ClassicalConfidence: 95,
		QuantumConfidence:   88,
		Agreement:           "Strong",
		Reasons:             []string{"High amount", "Unusual location"},
	}

	out := FormatResult(testInput(), result)

	for _, want := range []string{
		"Fraud Detected",
		"Risk Score: 92/100",
		"$5000",
		"02:00",
		"Travel",
		"Abroad",
		"Classical Confidence: 95%",
		"Quantum Confidence:   88%",
		"Model Agreement:      Strong",
		"• High amount",
		"• Unusual location",
		"flagged for manual review",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatResult_Legitimate(t *testing.T) {
	out := FormatResult(testInput(), &model.PredictionResult{Status: "Legitimate", RiskScore: 3})

	assert.Contains(t, out, "Legitimate")
	assert.Contains(t, out, "matches normal user behavior")
}

func TestFormatResult_Nil(t *testing.T) {
	assert.Contains(t, FormatResult(testInput(), nil), "No prediction.")
}

func TestPrintHistory(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf, &bytes.Buffer{})

	r.PrintHistory([]model.HistoryEntry{
		{Timestamp: time.Date(2024, 3, 1, 14, 5, 9, 0, time.UTC), Amount: 5000, Merchant: "Travel", Location: "Abroad", Status: "Fraud Detected", RiskScore: 92, IsFraud: true},
		{Timestamp: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), Amount: 12.5, Merchant: "Grocery", Location: "Home City", Status: "Legitimate", RiskScore: 4},
	})

	out := buf.String()
	assert.Contains(t, out, "Risk Score")
	assert.Contains(t, out, "2024-03-01 14:05:09")
	assert.Contains(t, out, "$12.5")
	assert.Contains(t, out, "Home City")
	assert.Less(t, strings.Index(out, "Travel"), strings.Index(out, "Grocery"), "service order is kept")
}

func TestPrintHistory_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, &bytes.Buffer{}).PrintHistory(nil)

	assert.Contains(t, buf.String(), "No predictions recorded yet.")
}

func TestPrintPresets(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, &bytes.Buffer{}).PrintPresets(preset.All())

	out := buf.String()
	for _, name := range preset.Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "Very High Risk")
	assert.Contains(t, out, "$5000")
}

func TestSweepProgress(t *testing.T) {
	var progress bytes.Buffer
	r := NewReporter(&bytes.Buffer{}, &progress)

	r.StepSweep()
	assert.Zero(t, progress.Len(), "no bar before a sweep starts")

	r.StartSweep(2)
	r.StepSweep()
	r.StepSweep()

	assert.NotZero(t, progress.Len())
}

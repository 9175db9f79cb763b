package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionResult_DecodesServiceFields(t *testing.T) {
	body := `{"status":"Fraud Detected","isFraud":true,"riskScore":92,"classicalConf":95,
		"quantumConf":88,"agreement":"Strong","reasons":["High amount","Unusual location","Late hour"]}`

	var r PredictionResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, PredictionResult{
		Status:              "Fraud Detected",
		IsFraud:             true,
		RiskScore:           92,
		ClassicalConfidence: 95,
		QuantumConfidence:   88,
		Agreement:           "Strong",
		Reasons:             []string{"High amount", "Unusual location", "Late hour"},
	}, r)
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		name    string
		isFraud bool
		score   int
		want    Severity
	}{
		{name: "fraud wins over low score", isFraud: true, score: 10, want: SeverityFraud},
		{name: "high score not fraud", score: 31, want: SeverityReview},
		{name: "threshold is legitimate", score: 30, want: SeverityLegitimate},
		{name: "low score", score: 5, want: SeverityLegitimate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SeverityOf(tt.isFraud, tt.score))
		})
	}
}

func TestPredictionResult_Tip(t *testing.T) {
	assert.Contains(t, PredictionResult{IsFraud: true}.Tip(), "flagged for manual review")
	assert.Contains(t, PredictionResult{}.Tip(), "normal user behavior")
}

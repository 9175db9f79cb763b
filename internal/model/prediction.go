package model

import "time"

// PredictionResult is the verdict returned by the prediction service. It is
// adopted as received and replaced wholesale by the next result.
type PredictionResult struct {
	Status              string   `json:"status"`
	Agreement           string   `json:"agreement"`
	Reasons             []string `json:"reasons"`
	RiskScore           int      `json:"riskScore"`
	ClassicalConfidence int      `json:"classicalConf"`
	QuantumConfidence   int      `json:"quantumConf"`
	IsFraud             bool     `json:"isFraud"`
}

// HistoryEntry is one past prediction as persisted by the service.
type HistoryEntry struct {
	Timestamp time.Time
	Merchant  string
	Location  string
	Status    string
	Amount    float64
	RiskScore int
	IsFraud   bool
}

// Severity is the display tier of a verdict.
type Severity int

// Severity tiers.
const (
	SeverityLegitimate Severity = iota
	SeverityReview
	SeverityFraud
)

// ReviewThreshold is the risk score above which a non-fraud verdict is shown
// as needing review.
const ReviewThreshold = 30

// SeverityOf maps a verdict to a display tier. isFraud always wins.
func SeverityOf(isFraud bool, riskScore int) Severity {
	switch {
	case isFraud:
		return SeverityFraud
	case riskScore > ReviewThreshold:
		return SeverityReview
	default:
		return SeverityLegitimate
	}
}

// Severity returns the display tier of the result.
func (r PredictionResult) Severity() Severity {
	return SeverityOf(r.IsFraud, r.RiskScore)
}

// Tip returns the guidance line shown under a verdict.
func (r PredictionResult) Tip() string {
	if r.IsFraud {
		return "This transaction has been flagged for manual review. Do not approve until verified."
	}
	return "This transaction matches normal user behavior patterns."
}

// Severity returns the display tier of the entry.
func (e HistoryEntry) Severity() Severity {
	return SeverityOf(e.IsFraud, e.RiskScore)
}

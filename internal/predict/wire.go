package predict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Veraticus/fraudwatch/internal/model"
)

type historyEntry struct {
	Timestamp serviceTime `json:"timestamp"`
	Merchant  string      `json:"merchant"`
	Location  string      `json:"location"`
	Status    string      `json:"status"`
	Amount    float64     `json:"amount"`
	RiskScore int         `json:"riskScore"`
	IsFraud   bool        `json:"isFraud"`
}

func (h historyEntry) toModel() model.HistoryEntry {
	return model.HistoryEntry{
		Timestamp: time.Time(h.Timestamp),
		Amount:    h.Amount,
		Merchant:  h.Merchant,
		Location:  h.Location,
		Status:    h.Status,
		RiskScore: h.RiskScore,
		IsFraud:   h.IsFraud,
	}
}

// serviceTime accepts the ISO-8601 variants the service emits. Values without
// a zone offset are taken as UTC.
type serviceTime time.Time

var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func (t *serviceTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*t = serviceTime(time.Time{})
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = serviceTime(time.Time{})
		return nil
	}

	if parsed, err := time.Parse(time.RFC3339Nano, s); err == nil {
		*t = serviceTime(parsed.UTC())
		return nil
	}
	for _, layout := range zonelessLayouts {
		if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			*t = serviceTime(parsed)
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

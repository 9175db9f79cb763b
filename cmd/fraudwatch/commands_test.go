package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/fraudwatch/internal/cli"
	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPredictor struct {
	failOn map[string]bool
	inputs []model.TransactionInput
	mu     sync.Mutex
}

func (r *recordingPredictor) Submit(_ context.Context, input model.TransactionInput) (*model.PredictionResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inputs = append(r.inputs, input)
	if r.failOn[string(input.Merchant)] {
		return nil, errors.New("service unavailable")
	}
	return &model.PredictionResult{Status: "Legitimate", RiskScore: 10, Agreement: "Strong"}, nil
}

func sweepCommand(out *bytes.Buffer) *cobra.Command {
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	return cmd
}

func TestRunSweep_AllScenariosInOrder(t *testing.T) {
	var out bytes.Buffer
	p := &recordingPredictor{}

	failed := runSweep(sweepCommand(&out), p, preset.Names(), cli.NewReporter(&out, &bytes.Buffer{}))

	assert.Zero(t, failed)
	require.Len(t, p.inputs, len(preset.Names()))
	for i, s := range preset.All() {
		assert.Equal(t, s.Merchant, p.inputs[i].Merchant)
		assert.Equal(t, model.FormatAmount(s.Amount), p.inputs[i].AmountText)
	}
	assert.Contains(t, out.String(), "Legitimate")
}

func TestRunSweep_CountsFailures(t *testing.T) {
	var out bytes.Buffer
	p := &recordingPredictor{failOn: map[string]bool{string(model.MerchantATM): true}}

	failed := runSweep(sweepCommand(&out), p, []string{preset.Coffee, preset.ATM, preset.Suspicious}, cli.NewReporter(&out, &bytes.Buffer{}))

	assert.Equal(t, 1, failed)
	assert.Len(t, p.inputs, 3, "a failure does not stop the sweep")
	assert.Contains(t, out.String(), "atm: service unavailable")
}

func TestRunSweep_CanceledContextStops(t *testing.T) {
	var out bytes.Buffer
	cmd := sweepCommand(&out)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd.SetContext(ctx)
	p := &recordingPredictor{}

	runSweep(cmd, p, preset.Names(), cli.NewReporter(&out, &bytes.Buffer{}))

	assert.Empty(t, p.inputs)
}

// fakeService is an httptest prediction service that records history.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	var (
		mu      sync.Mutex
		history []map[string]any
	)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /predict", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		history = append([]map[string]any{{
			"timestamp": "2024-03-01T14:05:09",
			"amount":    req["amount"],
			"merchant":  req["merchant"],
			"location":  req["location"],
			"status":    "Fraud Detected",
			"riskScore": 92,
			"isFraud":   true,
		}}, history...)
		mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":        "Fraud Detected",
			"isFraud":       true,
			"riskScore":     92,
			"classicalConf": 95,
			"quantumConf":   88,
			"agreement":     "Strong",
			"reasons":       []string{"High amount", "Unusual location", "Late hour"},
		})
	})
	mux.HandleFunc("GET /history", func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		_ = json.NewEncoder(w).Encode(history)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestPredictThenExport(t *testing.T) {
	srv := fakeService(t)
	home := t.TempDir()
	exportDir := filepath.Join(home, "exports")
	t.Setenv("HOME", home)
	t.Setenv("FRAUDWATCH_SERVICE_BASE_URL", srv.URL)
	t.Setenv("FRAUDWATCH_STORAGE_PATH", filepath.Join(home, "cache", "history.db"))
	t.Setenv("FRAUDWATCH_LOGGING_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"predict", "--preset", "suspicious"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Fraud Detected")
	assert.Contains(t, out.String(), "Risk Score: 92/100")

	out.Reset()
	rootCmd.SetArgs([]string{"export", "--offline", "-o", exportDir})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "Exported 1 entries")

	data, err := os.ReadFile(filepath.Join(exportDir, export.FileName))
	require.NoError(t, err)
	assert.Equal(t,
		"Date,Amount,Merchant,Location,Status,Risk Score\n2024-03-01 14:05:09,5000,Travel,Abroad,Fraud Detected,92",
		string(data))
}

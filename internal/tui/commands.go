package tui

import (
	"context"
	"log/slog"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/controller"
	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/Veraticus/fraudwatch/internal/history"
	"github.com/Veraticus/fraudwatch/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	exportKindCSV   = "history"
	exportKindChart = "chart"
)

// submitPrediction sends sub and reports the response. The request works on
// the copy of the form taken at submit time.
func (m Model) submitPrediction(sub controller.Submission) tea.Cmd {
	predictor := m.predictor
	parent := m.ctx
	timeout := m.config.RequestTimeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		slog.Debug("Submitting prediction", "seq", sub.Seq, "merchant", sub.Input.Merchant)
		result, err := predictor.Submit(ctx, sub.Input)
		return predictionResultMsg{seq: sub.Seq, result: result, err: err}
	}
}

// warmHistory seeds the store from the local cache.
func (m Model) warmHistory() tea.Cmd {
	store := m.store
	parent := m.ctx

	return func() tea.Msg {
		if err := store.Warm(parent); err != nil {
			common.LogWarn(err, "Failed to load cached history", nil)
			return nil
		}
		return historyUpdatedMsg{source: "cache"}
	}
}

// refreshHistory fetches the full history. Failures reach the UI through the
// store's warning channel, so the command itself reports nothing on error.
func (m Model) refreshHistory() tea.Cmd {
	store := m.store
	parent := m.ctx
	timeout := m.config.RequestTimeout

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()

		if _, err := store.Refresh(ctx); err != nil {
			return nil
		}
		return historyUpdatedMsg{source: "service"}
	}
}

// waitForWarning blocks until the store reports a failure.
func waitForWarning(store *history.Store) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-store.Warnings()
		if !ok {
			return nil
		}
		return historyWarningMsg{err: err}
	}
}

// exportHistory writes entries as CSV under dir.
func exportHistory(dir string, entries []model.HistoryEntry) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteFile(dir, entries)
		return exportDoneMsg{kind: exportKindCSV, path: path, err: err}
	}
}

// exportChart writes the risk score chart under dir.
func exportChart(dir string, entries []model.HistoryEntry) tea.Cmd {
	return func() tea.Msg {
		path, err := export.WriteChartFile(dir, entries)
		return exportDoneMsg{kind: exportKindChart, path: path, err: err}
	}
}

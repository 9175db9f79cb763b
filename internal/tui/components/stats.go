package components

import (
	"fmt"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// HistoryStats summarizes a history snapshot by verdict tier.
type HistoryStats struct {
	Total       int
	Fraud       int
	Review      int
	Legitimate  int
	AverageRisk float64
}

// FraudRate is the share of entries flagged as fraud, in [0,1].
func (s HistoryStats) FraudRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Fraud) / float64(s.Total)
}

// SummarizeHistory counts entries per severity tier.
func SummarizeHistory(entries []model.HistoryEntry) HistoryStats {
	var stats HistoryStats
	riskSum := 0
	for _, e := range entries {
		stats.Total++
		riskSum += e.RiskScore
		switch e.Severity() {
		case model.SeverityFraud:
			stats.Fraud++
		case model.SeverityReview:
			stats.Review++
		default:
			stats.Legitimate++
		}
	}
	if stats.Total > 0 {
		stats.AverageRisk = float64(riskSum) / float64(stats.Total)
	}
	return stats
}

// StatsPanelModel renders the one-line summary above the history table.
type StatsPanelModel struct {
	theme       themes.Theme
	progressBar progress.Model
	stats       HistoryStats
	width       int
}

// NewStatsPanelModel creates a new stats panel.
func NewStatsPanelModel(theme themes.Theme) StatsPanelModel {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Error)),
		progress.WithoutPercentage(),
		progress.WithWidth(20),
	)
	return StatsPanelModel{
		theme:       theme,
		progressBar: bar,
	}
}

// SetEntries recomputes the summary.
func (m *StatsPanelModel) SetEntries(entries []model.HistoryEntry) {
	m.stats = SummarizeHistory(entries)
}

// Stats returns the current summary.
func (m StatsPanelModel) Stats() HistoryStats {
	return m.stats
}

// Resize sets the available width.
func (m *StatsPanelModel) Resize(width int) {
	m.width = width
	m.progressBar.Width = min(max(width/5, 10), 30)
}

// View renders the stats panel.
func (m StatsPanelModel) View() string {
	if m.stats.Total == 0 {
		return ""
	}

	counts := fmt.Sprintf("%d predictions  %s  %s  %s  avg risk %.0f",
		m.stats.Total,
		m.theme.StatusError.Render(fmt.Sprintf("%d flagged", m.stats.Fraud)),
		m.theme.StatusWarning.Render(fmt.Sprintf("%d review", m.stats.Review)),
		m.theme.StatusSuccess.Render(fmt.Sprintf("%d legitimate", m.stats.Legitimate)),
		m.stats.AverageRisk,
	)

	if m.width < 60 {
		return counts
	}

	rate := m.theme.Normal.Render(fmt.Sprintf(" %.0f%% fraud", m.stats.FraudRate()*100))
	return lipgloss.JoinHorizontal(lipgloss.Center, counts, "  ", m.progressBar.ViewAs(m.stats.FraudRate()), rate)
}

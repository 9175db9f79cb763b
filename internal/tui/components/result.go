package components

import (
	"fmt"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ResultPanelModel renders the most recent verdict.
type ResultPanelModel struct {
	theme  themes.Theme
	result *model.PredictionResult
	width  int
}

// NewResultPanelModel creates an empty result panel.
func NewResultPanelModel(theme themes.Theme) ResultPanelModel {
	return ResultPanelModel{
		theme: theme,
		width: 40,
	}
}

// SetResult replaces the displayed verdict. nil clears the panel.
func (m *ResultPanelModel) SetResult(result *model.PredictionResult) {
	m.result = result
}

// Result returns the displayed verdict, or nil.
func (m ResultPanelModel) Result() *model.PredictionResult {
	return m.result
}

// Resize sets the panel width.
func (m *ResultPanelModel) Resize(width int) {
	if width > 0 {
		m.width = width
	}
}

// View renders the panel.
func (m ResultPanelModel) View() string {
	if m.result == nil {
		return m.theme.StatusPending.Render("Submit a transaction or pick a quick test to see a prediction.")
	}

	r := m.result
	sev := r.Severity()

	sections := []string{
		m.theme.Severity(sev).Render(strings.ToUpper(r.Status)),
		"",
		m.renderRisk(sev),
		"",
		m.renderConfidence("Classical Confidence", r.ClassicalConfidence),
		m.renderConfidence("Quantum Confidence", r.QuantumConfidence),
		m.theme.Label.Render("Model Agreement") + m.theme.Bold.Render(r.Agreement),
		"",
		m.theme.Subtitle.Render("Contributing Factors"),
	}

	if len(r.Reasons) == 0 {
		sections = append(sections, m.theme.StatusPending.Render("  none reported"))
	}
	for _, reason := range r.Reasons {
		sections = append(sections, m.theme.Normal.Render("  • "+reason))
	}

	sections = append(sections, "", m.theme.Subtitle.Render("Tip: "+r.Tip()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ResultPanelModel) renderRisk(sev model.Severity) string {
	barWidth := max(m.width-24, 10)
	bar := progress.New(
		progress.WithSolidFill(string(m.theme.SeverityColor(sev))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)

	label := m.theme.Label.Render("Risk Score")
	score := m.theme.Severity(sev).Render(fmt.Sprintf(" %d/100", m.result.RiskScore))
	return label + bar.ViewAs(percent(m.result.RiskScore)) + score
}

func (m ResultPanelModel) renderConfidence(label string, value int) string {
	return m.theme.Label.Render(label) + m.theme.Bold.Render(fmt.Sprintf("%d%%", value))
}

func percent(score int) float64 {
	return float64(min(max(score, 0), 100)) / 100
}

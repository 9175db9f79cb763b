package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/fraudwatch/internal/common"
	"github.com/Veraticus/fraudwatch/internal/preset"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/charmbracelet/lipgloss"
)

// wideLayout is the width from which form and result sit side by side.
const wideLayout = 100

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	left, right := m.columnWidths()
	form := m.panel("Transaction", m.renderForm(), left)
	result := m.panel("Prediction", m.renderResult(), max(right, left))

	var body string
	if right > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, form, " ", result)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, form, result)
	}

	sections := []string{
		m.renderHeader(),
		body,
		m.panel("Prediction History", m.renderHistory(), m.width-2),
	}
	if status := m.renderStatus(); status != "" {
		sections = append(sections, status)
	}
	if m.config.ShowHelp {
		sections = append(sections, m.renderHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// columnWidths splits the terminal into form and result columns. right is
// zero when the panels stack.
func (m Model) columnWidths() (left, right int) {
	usable := max(m.width-2, 40)
	if m.width < wideLayout {
		return usable, 0
	}
	left = usable * 2 / 5
	return left, usable - left - 1
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("🛡️  Real-Time Fraud Detection")
	if m.config.ServiceLabel == "" {
		return title
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.theme.Subtitle.Render(m.config.ServiceLabel),
	)
}

func (m Model) renderForm() string {
	in := m.ctrl.Input()
	rows := make([]string, 0, int(fieldCount)+4)

	for f := fieldAmount; f < fieldCount; f++ {
		marker := "  "
		if f == m.focus {
			marker = m.theme.StatusInfo.Render("▸ ")
		}

		var value string
		switch {
		case f == fieldAmount:
			value = m.amount.View()
		case f == m.focus:
			value = m.theme.Selected.Render("‹ " + f.value(in) + " ›")
		default:
			value = m.theme.Normal.Render(f.value(in))
		}

		rows = append(rows, marker+m.theme.Label.Render(f.label())+value)
	}

	rows = append(rows, "", m.theme.Subtitle.Render("Quick Tests"))
	for i, s := range preset.All() {
		if i >= len(presetKeys) {
			break
		}
		rows = append(rows, fmt.Sprintf("  %s %s %s %s",
			m.theme.Bold.Render(strings.ToUpper(presetKeys[i])),
			themes.GetPresetIcon(s.Name),
			m.theme.Normal.Render(s.Label),
			m.theme.StatusPending.Render("("+s.RiskHint+")"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderResult() string {
	var parts []string

	if m.ctrl.InFlight() {
		parts = append(parts, m.spinner.View()+m.theme.StatusInfo.Render(" Analyzing transaction..."), "")
	}

	if err := m.ctrl.Err(); err != nil {
		parts = append(parts, m.theme.AlertBox.Render(errorText(err)), "")
	}

	parts = append(parts, m.result.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderHistory() string {
	summary := m.stats.View()
	if summary == "" {
		return m.history.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, summary, "", m.history.View())
}

func (m Model) renderStatus() string {
	var lines []string
	if m.notice.text != "" {
		style := m.theme.StatusInfo
		if m.notice.isErr {
			style = m.theme.StatusError
		}
		lines = append(lines, style.Render(m.notice.text))
	}
	if m.lastWarning != nil {
		lines = append(lines, m.theme.StatusWarning.Render("⚠ "+m.lastWarning.Error()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderHelp() string {
	if m.showFullHelp {
		return m.help.FullHelpView(m.keymap.FullHelp())
	}
	return m.help.ShortHelpView(m.keymap.ShortHelp())
}

func (m Model) panel(title, content string, width int) string {
	inner := lipgloss.JoinVertical(lipgloss.Left, m.theme.Bold.Render(title), content)
	return m.theme.RoundedBox.Width(max(width-2, 10)).Render(inner)
}

// errorText is the alert shown for a failed submission.
func errorText(err error) string {
	var transport *common.TransportError
	switch {
	case errors.Is(err, common.ErrInvalidAmount):
		return "Please enter a valid amount."
	case errors.As(err, &transport):
		return "Prediction failed: " + transport.Error() + "\nCheck the service and try again."
	default:
		return err.Error()
	}
}

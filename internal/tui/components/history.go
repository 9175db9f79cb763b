package components

import (
	"strconv"

	"github.com/Veraticus/fraudwatch/internal/export"
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/Veraticus/fraudwatch/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// HistoryTableModel shows the prediction history in service order.
type HistoryTableModel struct {
	theme   themes.Theme
	entries []model.HistoryEntry
	table   table.Model
	width   int
	height  int
}

// NewHistoryTableModel creates an empty history table.
func NewHistoryTableModel(theme themes.Theme) HistoryTableModel {
	t := table.New(
		table.WithColumns(historyColumns(80)),
		table.WithHeight(8),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	styles.Selected = theme.Selected
	t.SetStyles(styles)

	return HistoryTableModel{
		theme:  theme,
		table:  t,
		width:  80,
		height: 8,
	}
}

// SetEntries replaces the rows. The order of entries is kept.
func (m *HistoryTableModel) SetEntries(entries []model.HistoryEntry) {
	m.entries = entries

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, table.Row{
			export.FormatTimestamp(e),
			"$" + model.FormatAmount(e.Amount),
			e.Merchant,
			e.Location,
			e.Status,
			strconv.Itoa(e.RiskScore),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Entries returns the displayed entries.
func (m HistoryTableModel) Entries() []model.HistoryEntry {
	return m.entries
}

// Len returns the number of rows.
func (m HistoryTableModel) Len() int {
	return len(m.entries)
}

// Cursor returns the selected row index.
func (m HistoryTableModel) Cursor() int {
	return m.table.Cursor()
}

// MoveUp moves the selection up n rows.
func (m *HistoryTableModel) MoveUp(n int) {
	m.table.MoveUp(n)
}

// MoveDown moves the selection down n rows.
func (m *HistoryTableModel) MoveDown(n int) {
	m.table.MoveDown(n)
}

// PageSize is the number of visible rows.
func (m HistoryTableModel) PageSize() int {
	return max(m.height-1, 1)
}

// Resize updates the table dimensions.
func (m *HistoryTableModel) Resize(width, height int) {
	m.width = max(width, 40)
	m.height = max(height, 3)
	m.table.SetColumns(historyColumns(m.width))
	m.table.SetWidth(m.width)
	m.table.SetHeight(m.height)
}

// View renders the table.
func (m HistoryTableModel) View() string {
	if len(m.entries) == 0 {
		return m.theme.StatusPending.Render("No predictions recorded yet.")
	}
	return m.table.View()
}

func historyColumns(width int) []table.Column {
	// Fixed columns take 19+10+14+6 plus cell padding; the rest is shared by
	// merchant and location.
	flex := max(width-49-12, 24)
	return []table.Column{
		{Title: "Time", Width: 19},
		{Title: "Amount", Width: 10},
		{Title: "Merchant", Width: flex / 2},
		{Title: "Location", Width: flex - flex/2},
		{Title: "Prediction", Width: 14},
		{Title: "Risk", Width: 6},
	}
}

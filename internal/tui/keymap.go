package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Form
	NextField key.Binding
	PrevField key.Binding
	Decrease  key.Binding
	Increase  key.Binding
	Submit    key.Binding
	Clear     key.Binding

	// Quick tests
	Presets []key.Binding

	// History
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	Refresh     key.Binding
	ExportCSV   key.Binding
	ExportChart key.Binding

	// Application
	Help key.Binding
	Quit key.Binding
}

// presetKeys binds F1..F5 to the quick-test scenarios in catalog order.
var presetKeys = []string{"f1", "f2", "f3", "f4", "f5"}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	km := KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("Tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("Shift+Tab/↑", "previous field"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "previous value"),
		),
		Increase: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next value"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "predict"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("Ctrl+X", "clear form"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "history up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "history down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "refresh history"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("Ctrl+S", "export CSV"),
		),
		ExportChart: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "export chart"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("Esc/Ctrl+C", "quit"),
		),
	}

	for _, k := range presetKeys {
		km.Presets = append(km.Presets, key.NewBinding(key.WithKeys(k)))
	}

	return km
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Clear, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Decrease, k.Increase},
		{k.Submit, k.Clear},
		{k.ScrollUp, k.ScrollDown, k.Refresh},
		{k.ExportCSV, k.ExportChart, k.Help, k.Quit},
	}
}

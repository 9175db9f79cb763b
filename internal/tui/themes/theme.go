package themes

import (
	"github.com/Veraticus/fraudwatch/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Selected      lipgloss.Style
	StatusPending lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusWarning lipgloss.Style
	StatusSuccess lipgloss.Style
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Label         lipgloss.Style
	RoundedBox    lipgloss.Style
	AlertBox      lipgloss.Style
	Primary       lipgloss.Color
	Muted         lipgloss.Color
	Border        lipgloss.Color
	Info          lipgloss.Color
	Error         lipgloss.Color
	Warning       lipgloss.Color
	Success       lipgloss.Color
}

// Severity returns the status style for a verdict tier.
func (t Theme) Severity(sev model.Severity) lipgloss.Style {
	switch sev {
	case model.SeverityFraud:
		return t.StatusError
	case model.SeverityReview:
		return t.StatusWarning
	default:
		return t.StatusSuccess
	}
}

// SeverityColor returns the accent color for a verdict tier.
func (t Theme) SeverityColor(sev model.Severity) lipgloss.Color {
	switch sev {
	case model.SeverityFraud:
		return t.Error
	case model.SeverityReview:
		return t.Warning
	default:
		return t.Success
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary:    "#3b82f6",
	success:    "#10b981",
	warning:    "#eab308",
	errorColor: "#ef4444",
	info:       "#38bdf8",
	foreground: "#fafafa",
	subtle:     "#a3a3a3",
	border:     "#404040",
	muted:      "#737373",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary:    "#cba6f7",
	success:    "#a6e3a1",
	warning:    "#f9e2af",
	errorColor: "#f38ba8",
	info:       "#89dceb",
	foreground: "#cdd6f4",
	subtle:     "#a6adc8",
	border:     "#45475a",
	muted:      "#6c7086",
})

type palette struct {
	primary, success, warning, errorColor, info string
	foreground, subtle, border, muted           string
}

func newTheme(p palette) Theme {
	return Theme{
		Primary: lipgloss.Color(p.primary),
		Success: lipgloss.Color(p.success),
		Warning: lipgloss.Color(p.warning),
		Error:   lipgloss.Color(p.errorColor),
		Info:    lipgloss.Color(p.info),
		Border:  lipgloss.Color(p.border),
		Muted:   lipgloss.Color(p.muted),

		// Text styles
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)),
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.foreground)),
		Bold: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.foreground)),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.subtle)).
			Width(18),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.foreground)).
			Bold(true),

		// Component styles
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(p.border)).
			Padding(0, 1),
		AlertBox: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(p.errorColor)).
			Foreground(lipgloss.Color(p.errorColor)).
			Padding(0, 1),

		// Status styles
		StatusSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.success)).
			Bold(true),
		StatusWarning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.warning)).
			Bold(true),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.errorColor)).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.info)).
			Bold(true),
		StatusPending: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.muted)).
			Italic(true),
	}
}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

// PresetIcons maps quick-test scenarios to icons.
var PresetIcons = map[string]string{
	"coffee":     "☕",
	"online":     "🛒",
	"moderate":   "❔",
	"atm":        "🌙",
	"suspicious": "✈️",
}

// GetPresetIcon returns an icon for a scenario.
func GetPresetIcon(name string) string {
	if icon, ok := PresetIcons[name]; ok {
		return icon
	}
	return "⚡"
}

package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the chrome colors around the feed lines. Feed lines carry
// their own styling from the renderer.
type Theme struct {
	Name string

	Surface string
	Text    string
	Muted   string
	Accent  string
	Warning string
	Danger  string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Header     lipgloss.Style
	Footer     lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
	WarnText   lipgloss.Style
	DangerText lipgloss.Style
}

func defaultTheme() Theme {
	return Theme{
		Name:    "Dracula",
		Surface: "#282a36",
		Text:    "#f8f8f2",
		Muted:   "#6272a4",
		Accent:  "#bd93f9",
		Warning: "#f1fa8c",
		Danger:  "#ff5555",
	}
}

// Styles returns Lipgloss styles for this theme built on r.
func (t Theme) Styles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Header: r.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),
		Footer: r.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
		MutedText: r.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),
		AccentText: r.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		WarnText: r.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),
		DangerText: r.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
	}
}

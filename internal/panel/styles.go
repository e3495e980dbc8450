package panel

import "github.com/charmbracelet/lipgloss"

type palette struct {
	background lipgloss.Color
	foreground lipgloss.Color
	accent     lipgloss.Color
	muted      lipgloss.Color
	errorColor lipgloss.Color
}

var (
	lightPalette = palette{
		background: lipgloss.Color("#ffffff"),
		foreground: lipgloss.Color("#1f1f1f"),
		accent:     lipgloss.Color("#1a73e8"),
		muted:      lipgloss.Color("#6b6b6b"),
		errorColor: lipgloss.Color("#c5221f"),
	}
	darkPalette = palette{
		background: lipgloss.Color("#202124"),
		foreground: lipgloss.Color("#e8eaed"),
		accent:     lipgloss.Color("#8ab4f8"),
		muted:      lipgloss.Color("#9aa0a6"),
		errorColor: lipgloss.Color("#f28b82"),
	}
)

type styles struct {
	frame   lipgloss.Style
	title   lipgloss.Style
	label   lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	focused lipgloss.Style
	status  lipgloss.Style
	err     lipgloss.Style
}

func newStyles(dark bool) styles {
	p := lightPalette
	if dark {
		p = darkPalette
	}
	return styles{
		frame: lipgloss.NewStyle().
			Background(p.background).
			Foreground(p.foreground).
			Padding(1, 2),
		title:   lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		label:   lipgloss.NewStyle().Foreground(p.foreground).Bold(true),
		text:    lipgloss.NewStyle().Foreground(p.foreground),
		muted:   lipgloss.NewStyle().Foreground(p.muted),
		focused: lipgloss.NewStyle().Foreground(p.accent).Bold(true),
		status:  lipgloss.NewStyle().Foreground(p.accent),
		err:     lipgloss.NewStyle().Foreground(p.errorColor),
	}
}

// Package themes holds the dashboard's visual styles: the application chrome
// theme and the per-category accent themes.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the chrome style for the TUI, independent of the active category.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	Highlighted   lipgloss.Style
	StatusInfo    lipgloss.Style
	StatusError   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusPending lipgloss.Style
}

type palette struct {
	primary, muted, fg, subtle, bg, hl, err, ok, info string
}

func newTheme(p palette) Theme {
	fg := lipgloss.Color(p.fg)
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(fg),
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color(p.subtle)),
		Normal:   lipgloss.NewStyle().Foreground(fg),
		Bold:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(p.primary)).
			Foreground(lipgloss.Color(p.bg)).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color(p.hl)).
			Foreground(fg),

		StatusInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color(p.info)).Bold(true),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.err)).Bold(true),
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color(p.ok)).Bold(true),
		StatusPending: lipgloss.NewStyle().Foreground(lipgloss.Color(p.muted)).Italic(true),
	}
}

// Default is the default theme.
var Default = newTheme(palette{
	primary: "#7c3aed",
	muted:   "#737373",
	fg:      "#fafafa",
	subtle:  "#a3a3a3",
	bg:      "#1a1a1a",
	hl:      "#404040",
	err:     "#ef4444",
	ok:      "#10b981",
	info:    "#3b82f6",
})

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = newTheme(palette{
	primary: "#cba6f7",
	muted:   "#6c7086",
	fg:      "#cdd6f4",
	subtle:  "#a6adc8",
	bg:      "#1e1e2e",
	hl:      "#45475a",
	err:     "#f38ba8",
	ok:      "#a6e3a1",
	info:    "#89dceb",
})

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}

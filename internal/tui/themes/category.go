package themes

import (
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// CategoryTheme is the set of colors a category paints the dashboard with.
// It is comparable so two resolutions can be checked for equality directly.
type CategoryTheme struct {
	Background lipgloss.Color
	Border     lipgloss.Color
	Text       lipgloss.Color
	Button     lipgloss.Color
	Accent     lipgloss.Color
}

var categoryThemes = map[model.Category]CategoryTheme{
	model.CategoryRecruit: {
		Background: "#1e3a8a",
		Border:     "#1d4ed8",
		Text:       "#93c5fd",
		Button:     "#2563eb",
		Accent:     "#3b82f6",
	},
	model.CategoryOrder: {
		Background: "#581c87",
		Border:     "#7e22ce",
		Text:       "#d8b4fe",
		Button:     "#9333ea",
		Accent:     "#9333ea",
	},
	model.CategoryWork: {
		Background: "#14532d",
		Border:     "#15803d",
		Text:       "#86efac",
		Button:     "#16a34a",
		Accent:     "#22c55e",
	},
}

// Resolve returns the theme for a category. Unknown values get the default
// category's theme.
func Resolve(c model.Category) CategoryTheme {
	if t, ok := categoryThemes[c]; ok {
		return t
	}
	return categoryThemes[model.DefaultCategory]
}

// Panel styles a bordered pane in the category's border color.
func (ct CategoryTheme) Panel() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ct.Border).
		Padding(0, 1)
}

// ActiveTab styles the selected category tab.
func (ct CategoryTheme) ActiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(ct.Button).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 2)
}

// ButtonStyle styles the submit button; disabled buttons are grayed out.
func (ct CategoryTheme) ButtonStyle(disabled bool) lipgloss.Style {
	bg := ct.Button
	if disabled {
		bg = lipgloss.Color("#4b5563")
	}
	return lipgloss.NewStyle().
		Background(bg).
		Foreground(lipgloss.Color("#ffffff")).
		Bold(true).
		Padding(0, 2)
}

// AccentText styles text in the accent color.
func (ct CategoryTheme) AccentText() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ct.Accent)
}

// Heading styles pane headings in the category text color.
func (ct CategoryTheme) Heading() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ct.Text).Bold(true)
}

// InactiveTab styles the unselected category tabs.
func InactiveTab() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color("#374151")).
		Foreground(lipgloss.Color("#d1d5db")).
		Padding(0, 2)
}

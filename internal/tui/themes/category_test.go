package themes

import (
	"testing"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestResolve_TotalAndDeterministic(t *testing.T) {
	for _, c := range model.Categories() {
		t.Run(string(c), func(t *testing.T) {
			first := Resolve(c)
			assert.NotEmpty(t, first.Accent)
			assert.NotEmpty(t, first.Background)
			assert.NotEmpty(t, first.Border)
			assert.NotEmpty(t, first.Text)
			assert.NotEmpty(t, first.Button)

			for i := 0; i < 10; i++ {
				assert.Equal(t, first, Resolve(c))
			}
		})
	}
}

func TestResolve_AccentColors(t *testing.T) {
	tests := []struct {
		category model.Category
		want     string
	}{
		{model.CategoryRecruit, "#3b82f6"},
		{model.CategoryOrder, "#9333ea"},
		{model.CategoryWork, "#22c55e"},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			assert.Equal(t, tt.want, string(Resolve(tt.category).Accent))
		})
	}
}

func TestResolve_DistinctPerCategory(t *testing.T) {
	seen := make(map[CategoryTheme]model.Category)
	for _, c := range model.Categories() {
		ct := Resolve(c)
		if prev, dup := seen[ct]; dup {
			t.Fatalf("%s and %s share a theme", prev, c)
		}
		seen[ct] = c
	}
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	assert.Equal(t, Resolve(model.DefaultCategory), Resolve(model.Category("bogus")))
}

func TestGetTheme(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#cba6f7"), GetTheme("catppuccin-mocha").Selected.GetBackground())
	assert.Equal(t, lipgloss.Color("#7c3aed"), GetTheme("").Selected.GetBackground())
	assert.Equal(t, lipgloss.Color("#7c3aed"), GetTheme("nope").Selected.GetBackground())
}

package tuitest

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "업무", StripANSI("\x1b[1;32m업무\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestNormalizeWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", NormalizeWhitespace("  a\n\tb   c "))
}

func TestContainsInOrder(t *testing.T) {
	out := "채용 예약 업무"
	assert.True(t, ContainsInOrder(out, "채용", "업무"))
	assert.False(t, ContainsInOrder(out, "업무", "채용"))
}

func TestMaxLineWidth(t *testing.T) {
	assert.Equal(t, 4, MaxLineWidth("ab\n업무\nc"))
}

type counter struct{ n int }

type tick struct{}

func (c counter) Init() tea.Cmd { return nil }

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tick); ok {
		c.n++
		if c.n < 3 {
			return c, func() tea.Msg { return tick{} }
		}
		return c, func() tea.Msg { return tea.QuitMsg{} }
	}
	return c, nil
}

func (c counter) View() string { return "" }

func TestDrain(t *testing.T) {
	isTick := func(msg tea.Msg) bool {
		_, ok := msg.(tick)
		return ok
	}

	model, rest := Drain(counter{}, func() tea.Msg { return tick{} }, isTick)
	assert.Equal(t, 3, model.(counter).n)
	assert.IsType(t, tea.QuitMsg{}, rest)

	model, rest = Drain(counter{}, nil, isTick)
	assert.Zero(t, model.(counter).n)
	assert.Nil(t, rest)
}

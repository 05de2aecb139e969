package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
	"github.com/Veraticus/show-me-the-data/internal/tui/viewmodel"
	"github.com/charmbracelet/lipgloss"
)

const appTitle = "Show me the data"

// render lays out the dashboard. Narrow terminals stack the panes.
func (m Model) render(dv viewmodel.DashboardView) string {
	ct := m.state.Theme()

	left := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderInput(dv, ct),
		m.renderSummary(dv, ct),
		m.renderRecent(dv, ct),
	)
	right := m.renderCalendar(dv, ct)
	if dv.Detail != nil {
		right = lipgloss.JoinVertical(lipgloss.Left, right, m.renderDetail(*dv.Detail, ct))
	}

	var body string
	if m.width < 80 {
		body = lipgloss.JoinVertical(lipgloss.Left, left, right)
	} else {
		body = lipgloss.JoinHorizontal(
			lipgloss.Top,
			lipgloss.NewStyle().Width(m.leftWidth()).Render(left),
			right,
		)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(dv, ct),
		body,
		m.renderStatusBar(dv),
	)
}

func (m Model) renderHeader(dv viewmodel.DashboardView, ct themes.CategoryTheme) string {
	tabs := make([]string, 0, len(dv.Tabs))
	for _, t := range dv.Tabs {
		label := fmt.Sprintf("%s %s", t.Shortcut, t.Label)
		if t.IsActive {
			tabs = append(tabs, ct.ActiveTab().Render(label))
		} else {
			tabs = append(tabs, themes.InactiveTab().Render(label))
		}
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.theme.Title.Render(appTitle),
		"  ",
		lipgloss.JoinHorizontal(lipgloss.Top, tabs...),
	)
}

func (m Model) renderInput(dv viewmodel.DashboardView, ct themes.CategoryTheme) string {
	label := "분석 및 등록"
	if dv.Input.Submitting {
		label = "분석 중..."
	}
	button := ct.ButtonStyle(!dv.Input.CanSubmit).Render(label)

	heading := ct.Heading().Render("텍스트 입력")
	if !dv.Input.IsFocused {
		heading += m.theme.Subtitle.Render("  (i 로 편집)")
	}

	return ct.Panel().Width(m.leftWidth() - 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		heading,
		m.input.View(),
		button,
	))
}

func (m Model) renderSummary(dv viewmodel.DashboardView, ct themes.CategoryTheme) string {
	if !dv.HasSummary() {
		return ""
	}
	return ct.Panel().Width(m.leftWidth() - 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		ct.Heading().Render("분석 결과"),
		m.theme.Normal.Render(dv.Summary),
	))
}

func (m Model) renderRecent(dv viewmodel.DashboardView, ct themes.CategoryTheme) string {
	lines := []string{ct.Heading().Render("최근 이벤트")}

	if dv.Recent.IsEmpty() {
		lines = append(lines, m.theme.Subtitle.Render(dv.Recent.EmptyMessage))
	}

	for _, item := range dv.Recent.Items {
		line := fmt.Sprintf("%s  %s", item.Title, m.theme.Subtitle.Render(item.When))
		if item.Snippet != "" {
			line += "\n    " + m.theme.Subtitle.Render(item.Snippet)
		}
		switch {
		case item.IsHighlighted && dv.Focus == viewmodel.FocusList:
			lines = append(lines, m.theme.Selected.Render("▸ "+line))
		case item.IsHighlighted:
			lines = append(lines, m.theme.Highlighted.Render("  "+line))
		default:
			lines = append(lines, "  "+line)
		}
	}

	if hidden := dv.Recent.HiddenCount(); hidden > 0 {
		lines = append(lines, m.theme.Subtitle.Render(fmt.Sprintf("외 %d건", hidden)))
	}

	return ct.Panel().Width(m.leftWidth() - 2).Render(strings.Join(lines, "\n"))
}

func (m Model) renderCalendar(dv viewmodel.DashboardView, ct themes.CategoryTheme) string {
	lines := []string{ct.Heading().Render("캘린더")}

	if len(dv.Agenda) == 0 {
		lines = append(lines, m.theme.Subtitle.Render(viewmodel.EmptyListMessage))
	}

	for _, day := range dv.Agenda {
		lines = append(lines, m.theme.Bold.Render(day.Label))
		for _, item := range day.Items {
			dot := lipgloss.NewStyle().Foreground(lipgloss.Color(item.Accent)).Render("●")
			when := item.Time
			if when == "" {
				when = "  -  "
			}
			lines = append(lines, fmt.Sprintf(" %s %s %s", dot, m.theme.Subtitle.Render(when), item.Title))
		}
	}

	return ct.Panel().Width(m.rightWidth()).Render(strings.Join(lines, "\n"))
}

func (m Model) renderDetail(d viewmodel.EventDetailView, ct themes.CategoryTheme) string {
	rows := []string{
		ct.Heading().Render("이벤트 상세"),
		fmt.Sprintf("제목: %s", d.Title),
		fmt.Sprintf("유형: %s", d.CategoryLabel),
		fmt.Sprintf("일정: %s", d.When),
	}
	if d.Description != "" {
		rows = append(rows, fmt.Sprintf("설명: %s", d.Description))
	}
	rows = append(rows,
		fmt.Sprintf("신뢰도: %s %s",
			ct.AccentText().Render(viewmodel.GetConfidenceBar(d.Confidence, 10)),
			viewmodel.GetConfidenceLevel(d.Confidence)),
		"",
		m.theme.Subtitle.Render(d.SourceText),
	)
	return ct.Panel().Width(m.rightWidth()).Render(strings.Join(rows, "\n"))
}

func (m Model) renderStatusBar(dv viewmodel.DashboardView) string {
	keys := m.keymap
	if dv.Focus == viewmodel.FocusInput {
		keys = keys.inputKeyMap()
	}

	parts := []string{}
	if dv.StatusMessage != "" {
		parts = append(parts, m.statusStyle(dv.StatusKind).Render(dv.StatusMessage))
	}
	parts = append(parts, m.help.View(keys))
	return strings.Join(parts, "  ")
}

func (m Model) statusStyle(kind viewmodel.StatusKind) lipgloss.Style {
	switch kind {
	case viewmodel.StatusPending:
		return m.theme.StatusPending
	case viewmodel.StatusSuccess:
		return m.theme.StatusSuccess
	case viewmodel.StatusError:
		return m.theme.StatusError
	default:
		return m.theme.StatusInfo
	}
}

func (m Model) rightWidth() int {
	if m.width < 80 {
		return m.width - 2
	}
	w := m.width - m.leftWidth() - 2
	if w < 20 {
		w = 20
	}
	return w
}

package viewmodel

import (
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/controller"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/projection"
)

const (
	// RecentLimit is how many events the list shows.
	RecentLimit = 5
	// EmptyListMessage is shown when the active list has no events.
	EmptyListMessage = "등록된 이벤트가 없습니다."
	// UndatedLabel heads agenda entries whose start cannot be read.
	UndatedLabel = "날짜 미정"

	snippetLength = 40
)

// UIState is the view-local state that is not owned by the controller.
type UIState struct {
	Location   *time.Location
	Cursor     int
	Focus      FocusArea
	Width      int
	Height     int
	ShowDetail bool
}

// BuildDashboard derives the dashboard from controller state.
func BuildDashboard(s controller.State, ui UIState) DashboardView {
	if ui.Location == nil {
		ui.Location = time.Local
	}

	recent := BuildEventList(s, ui.Cursor, ui.Location)
	status, kind := statusMessage(s)

	dv := DashboardView{
		Tabs: BuildTabs(s.ActiveCategory),
		Input: InputView{
			Text:       s.InputText,
			IsFocused:  ui.Focus == FocusInput,
			Submitting: s.IsSubmitting(),
			CanSubmit:  !s.IsSubmitting() && strings.TrimSpace(s.InputText) != "",
		},
		Summary:       s.AnalysisSummary,
		Recent:        recent,
		Agenda:        BuildAgenda(s.Projection, ui.Location),
		StatusMessage: status,
		StatusKind:    kind,
		Focus:         ui.Focus,
		Width:         ui.Width,
		Height:        ui.Height,
	}

	if ui.ShowDetail {
		if item, ok := recent.Selected(); ok {
			dv.Detail = buildDetail(s, item.ID, ui.Location)
		}
	}

	return dv
}

// BuildTabs returns one tab per category in display order.
func BuildTabs(active model.Category) []TabView {
	categories := model.Categories()
	tabs := make([]TabView, 0, len(categories))
	for i, c := range categories {
		tabs = append(tabs, TabView{
			Category: string(c),
			Label:    c.Label(),
			Shortcut: string(rune('1' + i)),
			IsActive: c == active,
		})
	}
	return tabs
}

// BuildEventList returns the first RecentLimit events of s, newest first as
// the service returned them.
func BuildEventList(s controller.State, cursor int, loc *time.Location) EventListView {
	n := len(s.Projection)
	if n > RecentLimit {
		n = RecentLimit
	}

	cursor = ClampCursor(cursor, n)
	items := make([]EventItemView, 0, n)
	for i, p := range s.Projection[:n] {
		items = append(items, EventItemView{
			ID:            p.ID,
			Title:         p.Title,
			When:          FormatWhen(p.Start, loc),
			Snippet:       TruncateString(SanitizeForDisplay(p.SourceText), snippetLength),
			IsHighlighted: i == cursor,
		})
	}

	return EventListView{
		Items:        items,
		Cursor:       cursor,
		TotalCount:   len(s.Projection),
		EmptyMessage: EmptyListMessage,
	}
}

// ClampCursor keeps cursor inside a list of n items.
func ClampCursor(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}

// BuildAgenda groups projections by day in ascending order. Entries whose
// start cannot be read are collected in a trailing undated group.
func BuildAgenda(projections []model.CalendarProjection, loc *time.Location) []AgendaDayView {
	type dated struct {
		at   time.Time
		item AgendaItemView
	}

	days := make(map[string][]dated)
	var undated []AgendaItemView

	for _, p := range projections {
		item := AgendaItemView{ID: p.ID, Title: p.Title, Accent: p.Accent}

		t, allDay, err := projection.ParseStart(p.Start, loc)
		if err != nil {
			undated = append(undated, item)
			continue
		}
		t = t.In(loc)
		item.AllDay = allDay
		if allDay {
			item.Time = "종일"
		} else {
			item.Time = t.Format("15:04")
		}
		key := t.Format("2006-01-02")
		days[key] = append(days[key], dated{at: t, item: item})
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	agenda := make([]AgendaDayView, 0, len(keys)+1)
	for _, k := range keys {
		entries := days[k]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].at.Before(entries[j].at)
		})
		items := make([]AgendaItemView, 0, len(entries))
		for _, e := range entries {
			items = append(items, e.item)
		}
		agenda = append(agenda, AgendaDayView{
			Date:  k,
			Label: FormatDayLabel(entries[0].at),
			Items: items,
		})
	}

	if len(undated) > 0 {
		agenda = append(agenda, AgendaDayView{Label: UndatedLabel, Items: undated})
	}
	return agenda
}

func buildDetail(s controller.State, id string, loc *time.Location) *EventDetailView {
	ev, ok := s.EventByID(id)
	if !ok {
		return nil
	}
	for _, p := range s.Projection {
		if p.ID != id {
			continue
		}
		return &EventDetailView{
			ID:            id,
			Title:         p.Title,
			When:          FormatWhen(p.Start, loc),
			Description:   model.Deref(p.Description),
			SourceText:    p.SourceText,
			CategoryLabel: p.Category.Label(),
			Confidence:    ev.Confidence,
		}
	}
	return nil
}

func statusMessage(s controller.State) (string, StatusKind) {
	switch {
	case s.IsSubmitting():
		return "분석 중...", StatusPending
	case s.Delete.Phase == controller.DeletePending || s.Delete.Phase == controller.DeleteVerifying:
		return "삭제 중...", StatusPending
	case s.Delete.Phase == controller.DeleteUnconfirmed:
		return "삭제를 확인하지 못했습니다.", StatusError
	case s.Delete.Phase == controller.DeleteConfirmed:
		return "삭제되었습니다.", StatusSuccess
	case s.ListCategory != s.ActiveCategory:
		return "불러오는 중...", StatusPending
	default:
		return "", StatusInfo
	}
}

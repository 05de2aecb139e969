// Package projection turns event records into calendar entries.
package projection

import (
	"fmt"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

// Build projects events onto the calendar using theme's accent. The output has
// the same length and order as events.
func Build(events []model.EventRecord, theme themes.CategoryTheme) []model.CalendarProjection {
	out := make([]model.CalendarProjection, 0, len(events))
	for _, ev := range events {
		out = append(out, project(ev, string(theme.Accent)))
	}
	return out
}

func project(ev model.EventRecord, accent string) model.CalendarProjection {
	title := model.UntitledPlaceholder
	if ev.SubjectName != nil && *ev.SubjectName != "" {
		title = *ev.SubjectName
	}

	start := ev.CreatedAt
	if ev.ScheduledAt != nil && *ev.ScheduledAt != "" {
		start = *ev.ScheduledAt
	}

	return model.CalendarProjection{
		ID:          ev.IDValue(),
		Title:       title,
		Start:       start,
		Accent:      accent,
		Description: ev.Description,
		SourceText:  ev.SourceText,
		Category:    ev.Category,
	}
}

var startLayouts = []struct {
	layout   string
	dateOnly bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02T15:04", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02 15:04", false},
	{"2006-01-02", true},
}

// ParseStart parses a calendar anchor. allDay is true when the anchor carries
// only a date. Times without a zone are read in loc.
func ParseStart(s string, loc *time.Location) (t time.Time, allDay bool, err error) {
	if loc == nil {
		loc = time.Local
	}
	for _, l := range startLayouts {
		if parsed, perr := time.ParseInLocation(l.layout, s, loc); perr == nil {
			return parsed, l.dateOnly, nil
		}
	}
	return time.Time{}, false, fmt.Errorf("unrecognized calendar start %q", s)
}

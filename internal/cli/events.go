package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/tui/viewmodel"
)

// WriteEventTable writes events as an aligned table.
func WriteEventTable(out io.Writer, events []model.EventRecord, loc *time.Location) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		TableHeaderStyle.Render("ID"),
		TableHeaderStyle.Render("Type"),
		TableHeaderStyle.Render("Name"),
		TableHeaderStyle.Render("When"),
		TableHeaderStyle.Render("Text"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		strings.Repeat("-", 8),
		strings.Repeat("-", 4),
		strings.Repeat("-", 12),
		strings.Repeat("-", 16),
		strings.Repeat("-", 30))

	for _, ev := range events {
		name := model.Deref(ev.SubjectName)
		if name == "" {
			name = SubtleStyle.Render(model.UntitledPlaceholder)
		}
		when := viewmodel.UndatedLabel
		if ev.ScheduledAt != nil {
			when = viewmodel.FormatWhen(*ev.ScheduledAt, loc)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			ev.IDValue(),
			ev.Category.Label(),
			name,
			when,
			viewmodel.TruncateString(viewmodel.SanitizeForDisplay(ev.SourceText), 30))
	}

	return w.Flush()
}

// RenderEventDetail renders one event in a box.
func RenderEventDetail(ev model.EventRecord, loc *time.Location) string {
	var b strings.Builder
	field := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render(label+":"), value)
	}

	name := model.Deref(ev.SubjectName)
	if name == "" {
		name = model.UntitledPlaceholder
	}
	when := viewmodel.UndatedLabel
	if ev.ScheduledAt != nil {
		when = viewmodel.FormatWhen(*ev.ScheduledAt, loc)
	}

	field("ID", ev.IDValue())
	field("유형", ev.Category.Label())
	field("이름", name)
	field("일정", when)
	if ev.Description != nil {
		field("설명", *ev.Description)
	}
	if ev.OwnerID != nil {
		field("사용자", *ev.OwnerID)
	}
	field("신뢰도", fmt.Sprintf("%s %s",
		viewmodel.GetConfidenceBar(ev.Confidence, 10),
		viewmodel.GetConfidenceLevel(ev.Confidence)))
	field("생성", ev.CreatedAt)
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(ev.SourceText))

	return RenderBox(CalendarIcon+" 이벤트 상세", b.String())
}

package viewmodel

// EventListView represents the recent events list.
type EventListView struct {
	EmptyMessage string
	Items        []EventItemView
	Cursor       int
	TotalCount   int
}

// EventItemView represents a single event in the list.
type EventItemView struct {
	ID            string
	Title         string
	When          string
	Snippet       string
	IsHighlighted bool
}

// AgendaDayView groups the calendar entries of one day.
type AgendaDayView struct {
	// Date is YYYY-MM-DD, or empty for entries without a readable start.
	Date  string
	Label string
	Items []AgendaItemView
}

// AgendaItemView is one calendar entry.
type AgendaItemView struct {
	ID     string
	Time   string
	Title  string
	Accent string
	AllDay bool
}

// EventDetailView is the detail pane for the highlighted event.
type EventDetailView struct {
	ID            string
	Title         string
	When          string
	Description   string
	SourceText    string
	CategoryLabel string
	Confidence    float64
}

// IsEmpty returns true if there are no events in the list.
func (v EventListView) IsEmpty() bool {
	return len(v.Items) == 0
}

// Selected returns the highlighted item, if any.
func (v EventListView) Selected() (EventItemView, bool) {
	if v.Cursor < 0 || v.Cursor >= len(v.Items) {
		return EventItemView{}, false
	}
	return v.Items[v.Cursor], true
}

// HiddenCount is the number of events not shown in the list.
func (v EventListView) HiddenCount() int {
	if v.TotalCount <= len(v.Items) {
		return 0
	}
	return v.TotalCount - len(v.Items)
}

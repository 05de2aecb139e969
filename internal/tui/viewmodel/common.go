package viewmodel

import "fmt"

// FocusArea identifies which pane receives key presses.
type FocusArea int

const (
	// FocusInput sends keys to the text input.
	FocusInput FocusArea = iota
	// FocusList sends keys to the event list.
	FocusList
)

// StatusKind selects how the status line is styled.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusPending
	StatusSuccess
	StatusError
)

// DashboardView is everything the dashboard renders.
type DashboardView struct {
	Detail        *EventDetailView
	Summary       string
	StatusMessage string
	Tabs          []TabView
	Agenda        []AgendaDayView
	Recent        EventListView
	Input         InputView
	Focus         FocusArea
	StatusKind    StatusKind
	Width         int
	Height        int
}

// TabView is one category tab.
type TabView struct {
	Category string
	Label    string
	Shortcut string
	IsActive bool
}

// InputView describes the raw text input.
type InputView struct {
	Text       string
	IsFocused  bool
	Submitting bool
	CanSubmit  bool
}

// HasSummary returns true if there is an analysis summary to show.
func (dv DashboardView) HasSummary() bool {
	return dv.Summary != ""
}

// ActiveTab returns the active tab, if any.
func (dv DashboardView) ActiveTab() (TabView, bool) {
	for _, t := range dv.Tabs {
		if t.IsActive {
			return t, true
		}
	}
	return TabView{}, false
}

// String returns a string representation of the focus area.
func (f FocusArea) String() string {
	switch f {
	case FocusInput:
		return "Input"
	case FocusList:
		return "List"
	default:
		return fmt.Sprintf("Unknown(%d)", f)
	}
}

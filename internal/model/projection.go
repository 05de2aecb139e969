package model

// UntitledPlaceholder is shown when an event has no subject name.
const UntitledPlaceholder = "이름 없음"

// CalendarProjection is the display-only calendar view of an EventRecord.
type CalendarProjection struct {
	ID          string
	Title       string
	Start       string
	Accent      string
	Description *string
	SourceText  string
	Category    Category
}

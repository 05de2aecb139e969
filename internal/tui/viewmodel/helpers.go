package viewmodel

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/show-me-the-data/internal/projection"
)

// TruncateString truncates a string to maxLen runes with ellipsis.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// SanitizeForDisplay removes potentially problematic characters for terminal display.
func SanitizeForDisplay(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return ' '
		}
		return r
	}, s)

	return strings.Join(strings.Fields(s), " ")
}

// GetConfidenceBar returns a visual confidence bar representation.
func GetConfidenceBar(confidence float64, width int) string {
	if width <= 0 {
		return ""
	}

	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}

	filled := int(confidence * float64(width))
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// GetConfidenceLevel returns a human-readable confidence level.
func GetConfidenceLevel(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return "High"
	case confidence >= 0.5:
		return "Medium"
	default:
		return "Low"
	}
}

// FormatWhen formats a calendar anchor for list display. Unreadable anchors are
// returned as given.
func FormatWhen(start string, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	t, allDay, err := projection.ParseStart(start, loc)
	if err != nil {
		return start
	}
	if allDay {
		return t.Format("2006-01-02") + " 종일"
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

var weekdayLabels = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// FormatDayLabel formats a date as "01/16 (목)".
func FormatDayLabel(t time.Time) string {
	return t.Format("01/02") + " (" + weekdayLabels[t.Weekday()] + ")"
}

package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts for the schedule strings produced by extraction.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02T15:04:05"
)

var (
	isoDatePattern   = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
	monthDayPattern  = regexp.MustCompile(`(\d{1,2})월\s*(\d{1,2})일`)
	slashDatePattern = regexp.MustCompile(`(?:^|[^\d/])(\d{1,2})/(\d{1,2})(?:$|[^\d/])`)
	weekdayPattern   = regexp.MustCompile(`([월화수목금토일])요일`)

	hourPattern  = regexp.MustCompile(`(오전|오후)?\s*(\d{1,2})시(?:\s*(\d{1,2})분|\s*(반))?`)
	clockPattern = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

var relativeDays = []struct {
	word   string
	offset int
}{
	{"오늘", 0},
	{"today", 0},
	{"내일", 1},
	{"tomorrow", 1},
	{"모레", 2},
	{"어제", -1},
	{"yesterday", -1},
}

var koreanWeekdays = map[string]time.Weekday{
	"일": time.Sunday,
	"월": time.Monday,
	"화": time.Tuesday,
	"수": time.Wednesday,
	"목": time.Thursday,
	"금": time.Friday,
	"토": time.Saturday,
}

// ParseDate finds a calendar date in text relative to now. Explicit dates win
// over relative words, which win over weekday names.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	lower := strings.ToLower(text)
	year := now.Year()

	if m := isoDatePattern.FindStringSubmatch(lower); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		d, _ := strconv.Atoi(m[3])
		return makeDate(y, mo, d, now.Location())
	}

	if m := monthDayPattern.FindStringSubmatch(lower); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		return makeDate(year, mo, d, now.Location())
	}

	if m := slashDatePattern.FindStringSubmatch(lower); m != nil {
		mo, _ := strconv.Atoi(m[1])
		d, _ := strconv.Atoi(m[2])
		return makeDate(year, mo, d, now.Location())
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, rel := range relativeDays {
		if strings.Contains(lower, rel.word) {
			return today.AddDate(0, 0, rel.offset), true
		}
	}

	if m := weekdayPattern.FindStringSubmatch(lower); m != nil {
		want := koreanWeekdays[m[1]]
		ahead := (int(want) - int(today.Weekday()) + 7) % 7
		return today.AddDate(0, 0, ahead), true
	}

	return time.Time{}, false
}

// ParseTime finds a time of day in text, returning hour and minute.
func ParseTime(text string) (hour, minute int, ok bool) {
	if m := hourPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[2])
		switch {
		case m[3] != "":
			minute, _ = strconv.Atoi(m[3])
		case m[4] != "":
			minute = 30
		}
		if m[1] == "오후" && hour < 12 {
			hour += 12
		}
		if m[1] == "오전" && hour == 12 {
			hour = 0
		}
		if validClock(hour, minute) {
			return hour, minute, true
		}
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if validClock(hour, minute) {
			return hour, minute, true
		}
	}

	return 0, 0, false
}

// ParseSchedule combines ParseDate and ParseTime. A date with no time yields a
// date-only value; a time with no date yields nothing.
func ParseSchedule(text string, now time.Time) *string {
	day, ok := ParseDate(text, now)
	if !ok {
		return nil
	}
	hour, minute, ok := ParseTime(text)
	if !ok {
		s := day.Format(DateLayout)
		return &s
	}
	s := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()).Format(DateTimeLayout)
	return &s
}

// NormalizeSchedule converts a schedule string from a model reply into the
// stored layout, falling back to parsing it (and the message for a time).
func NormalizeSchedule(raw, text string, now time.Time) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return nil
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02 15:04:05", DateTimeLayout} {
		if t, err := time.ParseInLocation(layout, raw, now.Location()); err == nil {
			s := t.Format(DateTimeLayout)
			return &s
		}
	}

	day, ok := ParseDate(raw, now)
	if !ok {
		return nil
	}
	hour, minute, ok := ParseTime(raw)
	if !ok {
		hour, minute, ok = ParseTime(text)
	}
	if !ok {
		s := day.Format(DateLayout)
		return &s
	}
	s := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()).Format(DateTimeLayout)
	return &s
}

func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalizes Feb 30 into March.
	if t.Month() != time.Month(month) {
		return time.Time{}, false
	}
	return t, true
}

func validClock(hour, minute int) bool {
	return hour >= 0 && hour < 24 && minute >= 0 && minute < 60
}

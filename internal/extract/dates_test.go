package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Wednesday.
var fixedNow = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "today korean", text: "오늘 미팅", want: "2025-01-15", wantOK: true},
		{name: "today english", text: "Meeting TODAY", want: "2025-01-15", wantOK: true},
		{name: "tomorrow", text: "내일 픽업 예정", want: "2025-01-16", wantOK: true},
		{name: "day after tomorrow", text: "모레 면접", want: "2025-01-17", wantOK: true},
		{name: "yesterday", text: "yesterday call", want: "2025-01-14", wantOK: true},
		{name: "iso date", text: "2025-03-02에 방문", want: "2025-03-02", wantOK: true},
		{name: "month day", text: "2월 14일 예약", want: "2025-02-14", wantOK: true},
		{name: "month day no space", text: "12월25일", want: "2025-12-25", wantOK: true},
		{name: "slash", text: "픽업 3/7 부탁", want: "2025-03-07", wantOK: true},
		{name: "explicit beats relative", text: "내일 말고 1월 20일", want: "2025-01-20", wantOK: true},
		{name: "weekday later this week", text: "목요일 3시", want: "2025-01-16", wantOK: true},
		{name: "weekday same day", text: "수요일 미팅", want: "2025-01-15", wantOK: true},
		{name: "weekday next week", text: "월요일까지", want: "2025-01-20", wantOK: true},
		{name: "invalid month day", text: "2월 30일", wantOK: false},
		{name: "invalid slash", text: "13/40", wantOK: false},
		{name: "no date", text: "견적 부탁드립니다", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.text, fixedNow)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got.Format(DateLayout))
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantHour   int
		wantMinute int
		wantOK     bool
	}{
		{name: "hour", text: "3시 미팅", wantHour: 3, wantOK: true},
		{name: "afternoon", text: "오후 2시 면접", wantHour: 14, wantOK: true},
		{name: "morning", text: "오전 10시", wantHour: 10, wantOK: true},
		{name: "midnight", text: "오전 12시", wantHour: 0, wantOK: true},
		{name: "noon stays", text: "오후 12시", wantHour: 12, wantOK: true},
		{name: "minutes", text: "오후 3시 20분", wantHour: 15, wantMinute: 20, wantOK: true},
		{name: "half", text: "4시 반", wantHour: 4, wantMinute: 30, wantOK: true},
		{name: "clock", text: "14:30 call", wantHour: 14, wantMinute: 30, wantOK: true},
		{name: "invalid clock", text: "25:99", wantOK: false},
		{name: "none", text: "내일", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hour, minute, ok := ParseTime(tt.text)
			require.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantHour, hour)
			assert.Equal(t, tt.wantMinute, minute)
		})
	}
}

func TestParseSchedule(t *testing.T) {
	tests := []struct {
		want *string
		name string
		text string
	}{
		{name: "date and time", text: "목요일 오후 3시 미팅", want: strPtr("2025-01-16T15:00:00")},
		{name: "date only", text: "내일 픽업", want: strPtr("2025-01-16")},
		{name: "time only", text: "3시에 봬요", want: nil},
		{name: "nothing", text: "견적 문의", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSchedule(tt.text, fixedNow))
		})
	}
}

func TestNormalizeSchedule(t *testing.T) {
	tests := []struct {
		want *string
		name string
		raw  string
		text string
	}{
		{name: "model layout", raw: "2025-01-16 15:00", want: strPtr("2025-01-16T15:00:00")},
		{name: "iso layout", raw: "2025-01-16T09:30", want: strPtr("2025-01-16T09:30:00")},
		{name: "null string", raw: "null", want: nil},
		{name: "blank", raw: "  ", want: nil},
		{name: "relative with time in message", raw: "내일", text: "내일 오후 2시 방문", want: strPtr("2025-01-16T14:00:00")},
		{name: "date only", raw: "2025-02-01", text: "2월 1일", want: strPtr("2025-02-01")},
		{name: "unparseable", raw: "다음 분기", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSchedule(tt.raw, tt.text, fixedNow))
		})
	}
}

func strPtr(s string) *string {
	return &s
}

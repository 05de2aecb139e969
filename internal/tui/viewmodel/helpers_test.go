package viewmodel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		maxLen int
	}{
		{name: "short", input: "hello", maxLen: 10, want: "hello"},
		{name: "exact", input: "hello", maxLen: 5, want: "hello"},
		{name: "ellipsis", input: "hello world", maxLen: 8, want: "hello..."},
		{name: "tiny limit", input: "hello", maxLen: 2, want: "he"},
		{name: "zero", input: "hello", maxLen: 0, want: ""},
		{name: "korean counts runes", input: "김철수 클라이언트 미팅", maxLen: 6, want: "김철수..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.input, tt.maxLen))
		})
	}
}

func TestSanitizeForDisplay(t *testing.T) {
	assert.Equal(t, "line one line two", SanitizeForDisplay("line one\nline two"))
	assert.Equal(t, "a b", SanitizeForDisplay("  a \r\n  b  "))
	assert.Equal(t, "", SanitizeForDisplay("\n\n"))
}

func TestGetConfidenceBar(t *testing.T) {
	assert.Equal(t, "█████░░░░░", GetConfidenceBar(0.5, 10))
	assert.Equal(t, "░░░░", GetConfidenceBar(-1, 4))
	assert.Equal(t, "████", GetConfidenceBar(2, 4))
	assert.Equal(t, "", GetConfidenceBar(0.5, 0))
}

func TestGetConfidenceLevel(t *testing.T) {
	assert.Equal(t, "High", GetConfidenceLevel(0.8))
	assert.Equal(t, "Medium", GetConfidenceLevel(0.5))
	assert.Equal(t, "Low", GetConfidenceLevel(0))
}

func TestFormatWhen(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-01-16T15:00:00", "2025-01-16 15:00"},
		{"2025-01-16 09:30", "2025-01-16 09:30"},
		{"2025-01-16", "2025-01-16 종일"},
		{"다음 주", "다음 주"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatWhen(tt.in, time.UTC))
		})
	}
}

func TestFormatDayLabel(t *testing.T) {
	assert.Equal(t, "01/16 (목)", FormatDayLabel(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "01/19 (일)", FormatDayLabel(time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)))
}

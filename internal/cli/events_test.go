package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/tui/tuitest"
	"github.com/Veraticus/show-me-the-data/internal/tui/viewmodel"
)

func sampleEvents() []model.EventRecord {
	return []model.EventRecord{
		{
			ID:          model.Ptr("e2"),
			Category:    model.CategoryOrder,
			SubjectName: model.Ptr("이영희"),
			ScheduledAt: model.Ptr("2025-02-14"),
			SourceText:  "이영희: 2월 14일 케이크 픽업",
			Confidence:  0.8,
			CreatedAt:   "2025-01-15T10:00:02.000000",
		},
		{
			ID:         model.Ptr("e1"),
			Category:   model.CategoryOrder,
			SourceText: "견적\n문의",
			CreatedAt:  "2025-01-15T10:00:01.000000",
		},
	}
}

func TestWriteEventTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, WriteEventTable(&out, sampleEvents(), time.UTC))

	text := tuitest.StripANSI(out.String())
	assert.True(t, tuitest.ContainsInOrder(text, "ID", "Type", "Name", "When", "Text"))
	assert.True(t, tuitest.ContainsInOrder(text, "e2", "예약", "이영희", "2025-02-14 종일"))
	assert.True(t, tuitest.ContainsInOrder(text, "e1", model.UntitledPlaceholder, viewmodel.UndatedLabel, "견적 문의"))
}

func TestRenderEventDetail(t *testing.T) {
	ev := sampleEvents()[0]
	ev.Description = model.Ptr("케이크 픽업")
	ev.OwnerID = model.Ptr("u1")

	text := tuitest.StripANSI(RenderEventDetail(ev, time.UTC))
	for _, want := range []string{"이벤트 상세", "e2", "예약", "이영희", "2025-02-14 종일", "케이크 픽업", "u1", "High", ev.SourceText} {
		assert.Contains(t, text, want)
	}

	untitled := tuitest.StripANSI(RenderEventDetail(sampleEvents()[1], time.UTC))
	assert.Contains(t, untitled, model.UntitledPlaceholder)
	assert.NotContains(t, untitled, "사용자:")
}

func TestFormatHelpers(t *testing.T) {
	assert.Contains(t, FormatSuccess("done"), "✓ done")
	assert.Contains(t, FormatError("failed"), "✗ failed")
	assert.Contains(t, FormatTitle("Events"), "📅 Events")
	assert.Contains(t, tuitest.StripANSI(RenderBox("Title", "body")), "body")
}

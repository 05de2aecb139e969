package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRules() *Rules {
	return &Rules{Now: func() time.Time { return fixedNow }}
}

func TestRules_Extract(t *testing.T) {
	tests := []struct {
		wantName     *string
		wantSchedule *string
		wantDesc     *string
		name         string
		text         string
	}{
		{
			name:         "client prefix",
			text:         "김철수 클라이언트: 목요일 3시에 미팅 가능할까요?",
			wantName:     strPtr("김철수"),
			wantSchedule: strPtr("2025-01-16T03:00:00"),
			wantDesc:     strPtr("목요일 3시에 미팅 가능할까요?"),
		},
		{
			name:         "plain name prefix",
			text:         "이영희: 내일 케이크 픽업할게요",
			wantName:     strPtr("이영희"),
			wantSchedule: strPtr("2025-01-16"),
			wantDesc:     strPtr("내일 케이크 픽업할게요"),
		},
		{
			name:         "no prefix",
			text:         "오늘 오후 2시 면접",
			wantSchedule: strPtr("2025-01-15T14:00:00"),
			wantDesc:     strPtr("오늘 오후 2시 면접"),
		},
		{
			name:     "clock is not a name",
			text:     "회의는 14:30 예정",
			wantDesc: strPtr("회의는 14:30 예정"),
		},
		{
			name:     "prefix with empty body",
			text:     "박민수:",
			wantName: strPtr("박민수"),
		},
	}

	r := newTestRules()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Extract(context.Background(), model.CategoryWork, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.SubjectName)
			assert.Equal(t, tt.wantSchedule, got.ScheduledAt)
			assert.Equal(t, tt.wantDesc, got.Description)
			assert.InDelta(t, DefaultConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestRules_ExtractRejectsBadInput(t *testing.T) {
	r := newTestRules()

	_, err := r.Extract(context.Background(), model.CategoryWork, "   ")
	assert.ErrorIs(t, err, common.ErrEmptyText)

	_, err = r.Extract(context.Background(), model.Category("meeting"), "hi")
	assert.ErrorIs(t, err, model.ErrUnknownCategory)
}

type failingExtractor struct{}

func (failingExtractor) Extract(context.Context, model.Category, string) (Extraction, error) {
	return Extraction{}, errors.New("boom")
}

func (failingExtractor) Name() string { return "failing" }

func TestExtractOrFallback(t *testing.T) {
	got := ExtractOrFallback(context.Background(), failingExtractor{}, model.CategoryOrder, "text")
	assert.Nil(t, got.SubjectName)
	assert.Nil(t, got.ScheduledAt)
	require.NotNil(t, got.Description)
	assert.Equal(t, FailedDescription, *got.Description)
	assert.Zero(t, got.Confidence)

	got = ExtractOrFallback(context.Background(), newTestRules(), model.CategoryOrder, "홍길동: 내일")
	assert.Equal(t, strPtr("홍길동"), got.SubjectName)
}

func TestNew(t *testing.T) {
	ex, err := New(configFor("rules", ""))
	require.NoError(t, err)
	assert.Equal(t, "rules", ex.Name())

	ex, err = New(configFor("OpenAI", "sk-test"))
	require.NoError(t, err)
	assert.Equal(t, "openai", ex.Name())

	ex, err = New(configFor("anthropic", "sk-ant-test"))
	require.NoError(t, err)
	assert.Equal(t, "anthropic", ex.Name())
	_, cached := ex.(*extractionCache)
	assert.True(t, cached, "model-backed extractors are cached")

	_, err = New(configFor("openai", ""))
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = New(configFor("llama", ""))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

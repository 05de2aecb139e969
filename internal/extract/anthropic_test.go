package extract

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func message(texts ...string) map[string]any {
	var content []map[string]string
	for _, text := range texts {
		content = append(content, map[string]string{"type": "text", "text": text})
	}
	return map[string]any{
		"model":   DefaultAnthropicModel,
		"content": content,
		"usage":   map[string]int{"input_tokens": 120, "output_tokens": 40},
	}
}

func newTestAnthropic(t *testing.T, handler http.HandlerFunc) *Anthropic {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	ex, err := NewAnthropic(AnthropicConfig{
		APIKey:  "sk-ant-test",
		BaseURL: server.URL + "/v1",
		Now:     func() time.Time { return fixedNow },
		Retry: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
		},
	})
	require.NoError(t, err)
	return ex
}

func TestAnthropic_Extract(t *testing.T) {
	var captured map[string]any
	ex := newTestAnthropic(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		_ = json.NewEncoder(w).Encode(message(
			`{"customer_name": "이영희", "datetime": "2025-01-17 11:30",`,
			` "description": "케이크 픽업"}`,
		))
	})

	got, err := ex.Extract(context.Background(), model.CategoryOrder, "이영희 고객님 금요일 11시 반 케이크 픽업")
	require.NoError(t, err)

	assert.Equal(t, strPtr("이영희"), got.SubjectName)
	assert.Equal(t, strPtr("2025-01-17T11:30:00"), got.ScheduledAt)
	assert.Equal(t, strPtr("케이크 픽업"), got.Description)
	assert.Equal(t, "anthropic", ex.Name())

	assert.Equal(t, DefaultAnthropicModel, captured["model"])
	assert.Contains(t, captured["system"], "예약/주문 관리자")
	messages, ok := captured["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0].(map[string]any)["content"], "케이크 픽업")
}

func TestAnthropic_Errors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      any
		wantCalls int32
	}{
		{name: "overloaded is retried", status: 529, body: map[string]string{"type": "error"}, wantCalls: 3},
		{name: "bad request is not retried", status: http.StatusBadRequest, body: map[string]string{"type": "error"}, wantCalls: 1},
		{name: "empty content", status: http.StatusOK, body: message(), wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			ex := newTestAnthropic(t, func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(tt.body)
			})

			_, err := ex.Extract(context.Background(), model.CategoryWork, "내일 미팅")
			require.ErrorIs(t, err, common.ErrExtractionFailed)
			assert.Equal(t, tt.wantCalls, calls.Load())
		})
	}
}

func TestNewAnthropic_RequiresKey(t *testing.T) {
	_, err := NewAnthropic(AnthropicConfig{})
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// DefaultOpenAIBaseURL is the public chat completions API.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

var systemPrompts = map[model.Category]string{
	model.CategoryRecruit: `당신은 채용 담당자를 위한 AI 어시스턴트입니다.
이메일이나 메시지에서 다음 정보를 추출해주세요:
1. 지원자 이름
2. 면접 날짜와 시간
3. 면접 관련 설명

JSON 형식으로 반환해주세요:
{
    "customer_name": "지원자 이름",
    "datetime": "YYYY-MM-DD HH:MM 형식 (없으면 null)",
    "description": "면접 관련 설명"
}`,
	model.CategoryOrder: `당신은 예약/주문 관리자를 위한 AI 어시스턴트입니다.
이메일이나 메시지에서 다음 정보를 추출해주세요:
1. 고객 이름
2. 예약/픽업 날짜와 시간
3. 예약 관련 설명

JSON 형식으로 반환해주세요:
{
    "customer_name": "고객 이름",
    "datetime": "YYYY-MM-DD HH:MM 형식 (없으면 null)",
    "description": "예약 관련 설명"
}`,
	model.CategoryWork: `당신은 프리랜서/1인 대행사를 위한 AI 어시스턴트입니다.
이메일이나 메시지에서 다음 정보를 추출해주세요:
1. 클라이언트 이름
2. 미팅/작업 마감일 날짜와 시간
3. 작업 요청 내용 설명

JSON 형식으로 반환해주세요:
{
    "customer_name": "클라이언트 이름",
    "datetime": "YYYY-MM-DD HH:MM 형식 (없으면 null)",
    "description": "작업 요청 내용"
}`,
}

func userPrompt(text string) string {
	return "다음 텍스트에서 정보를 추출해주세요:\n\n" + text
}

// OpenAIConfig configures the chat completions extractor.
type OpenAIConfig struct {
	HTTPClient  *http.Client
	Now         func() time.Time
	APIKey      string
	Model       string
	BaseURL     string
	Retry       common.RetryOptions
	Temperature float64
	MaxTokens   int
}

// OpenAI extracts fields by asking a chat completions model for JSON.
type OpenAI struct {
	httpClient  *http.Client
	now         func() time.Time
	apiKey      string
	model       string
	endpoint    string
	retry       common.RetryOptions
	temperature float64
	maxTokens   int
}

// NewOpenAI creates a chat completions extractor.
func NewOpenAI(cfg OpenAIConfig) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: OpenAI API key is required", common.ErrMissingConfig)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultOpenAIModel
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.7
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = defaultHTTPClient()
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &OpenAI{
		httpClient:  httpClient,
		now:         now,
		apiKey:      cfg.APIKey,
		model:       modelName,
		endpoint:    baseURL + "/chat/completions",
		retry:       cfg.Retry,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Name identifies the extractor in logs.
func (c *OpenAI) Name() string {
	return "openai"
}

// Extract sends the category prompt and message to the model and parses its reply.
func (c *OpenAI) Extract(ctx context.Context, category model.Category, text string) (Extraction, error) {
	if err := checkInput(ctx, category, text); err != nil {
		return Extraction{}, err
	}

	var content string
	err := common.WithRetry(ctx, func() error {
		var reqErr error
		content, reqErr = c.complete(ctx, category, text)
		return reqErr
	}, c.retry)
	if err != nil {
		return Extraction{}, fmt.Errorf("%w: %w", common.ErrExtractionFailed, err)
	}

	return parseReply(content, text, c.now()), nil
}

func (c *OpenAI) complete(ctx context.Context, category model.Category, text string) (string, error) {
	requestBody := map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{
				"role":    "system",
				"content": systemPrompts[category],
			},
			{
				"role":    "user",
				"content": userPrompt(text),
			},
		},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
	}

	body, err := postJSON(ctx, c.httpClient, "OpenAI", c.endpoint, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, requestBody)
	if err != nil {
		return "", err
	}

	var response openAIResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &common.RetryableError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	if len(response.Choices) == 0 {
		return "", &common.RetryableError{Err: fmt.Errorf("no completion choices returned")}
	}

	slog.Debug("OpenAI completion",
		"model", response.Model,
		"prompt_tokens", response.Usage.PromptTokens,
		"completion_tokens", response.Usage.CompletionTokens)

	return response.Choices[0].Message.Content, nil
}

// openAIResponse represents the OpenAI API response structure.
type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// replyFields is the JSON object the prompts ask for.
type replyFields struct {
	CustomerName *string `json:"customer_name"`
	Datetime     *string `json:"datetime"`
	Description  *string `json:"description"`
}

// parseReply reads the model's JSON. A reply that is not JSON becomes the
// description.
func parseReply(content, text string, now time.Time) Extraction {
	content = stripCodeFence(content)

	var fields replyFields
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		slog.Warn("model reply is not JSON, using it as the description", "error", err)
		return Extraction{
			Description: nonEmpty(content),
			Confidence:  DefaultConfidence,
		}
	}

	var scheduled *string
	if fields.Datetime != nil {
		scheduled = NormalizeSchedule(*fields.Datetime, text, now)
	}

	return Extraction{
		SubjectName: fields.CustomerName,
		ScheduledAt: scheduled,
		Description: fields.Description,
		Confidence:  DefaultConfidence,
	}
}

// stripCodeFence removes a ```json ... ``` or ``` ... ``` wrapper.
func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	for _, fence := range []string{"```json", "```"} {
		start := strings.Index(content, fence)
		if start < 0 {
			continue
		}
		rest := content[start+len(fence):]
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return content
}

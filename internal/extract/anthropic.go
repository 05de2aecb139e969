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

// DefaultAnthropicBaseURL is the public messages API.
const DefaultAnthropicBaseURL = "https://api.anthropic.com/v1"

// DefaultAnthropicModel is used when no model is configured.
const DefaultAnthropicModel = "claude-3-5-haiku-latest"

const anthropicVersion = "2023-06-01"

// AnthropicConfig configures the messages API extractor.
type AnthropicConfig struct {
	HTTPClient  *http.Client
	Now         func() time.Time
	APIKey      string
	Model       string
	BaseURL     string
	Retry       common.RetryOptions
	Temperature float64
	MaxTokens   int
}

// Anthropic extracts fields with the Anthropic messages API, using the same
// category prompts as OpenAI.
type Anthropic struct {
	httpClient  *http.Client
	now         func() time.Time
	apiKey      string
	model       string
	endpoint    string
	retry       common.RetryOptions
	temperature float64
	maxTokens   int
}

// NewAnthropic creates a messages API extractor.
func NewAnthropic(cfg AnthropicConfig) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: Anthropic API key is required", common.ErrMissingConfig)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = DefaultAnthropicModel
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultAnthropicBaseURL
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
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

	return &Anthropic{
		httpClient:  httpClient,
		now:         now,
		apiKey:      cfg.APIKey,
		model:       modelName,
		endpoint:    baseURL + "/messages",
		retry:       cfg.Retry,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Name identifies the extractor in logs.
func (c *Anthropic) Name() string {
	return "anthropic"
}

// Extract sends the category prompt and message to the model and parses its reply.
func (c *Anthropic) Extract(ctx context.Context, category model.Category, text string) (Extraction, error) {
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

func (c *Anthropic) complete(ctx context.Context, category model.Category, text string) (string, error) {
	requestBody := map[string]any{
		"model":       c.model,
		"max_tokens":  c.maxTokens,
		"temperature": c.temperature,
		"system":      systemPrompts[category],
		"messages": []map[string]string{
			{
				"role":    "user",
				"content": userPrompt(text),
			},
		},
	}

	body, err := postJSON(ctx, c.httpClient, "Anthropic", c.endpoint, map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}, requestBody)
	if err != nil {
		return "", err
	}

	var response anthropicResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", &common.RetryableError{Err: fmt.Errorf("failed to parse response: %w", err)}
	}

	var parts []string
	for _, block := range response.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", &common.RetryableError{Err: fmt.Errorf("no content in response")}
	}

	slog.Debug("Anthropic completion",
		"model", response.Model,
		"input_tokens", response.Usage.InputTokens,
		"output_tokens", response.Usage.OutputTokens)

	return strings.Join(parts, ""), nil
}

// anthropicResponse represents the messages API response structure.
type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

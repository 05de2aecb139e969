package extract

import (
	"fmt"
	"strings"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/config"
)

// New creates the extractor named by cfg.Provider. Model-backed extractors
// are rate limited and cache their results.
func New(cfg config.ExtractConfig) (Extractor, error) {
	retry := common.RetryOptions{MaxAttempts: cfg.MaxRetries}

	var (
		ex  Extractor
		err error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "rules":
		return NewRules(), nil
	case "openai":
		ex, err = NewOpenAI(OpenAIConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Retry:   retry,
		})
	case "anthropic":
		ex, err = NewAnthropic(AnthropicConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Retry:   retry,
		})
	default:
		return nil, fmt.Errorf("%w: unsupported extract provider: %s", common.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return WithCache(WithRateLimit(ex, cfg.RequestsPerMinute), cfg.CacheTTL), nil
}

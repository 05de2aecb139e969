// Package extract turns free-form message text into event fields.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// DefaultConfidence is reported for every successful extraction.
const DefaultConfidence = 0.8

// FailedDescription is stored as the description when extraction fails.
const FailedDescription = "분석 중 오류가 발생했습니다."

// Extraction holds the fields pulled out of a message. Nil means not found.
type Extraction struct {
	SubjectName *string
	ScheduledAt *string
	Description *string
	Confidence  float64
}

// Extractor pulls event fields out of text for a category.
type Extractor interface {
	Extract(ctx context.Context, category model.Category, text string) (Extraction, error)
	Name() string
}

// Failed is the extraction recorded when an extractor returns an error.
func Failed() Extraction {
	return Extraction{
		Description: model.Ptr(FailedDescription),
		Confidence:  0,
	}
}

// ExtractOrFallback runs ex and degrades any error to Failed, so a message is
// always recorded.
func ExtractOrFallback(ctx context.Context, ex Extractor, category model.Category, text string) Extraction {
	result, err := ex.Extract(ctx, category, text)
	if err != nil {
		common.LogError(err, "extraction failed, storing fallback", common.Fields{
			"extractor": ex.Name(),
			"category":  string(category),
		})
		return Failed()
	}
	slog.Debug("extracted event fields",
		"extractor", ex.Name(),
		"category", string(category),
		"has_name", result.SubjectName != nil,
		"has_schedule", result.ScheduledAt != nil)
	return result
}

func checkInput(ctx context.Context, category model.Category, text string) error {
	if ctx == nil {
		return fmt.Errorf("%w: nil context", common.ErrExtractionFailed)
	}
	if !category.Valid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, category)
	}
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyText
	}
	return nil
}

// nonEmpty returns a pointer to the trimmed s, or nil when it is blank.
func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/show-me-the-data/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrInvalidEvent = errors.New("invalid event")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateEvent checks the fields the schema requires.
func validateEvent(ev model.EventRecord) error {
	if !ev.HasID() {
		return fmt.Errorf("%w: missing ID", ErrInvalidEvent)
	}
	if !ev.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEvent, ev.Category)
	}
	if ev.SourceText == "" {
		return fmt.Errorf("%w: missing original text", ErrInvalidEvent)
	}
	if ev.CreatedAt == "" {
		return fmt.Errorf("%w: missing created_at", ErrInvalidEvent)
	}
	if ev.Confidence < 0 || ev.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v out of range", ErrInvalidEvent, ev.Confidence)
	}
	return nil
}

// validateFilter checks an event filter.
func validateFilter(f EventFilter) error {
	if f.Category != nil && !f.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidEvent, *f.Category)
	}
	if f.Limit < 0 {
		return fmt.Errorf("%w: negative limit", ErrInvalidEvent)
	}
	return nil
}

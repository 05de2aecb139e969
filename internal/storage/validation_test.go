package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/show-me-the-data/internal/model"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{name: "valid string", str: "test", paramName: "param"},
		{name: "empty string", str: "", paramName: "id", wantErr: true},
		{name: "whitespace only", str: " \t\n", paramName: "id", wantErr: true},
		{name: "korean text", str: "김철수", paramName: "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, ErrEmptyString) {
					t.Errorf("error should wrap ErrEmptyString, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.paramName) {
					t.Errorf("error should name %q, got %v", tt.paramName, err)
				}
			}
		})
	}
}

func TestValidateEvent(t *testing.T) {
	valid := model.EventRecord{
		ID:         model.Ptr("e1"),
		Category:   model.CategoryOrder,
		SourceText: "예약 문의",
		CreatedAt:  "2025-01-15T10:00:00",
		Confidence: 0,
	}

	tests := []struct {
		mutate  func(*model.EventRecord)
		name    string
		wantErr bool
	}{
		{name: "valid", mutate: func(*model.EventRecord) {}},
		{name: "empty id", mutate: func(e *model.EventRecord) { e.ID = model.Ptr("") }, wantErr: true},
		{name: "unknown category", mutate: func(e *model.EventRecord) { e.Category = "" }, wantErr: true},
		{name: "no text", mutate: func(e *model.EventRecord) { e.SourceText = "" }, wantErr: true},
		{name: "no created_at", mutate: func(e *model.EventRecord) { e.CreatedAt = "" }, wantErr: true},
		{name: "negative confidence", mutate: func(e *model.EventRecord) { e.Confidence = -0.1 }, wantErr: true},
		{name: "full confidence", mutate: func(e *model.EventRecord) { e.Confidence = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := valid
			tt.mutate(&ev)
			err := validateEvent(ev)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidEvent) {
				t.Errorf("error should wrap ErrInvalidEvent, got %v", err)
			}
		})
	}
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "recruit", input: "recruit", want: CategoryRecruit},
		{name: "order", input: "order", want: CategoryOrder},
		{name: "work", input: "work", want: CategoryWork},
		{name: "mixed case and spaces", input: "  Work ", want: CategoryWork},
		{name: "unknown", input: "sales", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategories_Order(t *testing.T) {
	assert.Equal(t, []Category{CategoryRecruit, CategoryOrder, CategoryWork}, Categories())
}

func TestCategory_Next(t *testing.T) {
	assert.Equal(t, CategoryOrder, CategoryRecruit.Next())
	assert.Equal(t, CategoryWork, CategoryOrder.Next())
	assert.Equal(t, CategoryRecruit, CategoryWork.Next())
	assert.Equal(t, DefaultCategory, Category("bogus").Next())
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "채용", CategoryRecruit.Label())
	assert.Equal(t, "예약", CategoryOrder.Label())
	assert.Equal(t, "업무", CategoryWork.Label())
	assert.Equal(t, "bogus", Category("bogus").Label())
}

func TestEventRecord_JSONOptionalFields(t *testing.T) {
	payload := `{
		"id": "e1",
		"event_type": "work",
		"customer_name": null,
		"datetime": "",
		"original_text": "hello",
		"created_at": "2025-01-15T10:00:00",
		"confidence": 0.8
	}`

	var rec EventRecord
	require.NoError(t, json.Unmarshal([]byte(payload), &rec))

	assert.True(t, rec.HasID())
	assert.Equal(t, "e1", rec.IDValue())
	assert.Nil(t, rec.SubjectName, "null decodes as absent")
	require.NotNil(t, rec.ScheduledAt, "empty string stays present")
	assert.Equal(t, "", *rec.ScheduledAt)
	assert.Nil(t, rec.Description, "missing key decodes as absent")
	assert.Equal(t, CategoryWork, rec.Category)
}

func TestEventRecord_WithoutID(t *testing.T) {
	rec := EventRecord{Category: CategoryOrder, SourceText: "x"}
	assert.False(t, rec.HasID())
	assert.Equal(t, "", rec.IDValue())

	rec.ID = Ptr("")
	assert.False(t, rec.HasID())
}

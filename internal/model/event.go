package model

// EventRecord is one extracted business event as stored by the event service.
//
// Optional fields are pointers: nil means the value is absent (or null on the
// wire), which is different from a present empty string.
type EventRecord struct {
	ID          *string  `json:"id,omitempty"`
	SubjectName *string  `json:"customer_name"`
	ScheduledAt *string  `json:"datetime"`
	Description *string  `json:"description"`
	OwnerID     *string  `json:"user_id"`
	Category    Category `json:"event_type"`
	SourceText  string   `json:"original_text"`
	CreatedAt   string   `json:"created_at"`
	Confidence  float64  `json:"confidence"`
}

// HasID reports whether the record has been assigned an id by the store.
func (e EventRecord) HasID() bool {
	return e.ID != nil && *e.ID != ""
}

// IDValue returns the record id, or "" when it has none.
func (e EventRecord) IDValue() string {
	return Deref(e.ID)
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Deref returns the value p points to, or the zero value when p is nil.
func Deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

package controller

import (
	"github.com/Veraticus/show-me-the-data/internal/eventstore"
	"github.com/Veraticus/show-me-the-data/internal/model"
)

// Intents sent by views.

// SelectCategory switches the active category.
type SelectCategory struct {
	Category model.Category
}

// UpdateInputText replaces the raw input text.
type UpdateInputText struct {
	Text string
}

// Submit sends the input text for analysis and registration.
type Submit struct{}

// DeleteByID deletes an event and then refreshes the list.
type DeleteByID struct {
	ID string
}

// Refresh reloads the list for the active category.
type Refresh struct{}

// Completions of store calls.

// EventsLoaded carries the result of a list call.
type EventsLoaded struct {
	Err      error
	Category model.Category
	Events   []model.EventRecord
	Seq      uint64
}

// EventCreated carries the result of a create call.
type EventCreated struct {
	Err      error
	Category model.Category
	Result   eventstore.CreateResult
}

// EventDeleted carries the result of a delete call.
type EventDeleted struct {
	Err error
	ID  string
}

// Effect is a store call requested by Reduce.
type Effect interface {
	effect()
}

// FetchEvents lists the events of Category. Seq is echoed in EventsLoaded.
type FetchEvents struct {
	Category model.Category
	Seq      uint64
}

// CreateEvent submits Text for analysis under Category.
type CreateEvent struct {
	OwnerID  *string
	Category model.Category
	Text     string
}

// DeleteEvent deletes the event with ID.
type DeleteEvent struct {
	ID string
}

func (FetchEvents) effect() {}
func (CreateEvent) effect() {}
func (DeleteEvent) effect() {}

// Package controller keeps the input, event list and calendar projection in
// sync with the event service across category switches and mutations.
//
// All transitions go through Reduce, a pure function from (State, message) to
// a new State plus the store calls to perform. Controller turns those calls
// into bubbletea commands whose results re-enter Reduce as messages.
package controller

import (
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/projection"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

// Phase is the request lifecycle of the analyze-and-register action.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

func (p Phase) String() string {
	if p == PhaseSubmitting {
		return "submitting"
	}
	return "idle"
}

// Outcome records how the last submission ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeSucceeded
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSucceeded:
		return "succeeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "none"
	}
}

// DeletePhase tracks the most recent deletion until a refresh reveals whether
// the record is gone.
type DeletePhase int

const (
	DeleteNone DeletePhase = iota
	// DeletePending means the delete call is in flight.
	DeletePending
	// DeleteVerifying means the call returned and a refresh is outstanding.
	DeleteVerifying
	// DeleteConfirmed means a refresh no longer contained the record.
	DeleteConfirmed
	// DeleteUnconfirmed means the record survived, or the refresh failed.
	DeleteUnconfirmed
)

func (p DeletePhase) String() string {
	switch p {
	case DeletePending:
		return "pending"
	case DeleteVerifying:
		return "verifying"
	case DeleteConfirmed:
		return "confirmed"
	case DeleteUnconfirmed:
		return "unconfirmed"
	default:
		return "none"
	}
}

// DeleteStatus is the state of the latest deletion.
type DeleteStatus struct {
	ID string
	// Category is the list the record was deleted from. Only a list of this
	// category can settle the deletion.
	Category model.Category
	Phase    DeletePhase
	// Seq is the refresh issued after the delete call returned. Earlier
	// responses cannot settle the deletion.
	Seq uint64
}

// settledBy reports whether a successful or failed list response decides a
// verifying deletion.
func (d DeleteStatus) settledBy(msg EventsLoaded) bool {
	return d.Phase == DeleteVerifying && msg.Category == d.Category && msg.Seq >= d.Seq
}

// State is the session state owned by the controller. Views read it and send
// intents back; they never modify it.
type State struct {
	ActiveCategory  model.Category
	InputText       string
	AnalysisSummary string
	// Events is the canonical list from the last applied refresh.
	Events []model.EventRecord
	// ListCategory is the category Events was fetched for. It can differ from
	// ActiveCategory while a refresh is outstanding or after a late response.
	ListCategory model.Category
	Projection   []model.CalendarProjection
	Phase        Phase
	LastOutcome  Outcome
	Delete       DeleteStatus

	refreshSeq uint64
	switchSeq  uint64
}

// NewState returns the initial state with category active and no events.
func NewState(category model.Category) State {
	if !category.Valid() {
		category = model.DefaultCategory
	}
	return State{
		ActiveCategory: category,
		ListCategory:   category,
		Events:         []model.EventRecord{},
		Projection:     projection.Build(nil, themes.Resolve(category)),
	}
}

// IsSubmitting reports whether a create request is in flight.
func (s State) IsSubmitting() bool {
	return s.Phase == PhaseSubmitting
}

// Theme is the active category's theme.
func (s State) Theme() themes.CategoryTheme {
	return themes.Resolve(s.ActiveCategory)
}

// RefreshSeq is the sequence number of the most recently issued refresh.
func (s State) RefreshSeq() uint64 {
	return s.refreshSeq
}

// EventByID returns the event with id from the current list.
func (s State) EventByID(id string) (model.EventRecord, bool) {
	for _, ev := range s.Events {
		if ev.IDValue() == id {
			return ev, true
		}
	}
	return model.EventRecord{}, false
}

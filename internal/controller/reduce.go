package controller

import (
	"strings"

	"github.com/Veraticus/show-me-the-data/internal/common"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/projection"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

// Options tune the transition function.
type Options struct {
	// OwnerID is sent with every create call.
	OwnerID *string
	// DiscardStale drops list responses issued before the latest category
	// switch. When false every response is applied as it arrives, so a slow
	// response for a previous category can overwrite a newer one.
	DiscardStale bool
}

// Reduce applies msg to s and returns the new state and the store calls to
// perform. It never modifies s. Unknown messages and ignored intents return s
// unchanged with no effects.
func Reduce(s State, msg any, opts Options) (State, []Effect) {
	switch msg := msg.(type) {
	case SelectCategory:
		return selectCategory(s, msg)
	case UpdateInputText:
		s.InputText = msg.Text
		return s, nil
	case Submit:
		return submit(s, opts)
	case DeleteByID:
		return deleteByID(s, msg)
	case Refresh:
		return refresh(s)
	case EventsLoaded:
		return eventsLoaded(s, msg, opts)
	case EventCreated:
		return eventCreated(s, msg)
	case EventDeleted:
		return eventDeleted(s, msg)
	}
	return s, nil
}

// IsStale reports whether a list response predates the latest category
// switch. Such responses are dropped only when opts.DiscardStale is set.
func IsStale(s State, msg EventsLoaded) bool {
	return msg.Seq < s.switchSeq
}

func selectCategory(s State, msg SelectCategory) (State, []Effect) {
	if !msg.Category.Valid() || msg.Category == s.ActiveCategory {
		return s, nil
	}
	s.ActiveCategory = msg.Category
	s.Projection = projection.Build(s.Events, themes.Resolve(msg.Category))

	s, fetch := nextFetch(s)
	s.switchSeq = fetch.Seq
	return s, []Effect{fetch}
}

func submit(s State, opts Options) (State, []Effect) {
	if s.Phase == PhaseSubmitting || strings.TrimSpace(s.InputText) == "" {
		return s, nil
	}
	s.Phase = PhaseSubmitting
	s.AnalysisSummary = ""
	return s, []Effect{CreateEvent{
		Category: s.ActiveCategory,
		Text:     s.InputText,
		OwnerID:  opts.OwnerID,
	}}
}

func deleteByID(s State, msg DeleteByID) (State, []Effect) {
	if msg.ID == "" {
		return s, nil
	}
	category := s.ListCategory
	if ev, ok := s.EventByID(msg.ID); ok && ev.Category.Valid() {
		category = ev.Category
	}
	s.Delete = DeleteStatus{ID: msg.ID, Category: category, Phase: DeletePending}
	return s, []Effect{DeleteEvent{ID: msg.ID}}
}

func refresh(s State) (State, []Effect) {
	s, fetch := nextFetch(s)
	return s, []Effect{fetch}
}

func eventsLoaded(s State, msg EventsLoaded, opts Options) (State, []Effect) {
	if opts.DiscardStale && IsStale(s, msg) {
		return s, nil
	}

	if msg.Err != nil {
		// Keep the stale list.
		if s.Delete.settledBy(msg) {
			s.Delete.Phase = DeleteUnconfirmed
		}
		return s, nil
	}

	events := msg.Events
	if events == nil {
		events = []model.EventRecord{}
	}
	s.Events = events
	s.ListCategory = msg.Category
	s.Projection = projection.Build(events, themes.Resolve(s.ActiveCategory))

	if s.Delete.settledBy(msg) {
		if _, found := s.EventByID(s.Delete.ID); found {
			s.Delete.Phase = DeleteUnconfirmed
		} else {
			s.Delete.Phase = DeleteConfirmed
		}
	}
	return s, nil
}

func eventCreated(s State, msg EventCreated) (State, []Effect) {
	if s.Phase != PhaseSubmitting {
		return s, nil
	}
	s.Phase = PhaseIdle

	if msg.Err != nil {
		s.LastOutcome = OutcomeFailed
		s.AnalysisSummary = common.AnalysisFailedMessage
		return s, nil
	}

	s.LastOutcome = OutcomeSucceeded
	s.AnalysisSummary = msg.Result.AnalysisSummary
	s.InputText = ""
	return refresh(s)
}

func eventDeleted(s State, msg EventDeleted) (State, []Effect) {
	s, effects := refresh(s)
	if s.Delete.ID == msg.ID && s.Delete.Phase == DeletePending {
		s.Delete.Phase = DeleteVerifying
		s.Delete.Seq = s.refreshSeq
	}
	return s, effects
}

func nextFetch(s State) (State, FetchEvents) {
	s.refreshSeq++
	return s, FetchEvents{Category: s.ActiveCategory, Seq: s.refreshSeq}
}

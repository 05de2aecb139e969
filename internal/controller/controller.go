package controller

import (
	"context"
	"log/slog"

	"github.com/Veraticus/show-me-the-data/internal/eventstore"
	"github.com/Veraticus/show-me-the-data/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

// Controller runs Reduce and executes the resulting store calls as bubbletea
// commands. It holds no session state of its own.
type Controller struct {
	store  eventstore.Store
	logger *slog.Logger
	opts   Options
}

// New creates a controller backed by store.
func New(store eventstore.Store, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:  store,
		opts:   opts,
		logger: logger,
	}
}

// Init returns the initial state for category and the command loading its
// events.
func (c *Controller) Init(category model.Category) (State, tea.Cmd) {
	return c.Update(NewState(category), Refresh{})
}

// Update applies msg and returns the new state and the command to run, if any.
func (c *Controller) Update(s State, msg tea.Msg) (State, tea.Cmd) {
	c.observe(s, msg)

	next, effects := Reduce(s, msg, c.opts)

	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, c.command(e))
	}

	switch len(cmds) {
	case 0:
		return next, nil
	case 1:
		return next, cmds[0]
	default:
		return next, tea.Batch(cmds...)
	}
}

// observe logs failures and dropped responses. Failures never reach the view
// other than through State.
func (c *Controller) observe(s State, msg tea.Msg) {
	switch msg := msg.(type) {
	case EventsLoaded:
		if c.opts.DiscardStale && IsStale(s, msg) {
			c.logger.Debug("discarding stale event list",
				"category", msg.Category,
				"seq", msg.Seq)
			return
		}
		if msg.Err != nil {
			c.logger.Warn("event list refresh failed, keeping current list",
				"category", msg.Category,
				"error", msg.Err)
		}
	case EventCreated:
		if msg.Err != nil {
			c.logger.Error("event analysis failed",
				"category", msg.Category,
				"error", msg.Err)
		} else {
			c.logger.Info("event registered",
				"id", msg.Result.Record.IDValue(),
				"category", msg.Category,
				"tokens_used", msg.Result.TokensUsed)
		}
	case EventDeleted:
		if msg.Err != nil {
			c.logger.Warn("event delete failed",
				"id", msg.ID,
				"error", msg.Err)
		}
	}
}

func (c *Controller) command(e Effect) tea.Cmd {
	switch e := e.(type) {
	case FetchEvents:
		return func() tea.Msg {
			events, err := c.store.ListEvents(context.Background(), e.Category)
			return EventsLoaded{
				Category: e.Category,
				Seq:      e.Seq,
				Events:   events,
				Err:      err,
			}
		}
	case CreateEvent:
		return func() tea.Msg {
			res, err := c.store.CreateEvent(context.Background(), e.Category, e.Text, e.OwnerID)
			return EventCreated{
				Category: e.Category,
				Result:   res,
				Err:      err,
			}
		}
	case DeleteEvent:
		return func() tea.Msg {
			err := c.store.DeleteEvent(context.Background(), e.ID)
			return EventDeleted{ID: e.ID, Err: err}
		}
	}
	return nil
}

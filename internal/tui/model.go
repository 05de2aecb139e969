package tui

import (
	"time"

	"github.com/Veraticus/show-me-the-data/internal/controller"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
	"github.com/Veraticus/show-me-the-data/internal/tui/viewmodel"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

const inputPlaceholder = "이메일이나 메시지 내용을 붙여넣으세요..."

// Model is the dashboard. It renders controller state and forwards intents;
// the controller owns every state transition.
type Model struct {
	theme      themes.Theme
	loc        *time.Location
	ctrl       *controller.Controller
	recorder   *Recorder
	initCmd    tea.Cmd
	state      controller.State
	help       help.Model
	input      textarea.Model
	keymap     KeyMap
	config     Config
	focus      viewmodel.FocusArea
	cursor     int
	width      int
	height     int
	showDetail bool
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}

	input := textarea.New()
	input.Placeholder = inputPlaceholder
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.SetHeight(5)
	input.Focus()

	m := Model{
		theme:    cfg.Theme,
		loc:      cfg.Location,
		ctrl:     cfg.Controller,
		recorder: cfg.Recorder,
		help:     help.New(),
		input:    input,
		keymap:   DefaultKeyMap(),
		config:   cfg,
		focus:    viewmodel.FocusInput,
		width:    cfg.Width,
		height:   cfg.Height,
	}
	m.help.ShowAll = cfg.ShowHelp

	if m.ctrl != nil {
		m.state, m.initCmd = m.ctrl.Init(cfg.InitialCategory)
	} else {
		m.state = controller.NewState(cfg.InitialCategory)
	}

	m.handleResize()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.initCmd)
}

// State returns the controller state currently rendered.
func (m Model) State() controller.State {
	return m.state
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.update(msg)
	if next, ok := updated.(Model); ok {
		m.recorder.Record(msg, next)
	}
	return updated, cmd
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case controller.EventsLoaded, controller.EventCreated, controller.EventDeleted:
		return m.dispatch(msg)
	}

	if m.focus == viewmodel.FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render(m.dashboard())
}

// dispatch hands msg to the controller and adopts the resulting state.
func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	if m.ctrl != nil {
		m.state, cmd = m.ctrl.Update(m.state, msg)
	} else {
		m.state, _ = controller.Reduce(m.state, msg, controller.Options{})
	}

	if m.input.Value() != m.state.InputText {
		m.input.SetValue(m.state.InputText)
	}
	m.cursor = viewmodel.ClampCursor(m.cursor, m.visibleEvents())
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.focus == viewmodel.FocusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Submit):
		return m.dispatch(controller.Submit{})
	case key.Matches(msg, m.keymap.FocusList):
		m.focus = viewmodel.FocusList
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keymap.NextCategory):
		return m.selectCategory(m.state.ActiveCategory.Next())
	}

	// The input is read-only until the create call returns.
	if m.state.IsSubmitting() {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m, dispatched := m.dispatch(controller.UpdateInputText{Text: m.input.Value()})
	return m, tea.Batch(cmd, dispatched)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Recruit):
		return m.selectCategory(model.CategoryRecruit)
	case key.Matches(msg, m.keymap.Order):
		return m.selectCategory(model.CategoryOrder)
	case key.Matches(msg, m.keymap.Work):
		return m.selectCategory(model.CategoryWork)
	case key.Matches(msg, m.keymap.NextCategory):
		return m.selectCategory(m.state.ActiveCategory.Next())
	case key.Matches(msg, m.keymap.Up):
		m.cursor = viewmodel.ClampCursor(m.cursor-1, m.visibleEvents())
	case key.Matches(msg, m.keymap.Down):
		m.cursor = viewmodel.ClampCursor(m.cursor+1, m.visibleEvents())
	case key.Matches(msg, m.keymap.Detail):
		m.showDetail = !m.showDetail
	case key.Matches(msg, m.keymap.Delete):
		item, ok := m.dashboard().Recent.Selected()
		if !ok {
			return m, nil
		}
		return m.dispatch(controller.DeleteByID{ID: item.ID})
	case key.Matches(msg, m.keymap.Refresh):
		return m.dispatch(controller.Refresh{})
	case key.Matches(msg, m.keymap.Submit):
		return m.dispatch(controller.Submit{})
	case key.Matches(msg, m.keymap.FocusInput):
		m.focus = viewmodel.FocusInput
		return m, m.input.Focus()
	case key.Matches(msg, m.keymap.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) selectCategory(c model.Category) (tea.Model, tea.Cmd) {
	if c != m.state.ActiveCategory {
		m.cursor = 0
		m.showDetail = false
	}
	return m.dispatch(controller.SelectCategory{Category: c})
}

// handleResize adjusts component sizes when the terminal resizes.
func (m *Model) handleResize() {
	m.help.Width = m.width
	w := m.leftWidth() - 4
	if w < 10 {
		w = 10
	}
	m.input.SetWidth(w)
}

func (m Model) leftWidth() int {
	if m.width < 80 {
		return m.width
	}
	return m.width * 55 / 100
}

func (m Model) visibleEvents() int {
	n := len(m.state.Projection)
	if n > viewmodel.RecentLimit {
		return viewmodel.RecentLimit
	}
	return n
}

func (m Model) dashboard() viewmodel.DashboardView {
	return viewmodel.BuildDashboard(m.state, viewmodel.UIState{
		Location:   m.loc,
		Cursor:     m.cursor,
		Focus:      m.focus,
		Width:      m.width,
		Height:     m.height,
		ShowDetail: m.showDetail,
	})
}

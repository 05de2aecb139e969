package tui

import (
	"time"

	"github.com/Veraticus/show-me-the-data/internal/controller"
	"github.com/Veraticus/show-me-the-data/internal/model"
	"github.com/Veraticus/show-me-the-data/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme           themes.Theme
	Controller      *controller.Controller
	Location        *time.Location
	Recorder        *Recorder
	InitialCategory model.Category
	Width           int
	Height          int
	ShowHelp        bool
	MouseSupport    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:           themes.Default,
		Location:        time.Local,
		InitialCategory: model.DefaultCategory,
		Width:           100,
		Height:          30,
		ShowHelp:        false,
	}
}

// WithController sets the synchronization controller.
func WithController(c *controller.Controller) Option {
	return func(cfg *Config) {
		cfg.Controller = c
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithCategory sets the category shown on start.
func WithCategory(category model.Category) Option {
	return func(c *Config) {
		c.InitialCategory = category
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithLocation sets the zone used to place events on the calendar.
func WithLocation(loc *time.Location) Option {
	return func(c *Config) {
		c.Location = loc
	}
}

// WithMouse enables mouse support.
func WithMouse(enabled bool) Option {
	return func(c *Config) {
		c.MouseSupport = enabled
	}
}

// WithRecorder captures frames to r while the dashboard runs.
func WithRecorder(r *Recorder) Option {
	return func(c *Config) {
		c.Recorder = r
	}
}

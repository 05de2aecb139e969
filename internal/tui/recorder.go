package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/Veraticus/show-me-the-data/internal/controller"
)

// Recorder captures dashboard state changes and rendered frames for
// debugging layout problems. A nil *Recorder records nothing.
type Recorder struct {
	logFile  *os.File
	now      func() time.Time
	frameDir string
	frameNum int
	mu       sync.Mutex
}

// NewRecorder creates a recording directory under parent.
func NewRecorder(parent string) (*Recorder, error) {
	frameDir := filepath.Join(parent, fmt.Sprintf("smtd-record-%d", time.Now().Unix()))
	if err := os.MkdirAll(frameDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create recording directory: %w", err)
	}

	logFile, err := os.Create(filepath.Join(frameDir, "frames.log")) //nolint:gosec // constructed path
	if err != nil {
		return nil, fmt.Errorf("failed to create recording log: %w", err)
	}

	r := &Recorder{
		logFile:  logFile,
		now:      time.Now,
		frameDir: frameDir,
	}
	r.logf("recording started at %s", frameDir)
	return r, nil
}

// Dir returns the recording directory.
func (r *Recorder) Dir() string {
	if r == nil {
		return ""
	}
	return r.frameDir
}

// Frames returns how many frames have been captured.
func (r *Recorder) Frames() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameNum
}

// Record logs msg with the state it produced and saves the rendered view.
// Only key presses, resizes and controller results are recorded.
func (r *Recorder) Record(msg tea.Msg, m Model) {
	if r == nil || !recordable(msg) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.frameNum++
	s := m.state
	r.logf("=== frame %04d %s ===", r.frameNum, r.now().Format("15:04:05.000"))
	r.logf("msg: %T %s", msg, describe(msg))
	r.logf("category=%s list=%s phase=%s outcome=%s delete=%s events=%d focus=%d cursor=%d",
		s.ActiveCategory, s.ListCategory, s.Phase, s.LastOutcome, s.Delete.Phase,
		len(s.Events), m.focus, m.cursor)

	view := ansi.Strip(m.View())
	framePath := filepath.Join(r.frameDir, fmt.Sprintf("frame-%04d.txt", r.frameNum))
	if err := os.WriteFile(framePath, []byte(view), 0600); err != nil {
		r.logf("error saving frame: %v", err)
	}
}

// Close finishes the log.
func (r *Recorder) Close() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logf("recording complete: %d frames", r.frameNum)
	return r.logFile.Close()
}

func (r *Recorder) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.logFile, format+"\n", args...)
}

func recordable(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.WindowSizeMsg,
		controller.EventsLoaded, controller.EventCreated, controller.EventDeleted:
		return true
	}
	return false
}

func describe(msg tea.Msg) string {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("%q", msg.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("%dx%d", msg.Width, msg.Height)
	case controller.EventsLoaded:
		return fmt.Sprintf("category=%s events=%d err=%v", msg.Category, len(msg.Events), msg.Err)
	case controller.EventCreated:
		return fmt.Sprintf("err=%v", msg.Err)
	case controller.EventDeleted:
		return fmt.Sprintf("id=%s err=%v", msg.ID, msg.Err)
	}
	return ""
}

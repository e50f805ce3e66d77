package tui

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/focusboard/internal/hub"
)

// viewState represents the currently active view.
type viewState int

const (
	viewDashboard viewState = iota
	viewTasks
	viewProjects
	viewNotes
	viewCalendar
	viewHabits
	viewTimer
	viewAssistant
)

var viewNames = []string{"Dashboard", "Tasks", "Projects", "Notes", "Calendar", "Habits", "Timer", "AI Assistant"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// sessionLoggedMsg is sent after a completed work phase is recorded.
type sessionLoggedMsg struct {
	session hub.PomodoroSession
}

// --- Helpers ---

// errCmd reports err in the status bar. Blank input is not an error worth
// showing, so hub.ErrEmpty is dropped.
func errCmd(err error) tea.Cmd {
	if err == nil || errors.Is(err, hub.ErrEmpty) {
		return nil
	}
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
	}
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

func formatMinutes(mins int) string {
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
}

func percent(r float64) string {
	return fmt.Sprintf("%d%%", int(r*100+0.5))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

func strPtr(s string) *string { return &s }

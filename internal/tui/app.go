package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/assistant"
	"github.com/sadopc/focusboard/internal/export"
	"github.com/sadopc/focusboard/internal/hub"
)

var exportFormats = []string{"Tasks (CSV)", "Focus sessions (CSV)", "Everything (JSON)"}

// App is the root Bubble Tea model.
type App struct {
	hub       *hub.Hub
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	dashboard dashboardModel
	tasks     tasksModel
	projects  projectsModel
	notes     notesModel
	calendar  calendarModel
	habits    habitsModel
	pomodoro  pomodoroModel
	assistant assistantModel
	palette   quickActionModel

	help        help.Model
	status      string
	statusIsErr bool
}

type Option func(*App)

// WithExportDir sets where exports are written. The default is the home
// directory.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

func NewApp(h *hub.Hub, ai *assistant.Client, opts ...Option) App {
	hm := help.New()
	hm.ShowAll = false

	a := App{
		hub:        h,
		activeView: viewDashboard,
		dashboard:  newDashboardModel(h),
		tasks:      newTasksModel(h),
		projects:   newProjectsModel(h),
		notes:      newNotesModel(h),
		calendar:   newCalendarModel(h),
		habits:     newHabitsModel(h),
		pomodoro:   newPomodoroModel(h),
		assistant:  newAssistantModel(ai),
		palette:    newQuickActionModel(h),
		help:       hm,
	}
	for _, opt := range opts {
		opt(&a)
	}
	if a.exportDir == "" {
		a.exportDir, _ = os.UserHomeDir()
	}
	return a
}

func (a App) Init() tea.Cmd {
	return tea.Batch(
		a.dashboard.refresh(),
		tickCmd(),
	)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.dashboard.setSize(a.width, contentHeight)
		a.tasks.setSize(a.width, contentHeight)
		a.projects.setSize(a.width, contentHeight)
		a.notes.setSize(a.width, contentHeight)
		a.calendar.setSize(a.width, contentHeight)
		a.habits.setSize(a.width, contentHeight)
		a.pomodoro.setSize(a.width, contentHeight)
		a.assistant.setSize(a.width, contentHeight)
		a.palette.width = a.width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.QuickAction) {
			if a.palette.open {
				a.palette = a.palette.hide()
				return a, nil
			}
			var cmd tea.Cmd
			a.palette, cmd = a.palette.show()
			return a, cmd
		}
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}

		if a.palette.open {
			var cmd tea.Cmd
			a.palette, cmd = a.palette.update(msg)
			return a, cmd
		}
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewDashboard)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTasks)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewProjects)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewNotes)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewCalendar)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewHabits)
		case key.Matches(msg, keys.Tab7):
			return a.switchTo(viewTimer)
		case key.Matches(msg, keys.Tab8):
			return a.switchTo(viewAssistant)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		}

	case tickMsg:
		// The pomodoro runs regardless of the active view.
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, tea.Batch(tickCmd(), cmd)

	case statusMsg:
		a.status = msg.text
		a.statusIsErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusIsErr = false
		return a, nil

	case jumpMsg:
		a.activeView = msg.view
		var cmd tea.Cmd
		switch msg.view {
		case viewTasks:
			a.tasks = a.tasks.focus(msg.id)
			cmd = a.tasks.refresh()
		case viewNotes:
			a.notes = a.notes.focus(msg.id)
			cmd = a.notes.refresh()
		}
		return a, cmd

	case sessionLoggedMsg:
		a.status = fmt.Sprintf("Logged %s focus session", formatMinutes(msg.session.Duration))
		a.statusIsErr = false
		return a, a.dashboard.refresh()

	// Data messages go to their owner even if the user has switched away.
	case dashboardDataMsg:
		a.dashboard, _ = a.dashboard.update(msg)
		return a, nil
	case tasksDataMsg:
		a.tasks, _ = a.tasks.update(msg)
		return a, nil
	case projectsDataMsg:
		a.projects, _ = a.projects.update(msg)
		return a, nil
	case notesDataMsg:
		a.notes, _ = a.notes.update(msg)
		return a, nil
	case calendarDataMsg:
		a.calendar, _ = a.calendar.update(msg)
		return a, nil
	case habitsDataMsg:
		a.habits, _ = a.habits.update(msg)
		return a, nil
	case settingsSavedMsg:
		var cmd tea.Cmd
		a.pomodoro, cmd = a.pomodoro.update(msg)
		return a, cmd
	case assistantReplyMsg:
		var cmd tea.Cmd
		a.assistant, cmd = a.assistant.update(msg)
		return a, cmd
	}

	if a.palette.open {
		var cmd tea.Cmd
		a.palette, cmd = a.palette.update(msg)
		return a, cmd
	}
	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewDashboard:
		a.dashboard, cmd = a.dashboard.update(msg)
	case viewTasks:
		a.tasks, cmd = a.tasks.update(msg)
	case viewProjects:
		a.projects, cmd = a.projects.update(msg)
	case viewNotes:
		a.notes, cmd = a.notes.update(msg)
	case viewCalendar:
		a.calendar, cmd = a.calendar.update(msg)
	case viewHabits:
		a.habits, cmd = a.habits.update(msg)
	case viewTimer:
		a.pomodoro, cmd = a.pomodoro.update(msg)
	case viewAssistant:
		a.assistant, cmd = a.assistant.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewTasks:
		return a.tasks.formActive
	case viewProjects:
		return a.projects.formActive
	case viewNotes:
		return a.notes.formActive
	case viewCalendar:
		return a.calendar.formActive
	case viewHabits:
		return a.habits.formActive
	case viewTimer:
		return a.pomodoro.formActive()
	case viewAssistant:
		return a.assistant.typing()
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewDashboard:
		return a.dashboard.refresh()
	case viewTasks:
		return a.tasks.refresh()
	case viewProjects:
		return a.projects.refresh()
	case viewNotes:
		return a.notes.refresh()
	case viewCalendar:
		return a.calendar.refresh()
	case viewHabits:
		return a.habits.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewDashboard:
		content = a.dashboard.view()
	case viewTasks:
		content = a.tasks.view()
	case viewProjects:
		content = a.projects.view()
	case viewNotes:
		content = a.notes.view()
	case viewCalendar:
		content = a.calendar.view()
	case viewHabits:
		content = a.habits.view()
	case viewTimer:
		content = a.pomodoro.view()
	case viewAssistant:
		content = a.assistant.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := max(1, a.height-headerHeight-footerHeight)

	switch {
	case a.palette.open:
		content = lipgloss.Place(a.width, contentHeight, lipgloss.Center, lipgloss.Top, a.palette.view())
	case a.exportPicking:
		content = a.renderExportPicker()
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(label))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("focusboard")
	gap := max(1, a.width-lipgloss.Width(title)-lipgloss.Width(tabRow)-4)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusIsErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	timerInfo := ""
	if a.pomodoro.active() {
		left := formatClock(a.pomodoro.timer.remaining())
		label := phaseNames[a.pomodoro.phase]
		timerInfo = successStyle.Render(" ● " + label + " " + left)
		if a.pomodoro.timer.paused() {
			timerInfo = warningStyle.Render(" ⏸ " + label + " " + left)
		}
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := max(1, a.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}

func (a App) renderExportPicker() string {
	rows := []string{titleStyle.Render("Export"), ""}
	for i, f := range exportFormats {
		cursor := "  "
		style := normalItemStyle
		if i == a.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+f))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	w := a.width - 4
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(a.exportCursor)
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

// doExport snapshots on the update loop and writes the file off-loop.
func (a App) doExport(format int) tea.Cmd {
	snap := a.hub.Snapshot()
	date := a.hub.Today()
	dir := a.exportDir
	return func() tea.Msg {
		var (
			path string
			err  error
		)
		switch format {
		case 0:
			path = filepath.Join(dir, fmt.Sprintf("focusboard-tasks-%s.csv", date))
			err = export.TasksToCSV(snap.Tasks, snap.Projects, path)
		case 1:
			path = filepath.Join(dir, fmt.Sprintf("focusboard-sessions-%s.csv", date))
			err = export.SessionsToCSV(snap.PomodoroSessions, path)
		default:
			path = filepath.Join(dir, fmt.Sprintf("focusboard-%s.json", date))
			err = export.SnapshotToJSON(snap, path)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

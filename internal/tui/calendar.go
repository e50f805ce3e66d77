package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

var (
	calHeaderStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	calEmptyStyle    = lipgloss.NewStyle().Foreground(colorFg)
	calEntryStyle    = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
	calTodayStyle    = lipgloss.NewStyle().Underline(true)
	calSelectedStyle = lipgloss.NewStyle().Reverse(true)
)

type calendarModel struct {
	hub    *hub.Hub
	width  int
	height int

	selected time.Time // midnight UTC of the selected day
	events   []hub.CalendarEvent
	tasks    []hub.Task

	formActive bool
	form       *huh.Form
	formType   string // "event", "delete"

	// Form field pointers (survive value copies)
	formTitle  *string
	formDelete *string
}

func newCalendarModel(h *hub.Hub) calendarModel {
	title, del := "", ""
	d, _ := hub.ParseDate(h.Today())
	return calendarModel{
		hub:        h,
		selected:   d,
		formTitle:  &title,
		formDelete: &del,
	}
}

func (c *calendarModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

type calendarDataMsg struct {
	events []hub.CalendarEvent
	tasks  []hub.Task
}

func (c calendarModel) refresh() tea.Cmd {
	events := c.hub.Events.All()
	tasks := c.hub.Tasks.All()
	return func() tea.Msg {
		return calendarDataMsg{events: events, tasks: tasks}
	}
}

func (c calendarModel) selectedDate() string {
	return c.selected.Format(hub.DateLayout)
}

func (c calendarModel) eventsOn(date string) []hub.CalendarEvent {
	var out []hub.CalendarEvent
	for _, ev := range c.events {
		if ev.Date == date {
			out = append(out, ev)
		}
	}
	return out
}

func (c calendarModel) tasksDue(date string) []hub.Task {
	var out []hub.Task
	for _, t := range c.tasks {
		if t.DueDate == date {
			out = append(out, t)
		}
	}
	return out
}

func (c calendarModel) update(msg tea.Msg) (calendarModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case calendarDataMsg:
		c.events = msg.events
		c.tasks = msg.tasks
		return c, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			c.selected = c.selected.AddDate(0, 0, -1)
		case key.Matches(msg, keys.Right):
			c.selected = c.selected.AddDate(0, 0, 1)
		case key.Matches(msg, keys.Up):
			c.selected = c.selected.AddDate(0, 0, -7)
		case key.Matches(msg, keys.Down):
			c.selected = c.selected.AddDate(0, 0, 7)
		case key.Matches(msg, keys.PrevMonth):
			c.selected = shiftMonth(c.selected, -1)
		case key.Matches(msg, keys.NextMonth):
			c.selected = shiftMonth(c.selected, 1)
		case key.Matches(msg, keys.New):
			*c.formTitle = ""
			c.formType = "event"
			c.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Event on " + c.selectedDate()).Value(c.formTitle),
				),
			).WithShowHelp(true).WithShowErrors(true)
			c.formActive = true
			return c, c.form.Init()
		case key.Matches(msg, keys.Delete):
			events := c.eventsOn(c.selectedDate())
			if len(events) == 0 {
				return c, nil
			}
			opts := make([]huh.Option[string], len(events))
			for i, ev := range events {
				opts[i] = huh.NewOption(ev.Title, ev.ID)
			}
			*c.formDelete = events[0].ID
			c.formType = "delete"
			c.form = huh.NewForm(
				huh.NewGroup(
					huh.NewSelect[string]().Title("Delete event").Options(opts...).Value(c.formDelete),
				),
			).WithShowHelp(true).WithShowErrors(true)
			c.formActive = true
			return c, c.form.Init()
		}
	}
	return c, nil
}

func (c calendarModel) updateForm(msg tea.Msg) (calendarModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		var err error
		switch c.formType {
		case "event":
			_, err = c.hub.Events.Add(strings.TrimSpace(*c.formTitle), c.selectedDate())
		case "delete":
			err = c.hub.Events.Delete(*c.formDelete)
		}
		return c, tea.Batch(errCmd(err), c.refresh())
	}
	return c, cmd
}

// shiftMonth moves d by n months, clamping the day to the target month.
func shiftMonth(d time.Time, n int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, d.Location())
	day := min(d.Day(), daysIn(first))
	return first.AddDate(0, 0, day-1)
}

func daysIn(month time.Time) int {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	return first.AddDate(0, 1, -1).Day()
}

// renderMonth draws a Sunday-first grid for the month containing selected.
func renderMonth(selected time.Time, today string, marked map[string]bool) string {
	first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
	n := daysIn(first)

	lines := []string{calHeaderStyle.Render("Su Mo Tu We Th Fr Sa")}
	offset := int(first.Weekday())
	rows := (offset + n + 6) / 7
	for row := 0; row < rows; row++ {
		var cells []string
		for col := 0; col < 7; col++ {
			day := row*7 + col - offset + 1
			if day < 1 || day > n {
				cells = append(cells, "  ")
				continue
			}
			date := first.AddDate(0, 0, day-1).Format(hub.DateLayout)
			style := calEmptyStyle
			if marked[date] {
				style = calEntryStyle
			}
			if date == today {
				style = style.Inherit(calTodayStyle)
			}
			if day == selected.Day() {
				style = style.Inherit(calSelectedStyle)
			}
			cells = append(cells, style.Render(fmt.Sprintf("%2d", day)))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func (c calendarModel) view() string {
	w := c.width - 4
	if c.formActive && c.form != nil {
		title := titleStyle.Render("New Event")
		if c.formType == "delete" {
			title = titleStyle.Render("Delete Event")
		}
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, title, "", c.form.View()))
	}

	marked := map[string]bool{}
	for _, ev := range c.events {
		marked[ev.Date] = true
	}
	for _, t := range c.tasks {
		if t.DueDate != "" && !t.Completed {
			marked[t.DueDate] = true
		}
	}

	grid := panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(c.selected.Format("January 2006")),
		"",
		renderMonth(c.selected, c.hub.Today(), marked),
		"",
		mutedStyle.Render("[/]: month  ←↑↓→: day"),
	))

	agendaWidth := max(20, w-lipgloss.Width(grid)-2)
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, c.renderAgenda(agendaWidth))
}

func (c calendarModel) renderAgenda(w int) string {
	date := c.selectedDate()
	rows := []string{titleStyle.Render(c.selected.Format("Monday, Jan 2")), ""}

	events := c.eventsOn(date)
	tasks := c.tasksDue(date)
	if len(events) == 0 && len(tasks) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing scheduled"))
	}
	for _, ev := range events {
		rows = append(rows, highlightStyle.Render("◆ ")+truncate(ev.Title, w-8))
	}
	for _, t := range tasks {
		check := "○ "
		style := normalItemStyle
		if t.Completed {
			check = "✓ "
			style = doneItemStyle
		}
		rows = append(rows, successStyle.Render(check)+style.Render(truncate(t.Text, w-8)))
	}

	rows = append(rows, "", mutedStyle.Render("n: new event  d: delete event"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

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

// habitWindow is how many days the habit grid shows, ending today.
const habitWindow = 7

type habitsModel struct {
	hub    *hub.Hub
	width  int
	height int

	habits []hub.Habit
	cursor int
	dayOff int // 0 is today, habitWindow-1 is the oldest column

	formActive bool
	form       *huh.Form
	formName   *string
}

func newHabitsModel(h *hub.Hub) habitsModel {
	name := ""
	return habitsModel{hub: h, formName: &name}
}

func (m *habitsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type habitsDataMsg struct {
	habits []hub.Habit
}

func (m habitsModel) refresh() tea.Cmd {
	habits := m.hub.Habits.All()
	return func() tea.Msg {
		return habitsDataMsg{habits: habits}
	}
}

// days returns the grid dates, oldest first.
func (m habitsModel) days() []string {
	today, _ := hub.ParseDate(m.hub.Today())
	out := make([]string, habitWindow)
	for i := range out {
		out[i] = today.AddDate(0, 0, i-habitWindow+1).Format(hub.DateLayout)
	}
	return out
}

func (m habitsModel) selectedDate() string {
	days := m.days()
	return days[len(days)-1-m.dayOff]
}

func (m habitsModel) update(msg tea.Msg) (habitsModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case habitsDataMsg:
		m.habits = msg.habits
		m.cursor = clamp(m.cursor, 0, max(0, len(m.habits)-1))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Left):
			m.dayOff = min(m.dayOff+1, habitWindow-1)
		case key.Matches(msg, keys.Right):
			m.dayOff = max(m.dayOff-1, 0)
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if m.cursor < len(m.habits) {
				err := m.hub.Habits.Toggle(m.habits[m.cursor].ID, m.selectedDate())
				return m, tea.Batch(errCmd(err), m.refresh())
			}
		case key.Matches(msg, keys.Delete):
			if m.cursor < len(m.habits) {
				return m, tea.Batch(errCmd(m.hub.Habits.Delete(m.habits[m.cursor].ID)), m.refresh())
			}
		case key.Matches(msg, keys.New):
			*m.formName = ""
			m.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Habit").Value(m.formName),
				),
			).WithShowHelp(true).WithShowErrors(true)
			m.formActive = true
			return m, m.form.Init()
		}
	}
	return m, nil
}

func (m habitsModel) updateForm(msg tea.Msg) (habitsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		_, err := m.hub.Habits.Add(strings.TrimSpace(*m.formName))
		return m, tea.Batch(errCmd(err), m.refresh())
	}
	return m, cmd
}

func (m habitsModel) view() string {
	w := m.width - 4
	if m.formActive && m.form != nil {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("New Habit"), "", m.form.View()))
	}

	title := titleStyle.Render("Habits")
	if len(m.habits) == 0 {
		return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No habits yet. Press n to add one.")))
	}

	days := m.days()
	nameW := clamp(w-6-habitWindow*4-12, 10, 30)

	var head strings.Builder
	head.WriteString(strings.Repeat(" ", nameW+2))
	for i, d := range days {
		t, _ := time.Parse(hub.DateLayout, d)
		label := fmt.Sprintf(" %-3s", t.Format("Mon")[:2])
		if len(days)-1-i == m.dayOff {
			label = highlightStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		head.WriteString(label)
	}
	head.WriteString(mutedStyle.Render("  streak"))

	rows := []string{title, "", head.String()}
	start, end := listWindow(len(m.habits), m.cursor, m.height-10)
	for i := start; i < end; i++ {
		rows = append(rows, m.renderRow(m.habits[i], i == m.cursor, days, nameW))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  marking %s", m.selectedDate())))
	rows = append(rows, mutedStyle.Render("  n: new  space: toggle  ←/→: day  d: delete"))
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m habitsModel) renderRow(habit hub.Habit, selected bool, days []string, nameW int) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	name := fmt.Sprintf("%-*s", nameW, truncate(habit.Name, nameW))

	var b strings.Builder
	b.WriteString(cursor)
	b.WriteString(style.Render(name))
	for _, d := range days {
		if habit.Completions[d] {
			b.WriteString(successStyle.Render("  ● "))
		} else {
			b.WriteString(mutedStyle.Render("  · "))
		}
	}

	streak := fmt.Sprintf("  %d", habit.Streak)
	if habit.Streak > 0 {
		streak = accentStyle.Render(streak + " 🔥")
	} else {
		streak = mutedStyle.Render(streak)
	}
	b.WriteString(streak)
	return b.String()
}

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/focusboard/internal/hub"
)

// maxPaletteResults caps the number of search rows shown.
const maxPaletteResults = 8

// quickActionModel is the ctrl+k palette. Its first row adds the query as a
// task; the rest are search hits that jump to their view.
type quickActionModel struct {
	hub   *hub.Hub
	width int

	open    bool
	input   textinput.Model
	results []hub.SearchResult
	cursor  int
}

func newQuickActionModel(h *hub.Hub) quickActionModel {
	ti := textinput.New()
	ti.Placeholder = "Search tasks and notes, or type a new task"
	ti.Prompt = "⌘ "
	ti.CharLimit = 200
	return quickActionModel{hub: h, input: ti}
}

// jumpMsg asks the dispatcher to show view and select id there.
type jumpMsg struct {
	view viewState
	id   string
}

func (q quickActionModel) show() (quickActionModel, tea.Cmd) {
	q.open = true
	q.cursor = 0
	q.results = nil
	q.input.Reset()
	return q, q.input.Focus()
}

func (q quickActionModel) hide() quickActionModel {
	q.open = false
	q.input.Blur()
	return q
}

func (q quickActionModel) query() string {
	return strings.TrimSpace(q.input.Value())
}

// rows is the number of selectable rows: the add row plus results.
func (q quickActionModel) rows() int {
	if q.query() == "" {
		return 0
	}
	return 1 + len(q.results)
}

func (q quickActionModel) search() quickActionModel {
	q.results = hub.Search(q.query(), q.hub.Tasks.All(), q.hub.Notes.All())
	if len(q.results) > maxPaletteResults {
		q.results = q.results[:maxPaletteResults]
	}
	q.cursor = clamp(q.cursor, 0, max(0, q.rows()-1))
	return q
}

func (q quickActionModel) update(msg tea.Msg) (quickActionModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEsc:
			return q.hide(), nil
		case tea.KeyUp:
			if q.cursor > 0 {
				q.cursor--
			}
			return q, nil
		case tea.KeyDown:
			if q.cursor < q.rows()-1 {
				q.cursor++
			}
			return q, nil
		case tea.KeyEnter:
			return q.activate()
		}
	}

	var cmd tea.Cmd
	q.input, cmd = q.input.Update(msg)
	return q.search(), cmd
}

func (q quickActionModel) activate() (quickActionModel, tea.Cmd) {
	text := q.query()
	if text == "" {
		return q, nil
	}
	if q.cursor == 0 {
		task, err := q.hub.Tasks.Add(hub.TaskInput{Text: text})
		if err != nil {
			return q, errCmd(err)
		}
		q = q.hide()
		return q, tea.Batch(
			statusCmd(fmt.Sprintf("Added task %q", task.Text)),
			func() tea.Msg { return jumpMsg{view: viewTasks, id: task.ID} },
		)
	}

	r := q.results[q.cursor-1]
	view := viewTasks
	if r.Kind == hub.ResultNote {
		view = viewNotes
	}
	q = q.hide()
	return q, func() tea.Msg { return jumpMsg{view: view, id: r.ID} }
}

func (q quickActionModel) view() string {
	w := min(max(q.width-8, 20), 72)
	rows := []string{titleStyle.Render("Quick Action"), "", q.input.View(), ""}

	text := q.query()
	if text == "" {
		rows = append(rows, mutedStyle.Render("Type to search or add a task"))
	} else {
		rows = append(rows, q.renderRow(0, "+ Add task: "+truncate(text, w-20)))
		for i, r := range q.results {
			label := "task  "
			if r.Kind == hub.ResultNote {
				label = "note  "
			}
			line := mutedStyle.Render(label) + truncate(r.Text, w-14)
			if r.Completed {
				line += successStyle.Render(" ✓")
			}
			rows = append(rows, q.renderRow(i+1, line))
		}
		if len(q.results) == 0 {
			rows = append(rows, mutedStyle.Render("  no matches"))
		}
	}
	rows = append(rows, "", mutedStyle.Render("enter: select  esc: close"))
	return paletteStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (q quickActionModel) renderRow(i int, text string) string {
	if i == q.cursor {
		return selectedItemStyle.Render("> ") + text
	}
	return "  " + text
}
